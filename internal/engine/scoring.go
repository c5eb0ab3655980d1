package engine

import (
	"github.com/rackforge/hexdominion/internal/player"
)

// Score pairs a human player with their total victory points, exposed
// as a float rounded to the nearest half (spec §4.9: VP are stored
// internally as integer halves).
type Score struct {
	Player int
	Points float64
}

// Scores returns every human player's total, in seat order (spec §4.9
// "scores(game) returns human player totals rounded to halves").
func (g *Game) Scores() []Score {
	out := make([]Score, 0, len(g.Players))
	for i, p := range g.Players {
		if p.Kind != player.Human {
			continue
		}
		out = append(out, Score{Player: i, Points: float64(p.TotalVPHalves()) / 2})
	}
	return out
}

// Rankings returns, per human player in seat order (parallel to
// Scores), that player's 1-based rank: 1 plus the count of other human
// players with a strictly higher score. Ties share a rank (spec §4.9
// "rankings(game) -> Vec<u32>": per-player rank, not a sorted list of
// indices).
func (g *Game) Rankings() []int {
	scores := g.Scores()
	out := make([]int, len(scores))
	for i, s := range scores {
		rank := 1
		for j, other := range scores {
			if j != i && other.Points > s.Points {
				rank++
			}
		}
		out[i] = rank
	}
	return out
}
