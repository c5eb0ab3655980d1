package engine

import (
	"testing"

	"github.com/rackforge/hexdominion/internal/player"
	"github.com/stretchr/testify/assert"
)

func TestScoresReportsHumanPlayersOnlyAsHalvesDividedByTwo(t *testing.T) {
	g := Init(2, "scoring")
	g.Player(0).AwardVP("test", 5)
	g.Player(1).AwardVP("test", 2)

	scores := g.Scores()
	want := map[int]float64{0: 2.5, 1: 1.0}
	for _, s := range scores {
		assert.Equal(t, want[s.Player], s.Points)
	}
}

func TestRankingsIsPerSeatRankNotASortedIndexList(t *testing.T) {
	g := Init(3, "rankings")
	g.Player(0).AwardVP("test", 2)
	g.Player(1).AwardVP("test", 6)
	g.Player(2).AwardVP("test", 6)

	ranked := g.Rankings()
	assert.Equal(t, []int{3, 1, 1}, ranked)
}

func TestScoresExcludesNonHumanPlayers(t *testing.T) {
	g := Init(1, "scoring-barbarian")
	g.Players = append(g.Players, player.New(1, player.Barbarian))
	g.Player(1).AwardVP("test", 100)

	scores := g.Scores()
	assert.Len(t, scores, 1)
	assert.Equal(t, 0, scores[0].Player)
}
