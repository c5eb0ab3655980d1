package engine

import "sort"

// runStatusPhase executes spec §4.8's six sub-phases in order —
// complete-objectives, free-advance, draw-cards, raze-size-1-city,
// change-government, determine-first-player — then advances Age and
// either hands off to Finished or starts a new Playing round.
//
// dispatch.go's comment on ModeStatusPhase ("runs automatically and
// accepts no player actions") is taken literally here: every sub-phase
// is a deterministic, uninterruptible computation over Game state with
// no persistent-event pause, so this function always runs start to
// finish in one call. raze-size-1-city and change-government are
// genuinely optional player choices in the source material; with no
// pause available in this phase they are modeled as "never exercised"
// (see DESIGN.md) rather than invented as forced automatic actions.
func (g *Game) runStatusPhase() {
	order := g.statusPhaseOrder()
	g.completeObjectives(order)
	g.freeAdvance(order)
	g.drawCards(order)
	g.determineFirstPlayer()

	g.Age++
	if g.Age > 6 {
		g.Mode = ModeFinished
		return
	}
	g.Round = 1
	g.ActionsLeft = 3
	g.Mode = ModePlaying
	g.CurrentPlayer = g.StartPlayer
}

// statusPhaseOrder returns active player indices in seat order
// starting from StartPlayer, per spec §4.8 "each sub-phase iterates
// players in seat order starting from current start-player".
func (g *Game) statusPhaseOrder() []int {
	n := len(g.Players)
	order := make([]int, 0, n)
	for i := 0; i < n; i++ {
		idx := (g.StartPlayer + i) % n
		if !g.DroppedPlayers[idx] {
			order = append(order, idx)
		}
	}
	return order
}

// completeObjectives awards +2 VP (4 halves) for any adopted objective
// whose completion predicate now holds, then clears it (spec §4.9
// "Objective completed: +2").
func (g *Game) completeObjectives(order []int) {
	for _, idx := range order {
		p := g.Player(idx)
		if p.ActiveObjective == "" {
			continue
		}
		obj := g.Catalog.Objectives[p.ActiveObjective]
		if obj == nil || obj.Completed == nil || !obj.Completed(g, idx) {
			continue
		}
		p.AwardVP("objective:"+obj.Name, 4)
		g.appendLog(idx, "completed objective "+obj.Name)
		p.ActiveObjective = ""
	}
}

// freeAdvance grants each player the alphabetically-first advance they
// are eligible for (prerequisite satisfied, not already owned, no
// contradiction owned) at no cost. The grant skips the "advance"
// persistent event hook (see grantAdvanceSilently) so this automatic
// phase never opens a pause.
func (g *Game) freeAdvance(order []int) {
	names := make([]string, 0, len(g.Catalog.Advances))
	for n := range g.Catalog.Advances {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, idx := range order {
		p := g.Player(idx)
		for _, name := range names {
			adv := g.Catalog.Advances[name]
			if p.Advances[name] {
				continue
			}
			if adv.Prerequisite != "" && !p.Advances[adv.Prerequisite] {
				continue
			}
			if adv.Contradicts != "" && p.Advances[adv.Contradicts] {
				continue
			}
			g.grantAdvanceSilently(idx, name)
			g.appendLog(idx, "gained a free advance: "+name)
			break
		}
	}
}

// grantAdvanceSilently runs the same bookkeeping as grantAdvance
// (mark owned, apply first-time bonus, run the per-player initializer)
// without triggering the "advance" persistent event, so it can run
// during the status phase's automatic, non-pausable sub-phases.
func (g *Game) grantAdvanceSilently(playerIdx int, name string) {
	p := g.Player(playerIdx)
	adv := g.Catalog.Advances[name]
	p.Advances[name] = true
	p.GainResources(adv.FirstTimeBonus)
	if adv.Init != nil {
		adv.Init(g, playerIdx, advanceOrigin(name, playerIdx))
	}
}

// drawCards deals one action card and one objective card to each
// player from the shared decks, if any remain (spec §4.8 "draw-cards").
func (g *Game) drawCards(order []int) {
	if len(g.ActionCardDeck) > 0 || len(g.ObjectiveDeck) > 0 {
		g.markHiddenInfoRevealed()
	}
	for _, idx := range order {
		p := g.Player(idx)
		if len(g.ActionCardDeck) > 0 {
			p.ActionHand = append(p.ActionHand, g.ActionCardDeck[0])
			g.ActionCardDeck = g.ActionCardDeck[1:]
		}
		if len(g.ObjectiveDeck) > 0 {
			p.ObjectiveHand = append(p.ObjectiveHand, g.ObjectiveDeck[0])
			g.ObjectiveDeck = g.ObjectiveDeck[1:]
		}
	}
}

// determineFirstPlayer picks the new StartPlayer: the active player
// with the highest mood-tokens+culture-tokens total, ties broken by
// smallest forward seat distance from the current start player (spec
// §4.8 "determine-first-player").
func (g *Game) determineFirstPlayer() {
	order := g.statusPhaseOrder()
	best := g.StartPlayer
	bestScore := -1
	bestDist := len(g.Players)
	for dist, idx := range order {
		p := g.Player(idx)
		score := p.Resources.MoodTokens + p.Resources.CultureTokens
		if score > bestScore || (score == bestScore && dist < bestDist) {
			best, bestScore, bestDist = idx, score, dist
		}
	}
	g.StartPlayer = best
}
