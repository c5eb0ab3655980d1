package engine

import (
	"github.com/rackforge/hexdominion/internal/eventbus"
	"github.com/rackforge/hexdominion/internal/primitives"
)

// registerCards populates a representative set of action cards
// (ShieldWall and Ambush carry one tactics-card attachment each;
// TradeCaravan and Diplomacy carry none, spec §4.5) and objective cards
// (spec §4.8 complete-objectives), grounded in original_source's
// content/action_cards/*.rs and content/objective_cards/*.rs.
func registerCards(c *Catalog) {
	c.ActionCards["TradeCaravan"] = &ActionCard{
		Name: "TradeCaravan",
		Requirement: func(g *Game, playerIdx int) bool {
			return true
		},
		Init: func(g *Game, playerIdx int, origin eventbus.Origin) {
			g.Player(playerIdx).GainResources(primitives.Gold(2))
		},
	}

	c.ActionCards["Diplomacy"] = &ActionCard{
		Name: "Diplomacy",
		Requirement: func(g *Game, playerIdx int) bool {
			return len(g.Player(playerIdx).Cities) > 0
		},
		Init: func(g *Game, playerIdx int, origin eventbus.Origin) {
			g.Player(playerIdx).CustomActions["diplomacy_range_boost"] = true
		},
	}

	c.ActionCards["ShieldWall"] = &ActionCard{
		Name: "ShieldWall",
		Requirement: func(g *Game, playerIdx int) bool {
			return true
		},
		Tactics: &TacticsCard{
			Name: "ShieldWall",
			Modify: func(ctx *CombatRoundContext, attacker bool) {
				if !attacker {
					ctx.DefenderValue++
				}
			},
		},
	}

	c.ActionCards["Ambush"] = &ActionCard{
		Name: "Ambush",
		Requirement: func(g *Game, playerIdx int) bool {
			return true
		},
		Tactics: &TacticsCard{
			Name: "Ambush",
			Modify: func(ctx *CombatRoundContext, attacker bool) {
				if attacker {
					ctx.DefenderCancels = 0
				}
			},
		},
	}

	c.Objectives["Builder"] = &ObjectiveCard{
		Name: "Builder",
		Completed: func(g *Game, playerIdx int) bool {
			buildings := 0
			for _, city := range g.Player(playerIdx).Cities {
				for _, piece := range city.Pieces {
					if piece.Owner == playerIdx {
						buildings++
					}
				}
			}
			return buildings >= 3
		},
	}

	c.Objectives["Warlord"] = &ObjectiveCard{
		Name: "Warlord",
		Completed: func(g *Game, playerIdx int) bool {
			for _, e := range g.Player(playerIdx).VictoryPoints {
				if e.Origin == "captured_leader" {
					return true
				}
			}
			return false
		},
	}

	c.Objectives["Expansionist"] = &ObjectiveCard{
		Name: "Expansionist",
		Completed: func(g *Game, playerIdx int) bool {
			return len(g.Player(playerIdx).Cities) >= 3
		},
	}
}
