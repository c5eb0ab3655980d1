package engine

import (
	"github.com/rackforge/hexdominion/internal/eventbus"
	"github.com/rackforge/hexdominion/internal/primitives"
)

// registerIncidents populates a representative set drawn at the start
// of each age (spec §4.4 EndTurn note), grounded in
// original_source's content/incidents/*.rs. Init receives the current
// start player as playerIdx — the player the incident's effect centers
// on, matching the source's "incidents affect the current age's start
// player" convention.
func registerIncidents(c *Catalog) {
	c.Incidents["GreatWarlord"] = &Incident{
		Name: "GreatWarlord",
		Init: func(g *Game, playerIdx int, origin eventbus.Origin) {
			strongest := strongestArmyPlayer(g)
			g.Events.CombatRound.Add(origin, 100, func(ctx *CombatRoundContext) {
				if ctx.AttackerPlayer != strongest {
					return
				}
				ctx.AttackerValue += 2
				g.Events.CombatRound.RemoveOrigin(origin)
			})
		},
	}

	c.Incidents["GreatDiplomat"] = &Incident{
		Name: "GreatDiplomat",
		Init: func(g *Game, playerIdx int, origin eventbus.Origin) {
			g.Player(playerIdx).CustomActions["great_diplomat_free_influence"] = true
		},
	}

	c.Incidents["GoodYear"] = &Incident{
		Name: "GoodYear",
		Init: func(g *Game, playerIdx int, origin eventbus.Origin) {
			for _, p := range g.Players {
				p.GainResources(primitives.Food(1))
			}
		},
	}

	c.Incidents["PopulationBoom"] = &Incident{
		Name: "PopulationBoom",
		Init: func(g *Game, playerIdx int, origin eventbus.Origin) {
			p := g.Player(playerIdx)
			if p.UnitCounts().Settlers < p.Kind.UnitCap().Settlers && len(p.Cities) > 0 {
				g.spawnUnit(playerIdx, primitives.Settler, p.Cities[0].Position)
			}
		},
	}

	c.Incidents["CivilWar"] = &Incident{
		Name: "CivilWar",
		Init: func(g *Game, playerIdx int, origin eventbus.Origin) {
			p := g.Player(playerIdx)
			for _, u := range p.Units {
				if u.Type == primitives.Infantry {
					p.RemoveUnit(u.ID)
					break
				}
			}
		},
	}
}

// strongestArmyPlayer returns the player index with the most army
// units, ties broken toward the lowest index.
func strongestArmyPlayer(g *Game) int {
	best, bestCount := 0, -1
	for i, p := range g.Players {
		count := p.UnitCounts().Infantry + p.UnitCounts().Ships + p.UnitCounts().Cavalry + p.UnitCounts().Elephants
		if count > bestCount {
			best, bestCount = i, count
		}
	}
	return best
}
