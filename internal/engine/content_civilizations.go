package engine

import (
	"github.com/rackforge/hexdominion/internal/eventbus"
	"github.com/rackforge/hexdominion/internal/primitives"
)

// registerCivilizations populates a representative, non-exhaustive set
// of civilizations (spec §9: "flat record, no base classes"), grounded
// in original_source's content/civilizations/*.rs. Each grants a
// starting-unit layout and, where the source civilization has one, a
// passive ability expressed as a permanent listener.
func registerCivilizations(c *Catalog) {
	c.Civilizations["Rome"] = &Civilization{
		Name:          "Rome",
		StartingUnits: primitives.Units{Settlers: 1, Infantry: 2},
		Init: func(g *Game, playerIdx int, origin eventbus.Origin) {
			g.Events.ConstructCost.Add(origin, 0, func(ctx *CostContext) {
				if ctx.Options.Model == 0 && !ctx.Options.Cost.IsZero() {
					ctx.Options.Discount++
				}
			})
		},
	}

	c.Civilizations["Egypt"] = &Civilization{
		Name:          "Egypt",
		StartingUnits: primitives.Units{Settlers: 1, Infantry: 1},
		Init: func(g *Game, playerIdx int, origin eventbus.Origin) {
			g.Events.CollectTotal.Add(origin, 0, func(ctx *CollectContext) {
				if ctx.Player == playerIdx && ctx.City != nil && len(ctx.City.Wonders) > 0 {
					ctx.Total.Gold++
				}
			})
		},
	}

	c.Civilizations["Greece"] = &Civilization{
		Name:          "Greece",
		StartingUnits: primitives.Units{Settlers: 1, Infantry: 1},
		Init: func(g *Game, playerIdx int, origin eventbus.Origin) {
			g.Events.AdvanceCost.Add(origin, 0, func(ctx *CostContext) {
				if ctx.Options.SumCost > 0 {
					ctx.Options.SumCost--
				}
			})
		},
	}

	c.Civilizations["China"] = &Civilization{
		Name:          "China",
		StartingUnits: primitives.Units{Settlers: 1, Infantry: 2},
		Init: func(g *Game, playerIdx int, origin eventbus.Origin) {
			g.Events.RecruitCost.Add(origin, 0, func(ctx *CostContext) {
				ctx.Options.Discount++
			})
		},
	}

	c.Civilizations["Maya"] = &Civilization{
		Name:          "Maya",
		StartingUnits: primitives.Units{Settlers: 2},
		Init: func(g *Game, playerIdx int, origin eventbus.Origin) {
			g.Events.CollectTotal.Add(origin, 0, func(ctx *CollectContext) {
				if ctx.Player == playerIdx {
					ctx.Total.Food++
				}
			})
		},
	}

	c.Civilizations["Vikings"] = &Civilization{
		Name:          "Vikings",
		StartingUnits: primitives.Units{Settlers: 1, Ships: 1, Infantry: 1},
		Init: func(g *Game, playerIdx int, origin eventbus.Origin) {
			g.Events.CombatRound.Add(origin, 0, func(ctx *CombatRoundContext) {
				if ctx.AttackerPlayer == playerIdx && ctx.AttackerHasShip {
					ctx.AttackerValue++
				}
			})
		},
	}
}
