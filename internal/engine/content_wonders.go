package engine

import (
	"github.com/rackforge/hexdominion/internal/eventbus"
	"github.com/rackforge/hexdominion/internal/payment"
	"github.com/rackforge/hexdominion/internal/primitives"
)

// registerWonders populates a representative wonder set, grounded in
// original_source's content/wonders/*.rs (each wonder there is a cost,
// a required-advances list, and an initializer registering permanent
// listeners on the owner).
func registerWonders(c *Catalog) {
	c.Wonders["GreatLibrary"] = &Wonder{
		Name:             "GreatLibrary",
		Cost:             payment.Fixed(primitives.ResourcePile{Wood: 2, Ore: 2, Ideas: 2}),
		RequiredAdvances: []string{"Philosophy"},
		Init: func(g *Game, playerIdx int, origin eventbus.Origin) {
			g.Events.CollectTotal.Add(origin, 0, func(ctx *CollectContext) {
				if ctx.Player == playerIdx {
					ctx.Total.Ideas++
				}
			})
		},
	}

	c.Wonders["HangingGardens"] = &Wonder{
		Name:             "HangingGardens",
		Cost:             payment.Fixed(primitives.ResourcePile{Food: 2, Wood: 2, Gold: 2}),
		RequiredAdvances: []string{"Sanitation"},
		Init: func(g *Game, playerIdx int, origin eventbus.Origin) {
			g.Events.TurnStart.Add(origin, 0,
				func(ctx *TurnStartContext, player int) (eventbus.Request, bool) {
					if player == playerIdx {
						g.Player(player).GainResources(primitives.MoodTokens(1))
					}
					return eventbus.Request{}, false
				},
				func(ctx *TurnStartContext, resp eventbus.Response) {})
		},
	}

	c.Wonders["GreatLighthouse"] = &Wonder{
		Name:             "GreatLighthouse",
		Cost:             payment.Fixed(primitives.ResourcePile{Wood: 3, Ore: 1, Gold: 1}),
		RequiredAdvances: []string{"Astronomy"},
		Init: func(g *Game, playerIdx int, origin eventbus.Origin) {
			g.Events.CombatRound.Add(origin, 0, func(ctx *CombatRoundContext) {
				if ctx.AttackerPlayer == playerIdx && ctx.AttackerHasShip {
					ctx.AttackerValue++
				}
			})
		},
	}
}
