package engine

import (
	"github.com/rackforge/hexdominion/internal/eventbus"
	"github.com/rackforge/hexdominion/internal/payment"
	"github.com/rackforge/hexdominion/internal/primitives"
)

// registerAdvances populates the representative advance set named in
// SPEC_FULL.md, grounded in original_source's content/advances/*.rs
// (Math, Astronomy, Priesthood share the same "reduce advance cost"
// shape there; Philosophy/FreeEducation/Dogma share the "advance"
// persistent-event hook; Rituals/Sanitation/PublicEducation/Metallurgy
// attach to collect/recruit/happiness; SteelWeapons/Siegecraft/
// Fanaticism attach to combat).
func registerAdvances(c *Catalog) {
	discountAdvanceCost := func(name string) *Advance {
		return &Advance{
			Name: name,
			Init: func(g *Game, playerIdx int, origin eventbus.Origin) {
				g.Events.AdvanceCost.Add(origin, 0, func(ctx *CostContext) {
					if ctx.Options.Model == payment.ModelSum && ctx.Options.SumCost > 0 {
						ctx.Options.SumCost--
					}
				})
			},
		}
	}
	c.Advances["Math"] = discountAdvanceCost("Math")
	c.Advances["Astronomy"] = discountAdvanceCost("Astronomy")
	c.Advances["Priesthood"] = discountAdvanceCost("Priesthood")

	c.Advances["Storage"] = &Advance{Name: "Storage"}

	c.Advances["Philosophy"] = &Advance{
		Name: "Philosophy",
		Init: func(g *Game, playerIdx int, origin eventbus.Origin) {
			g.Events.Advance.Add(origin, 10, func(ctx *AdvanceContext, player int) (eventbus.Request, bool) {
				ctx.Granted = ctx.Granted.Add(primitives.Ideas(1))
				g.Player(playerIdx).GainResources(primitives.Ideas(1))
				return eventbus.Request{}, false
			}, func(ctx *AdvanceContext, resp eventbus.Response) {})
		},
	}

	c.Advances["FreeEducation"] = &Advance{
		Name:         "FreeEducation",
		Prerequisite: "Philosophy",
		Init: func(g *Game, playerIdx int, origin eventbus.Origin) {
			g.Events.Advance.Add(origin, 5,
				func(ctx *AdvanceContext, player int) (eventbus.Request, bool) {
					if player != playerIdx {
						return eventbus.Request{}, false
					}
					p := g.Player(player)
					if p.Resources.Ideas < 1 {
						return eventbus.Request{}, false
					}
					return eventbus.Request{Kind: eventbus.RequestBool, Prompt: "Pay 1 idea for 1 mood token?"}, true
				},
				func(ctx *AdvanceContext, resp eventbus.Response) {
					if !resp.Bool {
						return
					}
					p := g.Player(ctx.Player)
					p.Resources = p.Resources.Sub(primitives.Ideas(1))
					p.GainResources(primitives.MoodTokens(1))
				})
		},
	}

	c.Advances["Theocracy"] = &Advance{Name: "Theocracy", Prerequisite: "Priesthood"}

	c.Advances["Dogma"] = &Advance{
		Name:         "Dogma",
		Prerequisite: "Priesthood",
		Init: func(g *Game, playerIdx int, origin eventbus.Origin) {
			g.Events.Advance.Add(origin, 5,
				func(ctx *AdvanceContext, player int) (eventbus.Request, bool) {
					if player != playerIdx || g.Player(player).Advances["Theocracy"] {
						return eventbus.Request{}, false
					}
					return eventbus.Request{
						Kind:           eventbus.RequestSelectAdvance,
						Prompt:         "Gain Theocracy for free?",
						AdvanceChoices: []string{"Theocracy"},
						Min:            0, Max: 1,
					}, true
				},
				func(ctx *AdvanceContext, resp eventbus.Response) {
					if resp.Advance == "Theocracy" {
						g.grantAdvance(ctx.Player, "Theocracy")
					}
				})
		},
	}

	c.Advances["Rituals"] = &Advance{Name: "Rituals"}

	c.Advances["Sanitation"] = &Advance{
		Name: "Sanitation",
		Init: func(g *Game, playerIdx int, origin eventbus.Origin) {
			g.Events.RecruitCost.Add(origin, 0, func(ctx *CostContext) {
				if ctx.Player != playerIdx || ctx.Item != primitives.Settler.String() {
					return
				}
				ctx.Options = ctx.Options.WithConversion(payment.Conversion{From: payment.KindMoodTokens, To: payment.KindFood, Limit: 1})
			})
		},
	}

	c.Advances["PublicEducation"] = &Advance{
		Name: "PublicEducation",
		Init: func(g *Game, playerIdx int, origin eventbus.Origin) {
			g.Events.CollectTotal.Add(origin, 0, func(ctx *CollectContext) {
				if ctx.Player != playerIdx {
					return
				}
				p := g.Player(playerIdx)
				if p.OncePerTurn["public_education"] {
					return
				}
				p.OncePerTurn["public_education"] = true
				ctx.Total = ctx.Total.Add(primitives.Ideas(1))
			})
		},
	}

	c.Advances["Metallurgy"] = &Advance{
		Name: "Metallurgy",
		Init: func(g *Game, playerIdx int, origin eventbus.Origin) {
			g.Events.CollectTotal.Add(origin, 0, func(ctx *CollectContext) {
				if ctx.Player != playerIdx || ctx.Total.Ore < 2 {
					return
				}
				ctx.Total.Ore--
				ctx.Total.Gold++
			})
			g.Events.AdvanceCost.Add(origin, 0, func(ctx *CostContext) {
				if ctx.Item != "SteelWeapons" {
					return
				}
				ctx.Options.Cost.Ore = 0
			})
		},
	}

	c.Advances["Medicine"] = &Advance{
		Name: "Medicine",
		Init: func(g *Game, playerIdx int, origin eventbus.Origin) {
			g.Events.Recruit.Add(origin, 0,
				func(ctx *RecruitContext, player int) (eventbus.Request, bool) {
					if player != playerIdx || ctx.Paid.IsZero() {
						return eventbus.Request{}, false
					}
					return eventbus.Request{Kind: eventbus.RequestBool, Prompt: "Refund 1 unit of a paid resource?"}, true
				},
				func(ctx *RecruitContext, resp eventbus.Response) {
					if !resp.Bool {
						return
					}
					refund := firstNonZero(ctx.Paid)
					ctx.Refunded = ctx.Refunded.Add(refund)
					g.Player(ctx.Player).GainResources(refund)
				})
		},
	}

	c.Advances["SteelWeapons"] = &Advance{
		Name: "SteelWeapons",
		Cost: payment.Fixed(primitives.Ore(1)),
		Init: func(g *Game, playerIdx int, origin eventbus.Origin) {
			g.Events.CombatRound.Add(origin, 0, func(ctx *CombatRoundContext) {
				if ctx.AttackerPlayer == playerIdx {
					ctx.AttackerValue += 1
				}
			})
		},
	}

	c.Advances["Siegecraft"] = &Advance{
		Name: "Siegecraft",
		Init: func(g *Game, playerIdx int, origin eventbus.Origin) {
			g.Events.Siegecraft.Add(origin, 0,
				func(ctx *CombatRoundContext, player int) (eventbus.Request, bool) {
					if ctx.AttackerPlayer != playerIdx || ctx.Round != 1 || !ctx.DefenderHasFortress {
						return eventbus.Request{}, false
					}
					return eventbus.Request{
						Kind:   eventbus.RequestPayment,
						Prompt: "Pay for Siegecraft (2 wood for an extra die, 2 ore to ignore a hit)?",
					}, true
				},
				func(ctx *CombatRoundContext, resp eventbus.Response) {
					p := g.Player(ctx.AttackerPlayer)
					if resp.Payment.Wood >= 2 && p.Resources.Wood >= 2 {
						p.Resources = p.Resources.Sub(primitives.Wood(2))
						g.markHiddenInfoRevealed()
						ctx.AttackerRolls = append(ctx.AttackerRolls, g.Rng.RollDie())
					}
					if resp.Payment.Ore >= 2 && p.Resources.Ore >= 2 {
						p.Resources = p.Resources.Sub(primitives.Ore(2))
						ctx.AttackerCancels++
					}
				})
		},
	}

	c.Advances["Fanaticism"] = &Advance{
		Name: "Fanaticism",
		Init: func(g *Game, playerIdx int, origin eventbus.Origin) {
			g.Events.CombatRound.Add(origin, 0, func(ctx *CombatRoundContext) {
				if ctx.Round == 1 && ctx.DefenderPlayer == playerIdx && ctx.DefenderHasTemple {
					ctx.DefenderValue += 2
				}
			})
		},
	}

	// Navigation and Roads have no registered listeners: movement.go
	// checks p.Advances["Roads"] directly when computing reachability.
	// Nothing checks Navigation, so owning it does not change movement.
	c.Advances["Navigation"] = &Advance{Name: "Navigation", Prerequisite: "Astronomy"}
	c.Advances["Roads"] = &Advance{Name: "Roads"}
}

// firstNonZero returns a single-unit pile for the first non-zero
// spendable counter in pile, used by Medicine's refund.
func firstNonZero(pile primitives.ResourcePile) primitives.ResourcePile {
	switch {
	case pile.Food > 0:
		return primitives.Food(1)
	case pile.Wood > 0:
		return primitives.Wood(1)
	case pile.Ore > 0:
		return primitives.Ore(1)
	case pile.Ideas > 0:
		return primitives.Ideas(1)
	case pile.Gold > 0:
		return primitives.Gold(1)
	default:
		return primitives.ResourcePile{}
	}
}
