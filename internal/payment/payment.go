// Package payment implements the PaymentOptions model (spec §4.2): a
// description of what a player may legally pay for an action, given a
// fixed cost with an optional discount, or a "sum of N from these
// resource types" cost, plus a set of one-way substitution
// conversions (gold-for-anything, mood-tokens-for-anything, etc.).
package payment

import (
	"fmt"

	"github.com/rackforge/hexdominion/internal/enginerr"
	"github.com/rackforge/hexdominion/internal/primitives"
)

// ResourceKind names one of the seven counters in a ResourcePile, used
// by the Sum payment model and by Conversion to describe which
// counters a substitution moves between.
type ResourceKind int

const (
	KindFood ResourceKind = iota
	KindWood
	KindOre
	KindIdeas
	KindGold
	KindMoodTokens
	KindCultureTokens
)

func single(kind ResourceKind, amount int) primitives.ResourcePile {
	switch kind {
	case KindFood:
		return primitives.Food(amount)
	case KindWood:
		return primitives.Wood(amount)
	case KindOre:
		return primitives.Ore(amount)
	case KindIdeas:
		return primitives.Ideas(amount)
	case KindGold:
		return primitives.Gold(amount)
	case KindMoodTokens:
		return primitives.MoodTokens(amount)
	case KindCultureTokens:
		return primitives.CultureTokens(amount)
	default:
		return primitives.ResourcePile{}
	}
}

func amountOf(p primitives.ResourcePile, kind ResourceKind) int {
	switch kind {
	case KindFood:
		return p.Food
	case KindWood:
		return p.Wood
	case KindOre:
		return p.Ore
	case KindIdeas:
		return p.Ideas
	case KindGold:
		return p.Gold
	case KindMoodTokens:
		return p.MoodTokens
	case KindCultureTokens:
		return p.CultureTokens
	default:
		return 0
	}
}

// Conversion describes a one-way substitution: up to Limit times, one
// unit of From may stand in for one unit of To when validating a
// payment (e.g. 1 gold substitutes for 1 wood). Limit < 0 means
// unlimited.
type Conversion struct {
	From  ResourceKind
	To    ResourceKind
	Limit int
}

// Model selects which of the two cost shapes a PaymentOptions uses.
type Model int

const (
	ModelFixed Model = iota
	ModelSum
)

// Options describes the legal payments for a single priced action.
type Options struct {
	Model Model

	// ModelFixed fields.
	Cost     primitives.ResourcePile
	Discount int

	// ModelSum fields: pay a total of SumCost units from any mix of
	// SumTypes (e.g. "2 from {food, wood, ore}").
	SumCost  int
	SumTypes []ResourceKind

	Conversions []Conversion
}

// Fixed builds a ModelFixed Options with no discount and no
// conversions.
func Fixed(cost primitives.ResourcePile) Options {
	return Options{Model: ModelFixed, Cost: cost}
}

// FixedWithDiscount builds a ModelFixed Options where up to discount
// units of Cost may be waived entirely (not paid from any resource).
func FixedWithDiscount(cost primitives.ResourcePile, discount int) Options {
	return Options{Model: ModelFixed, Cost: cost, Discount: discount}
}

// Sum builds a ModelSum Options: the player must pay exactly cost
// units total, drawn from any combination of types.
func Sum(cost int, types ...ResourceKind) Options {
	return Options{Model: ModelSum, SumCost: cost, SumTypes: types}
}

// WithConversion returns o with an additional substitution rule. The
// original is left unmodified.
func (o Options) WithConversion(c Conversion) Options {
	next := o
	next.Conversions = append(append([]Conversion{}, o.Conversions...), c)
	return next
}

// effectiveCost returns Cost minus up to Discount units, taken from
// the non-token counters in a fixed preference order (ore, wood,
// ideas, gold, food).
func (o Options) effectiveCost() primitives.ResourcePile {
	if o.Model != ModelFixed || o.Discount <= 0 {
		return o.Cost
	}
	remaining := o.Discount
	cost := o.Cost
	order := []*int{&cost.Ore, &cost.Wood, &cost.Ideas, &cost.Gold, &cost.Food}
	for _, counter := range order {
		if remaining == 0 {
			break
		}
		take := min(*counter, remaining)
		*counter -= take
		remaining -= take
	}
	return cost
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// CanAfford reports whether some valid payment exists given available.
func (o Options) CanAfford(available primitives.ResourcePile) bool {
	switch o.Model {
	case ModelSum:
		total := 0
		for _, k := range o.SumTypes {
			total += amountOf(available, k)
		}
		return total >= o.SumCost
	default:
		return o.canAffordWithConversions(available, o.effectiveCost())
	}
}

func (o Options) canAffordWithConversions(available, cost primitives.ResourcePile) bool {
	if available.CanAfford(cost) {
		return true
	}
	// Try applying each conversion to see if it closes the gap. This is
	// a best-effort affordability probe; IsValidPayment is authoritative
	// for a specific candidate pile.
	for _, conv := range o.Conversions {
		need := amountOf(cost, conv.To)
		have := amountOf(available, conv.To)
		if have >= need {
			continue
		}
		shortfall := need - have
		limit := conv.Limit
		if limit < 0 {
			limit = shortfall
		}
		usable := min(shortfall, min(limit, amountOf(available, conv.From)))
		if usable > 0 {
			adjusted := cost
			*fieldPtr(&adjusted, conv.To) -= usable
			*fieldPtr(&adjusted, conv.From) += usable
			if available.CanAfford(adjusted) {
				return true
			}
		}
	}
	return false
}

func fieldPtr(p *primitives.ResourcePile, kind ResourceKind) *int {
	switch kind {
	case KindFood:
		return &p.Food
	case KindWood:
		return &p.Wood
	case KindOre:
		return &p.Ore
	case KindIdeas:
		return &p.Ideas
	case KindGold:
		return &p.Gold
	case KindMoodTokens:
		return &p.MoodTokens
	case KindCultureTokens:
		return &p.CultureTokens
	default:
		panic("unknown resource kind")
	}
}

// IsValidPayment reports whether pile is an acceptable payment for o:
// for ModelSum, the sum over SumTypes must equal SumCost exactly; for
// ModelFixed, pile must equal the effective (discounted) cost modulo
// the registered conversions, each used at most its Limit times.
func (o Options) IsValidPayment(pile primitives.ResourcePile) bool {
	switch o.Model {
	case ModelSum:
		total := 0
		for _, k := range o.SumTypes {
			total += amountOf(pile, k)
		}
		return total == o.SumCost
	default:
		return o.isValidFixedPayment(pile)
	}
}

func (o Options) isValidFixedPayment(pile primitives.ResourcePile) bool {
	cost := o.effectiveCost()
	diff := pile.Sub(cost)
	// Every counter of pile must not exceed cost, except where a
	// conversion explains the surplus by an equal deficit elsewhere.
	surplus := map[ResourceKind]int{
		KindFood: diff.Food, KindWood: diff.Wood, KindOre: diff.Ore,
		KindIdeas: diff.Ideas, KindGold: diff.Gold,
		KindMoodTokens: diff.MoodTokens, KindCultureTokens: diff.CultureTokens,
	}
	deficitCost := cost.Sub(pile)
	deficit := map[ResourceKind]int{
		KindFood: deficitCost.Food, KindWood: deficitCost.Wood, KindOre: deficitCost.Ore,
		KindIdeas: deficitCost.Ideas, KindGold: deficitCost.Gold,
		KindMoodTokens: deficitCost.MoodTokens, KindCultureTokens: deficitCost.CultureTokens,
	}
	used := map[Conversion]int{}
	for kind, need := range deficit {
		remaining := need
		for _, conv := range o.Conversions {
			if conv.To != kind || remaining == 0 {
				continue
			}
			avail := surplus[conv.From]
			limit := conv.Limit
			if limit < 0 {
				limit = avail
			}
			take := min(remaining, min(avail, limit-used[conv]))
			if take <= 0 {
				continue
			}
			surplus[conv.From] -= take
			used[conv] += take
			remaining -= take
		}
		if remaining > 0 {
			return false
		}
	}
	for _, left := range surplus {
		if left > 0 {
			return false
		}
	}
	return true
}

// Apply validates pile against o and, if valid, returns available
// minus pile. It never mutates available. Callers append a log entry
// and persist the result; Apply itself is a pure function so it can be
// reused both by execute(action) and by replay/undo.
func (o Options) Apply(available, pile primitives.ResourcePile) (primitives.ResourcePile, error) {
	if !o.IsValidPayment(pile) {
		return available, &enginerr.InvalidPaymentError{
			Reason: fmt.Sprintf("%+v does not satisfy the required payment", pile),
		}
	}
	if !available.CanAfford(pile) {
		return available, &enginerr.NotEnoughResourcesError{
			Reason: fmt.Sprintf("player cannot afford %+v", pile),
		}
	}
	return available.Sub(pile), nil
}

// IsFree reports whether the empty pile is a valid payment.
func (o Options) IsFree() bool {
	return o.IsValidPayment(primitives.ResourcePile{})
}
