package engine

import (
	"github.com/rackforge/hexdominion/internal/eventbus"
	"github.com/rackforge/hexdominion/internal/payment"
	"github.com/rackforge/hexdominion/internal/player"
	"github.com/rackforge/hexdominion/internal/primitives"
)

// CostContext is the shared shape for every "*_cost" transient slot
// (advance_cost, construct_cost, recruit_cost): listeners adjust
// Options in place (typically via WithConversion or by lowering
// Discount) before the player is asked to pay.
type CostContext struct {
	Player  int
	Item    string
	Options payment.Options
}

// CollectContext backs the collect_total transient slot: listeners
// may add to Total (e.g. Public Education's +1 idea) or transmute it
// (Metallurgy's ore-to-gold).
type CollectContext struct {
	Player int
	City   *player.City
	Total  primitives.ResourcePile
}

// AdvanceContext backs the "advance" persistent slot, fired after an
// Advance action's initializer has run.
type AdvanceContext struct {
	Player  int
	Name    string
	Granted primitives.ResourcePile // accumulates bonuses accepted via Response
}

// ConstructContext backs the "construct" persistent slot.
type ConstructContext struct {
	Player   int
	City     *player.City
	Building player.Building
	Granted  primitives.ResourcePile
	DrawnCard string
}

// TurnStartContext backs the "turn_start" persistent slot fired on
// EndTurn for the new current player.
type TurnStartContext struct {
	Player int
	Age    int
}

// CombatRoundContext backs the combat_round_start transient slot: both
// sides' per-round combat values accumulate here before hits are
// computed. See combat.go for the state machine that drives it.
type CombatRoundContext struct {
	Round           int
	AttackerPlayer  int
	DefenderPlayer  int
	AttackerRolls   []int
	DefenderRolls   []int
	AttackerValue   int
	DefenderValue   int
	AttackerCancels int
	DefenderCancels int
	DefenderHasFortress bool
	DefenderHasTemple   bool
	AttackerHasShip     bool
	DefenderHasShip     bool
}

// RecruitContext backs the "recruit" persistent slot, fired after a
// Recruit action's payment has been taken.
type RecruitContext struct {
	Player   int
	UnitType primitives.UnitType
	Paid     primitives.ResourcePile
	Refunded primitives.ResourcePile
}

// EventRegistry is the full set of named event slots the content
// catalog's initializers register into (spec §4.1: "Represent each
// event slot as a named collection of (priority, origin, fn)").
type EventRegistry struct {
	AdvanceCost  *eventbus.Transient[CostContext]
	ConstructCost *eventbus.Transient[CostContext]
	RecruitCost  *eventbus.Transient[CostContext]
	CollectTotal *eventbus.Transient[CollectContext]
	CombatRound  *eventbus.Transient[CombatRoundContext]

	Advance   *eventbus.Persistent[AdvanceContext]
	Construct *eventbus.Persistent[ConstructContext]
	TurnStart *eventbus.Persistent[TurnStartContext]
	Siegecraft *eventbus.Persistent[CombatRoundContext]
	Recruit    *eventbus.Persistent[RecruitContext]
}

// NewEventRegistry builds an empty registry, one bus per named slot.
func NewEventRegistry() *EventRegistry {
	return &EventRegistry{
		AdvanceCost:   eventbus.NewTransient[CostContext](),
		ConstructCost: eventbus.NewTransient[CostContext](),
		RecruitCost:   eventbus.NewTransient[CostContext](),
		CollectTotal:  eventbus.NewTransient[CollectContext](),
		CombatRound:   eventbus.NewTransient[CombatRoundContext](),
		Advance:       eventbus.NewPersistent[AdvanceContext](),
		Construct:     eventbus.NewPersistent[ConstructContext](),
		TurnStart:     eventbus.NewPersistent[TurnStartContext](),
		Siegecraft:    eventbus.NewPersistent[CombatRoundContext](),
		Recruit:       eventbus.NewPersistent[RecruitContext](),
	}
}

// RemoveOrigin deregisters every listener origin registered anywhere
// in the registry, across every slot, returning the total removed.
// Used when an advance/wonder/leader/card is deinitialized.
func (r *EventRegistry) RemoveOrigin(origin eventbus.Origin) int {
	n := 0
	n += r.AdvanceCost.RemoveOrigin(origin)
	n += r.ConstructCost.RemoveOrigin(origin)
	n += r.RecruitCost.RemoveOrigin(origin)
	n += r.CollectTotal.RemoveOrigin(origin)
	n += r.CombatRound.RemoveOrigin(origin)
	n += r.Advance.RemoveOrigin(origin)
	n += r.Construct.RemoveOrigin(origin)
	n += r.TurnStart.RemoveOrigin(origin)
	n += r.Siegecraft.RemoveOrigin(origin)
	n += r.Recruit.RemoveOrigin(origin)
	return n
}

// CountOrigin sums how many listeners origin still has across every
// slot — used by the leak-detection test in spec §8 property 4.
func (r *EventRegistry) CountOrigin(origin eventbus.Origin) int {
	n := 0
	n += r.AdvanceCost.CountOrigin(origin)
	n += r.ConstructCost.CountOrigin(origin)
	n += r.RecruitCost.CountOrigin(origin)
	n += r.CollectTotal.CountOrigin(origin)
	n += r.CombatRound.CountOrigin(origin)
	n += r.Advance.CountOrigin(origin)
	n += r.Construct.CountOrigin(origin)
	n += r.TurnStart.CountOrigin(origin)
	n += r.Siegecraft.CountOrigin(origin)
	n += r.Recruit.CountOrigin(origin)
	return n
}
