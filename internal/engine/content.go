package engine

import (
	"fmt"

	"github.com/rackforge/hexdominion/internal/eventbus"
	"github.com/rackforge/hexdominion/internal/payment"
	"github.com/rackforge/hexdominion/internal/player"
	"github.com/rackforge/hexdominion/internal/primitives"
)

// InitFn registers the event listeners a content entry contributes for
// one player; DeinitFn is always the generic "remove everything under
// this origin" unless a content entry needs extra cleanup (leaders
// swapping listener sets on death do).
type InitFn func(g *Game, playerIdx int, origin eventbus.Origin)

// Advance is a catalog entry for spec §3's Advance: a named node with
// prerequisite/contradiction/group, an optional unlocked building, a
// first-time bonus, and an initializer.
type Advance struct {
	Name            string
	Prerequisite    string
	Contradicts     string
	Group           string
	UnlocksBuilding *player.Building
	FirstTimeBonus  primitives.ResourcePile
	Cost            payment.Options
	Init            InitFn
}

// EffectiveCost returns a's own Cost if one was declared (non-empty
// Options), otherwise the default "2 from {food, ideas, gold}" advance
// cost every other advance uses.
func (a *Advance) EffectiveCost() payment.Options {
	if a.Cost.SumCost > 0 || !a.Cost.Cost.IsZero() {
		return a.Cost
	}
	return payment.Sum(2, payment.KindFood, payment.KindIdeas, payment.KindGold)
}

// Wonder is spec §3's Wonder: cost, required advances, and the same
// initializer shape as Advance.
type Wonder struct {
	Name             string
	Cost             payment.Options
	RequiredAdvances []string
	Init             InitFn
}

// Civilization is a flat record (spec §9: "replace inheritance with a
// flat record") of starting units and a civilization-specific special
// advance or ability, represented as an optional Init run once at
// player creation.
type Civilization struct {
	Name            string
	SpecialAdvance  string
	StartingUnits   primitives.Units
	Init            InitFn
}

// LeaderAbility attaches an extra initializer pair to a named leader,
// active only while the leader unit is alive (spec §3 Leader).
type LeaderAbility struct {
	Name string
	Init InitFn
}

// Incident is spec §3's Incident: drawn at the start of an age,
// applies its effect once via Init (which, for incidents, runs
// immediately rather than persisting as a registered listener in most
// cases — some incidents do register a turn_start listener for their
// duration).
type Incident struct {
	Name string
	Init InitFn
}

// ActionCard is spec §3's Action/Objective card: playable once, gated
// by Requirement, contributing listeners via Init. TacticsCard is the
// optional combat tactics attachment (spec §4.5).
type ActionCard struct {
	Name        string
	Requirement func(g *Game, playerIdx int) bool
	Init        InitFn
	Tactics     *TacticsCard
}

// ObjectiveCard is completed (not played) during the status phase's
// complete-objectives step (spec §4.8).
type ObjectiveCard struct {
	Name      string
	Completed func(g *Game, playerIdx int) bool
}

// TacticsCard modifies one combat round's values when revealed (spec
// §4.5 "tactics cards").
type TacticsCard struct {
	Name   string
	Modify func(ctx *CombatRoundContext, attacker bool)
}

// Catalog is the declarative content registry (spec §9: "builder-
// created catalog constructed once, referenced by id everywhere
// else"). It is populated once by NewCatalog and never mutated after.
type Catalog struct {
	Advances      map[string]*Advance
	Wonders       map[string]*Wonder
	Civilizations map[string]*Civilization
	Leaders       map[string]*LeaderAbility
	Incidents     map[string]*Incident
	ActionCards   map[string]*ActionCard
	Objectives    map[string]*ObjectiveCard
}

func newCatalog() *Catalog {
	return &Catalog{
		Advances:      map[string]*Advance{},
		Wonders:       map[string]*Wonder{},
		Civilizations: map[string]*Civilization{},
		Leaders:       map[string]*LeaderAbility{},
		Incidents:     map[string]*Incident{},
		ActionCards:   map[string]*ActionCard{},
		Objectives:    map[string]*ObjectiveCard{},
	}
}

// NewCatalog builds the representative content set described in
// SPEC_FULL.md's "Supplemented features": a non-exhaustive but
// functioning slice of advances, wonders, civilizations, leaders,
// incidents and cards, each grounded in original_source's equivalent
// file (named per entry in the content_*.go files that populate it).
func NewCatalog() *Catalog {
	c := newCatalog()
	registerAdvances(c)
	registerWonders(c)
	registerCivilizations(c)
	registerIncidents(c)
	registerCards(c)
	return c
}

func (c *Catalog) WonderNames() []string {
	names := make([]string, 0, len(c.Wonders))
	for n := range c.Wonders {
		names = append(names, n)
	}
	return names
}

func (c *Catalog) ActionCardNames() []string {
	names := make([]string, 0, len(c.ActionCards))
	for n := range c.ActionCards {
		names = append(names, n)
	}
	return names
}

func (c *Catalog) ObjectiveNames() []string {
	names := make([]string, 0, len(c.Objectives))
	for n := range c.Objectives {
		names = append(names, n)
	}
	return names
}

func (c *Catalog) IncidentNames() []string {
	names := make([]string, 0, len(c.Incidents))
	for n := range c.Incidents {
		names = append(names, n)
	}
	return names
}

// advanceOrigin scopes an advance's (or wonder's/leader's) listener
// registrations to one player: two players owning the same-named
// advance must be independently deregisterable.
func advanceOrigin(name string, playerIdx int) eventbus.Origin {
	return eventbus.Origin{Kind: eventbus.OriginAdvance, Name: fmt.Sprintf("%s#%d", name, playerIdx)}
}

func wonderOrigin(name string, playerIdx int) eventbus.Origin {
	return eventbus.Origin{Kind: eventbus.OriginWonder, Name: fmt.Sprintf("%s#%d", name, playerIdx)}
}

func leaderOrigin(name string, playerIdx int) eventbus.Origin {
	return eventbus.Origin{Kind: eventbus.OriginLeaderAbility, Name: fmt.Sprintf("%s#%d", name, playerIdx)}
}

func cardOrigin(name string, playerIdx int) eventbus.Origin {
	return eventbus.Origin{Kind: eventbus.OriginCard, Name: fmt.Sprintf("%s#%d", name, playerIdx)}
}

// grantAdvance runs one advance's bookkeeping: marks it owned, applies
// its first-time bonus, runs its initializer (tracked by origin), and
// triggers the "advance" persistent event.
func (g *Game) grantAdvance(playerIdx int, name string) eventbus.Frame {
	p := g.Player(playerIdx)
	adv := g.Catalog.Advances[name]
	p.Advances[name] = true
	p.GainResources(adv.FirstTimeBonus)
	origin := advanceOrigin(name, playerIdx)
	if adv.Init != nil {
		adv.Init(g, playerIdx, origin)
	}
	ctx := &AdvanceContext{Player: playerIdx, Name: name}
	frame, ok := g.Events.Advance.Trigger(eventbus.Origin{Kind: eventbus.OriginAdvance, Name: "advance"}, playerIdx, ctx)
	if !ok {
		return nil
	}
	g.pushPending(PendingEvent{Kind: PendingAdvance, Player: playerIdx, AdvanceCtx: ctx})
	return frame
}
