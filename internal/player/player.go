// Package player implements the per-player state described in spec §3
// (Player state, City, Building): resources, units, cities, advances,
// hand, once-per-turn flags, and the origin-indexed bookkeeping that
// lets event-listener registrations be undone in one call when their
// source (advance/wonder/leader/card) is deinitialized.
package player

import (
	"sort"

	"github.com/rackforge/hexdominion/internal/primitives"
)

// Kind distinguishes human-controlled players from the fixed-behavior
// non-human players the incident/barbarian system drives.
type Kind int

const (
	Human Kind = iota
	Barbarian
	Pirate
)

// UnitCap returns the civilization unit cap for this player kind.
func (k Kind) UnitCap() primitives.Units {
	switch k {
	case Barbarian:
		return primitives.BarbarianUnitCap
	case Pirate:
		return primitives.PirateUnitCap
	default:
		return primitives.HumanUnitCap
	}
}

// Player is one seat's complete state.
type Player struct {
	Index          int
	Kind           Kind
	Civilization   string
	Resources      primitives.ResourcePile
	ResourceLimit  primitives.ResourcePile
	Units          []*primitives.Unit
	Cities         []*City
	Advances       map[string]bool
	Leader         string // empty if none active
	ActionHand     []string
	ObjectiveHand  []string
	ActiveObjective string // id of the objective card adopted via PlayingObjectiveCard, checked at status phase
	CustomActions  map[string]bool
	OncePerTurn    map[string]bool
	IncidentTokens map[string]int
	VictoryPoints  []VPEntry

	// EventListenerIDs tracks, per origin key, the handle ids returned
	// by eventbus.Transient.Add / Persistent.Add so a source's
	// registrations can all be removed on deinit. Values are opaque ids
	// from whichever bus the origin registered against; the content
	// initializer is responsible for calling the matching bus's Remove.
	EventListenerIDs map[string][]int
}

// VPEntry attributes a chunk of victory points to its source, so
// scores(game) can explain totals and tests can assert provenance.
type VPEntry struct {
	Origin string
	Halves int // victory points stored as integer halves, see spec §4.9
}

// New creates a player with default resource limits and empty
// collections.
func New(index int, kind Kind) *Player {
	return &Player{
		Index:            index,
		Kind:             kind,
		ResourceLimit:    primitives.DefaultLimit(),
		Advances:         map[string]bool{},
		CustomActions:    map[string]bool{},
		OncePerTurn:      map[string]bool{},
		IncidentTokens:   map[string]int{},
		EventListenerIDs: map[string][]int{},
	}
}

// AddEventListenerID records id under origin key for later removal.
func (p *Player) AddEventListenerID(originKey string, id int) {
	p.EventListenerIDs[originKey] = append(p.EventListenerIDs[originKey], id)
}

// TakeEventListenerIDs returns and clears every id registered under
// originKey (deinit pops them in registration order, matching the
// teacher's per-key deque behavior).
func (p *Player) TakeEventListenerIDs(originKey string) []int {
	ids := p.EventListenerIDs[originKey]
	delete(p.EventListenerIDs, originKey)
	return ids
}

// GainResources adds amount to Resources and applies ResourceLimit.
func (p *Player) GainResources(amount primitives.ResourcePile) {
	p.Resources = p.Resources.Add(amount).CappedBy(p.ResourceLimit)
}

// UnitCounts summarizes Units by type.
func (p *Player) UnitCounts() primitives.Units {
	var u primitives.Units
	for _, unit := range p.Units {
		u = u.Add(unit.Type)
	}
	return u
}

// UnitsAt returns the units owned by p standing at pos, in a stable
// order (by ID) for deterministic iteration.
func (p *Player) UnitsAt(pos primitives.Position) []*primitives.Unit {
	var out []*primitives.Unit
	for _, u := range p.Units {
		if u.Position == pos {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// UnitByID finds a unit this player owns by id.
func (p *Player) UnitByID(id uint32) *primitives.Unit {
	for _, u := range p.Units {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// RemoveUnit deletes the unit with id from Units (used by casualties
// and by conquest side effects); the id is never reused.
func (p *Player) RemoveUnit(id uint32) {
	for i, u := range p.Units {
		if u.ID == id {
			p.Units = append(p.Units[:i], p.Units[i+1:]...)
			return
		}
	}
}

// HasLeader reports whether p currently has an active leader unit.
func (p *Player) HasLeader() bool {
	for _, u := range p.Units {
		if u.Type == primitives.Leader {
			return true
		}
	}
	return false
}

// CityAt finds the city p owns at pos.
func (p *Player) CityAt(pos primitives.Position) *City {
	for _, c := range p.Cities {
		if c.Position == pos {
			return c
		}
	}
	return nil
}

// RemoveCity deletes a city (raze or conquest) from p's list.
func (p *Player) RemoveCity(pos primitives.Position) {
	for i, c := range p.Cities {
		if c.Position == pos {
			p.Cities = append(p.Cities[:i], p.Cities[i+1:]...)
			return
		}
	}
}

// AwardVP attributes halves victory-point-halves to origin.
func (p *Player) AwardVP(origin string, halves int) {
	p.VictoryPoints = append(p.VictoryPoints, VPEntry{Origin: origin, Halves: halves})
}

// TotalVPHalves sums every VPEntry plus the structural VP sources
// (buildings, advances, cities' wonders) computed live from state.
func (p *Player) TotalVPHalves() int {
	total := 0
	for _, e := range p.VictoryPoints {
		total += e.Halves
	}
	for _, c := range p.Cities {
		for _, piece := range c.Pieces {
			if piece.Owner == p.Index {
				total += 2 // BuildingVictoryPoints = 1.0 => 2 halves
			}
		}
		total += len(c.Wonders) * 8 // WonderVictoryPoints = 4.0 => 8 halves
	}
	total += len(p.Advances) // AdvanceVictoryPoints = 0.5 => 1 half
	return total
}
