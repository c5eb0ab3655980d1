package player

import "github.com/rackforge/hexdominion/internal/primitives"

// Building is the closed set of city pieces.
type Building int

const (
	Academy Building = iota
	Market
	Obelisk
	Observatory
	Fortress
	Port
	Temple
)

func (b Building) String() string {
	switch b {
	case Academy:
		return "academy"
	case Market:
		return "market"
	case Obelisk:
		return "obelisk"
	case Observatory:
		return "observatory"
	case Fortress:
		return "fortress"
	case Port:
		return "port"
	case Temple:
		return "temple"
	default:
		return "unknown"
	}
}

// MaxBuildingsPerCity is the hard cap on distinct buildings a city may
// hold before its size (1 + buildings) closes further construction.
const MaxBuildingsPerCity = 4

// MoodState is a city's happiness tier.
type MoodState int

const (
	Angry MoodState = iota
	Neutral
	Happy
)

// Piece records one building in a city along with the player who owns
// it — which may differ from the city's owner, the influence-culture
// mechanic's whole point.
type Piece struct {
	Building Building
	Owner    int
}

// City is a single settlement on the map.
type City struct {
	Owner       int
	Position    primitives.Position
	Mood        MoodState
	Pieces      []Piece
	Wonders     []string
	Activated   bool
	PortPosition *primitives.Position
}

// NewCity creates a freshly founded, Neutral, unactivated city with no
// pieces.
func NewCity(owner int, pos primitives.Position) *City {
	return &City{Owner: owner, Position: pos, Mood: Neutral}
}

// Size is 1 plus the number of buildings, independent of mood.
func (c *City) Size() int {
	return 1 + len(c.Pieces)
}

// ModifiedSize applies the mood adjustment: Happy adds one, Neutral is
// unchanged, Angry collapses to 1 regardless of buildings.
func (c *City) ModifiedSize() int {
	switch c.Mood {
	case Happy:
		return c.Size() + 1
	case Angry:
		return 1
	default:
		return c.Size()
	}
}

// HasBuilding reports whether the city already has one of kind.
func (c *City) HasBuilding(kind Building) bool {
	for _, p := range c.Pieces {
		if p.Building == kind {
			return true
		}
	}
	return false
}

// CanAcceptBuilding reports whether the city has room for one more of
// kind: no duplicate, and total buildings still under the per-city cap.
func (c *City) CanAcceptBuilding(kind Building) bool {
	if c.HasBuilding(kind) {
		return false
	}
	return len(c.Pieces) < MaxBuildingsPerCity
}

// AddBuilding places kind, owned by owner, assuming CanAcceptBuilding
// already passed.
func (c *City) AddBuilding(kind Building, owner int) {
	c.Pieces = append(c.Pieces, Piece{Building: kind, Owner: owner})
}

// BuildingOwner returns the owner of kind if present.
func (c *City) BuildingOwner(kind Building) (int, bool) {
	for _, p := range c.Pieces {
		if p.Building == kind {
			return p.Owner, true
		}
	}
	return 0, false
}

// TransferBuilding changes the owning player of an existing building
// (used by InfluenceCultureAttempt success).
func (c *City) TransferBuilding(kind Building, newOwner int) bool {
	for i, p := range c.Pieces {
		if p.Building == kind {
			c.Pieces[i].Owner = newOwner
			return true
		}
	}
	return false
}

// Defense is 1 plus the number of pieces (buildings) the defending
// player owns in the city — used by InfluenceCultureAttempt.
func (c *City) Defense(defender int) int {
	owned := 0
	for _, p := range c.Pieces {
		if p.Owner == defender {
			owned++
		}
	}
	return 1 + owned
}
