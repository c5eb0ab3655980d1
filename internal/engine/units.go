package engine

import "github.com/rackforge/hexdominion/internal/primitives"

// spawnUnit creates a new unit for playerIdx at pos, allocating the
// next never-reused id (spec §3 "if a unit is killed, its id is never
// reused" — ids only ever increase, including for units that are later
// removed).
func (g *Game) spawnUnit(playerIdx int, t primitives.UnitType, pos primitives.Position) *primitives.Unit {
	g.nextUnitID++
	u := &primitives.Unit{ID: g.nextUnitID, Owner: playerIdx, Position: pos, Type: t}
	p := g.Player(playerIdx)
	p.Units = append(p.Units, u)
	return u
}

// armyUnitsAt counts every player's army units (spec §3 "≤ 4 army
// units per stack per tile") standing at pos.
func (g *Game) armyUnitsAt(pos primitives.Position) int {
	n := 0
	for _, p := range g.Players {
		for _, u := range p.Units {
			if u.Position == pos && u.Type.IsArmy() {
				n++
			}
		}
	}
	return n
}

// unitsAt returns every unit (any owner) standing at pos.
func (g *Game) unitsAt(pos primitives.Position) []*primitives.Unit {
	var out []*primitives.Unit
	for _, p := range g.Players {
		out = append(out, p.UnitsAt(pos)...)
	}
	return out
}

// ownerOfUnit returns the player index owning unit id, or -1.
func (g *Game) ownerOfUnit(id uint32) int {
	for i, p := range g.Players {
		if p.UnitByID(id) != nil {
			return i
		}
	}
	return -1
}
