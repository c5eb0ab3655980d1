package hexmap

import (
	"encoding/json"
	"sort"

	"github.com/rackforge/hexdominion/internal/primitives"
)

// Map is the full board: a sparse terrain grid plus the unexplored
// blocks still pending a reveal.
type Map struct {
	Tiles      map[primitives.Position]Terrain
	Unexplored []*UnexploredBlock
}

// NewMap builds an empty map.
func NewMap() *Map {
	return &Map{Tiles: map[primitives.Position]Terrain{}}
}

// TerrainAt returns the terrain at pos, or Unexplored if pos has not
// been placed on the map at all (outside the board).
func (m *Map) TerrainAt(pos primitives.Position) Terrain {
	if t, ok := m.Tiles[pos]; ok {
		return t
	}
	return Unexplored
}

// IsOnBoard reports whether pos has an entry in Tiles (revealed or
// still an unexplored block placeholder), as opposed to being off the
// edge of the board entirely.
func (m *Map) IsOnBoard(pos primitives.Position) bool {
	_, ok := m.Tiles[pos]
	return ok
}

// UnexploredBlock is a four-tile template pending a reveal. Positions
// lists the four board positions it occupies; RotationA/RotationB list
// the terrain each position gets under the block's two possible
// orientations.
type UnexploredBlock struct {
	ID         int
	Positions  [4]primitives.Position
	RotationA  [4]Terrain
	RotationB  [4]Terrain
}

// BlockAt finds the unexplored block covering pos, if any — exported
// for callers that need to re-locate a block across a save/load
// boundary (an *UnexploredBlock pointer itself is never part of the
// wire format).
func (m *Map) BlockAt(pos primitives.Position) *UnexploredBlock {
	return m.blockAt(pos)
}

// blockAt finds the unexplored block covering pos, if any.
func (m *Map) blockAt(pos primitives.Position) *UnexploredBlock {
	for _, b := range m.Unexplored {
		for _, p := range b.Positions {
			if p == pos {
				return b
			}
		}
	}
	return nil
}

// removeBlock drops a resolved block from the pending list.
func (m *Map) removeBlock(b *UnexploredBlock) {
	for i, cand := range m.Unexplored {
		if cand == b {
			m.Unexplored = append(m.Unexplored[:i], m.Unexplored[i+1:]...)
			return
		}
	}
}

// ExploreOutcome reports the result of resolving an UnexploredBlock.
type ExploreOutcome struct {
	Block     *UnexploredBlock
	Ambiguous bool
	// RotationScoreA/B are the water-connectivity scores computed for
	// each rotation, filled in whether or not the outcome is Ambiguous;
	// when it is, the caller uses them to present the
	// ExploreResolution request.
	RotationScoreA int
	RotationScoreB int
}

// Explore resolves the unexplored block containing entered. Each
// rotation gets a waterConnectivityScore (water tiles touching the
// board edge or existing revealed water) and the higher-scoring
// rotation is applied to the map. A rotation that leaves one of its
// water tiles with no such connection is not rejected on that account;
// it only scores lower. When both rotations score equally (both zero
// included), Explore leaves the block unresolved and returns
// Ambiguous=true so the caller can open an ExploreResolution
// persistent event.
func (m *Map) Explore(entered primitives.Position) *ExploreOutcome {
	block := m.blockAt(entered)
	if block == nil {
		return nil
	}
	scoreA := m.waterConnectivityScore(block, block.RotationA)
	scoreB := m.waterConnectivityScore(block, block.RotationB)
	if scoreA == scoreB {
		return &ExploreOutcome{Block: block, Ambiguous: true, RotationScoreA: scoreA, RotationScoreB: scoreB}
	}
	rotation := block.RotationA
	if scoreB > scoreA {
		rotation = block.RotationB
	}
	m.applyRotation(block, rotation)
	return &ExploreOutcome{Block: block, Ambiguous: false, RotationScoreA: scoreA, RotationScoreB: scoreB}
}

// ResolveAmbiguous applies the player's chosen rotation (0 for
// RotationA, 1 for RotationB) after an ExploreResolution response.
func (m *Map) ResolveAmbiguous(block *UnexploredBlock, rotation int) {
	if rotation == 1 {
		m.applyRotation(block, block.RotationB)
		return
	}
	m.applyRotation(block, block.RotationA)
}

func (m *Map) applyRotation(block *UnexploredBlock, rotation [4]Terrain) {
	for i, pos := range block.Positions {
		m.Tiles[pos] = rotation[i]
	}
	m.removeBlock(block)
}

// waterConnectivityScore counts, for a candidate rotation, how many of
// its water tiles touch either the board edge (a neighbor with no
// Tiles entry at all) or an already-revealed Water tile elsewhere on
// the map. Explore prefers the higher score and treats any tie, zero
// against zero included, as ambiguous.
func (m *Map) waterConnectivityScore(block *UnexploredBlock, rotation [4]Terrain) int {
	inBlock := map[primitives.Position]bool{}
	for _, p := range block.Positions {
		inBlock[p] = true
	}
	score := 0
	for i, pos := range block.Positions {
		if rotation[i] != Water {
			continue
		}
		for _, n := range pos.Neighbors() {
			if inBlock[n] {
				continue // connectivity within the block itself doesn't count
			}
			if !m.IsOnBoard(n) {
				score++
				continue
			}
			if m.Tiles[n] == Water {
				score++
			}
		}
	}
	return score
}

// OrderedUnexploredIDs returns pending block ids in a stable, sorted
// order, so output built from them is deterministic.
func (m *Map) OrderedUnexploredIDs() []int {
	ids := make([]int, 0, len(m.Unexplored))
	for _, b := range m.Unexplored {
		ids = append(ids, b.ID)
	}
	sort.Ints(ids)
	return ids
}

// tileEntry pairs a position with its terrain for JSON serialization:
// Position is not a valid Go map key type for encoding/json, so Tiles
// round-trips as a position-sorted slice instead (spec §6 "GameData
// serialization is deterministic: sorted keys, stable field order").
type tileEntry struct {
	Pos     primitives.Position `json:"pos"`
	Terrain Terrain             `json:"terrain"`
}

type mapData struct {
	Tiles      []tileEntry        `json:"tiles"`
	Unexplored []*UnexploredBlock `json:"unexplored,omitempty"`
}

// MarshalJSON renders Tiles as a deterministically ordered slice.
func (m *Map) MarshalJSON() ([]byte, error) {
	entries := make([]tileEntry, 0, len(m.Tiles))
	for pos, terrain := range m.Tiles {
		entries = append(entries, tileEntry{Pos: pos, Terrain: terrain})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Pos.Q != entries[j].Pos.Q {
			return entries[i].Pos.Q < entries[j].Pos.Q
		}
		return entries[i].Pos.R < entries[j].Pos.R
	})
	return json.Marshal(mapData{Tiles: entries, Unexplored: m.Unexplored})
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (m *Map) UnmarshalJSON(data []byte) error {
	var d mapData
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	m.Tiles = make(map[primitives.Position]Terrain, len(d.Tiles))
	for _, e := range d.Tiles {
		m.Tiles[e.Pos] = e.Terrain
	}
	m.Unexplored = d.Unexplored
	return nil
}
