package hexmap_test

import (
	"testing"

	"github.com/rackforge/hexdominion/internal/hexmap"
	"github.com/rackforge/hexdominion/internal/primitives"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildShipScenario mirrors spec §8 scenario 5: a ship enters an
// unexplored block whose two orientations place water next to
// isolated inland on one side and connected water on the other; the
// engine should pick the connected rotation without opening a
// resolution event.
func buildShipScenario() *hexmap.Map {
	m := hexmap.NewMap()
	// The only revealed water is (1,-1), north of p1. Every other tile
	// bordering p1 or p3 outside the block is revealed land, so neither
	// candidate water tile touches the board edge.
	m.Tiles[primitives.NewPosition(1, -1)] = hexmap.Water
	for _, pos := range []primitives.Position{
		primitives.NewPosition(2, -1), primitives.NewPosition(2, 0), primitives.NewPosition(2, 1),
		primitives.NewPosition(1, 2), primitives.NewPosition(0, 2),
	} {
		m.Tiles[pos] = hexmap.Fertile
	}

	p0 := primitives.NewPosition(0, 0)
	p1 := primitives.NewPosition(1, 0)
	p2 := primitives.NewPosition(0, 1)
	p3 := primitives.NewPosition(1, 1)
	// Position p1 happens to be adjacent to the revealed water tile in
	// this fabricated layout; RotationA puts water there (connected),
	// RotationB puts water at p3 (isolated, no connection).
	block := &hexmap.UnexploredBlock{
		ID:        1,
		Positions: [4]primitives.Position{p0, p1, p2, p3},
		RotationA: [4]hexmap.Terrain{hexmap.Fertile, hexmap.Water, hexmap.Forest, hexmap.Barren},
		RotationB: [4]hexmap.Terrain{hexmap.Fertile, hexmap.Barren, hexmap.Forest, hexmap.Water},
	}
	m.Unexplored = append(m.Unexplored, block)
	return m
}

func TestExploreAutoResolvesWhenOneRotationConnects(t *testing.T) {
	m := buildShipScenario()
	p1 := primitives.NewPosition(1, 0)
	outcome := m.Explore(p1)
	require.NotNil(t, outcome)
	assert.False(t, outcome.Ambiguous)
	assert.Equal(t, hexmap.Water, m.TerrainAt(p1))
	assert.Empty(t, m.Unexplored)
}

func TestExploreAmbiguousWhenRotationsTie(t *testing.T) {
	m := hexmap.NewMap()
	p0 := primitives.NewPosition(0, 0)
	p1 := primitives.NewPosition(1, 0)
	block := &hexmap.UnexploredBlock{
		ID:        2,
		Positions: [4]primitives.Position{p0, p1, primitives.NewPosition(0, 1), primitives.NewPosition(1, 1)},
		RotationA: [4]hexmap.Terrain{hexmap.Barren, hexmap.Forest, hexmap.Fertile, hexmap.Mountain},
		RotationB: [4]hexmap.Terrain{hexmap.Forest, hexmap.Barren, hexmap.Mountain, hexmap.Fertile},
	}
	m.Unexplored = append(m.Unexplored, block)
	outcome := m.Explore(p0)
	require.NotNil(t, outcome)
	assert.True(t, outcome.Ambiguous)
	assert.NotEmpty(t, m.Unexplored, "ambiguous block stays pending until ResolveAmbiguous")

	m.ResolveAmbiguous(block, 1)
	assert.Equal(t, hexmap.Forest, m.TerrainAt(p0))
	assert.Empty(t, m.Unexplored)
}
