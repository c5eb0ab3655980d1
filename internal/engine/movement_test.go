package engine

import (
	"testing"

	"github.com/rackforge/hexdominion/internal/hexmap"
	"github.com/rackforge/hexdominion/internal/primitives"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMovementFixture(t *testing.T, origin, dest primitives.Position) *Game {
	t.Helper()
	g := Init(2, "movement-fixture")
	g.Map.Tiles[origin] = hexmap.Fertile
	g.Map.Tiles[dest] = hexmap.Fertile
	g.Mode = ModeMovement
	return g
}

func TestExecuteMovementRejectsNonAdjacentDestinationWithoutRoads(t *testing.T) {
	origin := primitives.Position{Q: 0, R: 0}
	dest := primitives.Position{Q: 5, R: 5}
	g := newMovementFixture(t, origin, dest)
	u := g.spawnUnit(0, primitives.Infantry, origin)
	g.Movement = &MovementState{UnitIDs: []uint32{u.ID}}

	err := g.executeMovement(&MovementAction{UnitIDs: []uint32{u.ID}, Destination: dest}, 0)
	require.Error(t, err)
}

func TestExecuteMovementMovesUnitToAdjacentTile(t *testing.T) {
	origin := primitives.Position{Q: 0, R: 0}
	dest := origin.Neighbors()[0]
	g := newMovementFixture(t, origin, dest)
	u := g.spawnUnit(0, primitives.Infantry, origin)
	g.Movement = &MovementState{UnitIDs: []uint32{u.ID}}

	require.NoError(t, g.executeMovement(&MovementAction{UnitIDs: []uint32{u.ID}, Destination: dest}, 0))
	assert.Equal(t, dest, u.Position)
	assert.Equal(t, primitives.RestrictionAllUsed, u.MovementRestriction)
}

func TestExecuteMovementRejectsFifthArmyUnitInStack(t *testing.T) {
	origin := primitives.Position{Q: 0, R: 0}
	dest := origin.Neighbors()[0]
	g := newMovementFixture(t, origin, dest)
	for i := 0; i < 4; i++ {
		g.spawnUnit(0, primitives.Infantry, dest)
	}
	u := g.spawnUnit(0, primitives.Infantry, origin)
	g.Movement = &MovementState{UnitIDs: []uint32{u.ID}}

	err := g.executeMovement(&MovementAction{UnitIDs: []uint32{u.ID}, Destination: dest}, 0)
	require.Error(t, err)
}

func TestExecuteMovementEndMoveClosesMovementMode(t *testing.T) {
	g := Init(2, "end-move-fixture")
	g.Mode = ModeMovement
	g.Movement = &MovementState{}

	require.NoError(t, g.executeMovement(&MovementAction{EndMove: true}, 0))
	assert.Equal(t, ModePlaying, g.Mode)
	assert.Nil(t, g.Movement)
}
