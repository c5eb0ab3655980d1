package engine

import (
	"testing"

	"github.com/rackforge/hexdominion/internal/eventbus"
	"github.com/rackforge/hexdominion/internal/primitives"
	"github.com/stretchr/testify/assert"
)

func TestAvailableActionsAlwaysOffersEndTurnWhilePlaying(t *testing.T) {
	g := Init(2, "available-playing")
	actions := g.AvailableActions()
	found := false
	for _, a := range actions {
		if a.Kind == ActionPlaying && a.Playing.Kind == PlayingEndTurn {
			found = true
		}
	}
	assert.True(t, found)
}

func TestAvailableActionsEnumeratesBoolResponses(t *testing.T) {
	g := Init(2, "available-response")
	g.pushFrame(&adhocFrame{
		origin:    combatOrigin(),
		playerIdx: 0,
		request:   eventbus.Request{Kind: eventbus.RequestBool, Player: 0},
		onResume:  func(eventbus.Response) error { return nil },
	})

	actions := g.AvailableActions()
	assert.Len(t, actions, 2)
	for _, a := range actions {
		assert.Equal(t, ActionResponse, a.Kind)
	}
}

func TestAvailableActionsMovementOffersEndMoveAndReachableNeighbors(t *testing.T) {
	g := Init(2, "available-movement")
	origin := primitives.Position{Q: 0, R: 0}
	g.Map.Tiles[origin] = 0
	for _, n := range origin.Neighbors() {
		g.Map.Tiles[n] = 0
	}
	u := g.spawnUnit(0, primitives.Infantry, origin)
	g.Mode = ModeMovement
	g.Movement = &MovementState{UnitIDs: []uint32{u.ID}}

	actions := g.AvailableActions()
	endMove := false
	moves := 0
	for _, a := range actions {
		if a.Kind != ActionMovement {
			continue
		}
		if a.Movement.EndMove {
			endMove = true
		} else {
			moves++
		}
	}
	assert.True(t, endMove)
	assert.Equal(t, 6, moves)
}
