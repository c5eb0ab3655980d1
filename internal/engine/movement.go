package engine

import (
	"github.com/rackforge/hexdominion/internal/enginerr"
	"github.com/rackforge/hexdominion/internal/eventbus"
	"github.com/rackforge/hexdominion/internal/hexmap"
	"github.com/rackforge/hexdominion/internal/primitives"
)

// roadsCost is what Roads charges for its +1 range, terrain-ignoring
// bonus move (spec §4.7).
func roadsCost() primitives.ResourcePile {
	return primitives.Food(1).Add(primitives.Ore(1))
}

// executeMovement advances one Move sub-action of ModeMovement (spec
// §4.7), or, if EndMove is set, closes movement mode and returns to
// Playing.
func (g *Game) executeMovement(a *MovementAction, playerIdx int) error {
	if a == nil {
		return &enginerr.IllegalActionError{Reason: "missing movement action payload"}
	}
	if playerIdx != g.CurrentPlayer {
		return &enginerr.IllegalActionError{Reason: "it is not this player's turn"}
	}
	if g.Mode != ModeMovement || g.Movement == nil {
		return &enginerr.IllegalActionError{Reason: "not in movement mode"}
	}
	if a.EndMove {
		g.Mode = ModePlaying
		g.Movement = nil
		return nil
	}
	if len(a.UnitIDs) == 0 {
		return &enginerr.PreconditionFailedError{Reason: "no units selected to move"}
	}

	p := g.Player(playerIdx)
	var origin primitives.Position
	for i, id := range a.UnitIDs {
		u := p.UnitByID(id)
		if u == nil {
			return &enginerr.PreconditionFailedError{Reason: "unit not owned by the moving player"}
		}
		if u.MovementRestriction == primitives.RestrictionAllUsed {
			return &enginerr.PreconditionFailedError{Reason: "unit has already used its movement this turn"}
		}
		if i == 0 {
			origin = u.Position
		} else if u.Position != origin {
			return &enginerr.PreconditionFailedError{Reason: "all moved units must share a position"}
		}
	}

	dest := a.Destination
	adjacent := origin.IsNeighbor(dest)
	roadsBonus := !adjacent && origin.Distance(dest) == 2 && p.Advances["Roads"]
	if !adjacent && !roadsBonus {
		return &enginerr.PreconditionFailedError{Reason: "destination is not reachable"}
	}
	if roadsBonus {
		cost := roadsCost()
		if a.Payment != cost || !p.Resources.CanAfford(cost) {
			return &enginerr.InvalidPaymentError{Reason: "roads movement costs 1 food and 1 ore"}
		}
		p.Resources = p.Resources.Sub(cost)
	}

	if outcome := g.Map.Explore(dest); outcome != nil && outcome.Ambiguous {
		g.pushExploreResolutionFrame(playerIdx, outcome.Block, a)
		return nil
	}
	return g.completeMove(playerIdx, a)
}

// pushExploreResolutionFrame suspends the move on the player's choice
// of rotation for an ambiguous unexplored block. Factored out of
// executeMovement so LoadGameData's pending event restore (snapshot.go)
// can rebuild the identical frame from a PendingEvent, re-looking up
// block by position rather than carrying the pointer across a reload.
func (g *Game) pushExploreResolutionFrame(playerIdx int, block *hexmap.UnexploredBlock, a *MovementAction) {
	g.pushFrame(&adhocFrame{
		origin:    combatOrigin(),
		playerIdx: playerIdx,
		request: eventbus.Request{
			Kind: eventbus.RequestExploreResolution, Player: playerIdx,
			Prompt: "Choose the exploration rotation for this block",
		},
		onResume: func(resp eventbus.Response) error {
			g.Map.ResolveAmbiguous(block, resp.ExploreRotation)
			return g.completeMove(playerIdx, a)
		},
	})
	g.pushPending(PendingEvent{
		Kind: PendingExploreResolution, Player: playerIdx,
		ExploreBlockAt: block.Positions[0], ExploreMove: a,
	})
}

// completeMove finishes a movement sub-action once the destination's
// terrain is fully resolved: terrain/carrier legality, the per-tile
// army stack cap, then the unit move itself and any combat it triggers.
func (g *Game) completeMove(playerIdx int, a *MovementAction) error {
	p := g.Player(playerIdx)
	dest := a.Destination
	terrain := g.Map.TerrainAt(dest)

	if !g.Map.IsOnBoard(dest) {
		return &enginerr.PreconditionFailedError{Reason: "destination is off the board"}
	}

	var carrier *primitives.Unit
	if a.CarrierID != nil {
		carrier = g.unitByIDAnyOwner(*a.CarrierID)
		if carrier == nil || carrier.Type != primitives.Ship || carrier.Position != dest {
			return &enginerr.PreconditionFailedError{Reason: "carrier is not a ship at the destination"}
		}
	}

	movingArmy := 0
	for _, id := range a.UnitIDs {
		u := p.UnitByID(id)
		if u.Type.IsArmy() {
			movingArmy++
		}
		if u.Type == primitives.Ship {
			if terrain != hexmap.Water && a.CarrierID == nil {
				return &enginerr.PreconditionFailedError{Reason: "ships may only enter water"}
			}
		} else if terrain == hexmap.Water && a.CarrierID == nil {
			return &enginerr.PreconditionFailedError{Reason: "land units may only enter water embarked on a ship"}
		}
	}

	_, enemyPresent := g.combatDefenderAt(dest, playerIdx)
	if !enemyPresent && movingArmy > 0 {
		existingArmy := 0
		for _, u := range p.UnitsAt(dest) {
			if u.Type.IsArmy() {
				existingArmy++
			}
		}
		if existingArmy+movingArmy > 4 {
			return &enginerr.PreconditionFailedError{Reason: "stack would exceed 4 army units"}
		}
	}

	for _, id := range a.UnitIDs {
		u := p.UnitByID(id)
		u.Position = dest
		u.CarrierID = a.CarrierID
		u.MovementRestriction = primitives.RestrictionAllUsed
	}
	g.appendLog(playerIdx, "moved units to "+dest.String())

	return g.initiateCombat(playerIdx, dest)
}

// unitByIDAnyOwner finds a unit by id regardless of owner, used to
// validate an embark/disembark carrier belongs to the right side.
func (g *Game) unitByIDAnyOwner(id uint32) *primitives.Unit {
	for _, p := range g.Players {
		if u := p.UnitByID(id); u != nil {
			return u
		}
	}
	return nil
}
