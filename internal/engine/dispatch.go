package engine

import (
	"github.com/rackforge/hexdominion/internal/enginerr"
	"github.com/rackforge/hexdominion/internal/eventbus"
	"github.com/rackforge/hexdominion/internal/logger"
	"github.com/rackforge/hexdominion/internal/player"
	"github.com/rackforge/hexdominion/internal/primitives"
)

// ActionKind is the closed, top-level Action taxonomy from spec §6.
type ActionKind int

const (
	ActionPlaying ActionKind = iota
	ActionMovement
	ActionResponse
	ActionUndo
	ActionRedo
)

// PlayingActionKind is the closed set of spec §4.4 playing actions.
type PlayingActionKind int

const (
	PlayingAdvance PlayingActionKind = iota
	PlayingFoundCity
	PlayingConstruct
	PlayingCollect
	PlayingRecruit
	PlayingIncreaseHappiness
	PlayingInfluenceCultureAttempt
	PlayingMoveUnits
	PlayingActionCard
	PlayingObjectiveCard
	PlayingCustom
	PlayingEndTurn
)

// CollectEntry is one (tile, resources) pair of a Collect action.
type CollectEntry struct {
	Position  primitives.Position
	Resources primitives.ResourcePile
}

// HappinessStep raises one city's mood by Steps levels.
type HappinessStep struct {
	City  primitives.Position
	Steps int
}

// PlayingAction is the tagged payload for ActionPlaying, one struct
// carrying every field any PlayingActionKind might need (spec §9:
// "tagged unions over payload types; avoid dynamic dispatch where the
// set is closed").
type PlayingAction struct {
	Kind PlayingActionKind

	AdvanceName string
	Payment     primitives.ResourcePile

	CityPosition primitives.Position
	Building     player.Building
	PortPosition *primitives.Position

	CollectEntries []CollectEntry

	RecruitUnits  []primitives.UnitType
	ReplacedUnits []uint32
	LeaderName    string

	HappinessSteps []HappinessStep

	InfluenceFrom     primitives.Position
	InfluenceTo       primitives.Position
	InfluenceBuilding player.Building
	RangeBoost        int
	ResultBoost       int

	MoveUnitIDs []uint32

	CardID string

	CustomType string
}

// MovementAction is one step while in ModeMovement (spec §4.7).
type MovementAction struct {
	UnitIDs     []uint32
	Destination primitives.Position
	CarrierID   *uint32
	Payment     primitives.ResourcePile
	EndMove     bool
}

// Action is the full closed Action union (spec §6).
type Action struct {
	Kind     ActionKind
	Playing  *PlayingAction
	Movement *MovementAction
	Response *eventbus.Response
}

// Execute routes action to the correct sub-executor given Mode, then
// — for anything other than ActionUndo/ActionRedo themselves — records
// the action on ActionHistory (so undo/redo can replay) and computes
// its informational forward/reverse patch. On failure it returns a
// typed enginerr.* error and leaves state unchanged, so no history or
// patch entry is recorded for a rejected action.
func (g *Game) Execute(action Action, playerIdx int) error {
	if action.Kind == ActionUndo || action.Kind == ActionRedo {
		return g.dispatch(action, playerIdx)
	}

	beforeJSON, beforeErr := snapshotJSON(g)
	if err := g.dispatch(action, playerIdx); err != nil {
		return err
	}
	g.ActionHistory = append(g.ActionHistory, ActionRecord{Player: playerIdx, Action: action})
	g.RedoStack = nil
	if g.revealedHiddenInfo {
		if n := len(g.ActionHistory); n > g.UndoFloor {
			g.UndoFloor = n
		}
		g.revealedHiddenInfo = false
	}
	if beforeErr == nil {
		if afterJSON, err := snapshotJSON(g); err == nil {
			if patch, err := computePatch(beforeJSON, afterJSON); err == nil {
				g.Patches = append(g.Patches, patch)
			}
		}
	}
	return nil
}

// dispatch is Execute's routing logic, unwrapped from history/patch
// bookkeeping so undo/redo (which replay through Execute themselves)
// don't double-record.
func (g *Game) dispatch(action Action, playerIdx int) error {
	log := logger.WithGameContext(g.Seed, playerIdx)

	if !g.EventStack.Empty() {
		if action.Kind != ActionResponse {
			log.Warn("illegal action while event stack pending")
			return &enginerr.IllegalActionError{Reason: "a persistent event is awaiting a response"}
		}
		return g.executeResponse(action.Response, playerIdx)
	}

	switch action.Kind {
	case ActionUndo:
		return g.undo()
	case ActionRedo:
		return g.redo()
	case ActionResponse:
		log.Warn("illegal response with empty event stack")
		return &enginerr.IllegalActionError{Reason: "no persistent event is pending"}
	}

	switch g.Mode {
	case ModePlaying:
		if action.Kind != ActionPlaying {
			return &enginerr.IllegalActionError{Reason: "expected a playing action"}
		}
		return g.executePlaying(action.Playing, playerIdx)
	case ModeMovement:
		if action.Kind != ActionMovement {
			return &enginerr.IllegalActionError{Reason: "expected a movement action while in movement mode"}
		}
		return g.executeMovement(action.Movement, playerIdx)
	case ModeStatusPhase:
		return &enginerr.IllegalActionError{Reason: "status phase runs automatically and accepts no player actions"}
	case ModeFinished:
		return &enginerr.IllegalActionError{Reason: "the game has ended"}
	default:
		return &enginerr.IllegalActionError{Reason: "unknown dispatcher mode"}
	}
}

// executeResponse applies resp to the top persistent-event frame,
// continuing its chain (and any nested frames the effect pushes) until
// the stack returns to the depth it was at before, or to empty.
func (g *Game) executeResponse(resp *eventbus.Response, playerIdx int) error {
	top := g.EventStack.Top()
	if top == nil {
		return &enginerr.IllegalActionError{Reason: "no persistent event is pending"}
	}
	if top.Player() != playerIdx {
		return &enginerr.IllegalActionError{Reason: "response submitted by the wrong player"}
	}
	next, ok, err := top.Resume(*resp)
	if err != nil {
		return &enginerr.IllegalActionError{Reason: err.Error()}
	}
	if ok {
		_ = next // the new Request is read via top.Request() by available_actions/api.go
		return nil
	}
	g.EventStack.Pop()
	g.popPending()
	g.appendLog(playerIdx, "resolved "+top.SlotOrigin().String())
	if g.EventStack.Empty() {
		g.afterPersistentEventsDrained()
	}
	return nil
}

// afterPersistentEventsDrained runs once the whole persistent-event
// stack has unwound back to empty. It resumes an in-progress combat
// (continueCombat) when there is one, or otherwise re-runs the status
// phase (see statusphase.go) while the game is in ModeStatusPhase; in
// every other case it does nothing.
func (g *Game) afterPersistentEventsDrained() {
	if g.Combat != nil {
		g.continueCombat()
		return
	}
	if g.Mode == ModeStatusPhase {
		g.runStatusPhase()
	}
}

// pushFrame pushes frame onto the event stack (a nil frame is
// ignored); used by every playing action that triggers a persistent
// event slot.
func (g *Game) pushFrame(frame eventbus.Frame) {
	if frame == nil {
		return
	}
	g.EventStack.Push(frame)
}
