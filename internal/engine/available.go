package engine

import (
	"github.com/rackforge/hexdominion/internal/eventbus"
	"github.com/rackforge/hexdominion/internal/primitives"
)

// AvailableActions enumerates the legal actions right now (spec §4.11):
// when the event stack is open, the set of Response shapes compatible
// with the top frame's request; otherwise the playing or movement
// actions whose preconditions hold for the current player. This is a
// representative enumeration, not a full precondition re-derivation —
// execute(action) remains the sole source of truth on whether a given
// action is actually legal; this function exists for tests and
// external tooling to discover candidates, matching spec §4.11's own
// wording ("not all resource payments — those are validated on
// execute").
func (g *Game) AvailableActions() []Action {
	if !g.EventStack.Empty() {
		return g.availableResponses()
	}
	switch g.Mode {
	case ModePlaying:
		return g.availablePlaying()
	case ModeMovement:
		return g.availableMovement()
	default:
		return nil
	}
}

func (g *Game) availablePlaying() []Action {
	idx := g.CurrentPlayer
	p := g.Player(idx)
	var out []Action

	if g.ActionsLeft > 0 {
		for name, adv := range g.Catalog.Advances {
			if p.Advances[name] {
				continue
			}
			if adv.Prerequisite != "" && !p.Advances[adv.Prerequisite] {
				continue
			}
			if adv.Contradicts != "" && p.Advances[adv.Contradicts] {
				continue
			}
			out = append(out, Action{Kind: ActionPlaying, Playing: &PlayingAction{Kind: PlayingAdvance, AdvanceName: name}})
		}

		for _, u := range p.Units {
			if u.Type == primitives.Settler {
				out = append(out, Action{Kind: ActionPlaying, Playing: &PlayingAction{
					Kind: PlayingFoundCity, MoveUnitIDs: []uint32{u.ID},
				}})
			}
		}

		seen := map[primitives.Position]bool{}
		for _, u := range p.Units {
			if seen[u.Position] {
				continue
			}
			seen[u.Position] = true
			out = append(out, Action{Kind: ActionPlaying, Playing: &PlayingAction{
				Kind: PlayingMoveUnits, MoveUnitIDs: unitIDsAt(p.Units, u.Position),
			}})
		}

		for _, c := range p.Cities {
			if c.Activated {
				continue
			}
			out = append(out, Action{Kind: ActionPlaying, Playing: &PlayingAction{Kind: PlayingCollect, CityPosition: c.Position}})
			out = append(out, Action{Kind: ActionPlaying, Playing: &PlayingAction{Kind: PlayingRecruit, CityPosition: c.Position}})
			out = append(out, Action{Kind: ActionPlaying, Playing: &PlayingAction{Kind: PlayingConstruct, CityPosition: c.Position}})
		}
		if len(p.Cities) > 0 {
			out = append(out, Action{Kind: ActionPlaying, Playing: &PlayingAction{Kind: PlayingIncreaseHappiness}})
			out = append(out, Action{Kind: ActionPlaying, Playing: &PlayingAction{Kind: PlayingInfluenceCultureAttempt}})
		}

		for _, id := range p.ActionHand {
			card := g.Catalog.ActionCards[id]
			if card != nil && (card.Requirement == nil || card.Requirement(g, idx)) {
				out = append(out, Action{Kind: ActionPlaying, Playing: &PlayingAction{Kind: PlayingActionCard, CardID: id}})
			}
		}
		for _, id := range p.ObjectiveHand {
			out = append(out, Action{Kind: ActionPlaying, Playing: &PlayingAction{Kind: PlayingObjectiveCard, CardID: id}})
		}
		for custom, enabled := range p.CustomActions {
			if enabled {
				out = append(out, Action{Kind: ActionPlaying, Playing: &PlayingAction{Kind: PlayingCustom, CustomType: custom}})
			}
		}
	}

	out = append(out, Action{Kind: ActionPlaying, Playing: &PlayingAction{Kind: PlayingEndTurn}})
	if len(g.ActionHistory) > g.UndoFloor {
		out = append(out, Action{Kind: ActionUndo})
	}
	if len(g.RedoStack) > 0 {
		out = append(out, Action{Kind: ActionRedo})
	}
	return out
}

func (g *Game) availableMovement() []Action {
	out := []Action{{Kind: ActionMovement, Movement: &MovementAction{EndMove: true}}}
	if g.Movement == nil {
		return out
	}
	p := g.Player(g.CurrentPlayer)
	for _, id := range g.Movement.UnitIDs {
		u := p.UnitByID(id)
		if u == nil || u.MovementRestriction == primitives.RestrictionAllUsed {
			continue
		}
		for _, n := range u.Position.Neighbors() {
			if !g.Map.IsOnBoard(n) {
				continue
			}
			out = append(out, Action{Kind: ActionMovement, Movement: &MovementAction{
				UnitIDs: []uint32{id}, Destination: n,
			}})
		}
	}
	return out
}

func (g *Game) availableResponses() []Action {
	top := g.EventStack.Top()
	if top == nil {
		return nil
	}
	req := top.Request()
	var out []Action
	add := func(resp eventbus.Response) {
		resp.Kind = req.Kind
		out = append(out, Action{Kind: ActionResponse, Response: &resp})
	}

	switch req.Kind {
	case eventbus.RequestBool:
		add(eventbus.Response{Bool: true})
		add(eventbus.Response{Bool: false})
	case eventbus.RequestSelectAdvance:
		if req.Min == 0 {
			add(eventbus.Response{})
		}
		for _, name := range req.AdvanceChoices {
			add(eventbus.Response{Advance: name})
		}
	case eventbus.RequestSelectPlayer:
		for _, pl := range req.PlayerChoices {
			add(eventbus.Response{Player: pl})
		}
	case eventbus.RequestSelectPositions:
		if req.Min == 0 {
			add(eventbus.Response{})
		}
		for _, pos := range req.PositionChoices {
			add(eventbus.Response{Positions: []primitives.Position{pos}})
		}
	case eventbus.RequestSelectUnitType:
		for _, t := range req.UnitTypeChoices {
			add(eventbus.Response{UnitType: t})
		}
	case eventbus.RequestSelectUnits:
		n := req.Min
		if n == 0 {
			n = req.Max
		}
		if n > len(req.UnitChoices) {
			n = len(req.UnitChoices)
		}
		if n > 0 {
			add(eventbus.Response{Units: append([]uint32{}, req.UnitChoices[:n]...)})
		}
	case eventbus.RequestSelectStructures:
		for _, s := range req.StructureChoices {
			add(eventbus.Response{Structures: []string{s}})
		}
	case eventbus.RequestSelectHandCards:
		for _, c := range req.HandCardChoices {
			add(eventbus.Response{HandCards: []string{c}})
		}
	case eventbus.RequestChangeGovernment:
		for _, gov := range req.GovernmentChoices {
			add(eventbus.Response{Government: gov})
		}
	case eventbus.RequestExploreResolution:
		add(eventbus.Response{ExploreRotation: 0})
		add(eventbus.Response{ExploreRotation: 1})
	case eventbus.RequestPayment, eventbus.RequestResourceReward:
		add(eventbus.Response{Payment: req.PaymentDefault})
	}
	return out
}

// unitIDsAt collects the ids of every unit in units standing at pos.
func unitIDsAt(units []*primitives.Unit, pos primitives.Position) []uint32 {
	var ids []uint32
	for _, u := range units {
		if u.Position == pos {
			ids = append(ids, u.ID)
		}
	}
	return ids
}
