package engine

import (
	"github.com/rackforge/hexdominion/internal/eventbus"
	"github.com/rackforge/hexdominion/internal/player"
	"github.com/rackforge/hexdominion/internal/primitives"
)

// PendingEventKind tags which suspended frame a PendingEvent describes,
// the same closed-union style dispatch.go uses for Action/PlayingAction
// (spec §9 "tagged unions over payload types").
type PendingEventKind int

const (
	PendingNone PendingEventKind = iota
	PendingAdvance
	PendingConstruct
	PendingRecruit
	PendingTurnStart
	PendingSiegecraft
	PendingCombatCasualty
	PendingCombatRetreat
	PendingPlaceSettler
	PendingInfluenceRepel
	PendingExploreResolution
)

// PendingEvent is GameData's serializable stand-in for one suspended
// eventbus.Frame. A Frame can't be marshaled directly — catalog-driven
// frames close over their slot's listener chain, and the engine's
// adhocFrame closes over an onResume func — so PendingEvent instead
// carries just enough plain data to re-derive the identical frame by
// calling the same trigger/push path that created it (see
// restorePendingEvents below, and "Persistent-event snapshot" in
// DESIGN.md).
type PendingEvent struct {
	Kind   PendingEventKind `json:"kind"`
	Player int              `json:"player"`

	AdvanceCtx   *AdvanceContext   `json:"advance_ctx,omitempty"`
	RecruitCtx   *RecruitContext   `json:"recruit_ctx,omitempty"`
	TurnStartCtx *TurnStartContext `json:"turn_start_ctx,omitempty"`

	ConstructCity      primitives.Position     `json:"construct_city,omitempty"`
	ConstructBuilding  player.Building         `json:"construct_building,omitempty"`
	ConstructGranted   primitives.ResourcePile `json:"construct_granted,omitempty"`
	ConstructDrawnCard string                  `json:"construct_drawn_card,omitempty"`

	InfluenceAttacker int                 `json:"influence_attacker,omitempty"`
	InfluenceDefender int                 `json:"influence_defender,omitempty"`
	InfluenceCity     primitives.Position `json:"influence_city,omitempty"`
	InfluenceBuilding player.Building     `json:"influence_building,omitempty"`
	InfluenceNeeded   int                 `json:"influence_needed,omitempty"`

	ExploreBlockAt primitives.Position `json:"explore_block_at,omitempty"`
	ExploreMove    *MovementAction     `json:"explore_move,omitempty"`
}

// pushPending records the serializable description of the frame that
// was just pushed onto g.EventStack, keeping the two stacks in
// lockstep. Every pushFrame call site that can suspend across a
// snapshot boundary has a matching pushPending call next to it.
func (g *Game) pushPending(p PendingEvent) {
	g.Pending = append(g.Pending, p)
}

// popPending removes the innermost pending-event descriptor, mirroring
// an EventStack.Pop() — called from dispatch.go's executeResponse.
func (g *Game) popPending() {
	if len(g.Pending) == 0 {
		return
	}
	g.Pending = g.Pending[:len(g.Pending)-1]
}

// restorePendingEvents replays data's pending-event descriptors against
// an already-reconstructed Game (Players/Map/Catalog/Combat/Movement
// and rebuildListeners must already have run), pushing each suspended
// frame back exactly as it was first pushed. Order matters: entries
// replay bottom-to-top, the same order they were originally pushed in.
func (g *Game) restorePendingEvents(events []PendingEvent) {
	for _, p := range events {
		g.restorePendingEvent(p)
	}
}

func (g *Game) restorePendingEvent(p PendingEvent) {
	switch p.Kind {
	case PendingAdvance:
		if frame, ok := g.Events.Advance.Trigger(eventbus.Origin{Kind: eventbus.OriginAdvance, Name: "advance"}, p.Player, p.AdvanceCtx); ok {
			g.pushFrame(frame)
			g.pushPending(p)
		}
	case PendingConstruct:
		city := g.Player(p.Player).CityAt(p.ConstructCity)
		if city == nil {
			return
		}
		ctx := &ConstructContext{
			Player: p.Player, City: city, Building: p.ConstructBuilding,
			Granted: p.ConstructGranted, DrawnCard: p.ConstructDrawnCard,
		}
		if frame, ok := g.Events.Construct.Trigger(eventbus.Origin{Kind: eventbus.OriginAbility, Name: "construct"}, p.Player, ctx); ok {
			g.pushFrame(frame)
			g.pushPending(PendingEvent{
				Kind: PendingConstruct, Player: p.Player,
				ConstructCity: ctx.City.Position, ConstructBuilding: ctx.Building,
				ConstructGranted: ctx.Granted, ConstructDrawnCard: ctx.DrawnCard,
			})
		}
	case PendingRecruit:
		if frame, ok := g.Events.Recruit.Trigger(eventbus.Origin{Kind: eventbus.OriginAbility, Name: "recruit"}, p.Player, p.RecruitCtx); ok {
			g.pushFrame(frame)
			g.pushPending(p)
		}
	case PendingTurnStart:
		if frame, ok := g.Events.TurnStart.Trigger(eventbus.Origin{Kind: eventbus.OriginAbility, Name: "turn_start"}, p.Player, p.TurnStartCtx); ok {
			g.pushFrame(frame)
			g.pushPending(p)
		}
	case PendingSiegecraft:
		if g.Combat == nil || g.Combat.SiegecraftCtx == nil {
			return
		}
		if frame, ok := g.Events.Siegecraft.Trigger(combatOrigin(), p.Player, g.Combat.SiegecraftCtx); ok {
			g.pushFrame(frame)
			g.pushPending(p)
		}
	case PendingCombatCasualty:
		if g.Combat != nil {
			_ = g.requestCasualties(p.Player)
		}
	case PendingCombatRetreat:
		if g.Combat != nil {
			_ = g.requestRetreat()
		}
	case PendingPlaceSettler:
		g.offerPlaceSettler(p.Player)
	case PendingInfluenceRepel:
		city := g.Player(p.InfluenceDefender).CityAt(p.InfluenceCity)
		if city == nil {
			return
		}
		g.pushInfluenceRepelFrame(p.InfluenceAttacker, p.InfluenceDefender, city, p.InfluenceBuilding, p.InfluenceNeeded)
	case PendingExploreResolution:
		block := g.Map.BlockAt(p.ExploreBlockAt)
		if block == nil || p.ExploreMove == nil {
			return
		}
		g.pushExploreResolutionFrame(p.Player, block, p.ExploreMove)
	}
}
