package engine

import (
	"github.com/rackforge/hexdominion/internal/enginerr"
	"github.com/rackforge/hexdominion/internal/eventbus"
	"github.com/rackforge/hexdominion/internal/hexmap"
	"github.com/rackforge/hexdominion/internal/payment"
	"github.com/rackforge/hexdominion/internal/player"
	"github.com/rackforge/hexdominion/internal/primitives"
)

// consumesAction is false only for free actions, which never consume
// actions_left (spec §4.4 "each
// action consumes actions_left unless marked free"). EndTurn is
// always free; everything else in the closed PlayingActionKind set
// costs one action.
func consumesAction(kind PlayingActionKind) bool {
	return kind != PlayingEndTurn
}

// executePlaying routes one PlayingAction to its sub-executor, after
// the checks common to every playing action: it must be the acting
// player's turn, and (unless free) an action must remain.
func (g *Game) executePlaying(a *PlayingAction, playerIdx int) error {
	if a == nil {
		return &enginerr.IllegalActionError{Reason: "missing playing action payload"}
	}
	if playerIdx != g.CurrentPlayer {
		return &enginerr.IllegalActionError{Reason: "it is not this player's turn"}
	}
	if consumesAction(a.Kind) && g.ActionsLeft <= 0 {
		return &enginerr.NoActionsLeftError{}
	}

	var err error
	switch a.Kind {
	case PlayingAdvance:
		err = g.playAdvance(a, playerIdx)
	case PlayingFoundCity:
		err = g.playFoundCity(a, playerIdx)
	case PlayingConstruct:
		err = g.playConstruct(a, playerIdx)
	case PlayingCollect:
		err = g.playCollect(a, playerIdx)
	case PlayingRecruit:
		err = g.playRecruit(a, playerIdx)
	case PlayingIncreaseHappiness:
		err = g.playIncreaseHappiness(a, playerIdx)
	case PlayingInfluenceCultureAttempt:
		err = g.playInfluenceCultureAttempt(a, playerIdx)
	case PlayingMoveUnits:
		err = g.playMoveUnits(a, playerIdx)
	case PlayingActionCard:
		err = g.playActionCard(a, playerIdx)
	case PlayingObjectiveCard:
		err = g.playObjectiveCard(a, playerIdx)
	case PlayingCustom:
		err = g.playCustom(a, playerIdx)
	case PlayingEndTurn:
		err = g.playEndTurn(a, playerIdx)
	default:
		return &enginerr.IllegalActionError{Reason: "unknown playing action kind"}
	}
	if err != nil {
		return err
	}
	if consumesAction(a.Kind) {
		g.ActionsLeft--
	}
	return nil
}

// playAdvance implements spec §4.4 Advance.
func (g *Game) playAdvance(a *PlayingAction, playerIdx int) error {
	p := g.Player(playerIdx)
	adv := g.Catalog.Advances[a.AdvanceName]
	if adv == nil {
		return &enginerr.PreconditionFailedError{Reason: "no such advance: " + a.AdvanceName}
	}
	if p.Advances[a.AdvanceName] {
		return &enginerr.PreconditionFailedError{Reason: "advance already owned"}
	}
	if adv.Prerequisite != "" && !p.Advances[adv.Prerequisite] {
		return &enginerr.PreconditionFailedError{Reason: "prerequisite not met: " + adv.Prerequisite}
	}
	if adv.Contradicts != "" && p.Advances[adv.Contradicts] {
		return &enginerr.PreconditionFailedError{Reason: "contradicts owned advance: " + adv.Contradicts}
	}

	ctx := &CostContext{Player: playerIdx, Item: a.AdvanceName, Options: adv.EffectiveCost()}
	g.Events.AdvanceCost.Trigger(ctx)

	remaining, err := ctx.Options.Apply(p.Resources, a.Payment)
	if err != nil {
		return err
	}
	p.Resources = remaining

	frame := g.grantAdvance(playerIdx, a.AdvanceName)
	g.appendLog(playerIdx, "gained advance "+a.AdvanceName)
	g.pushFrame(frame)
	return nil
}

// playFoundCity implements spec §4.4 FoundCity: consumes the settler
// and founds a Neutral city at its position.
func (g *Game) playFoundCity(a *PlayingAction, playerIdx int) error {
	p := g.Player(playerIdx)
	var settlerID uint32
	if len(a.ReplacedUnits) > 0 {
		settlerID = a.ReplacedUnits[0]
	} else if len(a.MoveUnitIDs) > 0 {
		settlerID = a.MoveUnitIDs[0]
	}
	unit := p.UnitByID(settlerID)
	if unit == nil || unit.Type != primitives.Settler {
		return &enginerr.PreconditionFailedError{Reason: "no settler with that id"}
	}
	terrain := g.Map.TerrainAt(unit.Position)
	if !terrain.AllowsCityFoundation() {
		return &enginerr.PreconditionFailedError{Reason: "terrain does not allow a city"}
	}
	if len(p.Cities) >= 7 {
		return &enginerr.InvariantViolationError{Reason: "city cap exceeded"}
	}
	if p.CityAt(unit.Position) != nil {
		return &enginerr.PreconditionFailedError{Reason: "a city already stands here"}
	}
	p.RemoveUnit(unit.ID)
	p.Cities = append(p.Cities, player.NewCity(playerIdx, unit.Position))
	g.appendLog(playerIdx, "founded a city at "+unit.Position.String())
	return nil
}

// playConstruct implements spec §4.4 Construct.
func (g *Game) playConstruct(a *PlayingAction, playerIdx int) error {
	p := g.Player(playerIdx)
	city := p.CityAt(a.CityPosition)
	if city == nil {
		return &enginerr.PreconditionFailedError{Reason: "no city at that position"}
	}
	if city.Activated {
		return &enginerr.PreconditionFailedError{Reason: "city already activated this turn"}
	}
	if !city.CanAcceptBuilding(a.Building) {
		return &enginerr.PreconditionFailedError{Reason: "city cannot accept this building"}
	}
	if a.Building == player.Port {
		if a.PortPosition == nil || g.Map.TerrainAt(*a.PortPosition) != hexmap.Water || !a.CityPosition.IsNeighbor(*a.PortPosition) {
			return &enginerr.PreconditionFailedError{Reason: "port requires an adjacent water tile"}
		}
	}

	ctx := &CostContext{Player: playerIdx, Item: a.Building.String(), Options: constructCost(a.Building)}
	g.Events.ConstructCost.Trigger(ctx)
	remaining, err := ctx.Options.Apply(p.Resources, a.Payment)
	if err != nil {
		return err
	}
	p.Resources = remaining

	city.AddBuilding(a.Building, playerIdx)
	city.Activated = true
	if a.Building == player.Port {
		city.PortPosition = a.PortPosition
	}
	g.appendLog(playerIdx, "constructed "+a.Building.String()+" in "+a.CityPosition.String())

	pctx := &ConstructContext{Player: playerIdx, City: city, Building: a.Building}
	frame, ok := g.Events.Construct.Trigger(eventbus.Origin{Kind: eventbus.OriginAbility, Name: "construct"}, playerIdx, pctx)
	if ok {
		g.pushFrame(frame)
		g.pushPending(PendingEvent{
			Kind: PendingConstruct, Player: playerIdx,
			ConstructCity: city.Position, ConstructBuilding: pctx.Building,
			ConstructGranted: pctx.Granted, ConstructDrawnCard: pctx.DrawnCard,
		})
	}
	return nil
}

// constructCost is the default per-building cost (original_source
// assigns one fixed pile per building type; listeners may still
// adjust it via construct_cost).
func constructCost(b player.Building) payment.Options {
	switch b {
	case player.Academy:
		return payment.Fixed(primitives.ResourcePile{Ideas: 2})
	case player.Market:
		return payment.Fixed(primitives.ResourcePile{Wood: 1, Gold: 1})
	case player.Obelisk:
		return payment.Fixed(primitives.ResourcePile{Ore: 2})
	case player.Observatory:
		return payment.Fixed(primitives.ResourcePile{Ideas: 1, Gold: 1})
	case player.Fortress:
		return payment.Fixed(primitives.ResourcePile{Ore: 2, Wood: 1})
	case player.Port:
		return payment.Fixed(primitives.ResourcePile{Wood: 2})
	case player.Temple:
		return payment.Fixed(primitives.ResourcePile{Wood: 1, Ideas: 1})
	default:
		return payment.Fixed(primitives.ResourcePile{})
	}
}

// collectResource is the fixed resource a tile's terrain yields to
// Collect, per spec §4.4's "terrain -> allowed resources" filter. The
// city's own tile always yields gold (the "trade" baseline); Water
// yields nothing until a Fishing-style advance is introduced.
func collectResource(terrain hexmap.Terrain) (primitives.ResourcePile, bool) {
	switch terrain {
	case hexmap.Fertile:
		return primitives.Food(1), true
	case hexmap.Forest:
		return primitives.Wood(1), true
	case hexmap.Mountain:
		return primitives.Ore(1), true
	case hexmap.Barren:
		return primitives.Gold(1), true
	default:
		return primitives.ResourcePile{}, false
	}
}

// collectOptions enumerates the legal (position, resource) entries for
// city, per spec §4.4: the city tile plus its land-terrain neighbors,
// excluding tiles occupied by another city or an enemy unit.
func (g *Game) collectOptions(city *player.City) map[primitives.Position]primitives.ResourcePile {
	options := map[primitives.Position]primitives.ResourcePile{
		city.Position: primitives.Gold(1),
	}
	for _, n := range city.Position.Neighbors() {
		if !g.Map.IsOnBoard(n) {
			continue
		}
		if g.tileBlockedForCollect(n, city.Owner) {
			continue
		}
		if resource, ok := collectResource(g.Map.TerrainAt(n)); ok {
			options[n] = resource
		}
	}
	return options
}

func (g *Game) tileBlockedForCollect(pos primitives.Position, owner int) bool {
	for _, u := range g.unitsAt(pos) {
		if u.Owner != owner {
			return true
		}
	}
	for _, p := range g.Players {
		if p.Index == owner {
			continue
		}
		if p.CityAt(pos) != nil {
			return true
		}
	}
	return false
}

// playCollect implements spec §4.4 Collect.
func (g *Game) playCollect(a *PlayingAction, playerIdx int) error {
	p := g.Player(playerIdx)
	city := p.CityAt(a.CityPosition)
	if city == nil {
		return &enginerr.PreconditionFailedError{Reason: "no city at that position"}
	}
	if city.Activated {
		return &enginerr.PreconditionFailedError{Reason: "city already activated this turn"}
	}
	if len(a.CollectEntries) > city.ModifiedSize() {
		return &enginerr.PreconditionFailedError{Reason: "too many collect entries for this city's size"}
	}
	options := g.collectOptions(city)
	seen := map[primitives.Position]bool{}
	var total primitives.ResourcePile
	for _, entry := range a.CollectEntries {
		if seen[entry.Position] {
			return &enginerr.PreconditionFailedError{Reason: "duplicate collect tile"}
		}
		seen[entry.Position] = true
		allowed, ok := options[entry.Position]
		if !ok || allowed != entry.Resources {
			return &enginerr.PreconditionFailedError{Reason: "invalid collect entry for " + entry.Position.String()}
		}
		total = total.Add(entry.Resources)
	}

	city.Activated = true
	ctx := &CollectContext{Player: playerIdx, City: city, Total: total}
	g.Events.CollectTotal.Trigger(ctx)
	p.GainResources(ctx.Total)
	g.appendLog(playerIdx, "collected from "+a.CityPosition.String())
	return nil
}

// playRecruit implements spec §4.4 Recruit.
func (g *Game) playRecruit(a *PlayingAction, playerIdx int) error {
	p := g.Player(playerIdx)
	city := p.CityAt(a.CityPosition)
	if city == nil {
		return &enginerr.PreconditionFailedError{Reason: "no city at that position"}
	}
	if city.Activated {
		return &enginerr.PreconditionFailedError{Reason: "city already activated this turn"}
	}
	for _, t := range a.RecruitUnits {
		if t == primitives.Ship && city.PortPosition == nil {
			return &enginerr.PreconditionFailedError{Reason: "ships require a port"}
		}
		if (t == primitives.Cavalry || t == primitives.Elephant) && !city.HasBuilding(player.Market) {
			return &enginerr.PreconditionFailedError{Reason: "cavalry/elephants require a market"}
		}
	}
	projected := p.UnitCounts()
	for _, t := range a.RecruitUnits {
		projected = projected.Add(t)
	}
	for _, id := range a.ReplacedUnits {
		if u := p.UnitByID(id); u != nil {
			projected = projected.AddN(u.Type, -1)
		}
	}
	if projected.ExceedsCap(p.Kind.UnitCap()) {
		return &enginerr.PreconditionFailedError{Reason: "unit cap exceeded"}
	}
	if g.armyUnitsAt(a.CityPosition)+countArmy(a.RecruitUnits)-countReplacedArmy(p, a.ReplacedUnits) > 4 {
		return &enginerr.InvariantViolationError{Reason: "stack limit exceeded"}
	}

	var cost primitives.ResourcePile
	for _, t := range a.RecruitUnits {
		cost = cost.Add(t.Cost())
	}
	item := "recruit"
	for _, t := range a.RecruitUnits {
		if t == primitives.Settler {
			item = primitives.Settler.String()
		}
	}
	ctx := &CostContext{Player: playerIdx, Item: item, Options: payment.Fixed(cost)}
	g.Events.RecruitCost.Trigger(ctx)
	remaining, err := ctx.Options.Apply(p.Resources, a.Payment)
	if err != nil {
		return err
	}
	p.Resources = remaining

	for _, id := range a.ReplacedUnits {
		p.RemoveUnit(id)
	}
	for _, t := range a.RecruitUnits {
		g.spawnUnit(playerIdx, t, a.CityPosition)
	}
	if a.LeaderName != "" {
		p.Leader = a.LeaderName
		g.spawnUnit(playerIdx, primitives.Leader, a.CityPosition)
		if la := g.Catalog.Leaders[a.LeaderName]; la != nil && la.Init != nil {
			la.Init(g, playerIdx, leaderOrigin(a.LeaderName, playerIdx))
		}
	}
	city.Activated = true
	g.appendLog(playerIdx, "recruited units at "+a.CityPosition.String())

	if len(a.RecruitUnits) > 0 {
		rctx := &RecruitContext{Player: playerIdx, UnitType: a.RecruitUnits[len(a.RecruitUnits)-1], Paid: ctx.Options.Cost}
		frame, ok := g.Events.Recruit.Trigger(eventbus.Origin{Kind: eventbus.OriginAbility, Name: "recruit"}, playerIdx, rctx)
		if ok {
			g.pushFrame(frame)
			g.pushPending(PendingEvent{Kind: PendingRecruit, Player: playerIdx, RecruitCtx: rctx})
		}
	}
	return nil
}

func countArmy(units []primitives.UnitType) int {
	n := 0
	for _, t := range units {
		if t.IsArmy() {
			n++
		}
	}
	return n
}

func countReplacedArmy(p *player.Player, replaced []uint32) int {
	n := 0
	for _, id := range replaced {
		if u := p.UnitByID(id); u != nil && u.Type.IsArmy() {
			n++
		}
	}
	return n
}

// playIncreaseHappiness implements spec §4.4 IncreaseHappiness: pays
// size*steps mood tokens per city (Rituals substitutes resources 1:1,
// handled via the mood-token Conversion wired onto the payment below).
func (g *Game) playIncreaseHappiness(a *PlayingAction, playerIdx int) error {
	p := g.Player(playerIdx)
	var total int
	prevMood := map[*player.City]player.MoodState{}
	restoreMoods := func() {
		for c, m := range prevMood {
			c.Mood = m
		}
	}
	for _, step := range a.HappinessSteps {
		city := p.CityAt(step.City)
		if city == nil {
			restoreMoods()
			return &enginerr.PreconditionFailedError{Reason: "no city at " + step.City.String()}
		}
		if _, ok := prevMood[city]; !ok {
			prevMood[city] = city.Mood
		}
		steps := step.Steps
		if int(city.Mood)+steps > int(player.Happy) {
			steps = int(player.Happy) - int(city.Mood)
		}
		if steps <= 0 {
			continue
		}
		total += city.Size() * steps
		city.Mood = player.MoodState(int(city.Mood) + steps)
	}
	cost := payment.Fixed(primitives.MoodTokens(total))
	if p.Advances["Rituals"] {
		cost = cost.WithConversion(payment.Conversion{From: payment.KindFood, To: payment.KindMoodTokens, Limit: -1}).
			WithConversion(payment.Conversion{From: payment.KindWood, To: payment.KindMoodTokens, Limit: -1}).
			WithConversion(payment.Conversion{From: payment.KindOre, To: payment.KindMoodTokens, Limit: -1}).
			WithConversion(payment.Conversion{From: payment.KindIdeas, To: payment.KindMoodTokens, Limit: -1}).
			WithConversion(payment.Conversion{From: payment.KindGold, To: payment.KindMoodTokens, Limit: -1})
	}
	remaining, err := cost.Apply(p.Resources, a.Payment)
	if err != nil {
		restoreMoods()
		return err
	}
	p.Resources = remaining
	g.appendLog(playerIdx, "increased city happiness")
	return nil
}

// playMoveUnits implements spec §4.4/§4.7 MoveUnits: enters ModeMovement
// with the chosen stack. Movement itself (movement.go) drives the
// repeated Move sub-steps until end-move.
func (g *Game) playMoveUnits(a *PlayingAction, playerIdx int) error {
	p := g.Player(playerIdx)
	if len(a.MoveUnitIDs) == 0 {
		return &enginerr.PreconditionFailedError{Reason: "no units selected to move"}
	}
	var pos *primitives.Position
	for _, id := range a.MoveUnitIDs {
		u := p.UnitByID(id)
		if u == nil {
			return &enginerr.PreconditionFailedError{Reason: "unit not owned by this player"}
		}
		if pos == nil {
			pos = &u.Position
		} else if *pos != u.Position {
			return &enginerr.PreconditionFailedError{Reason: "units must all be at the same position"}
		}
	}
	g.Mode = ModeMovement
	g.Movement = &MovementState{UnitIDs: a.MoveUnitIDs}
	return nil
}

// playActionCard implements spec §4.4 PlayActionCard: executes its
// registered Init immediately, one-shot (origin-scoped so combat
// tactics attachments still deregister with the rest if needed).
func (g *Game) playActionCard(a *PlayingAction, playerIdx int) error {
	p := g.Player(playerIdx)
	card := g.Catalog.ActionCards[a.CardID]
	if card == nil {
		return &enginerr.PreconditionFailedError{Reason: "no such action card: " + a.CardID}
	}
	if !handHas(p.ActionHand, a.CardID) {
		return &enginerr.PreconditionFailedError{Reason: "card not in hand"}
	}
	if card.Requirement != nil && !card.Requirement(g, playerIdx) {
		return &enginerr.PreconditionFailedError{Reason: "requirement not met"}
	}
	p.ActionHand = removeFromHand(p.ActionHand, a.CardID)
	if card.Init != nil {
		card.Init(g, playerIdx, cardOrigin(a.CardID, playerIdx))
	}
	g.appendLog(playerIdx, "played action card "+a.CardID)
	return nil
}

// playObjectiveCard implements spec §4.4 ObjectiveCard(id): adopts a
// hand objective as the player's active objective, checked during the
// status phase's complete-objectives step (spec §4.8).
func (g *Game) playObjectiveCard(a *PlayingAction, playerIdx int) error {
	p := g.Player(playerIdx)
	if g.Catalog.Objectives[a.CardID] == nil {
		return &enginerr.PreconditionFailedError{Reason: "no such objective card: " + a.CardID}
	}
	if !handHas(p.ObjectiveHand, a.CardID) {
		return &enginerr.PreconditionFailedError{Reason: "objective not in hand"}
	}
	p.ObjectiveHand = removeFromHand(p.ObjectiveHand, a.CardID)
	p.ActiveObjective = a.CardID
	g.appendLog(playerIdx, "adopted objective card "+a.CardID)
	return nil
}

func handHas(hand []string, id string) bool {
	for _, c := range hand {
		if c == id {
			return true
		}
	}
	return false
}

func removeFromHand(hand []string, id string) []string {
	out := hand[:0]
	removed := false
	for _, c := range hand {
		if c == id && !removed {
			removed = true
			continue
		}
		out = append(out, c)
	}
	return out
}

// customActionEffect is one registered Custom(type) handler (spec
// §4.4 "gated by the custom-action registration").
type customActionEffect func(g *Game, playerIdx int) error

var customActions = map[string]customActionEffect{
	"Sports": func(g *Game, playerIdx int) error {
		g.Player(playerIdx).GainResources(primitives.MoodTokens(1))
		return nil
	},
	"Theaters": func(g *Game, playerIdx int) error {
		g.Player(playerIdx).GainResources(primitives.CultureTokens(1))
		return nil
	},
	"Taxes": func(g *Game, playerIdx int) error {
		g.Player(playerIdx).GainResources(primitives.Gold(2))
		return nil
	},
	"Arts": func(g *Game, playerIdx int) error {
		g.Player(playerIdx).GainResources(primitives.Ideas(1).Add(primitives.CultureTokens(1)))
		return nil
	},
	"ForcedLabor": func(g *Game, playerIdx int) error {
		g.Player(playerIdx).GainResources(primitives.Ore(1))
		return nil
	},
	"FreeEconomyCollect": func(g *Game, playerIdx int) error {
		p := g.Player(playerIdx)
		for _, c := range p.Cities {
			if !c.Activated {
				p.GainResources(primitives.Gold(1))
			}
		}
		return nil
	},
	"VotingIncreaseHappiness": func(g *Game, playerIdx int) error {
		p := g.Player(playerIdx)
		cost := primitives.CultureTokens(1)
		if !p.Resources.CanAfford(cost) {
			return &enginerr.NotEnoughResourcesError{Reason: "not enough culture tokens to call a vote"}
		}
		p.Resources = p.Resources.Sub(cost)
		p.GainResources(primitives.MoodTokens(2))
		return nil
	},
	"AbsolutePower": func(g *Game, playerIdx int) error {
		g.Player(playerIdx).GainResources(primitives.Ore(1).Add(primitives.Gold(1)))
		return nil
	},
	"CivilLiberties": func(g *Game, playerIdx int) error {
		g.Player(playerIdx).GainResources(primitives.Ideas(1).Add(primitives.MoodTokens(1)))
		return nil
	},
	"ConstructWonder": func(g *Game, playerIdx int) error {
		return g.playConstructWonderCustom(playerIdx)
	},
}

// playConstructWonderCustom lets a player with the custom action
// enabled (typically via a government granting an extra build slot)
// complete the next affordable wonder from the shared deck in their
// largest city, without spending a regular Construct action. Grounded
// on playConstruct's own cost/registration plumbing, reused here for
// the wonder catalog instead of the building catalog.
func (g *Game) playConstructWonderCustom(playerIdx int) error {
	p := g.Player(playerIdx)
	if len(p.Cities) == 0 {
		return &enginerr.PreconditionFailedError{Reason: "player has no city to build a wonder in"}
	}
	city := p.Cities[0]
	for _, c := range p.Cities {
		if c.Size() > city.Size() {
			city = c
		}
	}

	for i, name := range g.WonderDeck {
		wonder := g.Catalog.Wonders[name]
		if wonder == nil {
			continue
		}
		ok := true
		for _, req := range wonder.RequiredAdvances {
			if !p.Advances[req] {
				ok = false
				break
			}
		}
		if !ok || !wonder.Cost.CanAfford(p.Resources) {
			continue
		}
		remaining, err := wonder.Cost.Apply(p.Resources, wonder.Cost.Cost)
		if err != nil {
			continue
		}
		p.Resources = remaining
		city.Wonders = append(city.Wonders, name)
		g.WonderDeck = append(g.WonderDeck[:i:i], g.WonderDeck[i+1:]...)
		g.appendLog(playerIdx, "constructed wonder "+name+" in "+city.Position.String())
		if wonder.Init != nil {
			wonder.Init(g, playerIdx, wonderOrigin(name, playerIdx))
		}
		return nil
	}
	return &enginerr.PreconditionFailedError{Reason: "no affordable wonder remains in the deck"}
}

// playCustom implements spec §4.4 Custom(type): requires the named
// custom action to have been enabled by a registration (an advance,
// leader, or card setting p.CustomActions[type]).
func (g *Game) playCustom(a *PlayingAction, playerIdx int) error {
	p := g.Player(playerIdx)
	if !p.CustomActions[a.CustomType] {
		return &enginerr.PreconditionFailedError{Reason: "custom action not enabled: " + a.CustomType}
	}
	effect, ok := customActions[a.CustomType]
	if !ok {
		return &enginerr.PreconditionFailedError{Reason: "unknown custom action: " + a.CustomType}
	}
	if err := effect(g, playerIdx); err != nil {
		return err
	}
	g.appendLog(playerIdx, "used custom action "+a.CustomType)
	return nil
}

// playEndTurn implements spec §4.4 EndTurn: resets actions_left,
// rotates the current player, and — once a full round back to the
// start player completes three times — hands off to the status phase
// (spec §4.8) instead of starting a new round in Playing mode.
func (g *Game) playEndTurn(a *PlayingAction, playerIdx int) error {
	g.appendLog(playerIdx, "ended turn")
	next := g.nextActivePlayer(playerIdx)
	if next == g.StartPlayer {
		g.Round++
	}
	if g.Round > 3 {
		g.Mode = ModeStatusPhase
		g.runStatusPhase()
		return nil
	}
	g.CurrentPlayer = next
	g.ActionsLeft = 3
	for _, u := range g.Player(next).Units {
		u.MovementRestriction = primitives.RestrictionNone
	}

	ctx := &TurnStartContext{Player: next, Age: g.Age}
	frame, ok := g.Events.TurnStart.Trigger(eventbus.Origin{Kind: eventbus.OriginAbility, Name: "turn_start"}, next, ctx)
	if ok {
		g.pushFrame(frame)
		g.pushPending(PendingEvent{Kind: PendingTurnStart, Player: next, TurnStartCtx: ctx})
	}
	return nil
}
