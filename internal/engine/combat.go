package engine

import (
	"fmt"

	"github.com/rackforge/hexdominion/internal/eventbus"
	"github.com/rackforge/hexdominion/internal/player"
	"github.com/rackforge/hexdominion/internal/primitives"
)

// combatAwait records which pause, if any, the combat state machine is
// sitting on so continueCombat (invoked once the event stack drains)
// knows what to resume into.
type combatAwait int

const (
	awaitNone combatAwait = iota
	awaitSiegecraft
	awaitCasualty
	awaitRetreat
)

// CombatState is the per-instance state for the combat resolver (spec
// §4.5 state machine: start → round_start → roll → round_end →
// casualties → retreat? → end). It lives on Game rather than being
// threaded through return values because each step may suspend behind
// a persistent-event frame; continueCombat resumes the loop the same
// way afterPersistentEventsDrained resumes the status phase.
type CombatState struct {
	Position primitives.Position
	Attacker int
	Defender int
	Round    int

	ExtraAttackerRolls   []int
	ExtraAttackerCancels int

	HitsOnAttacker int
	HitsOnDefender int
	CasualtyQueue  []int
	Retreated      bool

	Awaiting      combatAwait
	SiegecraftCtx *CombatRoundContext
}

// combatOrigin scopes ad-hoc combat asks (casualty selection, retreat,
// place-settler) that do not belong to any one content entry.
func combatOrigin() eventbus.Origin {
	return eventbus.Origin{Kind: eventbus.OriginAbility, Name: "combat"}
}

// adhocFrame is a one-shot eventbus.Frame for asks that have exactly
// one listener and never re-offer a follow-up request of their own
// (casualty selection, retreat, explore-rotation, place-settler):
// Resume always closes the frame after applying the response.
type adhocFrame struct {
	origin    eventbus.Origin
	playerIdx int
	request   eventbus.Request
	onResume  func(resp eventbus.Response) error
}

func (f *adhocFrame) SlotOrigin() eventbus.Origin { return f.origin }
func (f *adhocFrame) Player() int                 { return f.playerIdx }
func (f *adhocFrame) Request() eventbus.Request    { return f.request }

func (f *adhocFrame) Resume(resp eventbus.Response) (eventbus.Request, bool, error) {
	if resp.Kind != f.request.Kind {
		return eventbus.Request{}, false, fmt.Errorf("response kind %d does not match pending request kind %d", resp.Kind, f.request.Kind)
	}
	if err := f.onResume(resp); err != nil {
		return eventbus.Request{}, false, err
	}
	return eventbus.Request{}, false, nil
}

// combatDefenderAt finds which player, other than attacker, holds the
// position being entered: either a unit owner or a city owner.
func (g *Game) combatDefenderAt(pos primitives.Position, attacker int) (int, bool) {
	for _, u := range g.unitsAt(pos) {
		if u.Owner != attacker {
			return u.Owner, true
		}
	}
	for i, p := range g.Players {
		if i == attacker {
			continue
		}
		if p.CityAt(pos) != nil {
			return i, true
		}
	}
	return -1, false
}

// initiateCombat starts a combat instance at pos between attacker (the
// player who just moved units there) and whichever other player holds
// the tile (spec §4.5 "Initiation"). No-op if the tile holds no enemy
// presence.
func (g *Game) initiateCombat(attacker int, pos primitives.Position) error {
	defenderIdx, ok := g.combatDefenderAt(pos, attacker)
	if !ok {
		return nil
	}
	defender := g.Player(defenderIdx)
	city := defender.CityAt(pos)
	defenderArmy := 0
	for _, u := range defender.UnitsAt(pos) {
		if u.Type.IsArmy() {
			defenderArmy++
		}
	}
	if city != nil && defenderArmy == 0 && !city.HasBuilding(player.Fortress) {
		g.appendLog(attacker, "city captured without a fight: "+city.Position.String())
		g.captureCity(attacker, city)
		return nil
	}
	g.Combat = &CombatState{Position: pos, Attacker: attacker, Defender: defenderIdx, Round: 1}
	return g.combatMaybeSiegecraft()
}

func (g *Game) combatMaybeSiegecraft() error {
	c := g.Combat
	attacker := g.Player(c.Attacker)
	defender := g.Player(c.Defender)
	city := defender.CityAt(c.Position)
	if c.Round == 1 && attacker.Advances["Siegecraft"] && city != nil && city.HasBuilding(player.Fortress) {
		ctx := &CombatRoundContext{Round: 1, AttackerPlayer: c.Attacker, DefenderPlayer: c.Defender, DefenderHasFortress: true}
		frame, ok := g.Events.Siegecraft.Trigger(combatOrigin(), c.Attacker, ctx)
		if ok {
			c.SiegecraftCtx = ctx
			c.Awaiting = awaitSiegecraft
			g.pushFrame(frame)
			g.pushPending(PendingEvent{Kind: PendingSiegecraft, Player: c.Attacker})
			return nil
		}
	}
	return g.combatPlayRound()
}

func max0(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func armyCounts(units []*primitives.Unit) primitives.Units {
	var u primitives.Units
	for _, unit := range units {
		u = u.Add(unit.Type)
	}
	return u
}

// rollArmy rolls one die per unit.
func (g *Game) rollArmy(n int) []int {
	rolls := make([]int, n)
	for i := range rolls {
		rolls[i] = g.Rng.RollDie()
	}
	return rolls
}

// processRolls converts raw 0..11 die values into accumulated combat
// value and self-protecting cancels, grounded in original_source's
// combat.rs roll() function: each unit-type bonus/cancel is gated by a
// decrementing count of that type still present (so it fires at most
// once per actual unit of that type), and a leader allows a reroll of
// any roll <= 1 ("leader face"), once per leader present.
func processRolls(rolls []int, counts primitives.Units, hasLeader bool, rng *primitives.Rng) (value int, cancels int) {
	infantry, cavalry, elephant := counts.Infantry, counts.Cavalry, counts.Elephants
	leaderAvailable := hasLeader
	for _, roll := range rolls {
		for (roll == 0 || roll == 1) && leaderAvailable {
			leaderAvailable = false
			roll = rng.RollDie()
		}
		switch roll {
		case 5, 9, 10, 11:
			v := roll/2 + 1
			if infantry > 0 {
				infantry--
				v++
			}
			value += v
		case 2, 6, 8:
			v := roll/2 + 1
			if cavalry > 0 {
				cavalry--
				v += 2
			}
			value += v
		case 3, 4, 7:
			if elephant > 0 {
				elephant--
				cancels++
				continue
			}
			value += roll/2 + 1
		default:
			value += roll/2 + 1
		}
	}
	return
}

// combatPlayRound rolls and resolves one round, grounded in spec §4.5's
// "Rounds" and "Hits" rules.
func (g *Game) combatPlayRound() error {
	c := g.Combat
	attacker := g.Player(c.Attacker)
	defender := g.Player(c.Defender)
	city := defender.CityAt(c.Position)

	var attackerArmy, defenderArmy []*primitives.Unit
	for _, u := range attacker.UnitsAt(c.Position) {
		if u.Type.IsArmy() {
			attackerArmy = append(attackerArmy, u)
		}
	}
	for _, u := range defender.UnitsAt(c.Position) {
		if u.Type.IsArmy() {
			defenderArmy = append(defenderArmy, u)
		}
	}
	if len(attackerArmy) == 0 || len(defenderArmy) == 0 {
		return g.combatEnd()
	}

	attackerCounts := armyCounts(attackerArmy)
	defenderCounts := armyCounts(defenderArmy)

	g.markHiddenInfoRevealed()
	attackerRolls := g.rollArmy(len(attackerArmy))
	attackerRolls = append(attackerRolls, c.ExtraAttackerRolls...)
	defenderRolls := g.rollArmy(len(defenderArmy))

	aValue, aCancels := processRolls(attackerRolls, attackerCounts, attacker.HasLeader(), g.Rng)
	dValue, dCancels := processRolls(defenderRolls, defenderCounts, defender.HasLeader(), g.Rng)
	aCancels += c.ExtraAttackerCancels
	c.ExtraAttackerRolls = nil
	c.ExtraAttackerCancels = 0

	ctx := &CombatRoundContext{
		Round:               c.Round,
		AttackerPlayer:      c.Attacker,
		DefenderPlayer:      c.Defender,
		AttackerRolls:       attackerRolls,
		DefenderRolls:       defenderRolls,
		AttackerValue:       aValue,
		DefenderValue:       dValue,
		AttackerCancels:     aCancels,
		DefenderCancels:     dCancels,
		DefenderHasFortress: city != nil && city.HasBuilding(player.Fortress),
		DefenderHasTemple:   city != nil && city.HasBuilding(player.Temple),
		AttackerHasShip:     attackerCounts.Ships > 0,
		DefenderHasShip:     defenderCounts.Ships > 0,
	}
	g.Events.CombatRound.Trigger(ctx)

	if c.Round == 1 {
		if ctx.AttackerHasShip {
			ctx.AttackerCancels++
		}
		if ctx.DefenderHasShip {
			ctx.DefenderCancels++
		}
	}

	hitsToDefender := max0(ctx.AttackerValue/5 - ctx.DefenderCancels)
	hitsToAttacker := max0(ctx.DefenderValue/5 - ctx.AttackerCancels)
	c.HitsOnDefender = hitsToDefender
	c.HitsOnAttacker = hitsToAttacker

	g.appendLog(c.Attacker, fmt.Sprintf("combat round %d at %s: %d hits to defender, %d hits to attacker", c.Round, c.Position, hitsToDefender, hitsToAttacker))

	c.CasualtyQueue = nil
	if hitsToDefender > 0 {
		c.CasualtyQueue = append(c.CasualtyQueue, c.Defender)
	}
	if hitsToAttacker > 0 {
		c.CasualtyQueue = append(c.CasualtyQueue, c.Attacker)
	}
	return g.combatAdvance()
}

// combatAdvance drains the pending casualty queue, then checks for an
// eliminated side, then (round 2+) offers the attacker a retreat,
// otherwise starts the next round.
func (g *Game) combatAdvance() error {
	c := g.Combat
	if c == nil {
		return nil
	}
	if len(c.CasualtyQueue) > 0 {
		who := c.CasualtyQueue[0]
		c.CasualtyQueue = c.CasualtyQueue[1:]
		return g.requestCasualties(who)
	}
	if g.armyUnitsOf(c.Defender, c.Position) == 0 || g.armyUnitsOf(c.Attacker, c.Position) == 0 {
		return g.combatEnd()
	}
	if c.Round >= 2 {
		return g.requestRetreat()
	}
	c.Round++
	return g.combatPlayRound()
}

// armyUnitsOf counts army units owner currently has at pos.
func (g *Game) armyUnitsOf(owner int, pos primitives.Position) int {
	n := 0
	for _, u := range g.Player(owner).UnitsAt(pos) {
		if u.Type.IsArmy() {
			n++
		}
	}
	return n
}

// requestCasualties asks who to remove the hits they suffered this
// round (spec §4.5 "Casualty selection"): leaders cannot be the sole
// survivor, settlers cannot be chosen while other units exist — both
// enforced here rather than trusted to the response.
func (g *Game) requestCasualties(who int) error {
	c := g.Combat
	n := c.HitsOnDefender
	if who == c.Attacker {
		n = c.HitsOnAttacker
	}
	p := g.Player(who)
	units := p.UnitsAt(c.Position)
	if n <= 0 || len(units) == 0 {
		return g.combatAdvance()
	}
	if n > len(units) {
		n = len(units)
	}
	ids := make([]uint32, len(units))
	for i, u := range units {
		ids[i] = u.ID
	}
	c.Awaiting = awaitCasualty
	g.pushFrame(&adhocFrame{
		origin:    combatOrigin(),
		playerIdx: who,
		request: eventbus.Request{
			Kind: eventbus.RequestSelectUnits, Player: who,
			Prompt: "Choose casualties", UnitChoices: ids, Min: n, Max: n,
		},
		onResume: func(resp eventbus.Response) error {
			if len(resp.Units) != n {
				return fmt.Errorf("must select exactly %d casualties", n)
			}
			if err := validCasualties(p, c.Position, resp.Units); err != nil {
				return err
			}
			for _, id := range resp.Units {
				p.RemoveUnit(id)
			}
			g.appendLog(who, fmt.Sprintf("lost %d units in combat", n))
			return nil
		},
	})
	g.pushPending(PendingEvent{Kind: PendingCombatCasualty, Player: who})
	return nil
}

// validCasualties enforces spec §4.5's selection constraints: a leader
// cannot be chosen while it would leave the stack with no other unit
// surviving only because the leader was removed is moot (leader can
// always be removed); the actual constraint is the reverse — a leader
// cannot be the sole SURVIVOR, i.e. every non-leader unit at the
// position must be chosen before the leader is. Settlers cannot be
// chosen while any non-settler unit at the position remains unchosen.
func validCasualties(p *player.Player, pos primitives.Position, chosen []uint32) error {
	units := p.UnitsAt(pos)
	chosenSet := map[uint32]bool{}
	for _, id := range chosen {
		chosenSet[id] = true
	}
	remaining := map[uint32]*primitives.Unit{}
	for _, u := range units {
		if !chosenSet[u.ID] {
			remaining[u.ID] = u
		}
	}
	onlyLeaderSurvives := len(remaining) == 1
	for _, u := range remaining {
		if u.Type == primitives.Leader && onlyLeaderSurvives {
			return fmt.Errorf("a leader cannot be the sole survivor")
		}
	}
	for _, id := range chosen {
		u := p.UnitByID(id)
		if u == nil || u.Type != primitives.Settler {
			continue
		}
		for _, other := range units {
			if other.Type != primitives.Settler && !chosenSet[other.ID] {
				return fmt.Errorf("a settler cannot be chosen as a casualty while other units remain")
			}
		}
	}
	return nil
}

// requestRetreat offers the attacker a retreat after round 2+ (spec
// §4.5 "Retreat").
func (g *Game) requestRetreat() error {
	c := g.Combat
	c.Awaiting = awaitRetreat
	g.pushFrame(&adhocFrame{
		origin:    combatOrigin(),
		playerIdx: c.Attacker,
		request:   eventbus.Request{Kind: eventbus.RequestBool, Player: c.Attacker, Prompt: "Retreat?"},
		onResume: func(resp eventbus.Response) error {
			c.Retreated = resp.Bool
			return nil
		},
	})
	g.pushPending(PendingEvent{Kind: PendingCombatRetreat, Player: c.Attacker})
	return nil
}

// continueCombat resumes the state machine once the event stack drains
// while a combat instance is in progress — wired into dispatch.go's
// afterPersistentEventsDrained.
func (g *Game) continueCombat() {
	c := g.Combat
	if c == nil {
		return
	}
	switch c.Awaiting {
	case awaitSiegecraft:
		c.Awaiting = awaitNone
		if c.SiegecraftCtx != nil {
			c.ExtraAttackerRolls = append(c.ExtraAttackerRolls, c.SiegecraftCtx.AttackerRolls...)
			c.ExtraAttackerCancels += c.SiegecraftCtx.AttackerCancels
			c.SiegecraftCtx = nil
		}
		_ = g.combatPlayRound()
	case awaitRetreat:
		c.Awaiting = awaitNone
		if c.Retreated {
			_ = g.combatEnd()
			return
		}
		c.Round++
		_ = g.combatPlayRound()
	default:
		c.Awaiting = awaitNone
		_ = g.combatAdvance()
	}
}

// combatEnd closes out the instance: computes the winner, applies
// conquest side effects, and clears Game.Combat (spec §4.5 "End").
func (g *Game) combatEnd() error {
	c := g.Combat
	pos := c.Position
	attacker, defender := c.Attacker, c.Defender
	attackerArmy := g.armyUnitsOf(attacker, pos)
	defenderArmy := g.armyUnitsOf(defender, pos)

	winner := -1
	switch {
	case c.Retreated:
		winner = defender
	case defenderArmy == 0 && attackerArmy > 0:
		winner = attacker
	case attackerArmy == 0 && defenderArmy > 0:
		winner = defender
	}

	g.appendLog(attacker, fmt.Sprintf("combat at %s ended", pos))
	g.Combat = nil

	if winner == attacker {
		if city := g.Player(defender).CityAt(pos); city != nil {
			g.captureCity(attacker, city)
		}
	}
	return nil
}

// captureCity transfers ownership of city to attacker, applies the
// Angry mood and captured-leader VP, and offers the losing player a
// free-settler placement (spec §4.5 "Conquest").
func (g *Game) captureCity(attacker int, city *player.City) {
	defenderIdx := city.Owner
	defender := g.Player(defenderIdx)
	attackerPlayer := g.Player(attacker)

	for _, u := range defender.UnitsAt(city.Position) {
		if u.Type == primitives.Leader {
			defender.RemoveUnit(u.ID)
			attackerPlayer.AwardVP("captured_leader", 4)
		}
	}
	defender.RemoveCity(city.Position)
	city.Owner = attacker
	city.Mood = player.Angry
	city.Activated = false
	attackerPlayer.Cities = append(attackerPlayer.Cities, city)
	g.appendLog(attacker, "captured city at "+city.Position.String())
	g.offerPlaceSettler(defenderIdx)
}

// offerPlaceSettler lets a player who just lost a city place a free
// settler in one of their remaining cities (spec §4.5 "Place Settler").
func (g *Game) offerPlaceSettler(loserIdx int) {
	loser := g.Player(loserIdx)
	if len(loser.Cities) == 0 {
		return
	}
	positions := make([]primitives.Position, len(loser.Cities))
	for i, c := range loser.Cities {
		positions[i] = c.Position
	}
	g.pushFrame(&adhocFrame{
		origin:    combatOrigin(),
		playerIdx: loserIdx,
		request: eventbus.Request{
			Kind: eventbus.RequestSelectPositions, Player: loserIdx,
			Prompt: "Place a free settler in one of your cities?", PositionChoices: positions, Min: 0, Max: 1,
		},
		onResume: func(resp eventbus.Response) error {
			if len(resp.Positions) == 1 {
				g.spawnUnit(loserIdx, primitives.Settler, resp.Positions[0])
			}
			return nil
		},
	})
	g.pushPending(PendingEvent{Kind: PendingPlaceSettler, Player: loserIdx})
}
