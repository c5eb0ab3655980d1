package engine

import (
	"fmt"

	"github.com/rackforge/hexdominion/internal/enginerr"
	"github.com/rackforge/hexdominion/internal/eventbus"
	"github.com/rackforge/hexdominion/internal/player"
	"github.com/rackforge/hexdominion/internal/primitives"
)

// playInfluenceCultureAttempt implements spec §4.4/§4.6: an attempt to
// take over one building in a target city by paying culture tokens for
// range/result boosts and rolling against the building's defense
// (1 + pieces the defender owns in that city).
func (g *Game) playInfluenceCultureAttempt(a *PlayingAction, playerIdx int) error {
	p := g.Player(playerIdx)
	startCity := p.CityAt(a.InfluenceFrom)
	if startCity == nil {
		return &enginerr.PreconditionFailedError{Reason: "no city owned by the player at the starting position"}
	}
	dist := a.InfluenceFrom.Distance(a.InfluenceTo)
	if dist > startCity.Size()+a.RangeBoost {
		return &enginerr.PreconditionFailedError{Reason: "target is out of range"}
	}

	defenderIdx := -1
	var targetCity *player.City
	for i, op := range g.Players {
		if i == playerIdx {
			continue
		}
		if c := op.CityAt(a.InfluenceTo); c != nil {
			targetCity = c
			defenderIdx = i
			break
		}
	}
	if targetCity == nil {
		return &enginerr.PreconditionFailedError{Reason: "no other player's city at the target position"}
	}
	owner, ok := targetCity.BuildingOwner(a.InfluenceBuilding)
	if !ok {
		return &enginerr.PreconditionFailedError{Reason: "target city has no such building"}
	}

	cost := primitives.CultureTokens(a.RangeBoost + a.ResultBoost)
	if !p.Resources.CanAfford(cost) {
		return &enginerr.NotEnoughResourcesError{Reason: "not enough culture tokens for the requested boosts"}
	}
	p.Resources = p.Resources.Sub(cost)

	g.markHiddenInfoRevealed()
	roll := g.Rng.RollDie()
	value := roll/2 + 1 // spec §4.4: "ignore the +unit bonuses" for influence rolls
	defense := targetCity.Defense(owner)
	total := value + a.ResultBoost
	g.appendLog(playerIdx, fmt.Sprintf("cultural influence attempt at %s: roll value %d, defense %d", a.InfluenceTo.String(), total, defense))

	if total < defense {
		return nil
	}

	needed := total - defense + 1
	g.pushInfluenceRepelFrame(playerIdx, defenderIdx, targetCity, a.InfluenceBuilding, needed)
	return nil
}

// pushInfluenceRepelFrame suspends the turn on the defender's choice to
// pay needed culture tokens to keep building, or hand it to attacker.
// Factored out of playInfluenceCultureAttempt so LoadGameData's pending
// event restore (snapshot.go) can rebuild the identical frame from a
// PendingEvent without re-rolling the attempt.
func (g *Game) pushInfluenceRepelFrame(attacker, defenderIdx int, targetCity *player.City, building player.Building, needed int) {
	defender := g.Player(defenderIdx)
	g.pushFrame(&adhocFrame{
		origin:    combatOrigin(),
		playerIdx: defenderIdx,
		request: eventbus.Request{
			Kind: eventbus.RequestPayment, Player: defenderIdx,
			Prompt:         fmt.Sprintf("Pay %d culture tokens to repel this cultural influence attempt?", needed),
			PaymentDefault: primitives.CultureTokens(needed),
		},
		onResume: func(resp eventbus.Response) error {
			if resp.Payment.CultureTokens >= needed && defender.Resources.CanAfford(primitives.CultureTokens(needed)) {
				defender.Resources = defender.Resources.Sub(primitives.CultureTokens(needed))
				g.appendLog(defenderIdx, "paid culture tokens to repel a cultural influence attempt")
				return nil
			}
			targetCity.TransferBuilding(building, attacker)
			g.appendLog(attacker, "gained a building via cultural influence")
			return nil
		},
	})
	g.pushPending(PendingEvent{
		Kind: PendingInfluenceRepel, Player: defenderIdx,
		InfluenceAttacker: attacker, InfluenceDefender: defenderIdx,
		InfluenceCity: targetCity.Position, InfluenceBuilding: building, InfluenceNeeded: needed,
	})
}
