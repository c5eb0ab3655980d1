package engine

import (
	"testing"

	"github.com/rackforge/hexdominion/internal/eventbus"
	"github.com/rackforge/hexdominion/internal/hexmap"
	"github.com/rackforge/hexdominion/internal/player"
	"github.com/rackforge/hexdominion/internal/primitives"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessRollsAppliesUnitBonusesAtMostOncePerUnit(t *testing.T) {
	counts := primitives.Units{Infantry: 1, Cavalry: 1, Elephants: 1}
	rng := primitives.NewRng("x")
	// 9 -> infantry face (roll/2+1=5, +1 infantry bonus = 6, bonus spent)
	// 9 -> infantry face again, bonus already spent, plain 5
	// 6 -> cavalry face (roll/2+1=4, +2 cavalry bonus = 6)
	// 3 -> elephant face, cancels entirely instead of adding value
	value, cancels := processRolls([]int{9, 9, 6, 3}, counts, false, rng)
	assert.Equal(t, 6+5+6, value)
	assert.Equal(t, 1, cancels)
}

func TestProcessRollsLeaderRerollsFaceOneOrBelow(t *testing.T) {
	rng := primitives.NewRng("leader-reroll")
	rng.DiceQueue = []int{5} // the reroll result once the leader face is seen
	value, cancels := processRolls([]int{0}, primitives.Units{}, true, rng)
	assert.Equal(t, 0, cancels)
	assert.Equal(t, 5/2+1, value)
}

func TestInitiateCombatCapturesCityWithoutDiceWhenUndefended(t *testing.T) {
	g := Init(2, "capture-fixture")
	pos := primitives.Position{Q: 1, R: 1}
	city := player.NewCity(1, pos)
	g.Player(1).Cities = append(g.Player(1).Cities, city)

	require.NoError(t, g.initiateCombat(0, pos))
	assert.Nil(t, g.Combat)
	assert.Equal(t, 0, city.Owner)
	assert.Equal(t, player.Angry, city.Mood)
	assert.Empty(t, g.Player(1).Cities)
}

// resolveTopFrame answers whatever is pending at the top of the event
// stack with a response built from the caller-supplied field setters,
// via the same Execute path a real client would use.
func resolveTopFrame(t *testing.T, g *Game, set func(*eventbus.Response)) {
	t.Helper()
	top := g.EventStack.Top()
	require.NotNil(t, top)
	resp := eventbus.Response{Kind: top.Request().Kind}
	set(&resp)
	require.NoError(t, g.Execute(Action{Kind: ActionResponse, Response: &resp}, top.Player()))
}

func TestCombatResolvesToOneSidedVictoryWithForcedDice(t *testing.T) {
	g := Init(2, "combat-fixture")
	pos := primitives.Position{Q: 0, R: 0}
	g.Map.Tiles[pos] = hexmap.Fertile
	attacker, defender := 0, 1
	g.spawnUnit(attacker, primitives.Infantry, pos)
	g.spawnUnit(defender, primitives.Infantry, pos)

	// Round 1: attacker rolls 11 (value 6, plus the infantry
	// bonus for that face = 7, one hit at /5); defender
	// rolls 0 (value 1, no hits). The defender's lone unit then dies as
	// a casualty, ending combat without ever reaching a retreat offer.
	g.Rng.DiceQueue = []int{11, 0}

	require.NoError(t, g.initiateCombat(attacker, pos))
	require.NotNil(t, g.Combat)

	for i := 0; i < 10 && g.Combat != nil; i++ {
		req := g.EventStack.Top().Request()
		switch req.Kind {
		case eventbus.RequestSelectUnits:
			resolveTopFrame(t, g, func(r *eventbus.Response) { r.Units = append([]uint32{}, req.UnitChoices[:req.Min]...) })
		case eventbus.RequestBool:
			resolveTopFrame(t, g, func(r *eventbus.Response) { r.Bool = false })
		case eventbus.RequestSelectPositions:
			resolveTopFrame(t, g, func(r *eventbus.Response) {})
		default:
			t.Fatalf("unexpected pending request kind %d", req.Kind)
		}
	}
	assert.Nil(t, g.Combat)
	assert.Empty(t, g.Player(defender).Units)
	assert.NotEmpty(t, g.Player(attacker).Units)
}
