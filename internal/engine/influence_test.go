package engine

import (
	"testing"

	"github.com/rackforge/hexdominion/internal/eventbus"
	"github.com/rackforge/hexdominion/internal/player"
	"github.com/rackforge/hexdominion/internal/primitives"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newInfluenceFixture(t *testing.T) (*Game, *player.City, *player.City) {
	t.Helper()
	g := Init(2, "influence-fixture")
	home := primitives.Position{Q: 0, R: 0}
	target := home.Neighbors()[0]

	startCity := player.NewCity(0, home)
	g.Player(0).Cities = append(g.Player(0).Cities, startCity)

	targetCity := player.NewCity(1, target)
	targetCity.AddBuilding(player.Temple, 1)
	g.Player(1).Cities = append(g.Player(1).Cities, targetCity)

	return g, startCity, targetCity
}

func TestInfluenceCultureAttemptOutOfRangeFails(t *testing.T) {
	g, _, _ := newInfluenceFixture(t)
	far := primitives.Position{Q: 10, R: 10}
	g.Player(1).Cities[0].Position = far

	err := g.playInfluenceCultureAttempt(&PlayingAction{
		InfluenceFrom: primitives.Position{Q: 0, R: 0}, InfluenceTo: far, InfluenceBuilding: player.Temple,
	}, 0)
	require.Error(t, err)
}

func TestInfluenceCultureAttemptSucceedsAndDefenderCanPayToRepel(t *testing.T) {
	g, startCity, targetCity := newInfluenceFixture(t)
	g.Player(0).Resources = primitives.CultureTokens(5)
	g.Player(1).Resources = primitives.CultureTokens(10)
	g.Rng.DiceQueue = []int{10} // value = 10/2+1 = 6, defense = 2, needed = 5

	require.NoError(t, g.playInfluenceCultureAttempt(&PlayingAction{
		InfluenceFrom: startCity.Position, InfluenceTo: targetCity.Position, InfluenceBuilding: player.Temple,
	}, 0))
	require.NotNil(t, g.EventStack.Top())

	top := g.EventStack.Top()
	require.Equal(t, 1, top.Player())
	resp := eventbus.Response{Kind: eventbus.RequestPayment, Payment: primitives.CultureTokens(5)}
	require.NoError(t, g.Execute(Action{Kind: ActionResponse, Response: &resp}, 1))

	owner, ok := targetCity.BuildingOwner(player.Temple)
	require.True(t, ok)
	assert.Equal(t, 1, owner, "defender paid enough, so the building stays theirs")
}

func TestInfluenceCultureAttemptTransfersBuildingWhenDefenderCannotPay(t *testing.T) {
	g, startCity, targetCity := newInfluenceFixture(t)
	g.Player(0).Resources = primitives.CultureTokens(5)
	g.Player(1).Resources = primitives.CultureTokens(0)
	g.Rng.DiceQueue = []int{10}

	require.NoError(t, g.playInfluenceCultureAttempt(&PlayingAction{
		InfluenceFrom: startCity.Position, InfluenceTo: targetCity.Position, InfluenceBuilding: player.Temple,
	}, 0))
	resp := eventbus.Response{Kind: eventbus.RequestPayment, Payment: primitives.ResourcePile{}}
	require.NoError(t, g.Execute(Action{Kind: ActionResponse, Response: &resp}, 1))

	owner, ok := targetCity.BuildingOwner(player.Temple)
	require.True(t, ok)
	assert.Equal(t, 0, owner, "defender could not pay, so the attacker takes the building")
}
