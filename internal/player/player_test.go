package player_test

import (
	"testing"

	"github.com/rackforge/hexdominion/internal/player"
	"github.com/rackforge/hexdominion/internal/primitives"
	"github.com/stretchr/testify/assert"
)

func TestCityModifiedSize(t *testing.T) {
	c := player.NewCity(0, primitives.NewPosition(0, 0))
	c.AddBuilding(player.Market, 0)
	c.AddBuilding(player.Temple, 0)
	assert.Equal(t, 3, c.Size())

	c.Mood = player.Happy
	assert.Equal(t, 4, c.ModifiedSize())
	c.Mood = player.Neutral
	assert.Equal(t, 3, c.ModifiedSize())
	c.Mood = player.Angry
	assert.Equal(t, 1, c.ModifiedSize())
}

func TestCityBuildingCapAtFour(t *testing.T) {
	c := player.NewCity(0, primitives.NewPosition(0, 0))
	kinds := []player.Building{player.Academy, player.Market, player.Obelisk, player.Observatory}
	for _, k := range kinds {
		assert.True(t, c.CanAcceptBuilding(k))
		c.AddBuilding(k, 0)
	}
	assert.Equal(t, 5, c.Size(), "size 5 closes further construction")
	assert.False(t, c.CanAcceptBuilding(player.Fortress))
}

func TestCityDefenseCountsOwnedPieces(t *testing.T) {
	c := player.NewCity(0, primitives.NewPosition(0, 0))
	c.AddBuilding(player.Temple, 1) // owned by a different player than the city
	assert.Equal(t, 2, c.Defense(1))
	assert.Equal(t, 1, c.Defense(0))
}

func TestEventListenerIDsTrackedByOrigin(t *testing.T) {
	p := player.New(0, player.Human)
	p.AddEventListenerID("advance:Math", 7)
	p.AddEventListenerID("advance:Math", 8)
	ids := p.TakeEventListenerIDs("advance:Math")
	assert.Equal(t, []int{7, 8}, ids)
	assert.Empty(t, p.TakeEventListenerIDs("advance:Math"))
}

func TestUnitCapByKind(t *testing.T) {
	assert.Equal(t, primitives.HumanUnitCap, player.Human.UnitCap())
	assert.Equal(t, primitives.BarbarianUnitCap, player.Barbarian.UnitCap())
	assert.Equal(t, primitives.PirateUnitCap, player.Pirate.UnitCap())
}
