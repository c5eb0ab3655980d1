package primitives_test

import (
	"testing"

	"github.com/rackforge/hexdominion/internal/primitives"
	"github.com/stretchr/testify/assert"
)

func TestResourcePileAddCommutativeAssociative(t *testing.T) {
	a := primitives.Food(2).Add(primitives.Wood(1))
	b := primitives.Wood(1).Add(primitives.Food(2))
	assert.Equal(t, a, b)

	c := primitives.Ore(3)
	assert.Equal(t, a.Add(b).Add(c), a.Add(b.Add(c)))
}

func TestResourcePileSubtractionSaturates(t *testing.T) {
	p := primitives.Food(1)
	result := p.Sub(primitives.Food(5))
	assert.Equal(t, 0, result.Food)
}

func TestResourcePileCanAffordGoldSubstitution(t *testing.T) {
	p := primitives.Gold(2)
	assert.True(t, p.CanAfford(primitives.Wood(1).Add(primitives.Ore(1))))
	assert.False(t, p.CanAfford(primitives.Wood(1).Add(primitives.Ore(2))))
}

func TestResourcePileCanAffordNeverSubstitutesTokens(t *testing.T) {
	p := primitives.Gold(10)
	assert.False(t, p.CanAfford(primitives.MoodTokens(1)))
}

func TestResourcePileCappedBy(t *testing.T) {
	p := primitives.ResourcePile{Food: 5, Wood: 9}
	limit := primitives.DefaultLimit()
	capped := p.CappedBy(limit)
	assert.Equal(t, primitives.DefaultFoodLimit, capped.Food)
	assert.Equal(t, primitives.DefaultOtherLimit, capped.Wood)
}
