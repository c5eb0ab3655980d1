package payment_test

import (
	"testing"

	"github.com/rackforge/hexdominion/internal/payment"
	"github.com/rackforge/hexdominion/internal/primitives"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedPaymentExactMatch(t *testing.T) {
	opts := payment.Fixed(primitives.Food(1).Add(primitives.Ideas(1)).Add(primitives.Gold(1)))
	assert.True(t, opts.IsValidPayment(primitives.Food(1).Add(primitives.Ideas(1)).Add(primitives.Gold(1))))
	assert.False(t, opts.IsValidPayment(primitives.Food(2)))
}

func TestFixedPaymentWithDiscount(t *testing.T) {
	opts := payment.FixedWithDiscount(primitives.Ore(2).Add(primitives.Wood(1)), 1)
	// discount eats into Ore first.
	assert.True(t, opts.IsValidPayment(primitives.Ore(1).Add(primitives.Wood(1))))
	assert.False(t, opts.IsValidPayment(primitives.Ore(2).Add(primitives.Wood(1))))
}

func TestGoldConversion(t *testing.T) {
	opts := payment.Fixed(primitives.Wood(2)).WithConversion(payment.Conversion{
		From: payment.KindGold, To: payment.KindWood, Limit: -1,
	})
	assert.True(t, opts.IsValidPayment(primitives.Gold(2)))
	assert.True(t, opts.IsValidPayment(primitives.Wood(1).Add(primitives.Gold(1))))
}

func TestConversionLimit(t *testing.T) {
	opts := payment.Fixed(primitives.Wood(3)).WithConversion(payment.Conversion{
		From: payment.KindGold, To: payment.KindWood, Limit: 1,
	})
	assert.True(t, opts.IsValidPayment(primitives.Wood(2).Add(primitives.Gold(1))))
	assert.False(t, opts.IsValidPayment(primitives.Wood(1).Add(primitives.Gold(2))))
}

func TestSumPayment(t *testing.T) {
	opts := payment.Sum(2, payment.KindFood, payment.KindWood, payment.KindOre)
	assert.True(t, opts.IsValidPayment(primitives.Food(1).Add(primitives.Wood(1))))
	assert.False(t, opts.IsValidPayment(primitives.Food(1)))
	assert.False(t, opts.IsValidPayment(primitives.Gold(2)))
}

func TestApplySubtractsOnValidPayment(t *testing.T) {
	opts := payment.Fixed(primitives.Food(1))
	available := primitives.Food(3)
	left, err := opts.Apply(available, primitives.Food(1))
	require.NoError(t, err)
	assert.Equal(t, 2, left.Food)
}

func TestApplyRejectsInvalidPayment(t *testing.T) {
	opts := payment.Fixed(primitives.Food(1))
	_, err := opts.Apply(primitives.Food(3), primitives.Food(2))
	require.Error(t, err)
}

func TestApplyRejectsUnaffordablePayment(t *testing.T) {
	opts := payment.Fixed(primitives.Food(1))
	_, err := opts.Apply(primitives.ResourcePile{}, primitives.Food(1))
	require.Error(t, err)
}
