package entitlement

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntitlementUsesConfiguredRate(t *testing.T) {
	calc := NewCalculator(5)

	got, err := calc.Entitlement(4)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(20)), "got %s", got)

	calc = NewCalculator(7.5)
	got, err = calc.Entitlement(3)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromFloat(22.5)), "got %s", got)
}

func TestEntitlementRejectsNonPositiveMembers(t *testing.T) {
	calc := NewCalculator(5)

	_, err := calc.Entitlement(0)
	assert.ErrorIs(t, err, ErrInvalidMemberCount)

	_, err = calc.Entitlement(-3)
	assert.ErrorIs(t, err, ErrInvalidMemberCount)
}

func TestCalculatorFallsBackToDefaultRate(t *testing.T) {
	calc := NewCalculator(0)
	got, err := calc.Entitlement(2)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.NewFromInt(2*DefaultRatePerPersonKg)))
}

func TestDeficitClampsAtZero(t *testing.T) {
	e := decimal.NewFromInt(20)

	assert.True(t, Deficit(e, decimal.NewFromInt(15)).Equal(decimal.NewFromInt(5)))
	assert.True(t, Deficit(e, decimal.NewFromInt(20)).Equal(decimal.Zero))
	// surplus is not a negative deficit
	assert.True(t, Deficit(e, decimal.NewFromInt(25)).Equal(decimal.Zero))
	assert.False(t, Deficit(e, decimal.NewFromInt(25)).IsNegative())
}

func TestDeficitRounding(t *testing.T) {
	e := decimal.NewFromFloat(12.345)
	r := decimal.NewFromFloat(10.001)
	assert.Equal(t, "2.34", Deficit(e, r).StringFixed(2))
}
