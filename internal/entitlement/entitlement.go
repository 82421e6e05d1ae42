// Package entitlement computes how much rice a family is owed and how far a
// distribution fell short. Both operations are pure and side-effect free; the
// same calculator is used at submission time (persisted) and by the report
// aggregator (ad hoc).
package entitlement

import (
	"errors"

	"github.com/shopspring/decimal"
)

// DefaultRatePerPersonKg is the fallback monthly rate when none is configured.
const DefaultRatePerPersonKg = 5

var ErrInvalidMemberCount = errors.New("invalid_member_count")

// Calculator derives entitlement and deficit from a configured per-person rate.
type Calculator struct {
	ratePerPersonKg decimal.Decimal
}

func NewCalculator(ratePerPersonKg float64) Calculator {
	if ratePerPersonKg <= 0 {
		ratePerPersonKg = DefaultRatePerPersonKg
	}
	return Calculator{ratePerPersonKg: decimal.NewFromFloat(ratePerPersonKg)}
}

// RatePerPersonKg returns the configured rate.
func (c Calculator) RatePerPersonKg() decimal.Decimal {
	return c.ratePerPersonKg
}

// Entitlement returns members * rate, rounded to 2 decimal places.
func (c Calculator) Entitlement(members int) (decimal.Decimal, error) {
	if members <= 0 {
		return decimal.Zero, ErrInvalidMemberCount
	}
	return c.ratePerPersonKg.Mul(decimal.NewFromInt(int64(members))).Round(2), nil
}

// Deficit returns max(entitlement - received, 0). A surplus is not a negative
// deficit; callers that care about over-delivery use the signed difference.
func Deficit(entitlement, received decimal.Decimal) decimal.Decimal {
	d := entitlement.Sub(received)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d.Round(2)
}
