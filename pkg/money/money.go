// Package money holds the decimal arithmetic shared by the aggregation
// engine, goal tracking and the import pipeline. Currency amounts are
// never represented as binary floats; rounding happens only at the
// presentation boundary.
package money

import (
	"github.com/shopspring/decimal"

	"github.com/aristath/ledgerfolio/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Invested returns quantity x cost basis per unit. For lump-sum
// categories quantity is 1, so this is the principal.
func Invested(p domain.Position) decimal.Decimal {
	return p.Quantity.Mul(p.CostBasisPerUnit)
}

// CurrentValue returns quantity x current price per unit.
func CurrentValue(p domain.Position) decimal.Decimal {
	return p.Quantity.Mul(p.CurrentPricePerUnit)
}

// Gain returns current value minus invested amount.
func Gain(p domain.Position) decimal.Decimal {
	return CurrentValue(p).Sub(Invested(p))
}

// GainPercent returns the gain as a percentage of the invested amount.
// A zero invested amount yields zero, never a division error.
func GainPercent(p domain.Position) decimal.Decimal {
	invested := Invested(p)
	if invested.IsZero() {
		return decimal.Zero
	}
	return Gain(p).Div(invested).Mul(hundred)
}
