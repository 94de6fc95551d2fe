// Package finance derives the monetary fields of a sales transaction from its inputs.
// Recompute is the only way derived fields come into existence: services call it on
// every mutating operation and persist its output alongside the inputs.
package finance

import (
	"fmt"
	"math"

	"github.com/mkuiper/Dealership-CRM-Backend/internal/apperrors"
)

// Inputs are the non-derived monetary fields of a sales transaction.
type Inputs struct {
	GrossPrice  float64
	Discount    float64
	TaxRate     float64
	CostOfGoods *float64
}

// Derived holds every field that is a pure function of Inputs.
// Margin and MarginPercent are nil when CostOfGoods is absent; MarginPercent is
// additionally nil when SalePrice is zero.
type Derived struct {
	SalePrice     float64
	TaxAmount     float64
	TotalPrice    float64
	Margin        *float64
	MarginPercent *float64
}

// Recompute validates the inputs and derives sale price, tax, total, and margin.
// It is pure: identical inputs always yield identical outputs.
//
// Rounding happens exactly once, half-up to 2 decimals, at the tax computation.
// Everything else stays at full precision so rounding error does not compound.
func Recompute(in Inputs) (Derived, error) {
	if in.GrossPrice < 0 {
		return Derived{}, fmt.Errorf("%w: gross price cannot be negative", apperrors.ErrInvalidFinancialInput)
	}
	if in.Discount < 0 {
		return Derived{}, fmt.Errorf("%w: discount cannot be negative", apperrors.ErrInvalidFinancialInput)
	}
	if in.Discount > in.GrossPrice {
		return Derived{}, fmt.Errorf("%w: discount exceeds gross price", apperrors.ErrInvalidFinancialInput)
	}
	if in.TaxRate < 0 || in.TaxRate > 1 {
		return Derived{}, fmt.Errorf("%w: tax rate must be between 0 and 1", apperrors.ErrInvalidFinancialInput)
	}
	if in.CostOfGoods != nil && *in.CostOfGoods < 0 {
		return Derived{}, fmt.Errorf("%w: cost of goods cannot be negative", apperrors.ErrInvalidFinancialInput)
	}

	d := Derived{}
	d.SalePrice = in.GrossPrice - in.Discount
	d.TaxAmount = round2(d.SalePrice * in.TaxRate)
	d.TotalPrice = d.SalePrice + d.TaxAmount

	if in.CostOfGoods != nil {
		margin := d.SalePrice - *in.CostOfGoods
		d.Margin = &margin
		if d.SalePrice > 0 {
			pct := margin / d.SalePrice
			d.MarginPercent = &pct
		}
	}

	return d, nil
}

// round2 rounds half-up to 2 decimal places. Inputs are guaranteed non-negative here
// (sale price and tax rate are both validated >= 0).
func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
