// Package gst computes the CGST/SGST/IGST breakdown for a taxable amount.
package gst

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// Breakdown holds the tax components derived for one invoice line.
// Exactly one of {CGST+SGST} or {IGST} is non-zero, never both.
type Breakdown struct {
	CGST       decimal.Decimal
	SGST       decimal.Decimal
	IGST       decimal.Decimal
	TaxAmount  decimal.Decimal
	Interstate bool
}

// Interstate reports whether a supply crosses state lines. State names are
// compared after trimming and case folding, so "Gujarat" and " gujarat "
// refer to the same state.
func Interstate(buyerState, sellerState string) bool {
	b := strings.ToLower(strings.TrimSpace(buyerState))
	s := strings.ToLower(strings.TrimSpace(sellerState))
	return b != s
}

// Split derives the tax breakdown for a taxable value at the given rate.
// Intra-state supplies split the levy evenly into CGST and SGST; inter-state
// supplies charge IGST on the whole amount. Each component is rounded half-up
// to 2 decimal places on its own, never derived from a pre-rounded whole, so
// CGST+SGST can differ from a single rounded total by one cent. TaxAmount is
// the plain sum of the rounded components.
func Split(taxableValue, taxRate decimal.Decimal, buyerState, sellerState string) Breakdown {
	if Interstate(buyerState, sellerState) {
		igst := taxableValue.Mul(taxRate).Div(hundred).Round(2)
		return Breakdown{
			CGST:       decimal.Zero,
			SGST:       decimal.Zero,
			IGST:       igst,
			TaxAmount:  igst,
			Interstate: true,
		}
	}

	half := taxableValue.Mul(taxRate).Div(two).Div(hundred).Round(2)
	return Breakdown{
		CGST:      half,
		SGST:      half,
		IGST:      decimal.Zero,
		TaxAmount: half.Add(half),
	}
}
