package domain

import "github.com/shopspring/decimal"

// SupplyType distinguishes intra-state from inter-state supplies.
type SupplyType string

const (
	SupplyIntraState SupplyType = "intra"
	SupplyInterState SupplyType = "inter"
)

// PaymentMode represents how an invoice was settled.
type PaymentMode string

const (
	PaymentCash   PaymentMode = "Cash"
	PaymentBank   PaymentMode = "Bank"
	PaymentUPI    PaymentMode = "UPI"
	PaymentCredit PaymentMode = "Credit"
)

// AllowedPaymentModes is the set of accepted payment modes.
var AllowedPaymentModes = map[PaymentMode]bool{
	PaymentCash:   true,
	PaymentBank:   true,
	PaymentUPI:    true,
	PaymentCredit: true,
}

// TaxSlabs lists the permitted GST rate percentages.
var TaxSlabs = []int64{0, 5, 12, 18, 28}

// IsPermittedSlab reports whether rate is one of the permitted GST slabs.
func IsPermittedSlab(rate decimal.Decimal) bool {
	for _, slab := range TaxSlabs {
		if rate.Equal(decimal.NewFromInt(slab)) {
			return true
		}
	}
	return false
}
