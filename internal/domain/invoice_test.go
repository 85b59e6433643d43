package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brickledger/internal/domain"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func validInput() domain.InvoiceInput {
	return domain.InvoiceInput{
		InvoiceNumber: "INV-001",
		Date:          "2024-04-05",
		BuyerName:     "Shree Traders",
		BuyerGSTIN:    "24ABCDE1234F1Z5",
		BuyerState:    "Gujarat",
		SellerState:   "Gujarat",
		Description:   "Fly-ash bricks",
		Quantity:      dec("2000"),
		UnitPrice:     dec("5"),
		TaxRate:       dec("18"),
		PaymentMode:   "Bank",
	}
}

func TestNewInvoiceRecord_DerivesAllFields(t *testing.T) {
	rec, err := domain.NewInvoiceRecord(validInput())
	require.NoError(t, err)

	assert.Equal(t, "INV-001", rec.InvoiceNumber)
	assert.Equal(t, domain.MonthKey("2024-04"), rec.Month())
	assert.Equal(t, domain.SupplyIntraState, rec.SupplyType)
	assert.True(t, rec.TaxableValue.Equal(dec("10000.00")), "taxable = %s", rec.TaxableValue)
	assert.True(t, rec.CGST.Equal(dec("900.00")), "cgst = %s", rec.CGST)
	assert.True(t, rec.SGST.Equal(dec("900.00")), "sgst = %s", rec.SGST)
	assert.True(t, rec.IGST.IsZero())
	assert.True(t, rec.TaxAmount.Equal(dec("1800.00")))
	assert.True(t, rec.TotalValue.Equal(dec("11800.00")), "total = %s", rec.TotalValue)
}

func TestNewInvoiceRecord_InterState(t *testing.T) {
	in := validInput()
	in.BuyerState = "Maharashtra"
	in.Quantity = dec("1000")
	in.TaxRate = dec("12")

	rec, err := domain.NewInvoiceRecord(in)
	require.NoError(t, err)

	assert.Equal(t, domain.SupplyInterState, rec.SupplyType)
	assert.True(t, rec.IGST.Equal(dec("600.00")), "igst = %s", rec.IGST)
	assert.True(t, rec.CGST.IsZero())
	assert.True(t, rec.SGST.IsZero())
	assert.True(t, rec.TotalValue.Equal(dec("5600.00")))
}

func TestNewInvoiceRecord_TotalIsTaxablePlusTax(t *testing.T) {
	// An awkward quantity so the taxable value needs rounding.
	in := validInput()
	in.Quantity = dec("333.5")
	in.UnitPrice = dec("3.33")

	rec, err := domain.NewInvoiceRecord(in)
	require.NoError(t, err)

	// 333.5 * 3.33 = 1110.555, rounded half-up to 1110.56.
	assert.True(t, rec.TaxableValue.Equal(dec("1110.56")), "taxable = %s", rec.TaxableValue)
	assert.True(t, rec.TotalValue.Equal(rec.TaxableValue.Add(rec.TaxAmount)))
}

func TestNewInvoiceRecord_DayFirstDate(t *testing.T) {
	in := validInput()
	in.Date = "05-04-2024"

	rec, err := domain.NewInvoiceRecord(in)
	require.NoError(t, err)
	assert.Equal(t, domain.MonthKey("2024-04"), rec.Month())
}

func TestNewInvoiceRecord_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*domain.InvoiceInput)
		field  string
	}{
		{"empty_invoice_number", func(in *domain.InvoiceInput) { in.InvoiceNumber = "  " }, "invoice_number"},
		{"unparseable_date", func(in *domain.InvoiceInput) { in.Date = "April 5th" }, "date"},
		{"zero_quantity", func(in *domain.InvoiceInput) { in.Quantity = dec("0") }, "quantity"},
		{"negative_quantity", func(in *domain.InvoiceInput) { in.Quantity = dec("-1") }, "quantity"},
		{"negative_unit_price", func(in *domain.InvoiceInput) { in.UnitPrice = dec("-0.01") }, "unit_price"},
		{"rate_not_in_slabs", func(in *domain.InvoiceInput) { in.TaxRate = dec("15") }, "tax_rate"},
		{"empty_buyer_state", func(in *domain.InvoiceInput) { in.BuyerState = "" }, "buyer_state"},
		{"empty_seller_state", func(in *domain.InvoiceInput) { in.SellerState = "" }, "seller_state"},
		{"unknown_payment_mode", func(in *domain.InvoiceInput) { in.PaymentMode = "Barter" }, "payment_mode"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)

			rec, err := domain.NewInvoiceRecord(in)
			assert.Nil(t, rec)
			require.ErrorIs(t, err, domain.ErrValidation)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestNewInvoiceRecord_ZeroUnitPriceAllowed(t *testing.T) {
	in := validInput()
	in.UnitPrice = dec("0")

	rec, err := domain.NewInvoiceRecord(in)
	require.NoError(t, err)
	assert.True(t, rec.TaxableValue.IsZero())
	assert.True(t, rec.TotalValue.IsZero())
}

func TestIsPermittedSlab(t *testing.T) {
	for _, rate := range []string{"0", "5", "12", "18", "28"} {
		assert.True(t, domain.IsPermittedSlab(dec(rate)), "rate %s", rate)
	}
	for _, rate := range []string{"1", "15", "18.5", "-5", "100"} {
		assert.False(t, domain.IsPermittedSlab(dec(rate)), "rate %s", rate)
	}
}
