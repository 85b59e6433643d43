package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthKey identifies a (year, month) bucket, formatted as "2006-01".
// The format sorts chronologically as a plain string.
type MonthKey string

// MonthKeyOf returns the MonthKey of the month containing t.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey(t.Format("2006-01"))
}

// InvoiceRecord is one line of the daily invoice register. Derived fields
// (TaxableValue, the tax breakdown, and TotalValue) are computed once at
// construction and never set by callers.
type InvoiceRecord struct {
	InvoiceNumber string          `db:"invoice_number" json:"invoice_number"`
	Date          time.Time       `db:"invoice_date" json:"date"`
	BuyerName     string          `db:"buyer_name" json:"buyer_name"`
	BuyerGSTIN    string          `db:"buyer_gstin" json:"buyer_gstin,omitempty"`
	BuyerState    string          `db:"buyer_state" json:"buyer_state"`
	SellerState   string          `db:"seller_state" json:"seller_state"`
	PlaceOfSupply string          `db:"place_of_supply" json:"place_of_supply,omitempty"`
	Description   string          `db:"item_description" json:"item_description"`
	Quantity      decimal.Decimal `db:"quantity" json:"quantity"`
	UnitPrice     decimal.Decimal `db:"unit_price" json:"unit_price"`
	TaxableValue  decimal.Decimal `db:"taxable_value" json:"taxable_value"`
	TaxRate       decimal.Decimal `db:"tax_rate" json:"tax_rate"`
	SupplyType    SupplyType      `db:"supply_type" json:"supply_type"`
	CGST          decimal.Decimal `db:"cgst" json:"cgst"`
	SGST          decimal.Decimal `db:"sgst" json:"sgst"`
	IGST          decimal.Decimal `db:"igst" json:"igst"`
	TaxAmount     decimal.Decimal `db:"tax_amount" json:"tax_amount"`
	TotalValue    decimal.Decimal `db:"total_value" json:"total_value"`
	PaymentMode   PaymentMode     `db:"payment_mode" json:"payment_mode,omitempty"`
	VehicleNo     string          `db:"vehicle_no" json:"vehicle_no,omitempty"`
	Remarks       string          `db:"remarks" json:"remarks,omitempty"`
}

// Month returns the month bucket this invoice belongs to.
func (r *InvoiceRecord) Month() MonthKey {
	return MonthKeyOf(r.Date)
}

// MonthlySummaryRow is one aggregated row of the Monthly Summary, fully
// recomputable from the register contents.
type MonthlySummaryRow struct {
	Month             MonthKey        `db:"month_key" json:"month"`
	InvoiceCount      int             `db:"invoice_count" json:"invoice_count"`
	TotalTaxableValue decimal.Decimal `db:"total_taxable_value" json:"total_taxable_value"`
	TotalCGST         decimal.Decimal `db:"total_cgst" json:"total_cgst"`
	TotalSGST         decimal.Decimal `db:"total_sgst" json:"total_sgst"`
	TotalIGST         decimal.Decimal `db:"total_igst" json:"total_igst"`
	TotalTax          decimal.Decimal `db:"total_tax" json:"total_tax"`
	TotalValue        decimal.Decimal `db:"total_value" json:"total_value"`
}

// GSTReportRow is one aggregated row of the GST filing report, grouped by
// month, rate slab, and supply type.
type GSTReportRow struct {
	Month           MonthKey        `db:"month_key" json:"month"`
	TaxRate         decimal.Decimal `db:"tax_rate" json:"tax_rate"`
	SupplyType      SupplyType      `db:"supply_type" json:"supply_type"`
	TaxableValueSum decimal.Decimal `db:"taxable_value_sum" json:"taxable_value_sum"`
	CGSTSum         decimal.Decimal `db:"cgst_sum" json:"cgst_sum"`
	SGSTSum         decimal.Decimal `db:"sgst_sum" json:"sgst_sum"`
	IGSTSum         decimal.Decimal `db:"igst_sum" json:"igst_sum"`
}
