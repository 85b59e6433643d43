package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"brickledger/internal/gst"
)

// Date layouts accepted on input. The register historically used day-first
// dates, so both ISO and dd-mm-yyyy are parsed.
var dateLayouts = []string{"2006-01-02", "02-01-2006"}

// InvoiceInput carries the raw field values for one invoice as supplied by
// the presentation layer. Derived fields are absent on purpose.
type InvoiceInput struct {
	InvoiceNumber string          `json:"invoice_number"`
	Date          string          `json:"date"`
	BuyerName     string          `json:"buyer_name"`
	BuyerGSTIN    string          `json:"buyer_gstin"`
	BuyerState    string          `json:"buyer_state"`
	SellerState   string          `json:"seller_state"`
	PlaceOfSupply string          `json:"place_of_supply"`
	Description   string          `json:"item_description"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	PaymentMode   string          `json:"payment_mode"`
	VehicleNo     string          `json:"vehicle_no"`
	Remarks       string          `json:"remarks"`
}

// NewInvoiceRecord validates the input and constructs a record with all
// derived fields computed: taxable value, the GST breakdown, and the total.
// This constructor is the only place derived fields are ever set.
func NewInvoiceRecord(in InvoiceInput) (*InvoiceRecord, error) {
	number := strings.TrimSpace(in.InvoiceNumber)
	if number == "" {
		return nil, NewValidationError("invoice_number", "must not be empty")
	}

	date, err := parseDate(in.Date)
	if err != nil {
		return nil, NewValidationError("date", "must be a valid date (yyyy-mm-dd or dd-mm-yyyy)")
	}

	if !in.Quantity.IsPositive() {
		return nil, NewValidationError("quantity", "must be greater than zero")
	}
	if in.UnitPrice.IsNegative() {
		return nil, NewValidationError("unit_price", "must not be negative")
	}
	if !IsPermittedSlab(in.TaxRate) {
		return nil, NewValidationError("tax_rate", "must be one of the permitted GST slabs (0, 5, 12, 18, 28)")
	}
	if strings.TrimSpace(in.BuyerState) == "" {
		return nil, NewValidationError("buyer_state", "must not be empty")
	}
	if strings.TrimSpace(in.SellerState) == "" {
		return nil, NewValidationError("seller_state", "must not be empty")
	}

	mode := PaymentMode(in.PaymentMode)
	if in.PaymentMode != "" && !AllowedPaymentModes[mode] {
		return nil, NewValidationError("payment_mode", "must be one of Cash, Bank, UPI, Credit")
	}

	taxable := in.Quantity.Mul(in.UnitPrice).Round(2)
	breakdown := gst.Split(taxable, in.TaxRate, in.BuyerState, in.SellerState)

	supplyType := SupplyIntraState
	if breakdown.Interstate {
		supplyType = SupplyInterState
	}

	return &InvoiceRecord{
		InvoiceNumber: number,
		Date:          date,
		BuyerName:     strings.TrimSpace(in.BuyerName),
		BuyerGSTIN:    strings.TrimSpace(in.BuyerGSTIN),
		BuyerState:    strings.TrimSpace(in.BuyerState),
		SellerState:   strings.TrimSpace(in.SellerState),
		PlaceOfSupply: strings.TrimSpace(in.PlaceOfSupply),
		Description:   strings.TrimSpace(in.Description),
		Quantity:      in.Quantity,
		UnitPrice:     in.UnitPrice,
		TaxableValue:  taxable,
		TaxRate:       in.TaxRate,
		SupplyType:    supplyType,
		CGST:          breakdown.CGST,
		SGST:          breakdown.SGST,
		IGST:          breakdown.IGST,
		TaxAmount:     breakdown.TaxAmount,
		TotalValue:    taxable.Add(breakdown.TaxAmount),
		PaymentMode:   mode,
		VehicleNo:     strings.TrimSpace(in.VehicleNo),
		Remarks:       strings.TrimSpace(in.Remarks),
	}, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
