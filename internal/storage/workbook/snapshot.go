package workbook

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"brickledger/internal/domain"
)

// Sheet names inside the register workbook. The layout matches the
// long-standing daily invoice register file, so existing copies keep
// opening in spreadsheet tools.
const (
	SheetInvoices = "Daily Invoices"
	SheetSummary  = "Monthly Summary"
	SheetGST      = "GST Report"
)

// invoiceColumns is the header row of the Daily Invoices sheet.
var invoiceColumns = []string{
	"Date",
	"Invoice No.",
	"Buyer Name",
	"Buyer GSTIN",
	"Buyer State",
	"Seller State",
	"Place of Supply",
	"Item Description",
	"Quantity",
	"Unit Price",
	"Taxable Value",
	"Tax Rate %",
	"Supply Type",
	"CGST Amt",
	"SGST Amt",
	"IGST Amt",
	"Total GST",
	"Total Invoice Value",
	"Payment Mode",
	"Vehicle No.",
	"Remarks",
}

var summaryColumns = []string{
	"Month",
	"Total Invoices",
	"Total Taxable Value",
	"Total CGST",
	"Total SGST",
	"Total IGST",
	"Total GST",
	"Total Invoice Value",
}

var gstColumns = []string{
	"Month",
	"Tax Rate %",
	"Supply Type",
	"Taxable Value",
	"CGST Amt",
	"SGST Amt",
	"IGST Amt",
}

// BuildSnapshot renders all three register tables into a fresh workbook.
// Monetary cells are written as fixed two-decimal strings so that reading
// the workbook back reproduces amounts exactly, with no float drift.
func BuildSnapshot(records []domain.InvoiceRecord, summary []domain.MonthlySummaryRow, gstReport []domain.GSTReportRow) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), SheetInvoices); err != nil {
		return nil, fmt.Errorf("rename default sheet: %w", err)
	}
	for _, name := range []string{SheetSummary, SheetGST} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	if err := writeRows(f, SheetInvoices, invoiceColumns, len(records), func(i int) []interface{} {
		return invoiceRow(&records[i])
	}); err != nil {
		return nil, err
	}
	if err := writeRows(f, SheetSummary, summaryColumns, len(summary), func(i int) []interface{} {
		return summaryRow(&summary[i])
	}); err != nil {
		return nil, err
	}
	if err := writeRows(f, SheetGST, gstColumns, len(gstReport), func(i int) []interface{} {
		return gstRow(&gstReport[i])
	}); err != nil {
		return nil, err
	}

	return f, nil
}

func writeRows(f *excelize.File, sheet string, header []string, n int, row func(i int) []interface{}) error {
	headerCells := make([]interface{}, len(header))
	for i, h := range header {
		headerCells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerCells); err != nil {
		return fmt.Errorf("write %s header: %w", sheet, err)
	}
	for i := 0; i < n; i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row(i)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

func invoiceRow(rec *domain.InvoiceRecord) []interface{} {
	return []interface{}{
		rec.Date.Format("2006-01-02"),
		rec.InvoiceNumber,
		rec.BuyerName,
		rec.BuyerGSTIN,
		rec.BuyerState,
		rec.SellerState,
		rec.PlaceOfSupply,
		rec.Description,
		rec.Quantity.String(),
		money(rec.UnitPrice),
		money(rec.TaxableValue),
		rec.TaxRate.String(),
		string(rec.SupplyType),
		money(rec.CGST),
		money(rec.SGST),
		money(rec.IGST),
		money(rec.TaxAmount),
		money(rec.TotalValue),
		string(rec.PaymentMode),
		rec.VehicleNo,
		rec.Remarks,
	}
}

func summaryRow(row *domain.MonthlySummaryRow) []interface{} {
	return []interface{}{
		string(row.Month),
		row.InvoiceCount,
		money(row.TotalTaxableValue),
		money(row.TotalCGST),
		money(row.TotalSGST),
		money(row.TotalIGST),
		money(row.TotalTax),
		money(row.TotalValue),
	}
}

func gstRow(row *domain.GSTReportRow) []interface{} {
	return []interface{}{
		string(row.Month),
		row.TaxRate.String(),
		string(row.SupplyType),
		money(row.TaxableValueSum),
		money(row.CGSTSum),
		money(row.SGSTSum),
		money(row.IGSTSum),
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
