// Package report derives the Monthly Summary and GST Report from register
// contents. Both derivations are pure functions: they hold no state between
// calls and always rebuild their rows from scratch, so the reports can never
// drift from the invoices they are derived from.
package report

import (
	"sort"

	"brickledger/internal/domain"
)

// MonthlySummary returns one row per month present in the records, ordered
// chronologically. Sums are plain decimal sums of the per-record derived
// fields; no re-rounding happens here.
func MonthlySummary(records []domain.InvoiceRecord) []domain.MonthlySummaryRow {
	byMonth := make(map[domain.MonthKey]*domain.MonthlySummaryRow)
	for i := range records {
		rec := &records[i]
		month := rec.Month()
		row, ok := byMonth[month]
		if !ok {
			row = &domain.MonthlySummaryRow{Month: month}
			byMonth[month] = row
		}
		row.InvoiceCount++
		row.TotalTaxableValue = row.TotalTaxableValue.Add(rec.TaxableValue)
		row.TotalCGST = row.TotalCGST.Add(rec.CGST)
		row.TotalSGST = row.TotalSGST.Add(rec.SGST)
		row.TotalIGST = row.TotalIGST.Add(rec.IGST)
		row.TotalTax = row.TotalTax.Add(rec.TaxAmount)
		row.TotalValue = row.TotalValue.Add(rec.TotalValue)
	}

	rows := make([]domain.MonthlySummaryRow, 0, len(byMonth))
	for _, row := range byMonth {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Month < rows[j].Month })
	return rows
}

type gstGroup struct {
	month  domain.MonthKey
	rate   string
	supply domain.SupplyType
}

// GSTReport returns one row per (month, rate slab, supply type) present in
// the records, ordered by month, then rate ascending, then intra before
// inter. Groups with no records are omitted entirely.
func GSTReport(records []domain.InvoiceRecord) []domain.GSTReportRow {
	byGroup := make(map[gstGroup]*domain.GSTReportRow)
	for i := range records {
		rec := &records[i]
		key := gstGroup{month: rec.Month(), rate: rec.TaxRate.String(), supply: rec.SupplyType}
		row, ok := byGroup[key]
		if !ok {
			row = &domain.GSTReportRow{Month: rec.Month(), TaxRate: rec.TaxRate, SupplyType: rec.SupplyType}
			byGroup[key] = row
		}
		row.TaxableValueSum = row.TaxableValueSum.Add(rec.TaxableValue)
		row.CGSTSum = row.CGSTSum.Add(rec.CGST)
		row.SGSTSum = row.SGSTSum.Add(rec.SGST)
		row.IGSTSum = row.IGSTSum.Add(rec.IGST)
	}

	rows := make([]domain.GSTReportRow, 0, len(byGroup))
	for _, row := range byGroup {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := &rows[i], &rows[j]
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		if !a.TaxRate.Equal(b.TaxRate) {
			return a.TaxRate.LessThan(b.TaxRate)
		}
		return a.SupplyType == domain.SupplyIntraState && b.SupplyType == domain.SupplyInterState
	})
	return rows
}
