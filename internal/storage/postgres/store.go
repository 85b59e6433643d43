// Package postgres persists the invoice register in PostgreSQL. The three
// logical tables are replaced wholesale inside one transaction on every
// save, mirroring the workbook store's full-rewrite semantics.
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"brickledger/internal/domain"
	"brickledger/internal/port"
	"brickledger/internal/storage/workbook"
)

type store struct {
	db *sqlx.DB
}

// NewStore creates a PostgreSQL-backed RegisterStore.
func NewStore(db *sqlx.DB) port.RegisterStore {
	return &store{db: db}
}

func (s *store) Load(ctx context.Context) ([]domain.InvoiceRecord, error) {
	records := []domain.InvoiceRecord{}
	err := s.db.SelectContext(ctx, &records,
		`SELECT invoice_number, invoice_date, buyer_name, buyer_gstin, buyer_state,
			seller_state, place_of_supply, item_description, quantity, unit_price,
			taxable_value, tax_rate, supply_type, cgst, sgst, igst, tax_amount,
			total_value, payment_mode, vehicle_no, remarks
		FROM invoices ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("%w: loading invoices: %v", domain.ErrCorruptStorage, err)
	}
	return records, nil
}

func (s *store) Save(ctx context.Context, records []domain.InvoiceRecord, summary []domain.MonthlySummaryRow, gstReport []domain.GSTReportRow) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"invoices", "monthly_summary", "gst_report"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	for i := range records {
		rec := &records[i]
		_, err := tx.ExecContext(ctx,
			`INSERT INTO invoices (position, invoice_number, invoice_date, buyer_name,
				buyer_gstin, buyer_state, seller_state, place_of_supply, item_description,
				quantity, unit_price, taxable_value, tax_rate, supply_type, cgst, sgst,
				igst, tax_amount, total_value, payment_mode, vehicle_no, remarks)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
				$16, $17, $18, $19, $20, $21, $22)`,
			i, rec.InvoiceNumber, rec.Date, rec.BuyerName, rec.BuyerGSTIN,
			rec.BuyerState, rec.SellerState, rec.PlaceOfSupply, rec.Description,
			rec.Quantity, rec.UnitPrice, rec.TaxableValue, rec.TaxRate,
			rec.SupplyType, rec.CGST, rec.SGST, rec.IGST, rec.TaxAmount,
			rec.TotalValue, rec.PaymentMode, rec.VehicleNo, rec.Remarks)
		if err != nil {
			return fmt.Errorf("inserting invoice %s: %w", rec.InvoiceNumber, err)
		}
	}

	for i := range summary {
		row := &summary[i]
		_, err := tx.ExecContext(ctx,
			`INSERT INTO monthly_summary (month_key, invoice_count, total_taxable_value,
				total_cgst, total_sgst, total_igst, total_tax, total_value)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			row.Month, row.InvoiceCount, row.TotalTaxableValue,
			row.TotalCGST, row.TotalSGST, row.TotalIGST, row.TotalTax, row.TotalValue)
		if err != nil {
			return fmt.Errorf("inserting summary row %s: %w", row.Month, err)
		}
	}

	for i := range gstReport {
		row := &gstReport[i]
		_, err := tx.ExecContext(ctx,
			`INSERT INTO gst_report (month_key, tax_rate, supply_type, taxable_value_sum,
				cgst_sum, sgst_sum, igst_sum)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			row.Month, row.TaxRate, row.SupplyType, row.TaxableValueSum,
			row.CGSTSum, row.SGSTSum, row.IGSTSum)
		if err != nil {
			return fmt.Errorf("inserting gst report row %s/%s: %w", row.Month, row.SupplyType, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Export renders the same workbook snapshot the workbook store produces,
// so backups are interchangeable regardless of the configured store.
func (s *store) Export(ctx context.Context, records []domain.InvoiceRecord, summary []domain.MonthlySummaryRow, gstReport []domain.GSTReportRow) ([]byte, error) {
	f, err := workbook.BuildSnapshot(records, summary, gstReport)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encoding workbook: %w", err)
	}
	return buf.Bytes(), nil
}
