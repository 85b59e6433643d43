// Package workbook persists the invoice register as a single .xlsx
// workbook with one sheet per logical table.
package workbook

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"brickledger/internal/domain"
	"brickledger/internal/port"
)

type store struct {
	path string
}

// NewStore creates a workbook-backed RegisterStore writing to path.
func NewStore(path string) port.RegisterStore {
	return &store{path: path}
}

func (s *store) Load(ctx context.Context) ([]domain.InvoiceRecord, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.InvoiceRecord{}, nil
		}
		return nil, fmt.Errorf("%w: opening %s: %v", domain.ErrCorruptStorage, s.path, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(SheetInvoices)
	if err != nil {
		return nil, fmt.Errorf("%w: missing sheet %q", domain.ErrCorruptStorage, SheetInvoices)
	}

	records := make([]domain.InvoiceRecord, 0, len(rows))
	for i, row := range rows {
		if i == 0 {
			continue // header
		}
		rec, err := parseInvoiceRow(row)
		if err != nil {
			return nil, fmt.Errorf("%w: sheet %q row %d: %v", domain.ErrCorruptStorage, SheetInvoices, i+1, err)
		}
		records = append(records, *rec)
	}
	return records, nil
}

func (s *store) Save(ctx context.Context, records []domain.InvoiceRecord, summary []domain.MonthlySummaryRow, gstReport []domain.GSTReportRow) error {
	f, err := BuildSnapshot(records, summary, gstReport)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	// Write to a sibling temp file and rename over the target so a crash
	// mid-write never leaves a truncated workbook behind.
	// The temp name must keep an .xlsx extension or excelize refuses to
	// encode it ("unsupported workbook file format").
	tmp := fmt.Sprintf("%s.tmp-%d.xlsx", s.path, time.Now().UnixNano())
	if err := f.SaveAs(tmp); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing workbook: %w", err)
	}
	return nil
}

func (s *store) Export(ctx context.Context, records []domain.InvoiceRecord, summary []domain.MonthlySummaryRow, gstReport []domain.GSTReportRow) ([]byte, error) {
	f, err := BuildSnapshot(records, summary, gstReport)
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

// Filename returns the base name of the workbook file.
func (s *store) Filename() string {
	return filepath.Base(s.path)
}

func parseInvoiceRow(row []string) (*domain.InvoiceRecord, error) {
	if len(row) < len(invoiceColumns) {
		// Trailing empty cells are dropped by the reader; pad them back.
		padded := make([]string, len(invoiceColumns))
		copy(padded, row)
		row = padded
	}

	date, err := time.Parse("2006-01-02", row[0])
	if err != nil {
		return nil, fmt.Errorf("date %q: %v", row[0], err)
	}
	if row[1] == "" {
		return nil, errors.New("empty invoice number")
	}

	dec := func(col int) (decimal.Decimal, error) {
		if row[col] == "" {
			return decimal.Zero, nil
		}
		d, err := decimal.NewFromString(row[col])
		if err != nil {
			return decimal.Zero, fmt.Errorf("column %q value %q: %v", invoiceColumns[col], row[col], err)
		}
		return d, nil
	}

	rec := &domain.InvoiceRecord{
		InvoiceNumber: row[1],
		Date:          date,
		BuyerName:     row[2],
		BuyerGSTIN:    row[3],
		BuyerState:    row[4],
		SellerState:   row[5],
		PlaceOfSupply: row[6],
		Description:   row[7],
		SupplyType:    domain.SupplyType(row[12]),
		PaymentMode:   domain.PaymentMode(row[18]),
		VehicleNo:     row[19],
		Remarks:       row[20],
	}

	for _, field := range []struct {
		col int
		dst *decimal.Decimal
	}{
		{8, &rec.Quantity},
		{9, &rec.UnitPrice},
		{10, &rec.TaxableValue},
		{11, &rec.TaxRate},
		{13, &rec.CGST},
		{14, &rec.SGST},
		{15, &rec.IGST},
		{16, &rec.TaxAmount},
		{17, &rec.TotalValue},
	} {
		d, err := dec(field.col)
		if err != nil {
			return nil, err
		}
		*field.dst = d
	}

	if rec.SupplyType != domain.SupplyIntraState && rec.SupplyType != domain.SupplyInterState {
		return nil, fmt.Errorf("supply type %q", row[12])
	}
	return rec, nil
}
