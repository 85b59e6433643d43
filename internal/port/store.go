package port

import (
	"context"
	"io"

	"brickledger/internal/domain"
)

// RegisterStore is the persistence gateway for the invoice register. Any
// durable tabular store satisfies it; the engine only needs "load all
// records" and "replace all tables".
type RegisterStore interface {
	// Load reads all previously stored invoice records in their stored
	// order. It returns an empty slice when no prior storage exists and
	// domain.ErrCorruptStorage when the stored data cannot be decoded.
	Load(ctx context.Context) ([]domain.InvoiceRecord, error)

	// Save atomically replaces the stored register with the given records
	// and the reports derived from them, so a reader of storage alone sees
	// consistent reports without re-running the aggregation.
	Save(ctx context.Context, records []domain.InvoiceRecord, summary []domain.MonthlySummaryRow, gstReport []domain.GSTReportRow) error

	// Export produces a workbook snapshot of all three tables suitable for
	// download or backup. It has no side effects on stored state.
	Export(ctx context.Context, records []domain.InvoiceRecord, summary []domain.MonthlySummaryRow, gstReport []domain.GSTReportRow) ([]byte, error)
}

// BackupSink receives register snapshots for off-site backup.
type BackupSink interface {
	// Upload stores the snapshot under key and returns its location.
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}
