package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"brickledger/internal/config"
	"brickledger/internal/domain"
	"brickledger/internal/ledger"
	"brickledger/internal/logger"
	"brickledger/internal/port"
	"brickledger/internal/report"
	"brickledger/internal/storage/workbook"
)

// RegisterService exposes the invoice register to the presentation layer:
// ledger mutations, the two derived reports, and snapshot export/backup.
type RegisterService interface {
	Append(ctx context.Context, in domain.InvoiceInput) (*domain.InvoiceRecord, error)
	Update(ctx context.Context, number string, in domain.InvoiceInput) (*domain.InvoiceRecord, error)
	Remove(ctx context.Context, number string) error
	Get(ctx context.Context, number string) (*domain.InvoiceRecord, error)
	Invoices(ctx context.Context) []domain.InvoiceRecord
	MonthlySummary(ctx context.Context) []domain.MonthlySummaryRow
	GSTReport(ctx context.Context) []domain.GSTReportRow
	Export(ctx context.Context) (filename string, data []byte, err error)
	Backup(ctx context.Context) (location string, err error)
}

type registerService struct {
	ledger *ledger.Ledger
	store  port.RegisterStore
	backup port.BackupSink
	seller config.SellerConfig
	log    zerolog.Logger
}

// NewRegisterService creates a RegisterService. backup may be nil when no
// backup destination is configured.
func NewRegisterService(l *ledger.Ledger, store port.RegisterStore, backup port.BackupSink, seller config.SellerConfig) RegisterService {
	return &registerService{
		ledger: l,
		store:  store,
		backup: backup,
		seller: seller,
		log:    logger.WithComponent("register"),
	}
}

func (s *registerService) Append(ctx context.Context, in domain.InvoiceInput) (*domain.InvoiceRecord, error) {
	s.applySellerDefaults(&in)
	rec, err := s.ledger.Append(ctx, in)
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Str("invoice_number", rec.InvoiceNumber).
		Str("month", string(rec.Month())).
		Str("total_value", rec.TotalValue.StringFixed(2)).
		Msg("invoice appended")
	return rec, nil
}

func (s *registerService) Update(ctx context.Context, number string, in domain.InvoiceInput) (*domain.InvoiceRecord, error) {
	s.applySellerDefaults(&in)
	rec, err := s.ledger.Update(ctx, number, in)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("invoice_number", number).Msg("invoice updated")
	return rec, nil
}

func (s *registerService) Remove(ctx context.Context, number string) error {
	if err := s.ledger.Remove(ctx, number); err != nil {
		return err
	}
	s.log.Info().Str("invoice_number", number).Msg("invoice removed")
	return nil
}

func (s *registerService) Get(ctx context.Context, number string) (*domain.InvoiceRecord, error) {
	return s.ledger.Get(number)
}

func (s *registerService) Invoices(ctx context.Context) []domain.InvoiceRecord {
	return s.ledger.All()
}

func (s *registerService) MonthlySummary(ctx context.Context) []domain.MonthlySummaryRow {
	return report.MonthlySummary(s.ledger.All())
}

func (s *registerService) GSTReport(ctx context.Context) []domain.GSTReportRow {
	return report.GSTReport(s.ledger.All())
}

func (s *registerService) Export(ctx context.Context) (string, []byte, error) {
	records := s.ledger.All()
	data, err := s.store.Export(ctx, records, report.MonthlySummary(records), report.GSTReport(records))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	name := workbook.BuildFilename(s.seller.Name)
	return name, data, nil
}

func (s *registerService) Backup(ctx context.Context) (string, error) {
	if s.backup == nil {
		return "", domain.ErrBackupNotConfigured
	}

	name, data, err := s.Export(ctx)
	if err != nil {
		return "", err
	}

	location, err := s.backup.Upload(ctx, name, workbook.ContentType, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	s.log.Info().Str("key", name).Str("location", location).Msg("register backed up")
	return location, nil
}

// applySellerDefaults fills the seller state from configuration when the
// request leaves it empty. The register belongs to a single seller.
func (s *registerService) applySellerDefaults(in *domain.InvoiceInput) {
	if in.SellerState == "" {
		in.SellerState = s.seller.State
	}
}
