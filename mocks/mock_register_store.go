package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"brickledger/internal/domain"
)

// MockRegisterStore is a mock implementation of port.RegisterStore.
type MockRegisterStore struct {
	mock.Mock
}

func (m *MockRegisterStore) Load(ctx context.Context) ([]domain.InvoiceRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceRecord), args.Error(1)
}

func (m *MockRegisterStore) Save(ctx context.Context, records []domain.InvoiceRecord, summary []domain.MonthlySummaryRow, gstReport []domain.GSTReportRow) error {
	args := m.Called(ctx, records, summary, gstReport)
	return args.Error(0)
}

func (m *MockRegisterStore) Export(ctx context.Context, records []domain.InvoiceRecord, summary []domain.MonthlySummaryRow, gstReport []domain.GSTReportRow) ([]byte, error) {
	args := m.Called(ctx, records, summary, gstReport)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
