package ledger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"brickledger/internal/domain"
	"brickledger/internal/ledger"
	"brickledger/mocks"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func input(number, date, buyerState, taxable, rate string) domain.InvoiceInput {
	return domain.InvoiceInput{
		InvoiceNumber: number,
		Date:          date,
		BuyerName:     "Buyer",
		BuyerState:    buyerState,
		SellerState:   "Gujarat",
		Description:   "Fly-ash bricks",
		Quantity:      dec("1"),
		UnitPrice:     dec(taxable),
		TaxRate:       dec(rate),
	}
}

func openEmpty(t *testing.T) (*ledger.Ledger, *mocks.MockRegisterStore) {
	t.Helper()
	store := new(mocks.MockRegisterStore)
	store.On("Load", mock.Anything).Return([]domain.InvoiceRecord{}, nil).Once()

	l, err := ledger.Open(context.Background(), store)
	require.NoError(t, err)
	return l, store
}

func TestOpen_EmptyStore(t *testing.T) {
	l, _ := openEmpty(t)
	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.All())
}

func TestOpen_RejectsDuplicateNumbersInStorage(t *testing.T) {
	rec, err := domain.NewInvoiceRecord(input("1", "2024-04-05", "Gujarat", "100", "5"))
	require.NoError(t, err)

	store := new(mocks.MockRegisterStore)
	store.On("Load", mock.Anything).Return([]domain.InvoiceRecord{*rec, *rec}, nil).Once()

	l, err := ledger.Open(context.Background(), store)
	assert.Nil(t, l)
	assert.ErrorIs(t, err, domain.ErrCorruptStorage)
}

func TestAppend_PersistsBeforeReturning(t *testing.T) {
	l, store := openEmpty(t)

	var savedRecords []domain.InvoiceRecord
	var savedSummary []domain.MonthlySummaryRow
	var savedReport []domain.GSTReportRow
	store.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedRecords = args.Get(1).([]domain.InvoiceRecord)
			savedSummary = args.Get(2).([]domain.MonthlySummaryRow)
			savedReport = args.Get(3).([]domain.GSTReportRow)
		}).
		Return(nil)

	rec, err := l.Append(context.Background(), input("1", "2024-04-05", "Gujarat", "10000", "18"))
	require.NoError(t, err)
	assert.True(t, rec.TotalValue.Equal(dec("11800.00")))

	// The save carried the register plus both derived reports.
	require.Len(t, savedRecords, 1)
	require.Len(t, savedSummary, 1)
	require.Len(t, savedReport, 1)
	assert.Equal(t, 1, savedSummary[0].InvoiceCount)
	assert.True(t, savedSummary[0].TotalValue.Equal(dec("11800.00")))
	assert.True(t, savedReport[0].CGSTSum.Equal(dec("900.00")))
	store.AssertExpectations(t)
}

func TestAppend_DuplicateNumberLeavesLedgerUnchanged(t *testing.T) {
	l, store := openEmpty(t)
	store.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	_, err := l.Append(context.Background(), input("1", "2024-04-05", "Gujarat", "100", "5"))
	require.NoError(t, err)

	rec, err := l.Append(context.Background(), input("1", "2024-04-06", "Gujarat", "200", "5"))
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, domain.ErrDuplicateInvoice)
	assert.Equal(t, 1, l.Len())

	// No second save was attempted.
	store.AssertNumberOfCalls(t, "Save", 1)
}

func TestAppend_RollsBackWhenSaveFails(t *testing.T) {
	l, store := openEmpty(t)
	store.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("disk full"))

	rec, err := l.Append(context.Background(), input("1", "2024-04-05", "Gujarat", "100", "5"))
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Equal(t, 0, l.Len())

	// The number is reusable after the rollback.
	store.ExpectedCalls = nil
	store.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	_, err = l.Append(context.Background(), input("1", "2024-04-05", "Gujarat", "100", "5"))
	assert.NoError(t, err)
}

func TestUpdate_RederivesFields(t *testing.T) {
	l, store := openEmpty(t)
	store.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := l.Append(context.Background(), input("1", "2024-04-05", "Gujarat", "10000", "18"))
	require.NoError(t, err)

	// Switch the buyer to another state: the levy must move to IGST.
	rec, err := l.Update(context.Background(), "1", input("1", "2024-04-05", "Maharashtra", "10000", "18"))
	require.NoError(t, err)
	assert.Equal(t, domain.SupplyInterState, rec.SupplyType)
	assert.True(t, rec.IGST.Equal(dec("1800.00")))
	assert.True(t, rec.CGST.IsZero())
	assert.Equal(t, 1, l.Len())
}

func TestUpdate_NotFound(t *testing.T) {
	l, _ := openEmpty(t)

	rec, err := l.Update(context.Background(), "missing", input("missing", "2024-04-05", "Gujarat", "100", "5"))
	assert.Nil(t, rec)
	assert.ErrorIs(t, err, domain.ErrInvoiceNotFound)
}

func TestUpdate_RenameOntoExistingNumberFails(t *testing.T) {
	l, store := openEmpty(t)
	store.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := l.Append(context.Background(), input("1", "2024-04-05", "Gujarat", "100", "5"))
	require.NoError(t, err)
	_, err = l.Append(context.Background(), input("2", "2024-04-06", "Gujarat", "200", "5"))
	require.NoError(t, err)

	_, err = l.Update(context.Background(), "2", input("1", "2024-04-06", "Gujarat", "200", "5"))
	assert.ErrorIs(t, err, domain.ErrDuplicateInvoice)

	// Both original records are still reachable.
	_, err = l.Get("1")
	assert.NoError(t, err)
	_, err = l.Get("2")
	assert.NoError(t, err)
}

func TestUpdate_RollsBackWhenSaveFails(t *testing.T) {
	l, store := openEmpty(t)
	store.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	_, err := l.Append(context.Background(), input("1", "2024-04-05", "Gujarat", "10000", "18"))
	require.NoError(t, err)

	store.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("disk full")).Once()

	_, err = l.Update(context.Background(), "1", input("1", "2024-04-05", "Maharashtra", "10000", "18"))
	assert.ErrorIs(t, err, domain.ErrPersistence)

	rec, err := l.Get("1")
	require.NoError(t, err)
	assert.Equal(t, domain.SupplyIntraState, rec.SupplyType)
	assert.True(t, rec.CGST.Equal(dec("900.00")))
}

func TestRemove_RecomputesReports(t *testing.T) {
	l, store := openEmpty(t)

	var savedSummary []domain.MonthlySummaryRow
	var savedReport []domain.GSTReportRow
	store.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedSummary = args.Get(2).([]domain.MonthlySummaryRow)
			savedReport = args.Get(3).([]domain.GSTReportRow)
		}).
		Return(nil)

	_, err := l.Append(context.Background(), input("1", "2024-04-05", "Gujarat", "10000", "18"))
	require.NoError(t, err)
	_, err = l.Append(context.Background(), input("2", "2024-04-20", "Maharashtra", "5000", "12"))
	require.NoError(t, err)

	require.NoError(t, l.Remove(context.Background(), "1"))

	// The summary now reflects invoice #2 only.
	require.Len(t, savedSummary, 1)
	assert.Equal(t, 1, savedSummary[0].InvoiceCount)
	assert.True(t, savedSummary[0].TotalTaxableValue.Equal(dec("5000.00")))
	assert.True(t, savedSummary[0].TotalValue.Equal(dec("5600.00")))

	// The intra-state 18% group disappeared entirely.
	require.Len(t, savedReport, 1)
	assert.True(t, savedReport[0].TaxRate.Equal(dec("12")))
	assert.Equal(t, domain.SupplyInterState, savedReport[0].SupplyType)
}

func TestRemove_NotFound(t *testing.T) {
	l, _ := openEmpty(t)
	assert.ErrorIs(t, l.Remove(context.Background(), "missing"), domain.ErrInvoiceNotFound)
}

func TestRemove_RollsBackWhenSaveFails(t *testing.T) {
	l, store := openEmpty(t)
	store.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Times(3)

	for _, n := range []string{"1", "2", "3"} {
		_, err := l.Append(context.Background(), input(n, "2024-04-05", "Gujarat", "100", "5"))
		require.NoError(t, err)
	}

	store.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("disk full")).Once()

	err := l.Remove(context.Background(), "2")
	assert.ErrorIs(t, err, domain.ErrPersistence)

	// Order and contents are restored.
	all := l.All()
	require.Len(t, all, 3)
	assert.Equal(t, "1", all[0].InvoiceNumber)
	assert.Equal(t, "2", all[1].InvoiceNumber)
	assert.Equal(t, "3", all[2].InvoiceNumber)
}

func TestAll_PreservesInsertionOrderAndIsACopy(t *testing.T) {
	l, store := openEmpty(t)
	store.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	for _, n := range []string{"B-2", "A-1", "C-3"} {
		_, err := l.Append(context.Background(), input(n, "2024-04-05", "Gujarat", "100", "5"))
		require.NoError(t, err)
	}

	all := l.All()
	require.Len(t, all, 3)
	assert.Equal(t, "B-2", all[0].InvoiceNumber)
	assert.Equal(t, "A-1", all[1].InvoiceNumber)
	assert.Equal(t, "C-3", all[2].InvoiceNumber)

	// Mutating the copy does not touch the ledger.
	all[0].InvoiceNumber = "mutated"
	fresh := l.All()
	assert.Equal(t, "B-2", fresh[0].InvoiceNumber)
}
