// Package ledger holds the in-memory invoice register and keeps it in
// lockstep with durable storage: every successful mutation is written
// through the persistence gateway before it is acknowledged, and a failed
// write rolls the in-memory state back.
package ledger

import (
	"context"
	"fmt"
	"sync"

	"brickledger/internal/domain"
	"brickledger/internal/port"
	"brickledger/internal/report"
)

// Ledger is an ordered collection of invoice records keyed by invoice
// number. Insertion order is preserved for the daily invoices view.
type Ledger struct {
	mu      sync.Mutex
	store   port.RegisterStore
	records []domain.InvoiceRecord
	index   map[string]int
}

// Open loads the persisted register through the store and builds the
// in-memory index. A store with no prior state yields an empty ledger.
func Open(ctx context.Context, store port.RegisterStore) (*Ledger, error) {
	records, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(records))
	for i := range records {
		number := records[i].InvoiceNumber
		if _, ok := index[number]; ok {
			return nil, fmt.Errorf("%w: duplicate invoice number %q in storage", domain.ErrCorruptStorage, number)
		}
		index[number] = i
	}

	return &Ledger{store: store, records: records, index: index}, nil
}

// Append validates the input, constructs the record with its derived
// fields, and inserts it at the end of the register.
func (l *Ledger) Append(ctx context.Context, in domain.InvoiceInput) (*domain.InvoiceRecord, error) {
	rec, err := domain.NewInvoiceRecord(in)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.index[rec.InvoiceNumber]; ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateInvoice, rec.InvoiceNumber)
	}

	l.records = append(l.records, *rec)
	l.index[rec.InvoiceNumber] = len(l.records) - 1

	if err := l.persist(ctx); err != nil {
		l.records = l.records[:len(l.records)-1]
		delete(l.index, rec.InvoiceNumber)
		return nil, err
	}
	return rec, nil
}

// Update replaces the record identified by number with one constructed
// from the new field values, re-running validation and re-deriving all
// computed fields. The record keeps its position in the register. Renaming
// onto an invoice number that already belongs to another record fails with
// ErrDuplicateInvoice.
func (l *Ledger) Update(ctx context.Context, number string, in domain.InvoiceInput) (*domain.InvoiceRecord, error) {
	rec, err := domain.NewInvoiceRecord(in)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	pos, ok := l.index[number]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvoiceNotFound, number)
	}
	if other, ok := l.index[rec.InvoiceNumber]; ok && other != pos {
		return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateInvoice, rec.InvoiceNumber)
	}

	previous := l.records[pos]
	l.records[pos] = *rec
	delete(l.index, number)
	l.index[rec.InvoiceNumber] = pos

	if err := l.persist(ctx); err != nil {
		l.records[pos] = previous
		delete(l.index, rec.InvoiceNumber)
		l.index[number] = pos
		return nil, err
	}
	return rec, nil
}

// Remove deletes the record identified by number, preserving the order of
// the remaining records.
func (l *Ledger) Remove(ctx context.Context, number string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	pos, ok := l.index[number]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrInvoiceNotFound, number)
	}

	removed := l.records[pos]
	l.records = append(l.records[:pos], l.records[pos+1:]...)
	delete(l.index, number)
	for i := pos; i < len(l.records); i++ {
		l.index[l.records[i].InvoiceNumber] = i
	}

	if err := l.persist(ctx); err != nil {
		l.records = append(l.records, domain.InvoiceRecord{})
		copy(l.records[pos+1:], l.records[pos:])
		l.records[pos] = removed
		for i := pos; i < len(l.records); i++ {
			l.index[l.records[i].InvoiceNumber] = i
		}
		return err
	}
	return nil
}

// Get returns a copy of the record identified by number.
func (l *Ledger) Get(number string) (*domain.InvoiceRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	pos, ok := l.index[number]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvoiceNotFound, number)
	}
	rec := l.records[pos]
	return &rec, nil
}

// All returns a copy of every record in insertion order. The copy is safe
// to iterate and re-iterate while the ledger keeps mutating.
func (l *Ledger) All() []domain.InvoiceRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]domain.InvoiceRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of records in the register.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// persist writes the full register plus both derived reports through the
// gateway. Callers hold l.mu and roll back on a non-nil return.
func (l *Ledger) persist(ctx context.Context) error {
	summary := report.MonthlySummary(l.records)
	gstReport := report.GSTReport(l.records)
	if err := l.store.Save(ctx, l.records, summary, gstReport); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return nil
}
