package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation          = errors.New("invalid invoice field")
	ErrDuplicateInvoice    = errors.New("invoice number already exists in the register")
	ErrInvoiceNotFound     = errors.New("invoice not found")
	ErrPersistence         = errors.New("persisting register failed")
	ErrCorruptStorage      = errors.New("stored register data is malformed")
	ErrBackupNotConfigured = errors.New("no backup destination configured")
)

// ValidationError reports which invoice field failed validation.
// It unwraps to ErrValidation so callers can match the whole class.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid invoice field %q: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
