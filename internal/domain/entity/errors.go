package entity

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a transaction does not exist in the store
var ErrNotFound = errors.New("transaction not found")

// ValidationError reports a missing or invalid field on create
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a validation error for a field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StoreFault wraps any failure of the persistence layer
type StoreFault struct {
	Op  string
	Err error
}

// NewStoreFault wraps err as a fault of the named store operation
func NewStoreFault(op string, err error) *StoreFault {
	return &StoreFault{Op: op, Err: err}
}

func (e *StoreFault) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreFault) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is, or wraps, a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStoreFault reports whether err is, or wraps, a StoreFault
func IsStoreFault(err error) bool {
	var sf *StoreFault
	return errors.As(err, &sf)
}
