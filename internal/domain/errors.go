package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrConflict      = errors.New("conflict")
)

// Circulation outcomes. These are expected business failures: they are
// reported to the caller as-is and never retried.
var (
	ErrReaderNotFound    = errors.New("reader not found")
	ErrReaderSuspended   = errors.New("reader suspended or membership expired")
	ErrBookNotFound      = errors.New("book not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNoActiveLoan      = errors.New("no active loan")
	ErrOverReturn        = errors.New("return quantity exceeds outstanding loans")
)

// ErrInvariantViolation signals an upstream logic error, e.g. a release that
// would drive on-loan copies below zero. It aborts the operation.
var ErrInvariantViolation = errors.New("invariant violation")

// ErrTransient marks infrastructure failures (timeouts, lock contention,
// serialization failures). Only these are safe to retry.
var ErrTransient = errors.New("transient failure")

// IsBusinessError reports whether err is an expected circulation outcome.
func IsBusinessError(err error) bool {
	switch {
	case errors.Is(err, ErrReaderNotFound),
		errors.Is(err, ErrReaderSuspended),
		errors.Is(err, ErrBookNotFound),
		errors.Is(err, ErrInsufficientStock),
		errors.Is(err, ErrNoActiveLoan),
		errors.Is(err, ErrOverReturn):
		return true
	}
	return false
}

// IsTransient reports whether err may succeed when the whole operation is retried.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
