package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrNegativeAmount is returned when a monetary amount would be negative.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidCurrency is returned when a currency code is not in the supported set.
	ErrInvalidCurrency = errors.New("currency not supported")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidStateTransition is returned when an entity is asked to move to a
	// lifecycle state it cannot legally reach from its current one.
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)

// ValidationError carries the field and reason of a failed validation.
// It wraps a sentinel error so callers can use errors.Is on the category.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
