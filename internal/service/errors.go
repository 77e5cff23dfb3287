// Package service provides the application's command and query handlers.
// Each service loads entities through a store contract, applies domain logic,
// persists the result, and returns plain result values.
package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check them with errors.Is; the API layer maps them to status codes.
var (
	// ErrNotOwned indicates a resource is owned by a different user than the
	// one making the request. Raised before any persistence call, so stored
	// state is untouched.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrSprintHasNoProject indicates a task was scheduled into a sprint that
	// belongs to a different project.
	ErrSprintHasNoProject = errors.New("sprint does not belong to the task's project")
)

// ServiceError is the typed wrapper for service failures. It names the
// operation that failed and carries the underlying cause for errors.Is checks.
type ServiceError struct {
	Service   string
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s service %s failed: %s: %v", e.Service, e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s service %s failed: %s", e.Service, e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(service, operation, message string, err error) *ServiceError {
	return &ServiceError{
		Service:   service,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
