package api

import (
	"errors"
	"net/http"

	"github.com/pvaldez/cadence-api/internal/domain"
	"github.com/pvaldez/cadence-api/internal/service"
	"github.com/pvaldez/cadence-api/internal/service/auth"
	"github.com/pvaldez/cadence-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, service.ErrNotOwned),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Conflict errors: duplicates and rejected state transitions
	case errors.Is(err, store.ErrDuplicate),
		errors.Is(err, domain.ErrInvalidStateTransition),
		errors.Is(err, domain.ErrInvoiceFinalized),
		errors.Is(err, domain.ErrSprintAlreadyCompleted),
		errors.Is(err, domain.ErrSprintNotPlanning),
		errors.Is(err, domain.ErrTaskDependencyCycle):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, service.ErrSprintHasNoProject),
		isDomainValidationError(err):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid email or password"

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, service.ErrNotOwned):
		return "You do not own this resource"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, store.ErrInvoiceNumberExists):
		return "Invoice number already exists"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrProjectNotFound):
		return "Project not found"

	case errors.Is(err, store.ErrTransactionNotFound):
		return "Transaction not found"

	case errors.Is(err, store.ErrInvoiceNotFound):
		return "Invoice not found"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrSprintNotFound):
		return "Sprint not found"

	case errors.Is(err, store.ErrTimeEntryNotFound):
		return "Time entry not found"

	case errors.Is(err, store.ErrRiskNotFound):
		return "Risk not found"

	case errors.Is(err, store.ErrGoalNotFound):
		return "Goal not found"

	case errors.Is(err, store.ErrFeedbackNotFound):
		return "Feedback not found"

	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, domain.ErrTaskDependencyCycle):
		return "Dependency would create a cycle"

	case errors.Is(err, domain.ErrInvoiceFinalized):
		return "Invoice is already finalized"

	case errors.Is(err, domain.ErrSprintAlreadyCompleted):
		return "Sprint is already completed"

	case errors.Is(err, domain.ErrSprintNotPlanning):
		return "Sprint can only be activated from planning"

	case errors.Is(err, service.ErrSprintHasNoProject):
		return "Referenced project does not exist"

	case MapErrorToStatusCode(err) == http.StatusBadRequest:
		// Domain validation failures carry messages written for users.
		return err.Error()

	default:
		return "An unexpected error occurred"
	}
}

// isDomainValidationError reports whether the error chain carries one of the
// per-field domain validation sentinels that do not wrap ErrValidation.
func isDomainValidationError(err error) bool {
	sentinels := []error{
		domain.ErrNegativeAmount,
		domain.ErrInvalidCurrency,
		domain.ErrProjectNegativeSpend,
		domain.ErrTimeEntryHours,
	}
	for _, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return true
		}
	}

	var validationErr *domain.ValidationError
	return errors.As(err, &validationErr)
}
