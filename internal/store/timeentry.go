package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pvaldez/cadence-api/internal/domain"
)

// TimeEntryStore defines the interface for time entry persistence.
// Soft-deleted entries are excluded from reads and from hour sums.
type TimeEntryStore interface {
	// Create saves a new time entry to the store.
	Create(ctx context.Context, entry *domain.TimeEntry) error

	// GetByID retrieves a time entry by its unique ID.
	// Returns ErrTimeEntryNotFound if the entry does not exist or is soft-deleted.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TimeEntry, error)

	// ListByTask returns the non-deleted entries logged against a task.
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.TimeEntry, error)

	// ListByUser returns the non-deleted entries logged by a user.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.TimeEntry, error)

	// SumHoursByTask returns the total non-deleted hours logged against a task.
	SumHoursByTask(ctx context.Context, taskID uuid.UUID) (float64, error)

	// SumHoursByUserAndProject returns the total non-deleted hours a user
	// logged against tasks of the given project.
	SumHoursByUserAndProject(ctx context.Context, userID, projectID uuid.UUID) (float64, error)

	// Delete soft-deletes the entry by stamping deleted_at.
	// Returns ErrTimeEntryNotFound if the entry does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new TimeEntryStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TimeEntryStore
}
