package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pvaldez/cadence-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
// Soft-deleted tasks are excluded from reads; their project, sprint and
// dependency references are preserved on the stored row.
type TaskStore interface {
	// Create saves a new task to the store.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist or is soft-deleted.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListByProject returns the non-deleted tasks of a project.
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error)

	// ListBySprint returns the non-deleted tasks scheduled into a sprint.
	ListBySprint(ctx context.Context, sprintID uuid.UUID) ([]*domain.Task, error)

	// Update persists the full current state of the task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete soft-deletes the task by stamping deleted_at.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
