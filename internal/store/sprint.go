package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pvaldez/cadence-api/internal/domain"
)

// SprintStore defines the interface for sprint data persistence.
type SprintStore interface {
	// Create saves a new sprint to the store.
	Create(ctx context.Context, sprint *domain.Sprint) error

	// GetByID retrieves a sprint by its unique ID.
	// Returns ErrSprintNotFound if the sprint does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Sprint, error)

	// ListByProject returns all sprints of a project.
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Sprint, error)

	// Update persists the full current state of the sprint.
	// Returns ErrSprintNotFound if the sprint does not exist.
	Update(ctx context.Context, sprint *domain.Sprint) error

	// WithTx returns a new SprintStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) SprintStore
}
