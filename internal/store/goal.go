package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pvaldez/cadence-api/internal/domain"
)

// GoalStore defines the interface for goal data persistence.
type GoalStore interface {
	// Create saves a new goal to the store.
	Create(ctx context.Context, goal *domain.Goal) error

	// GetByID retrieves a goal by its unique ID.
	// Returns ErrGoalNotFound if the goal does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error)

	// ListByOwner returns all goals owned by a user.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Goal, error)

	// Update persists the full current state of the goal.
	// Returns ErrGoalNotFound if the goal does not exist.
	Update(ctx context.Context, goal *domain.Goal) error

	// WithTx returns a new GoalStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) GoalStore
}
