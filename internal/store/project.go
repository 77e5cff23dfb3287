package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pvaldez/cadence-api/internal/domain"
)

// ProjectStore defines the interface for project data persistence.
type ProjectStore interface {
	// Create saves a new project to the store.
	Create(ctx context.Context, project *domain.Project) error

	// GetByID retrieves a project by its unique ID.
	// Returns ErrProjectNotFound if the project does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)

	// List returns all projects.
	List(ctx context.Context) ([]*domain.Project, error)

	// ListActive returns the projects whose status is active, in no guaranteed
	// order. Dashboard aggregation must not depend on the ordering.
	ListActive(ctx context.Context) ([]*domain.Project, error)

	// Update persists the full current state of the project.
	// Returns ErrProjectNotFound if the project does not exist.
	Update(ctx context.Context, project *domain.Project) error

	// WithTx returns a new ProjectStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) ProjectStore
}
