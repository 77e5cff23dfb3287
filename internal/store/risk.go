package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pvaldez/cadence-api/internal/domain"
)

// RiskStore defines the interface for risk data persistence.
type RiskStore interface {
	// Create saves a new risk to the store.
	Create(ctx context.Context, risk *domain.Risk) error

	// GetByID retrieves a risk by its unique ID.
	// Returns ErrRiskNotFound if the risk does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Risk, error)

	// ListByProject returns all risks tracked against a project.
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Risk, error)

	// Update persists the full current state of the risk, comments included.
	// Returns ErrRiskNotFound if the risk does not exist.
	Update(ctx context.Context, risk *domain.Risk) error

	// WithTx returns a new RiskStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) RiskStore
}
