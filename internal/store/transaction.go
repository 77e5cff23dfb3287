package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pvaldez/cadence-api/internal/domain"
)

// TransactionStore defines the interface for financial transaction persistence.
// Soft-deleted rows are excluded from reads but never physically removed, so
// their client and project references remain intact.
type TransactionStore interface {
	// Create saves a new transaction to the store.
	Create(ctx context.Context, tx *domain.Transaction) error

	// GetByID retrieves a transaction by its unique ID.
	// Returns ErrTransactionNotFound if the transaction does not exist or is
	// soft-deleted.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error)

	// List returns all transactions that are not soft-deleted.
	List(ctx context.Context) ([]*domain.Transaction, error)

	// ListByProject returns the non-deleted transactions referencing a project.
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Transaction, error)

	// Update persists the full current state of the transaction.
	// Returns ErrTransactionNotFound if the transaction does not exist.
	Update(ctx context.Context, tx *domain.Transaction) error

	// Delete soft-deletes the transaction by stamping deleted_at. The row and
	// its references stay in place.
	// Returns ErrTransactionNotFound if the transaction does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new TransactionStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TransactionStore
}
