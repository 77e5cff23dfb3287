package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pvaldez/cadence-api/internal/domain"
	"github.com/pvaldez/cadence-api/internal/platform/logger"
	"github.com/pvaldez/cadence-api/internal/store"
)

// PostgresTransactionStore implements the store.TransactionStore interface
// using a PostgreSQL database as the storage backend. Deletes are soft: the
// row keeps its references and only gains a deleted_at stamp.
type PostgresTransactionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTransactionStore creates a new PostgreSQL implementation of the
// TransactionStore interface. If logger is nil, a default logger will be used.
func NewPostgresTransactionStore(db store.DBTX, logger *slog.Logger) *PostgresTransactionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTransactionStore{
		db:     db,
		logger: logger.With(slog.String("component", "transaction_store")),
	}
}

// Ensure PostgresTransactionStore implements store.TransactionStore interface
var _ store.TransactionStore = (*PostgresTransactionStore)(nil)

// WithTx implements store.TransactionStore.WithTx
func (s *PostgresTransactionStore) WithTx(tx *sql.Tx) store.TransactionStore {
	return &PostgresTransactionStore{
		db:     tx,
		logger: s.logger,
	}
}

const transactionColumns = `id, type, category, amount, currency, date, description,
	client_id, project_id, is_recurring, recurring_frequency, created_at, updated_at, deleted_at`

// Create implements store.TransactionStore.Create
func (s *PostgresTransactionStore) Create(ctx context.Context, tx *domain.Transaction) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := tx.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		tx.ID,
		tx.Type,
		tx.Category,
		tx.Amount.Decimal(),
		tx.Currency,
		tx.Date,
		tx.Description,
		tx.ClientID,
		tx.ProjectID,
		tx.IsRecurring,
		nullableString(string(tx.RecurringFrequency)),
		tx.CreatedAt,
		tx.UpdatedAt,
		tx.DeletedAt,
	)
	if err != nil {
		log.Error("failed to create transaction",
			slog.String("error", err.Error()),
			slog.String("transaction_id", tx.ID.String()))
		return MapError(err)
	}

	return nil
}

// GetByID implements store.TransactionStore.GetByID
// Soft-deleted transactions are not returned.
func (s *PostgresTransactionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 AND deleted_at IS NULL`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrTransactionNotFound
		}
		return nil, MapError(err)
	}

	return tx, nil
}

// List implements store.TransactionStore.List
func (s *PostgresTransactionStore) List(ctx context.Context) ([]*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE deleted_at IS NULL ORDER BY date DESC`
	return s.list(ctx, query)
}

// ListByProject implements store.TransactionStore.ListByProject
func (s *PostgresTransactionStore) ListByProject(
	ctx context.Context,
	projectID uuid.UUID,
) ([]*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions
		WHERE project_id = $1 AND deleted_at IS NULL ORDER BY date DESC`
	return s.list(ctx, query, projectID)
}

func (s *PostgresTransactionStore) list(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var txs []*domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return txs, nil
}

// Update implements store.TransactionStore.Update
func (s *PostgresTransactionStore) Update(ctx context.Context, tx *domain.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE transactions
		SET type = $2, category = $3, amount = $4, currency = $5, date = $6,
			description = $7, client_id = $8, project_id = $9, is_recurring = $10,
			recurring_frequency = $11, updated_at = $12
		WHERE id = $1 AND deleted_at IS NULL
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		tx.ID,
		tx.Type,
		tx.Category,
		tx.Amount.Decimal(),
		tx.Currency,
		tx.Date,
		tx.Description,
		tx.ClientID,
		tx.ProjectID,
		tx.IsRecurring,
		nullableString(string(tx.RecurringFrequency)),
		tx.UpdatedAt,
	)
	if err != nil {
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "transaction"); err != nil {
		return store.ErrTransactionNotFound
	}

	return nil
}

// Delete implements store.TransactionStore.Delete
// The row survives with a deleted_at stamp; references stay intact.
func (s *PostgresTransactionStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `UPDATE transactions SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete transaction",
			slog.String("error", err.Error()),
			slog.String("transaction_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "transaction"); err != nil {
		return store.ErrTransactionNotFound
	}

	return nil
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var (
		tx        domain.Transaction
		amount    decimal.Decimal
		clientID  uuid.NullUUID
		projectID uuid.NullUUID
		frequency sql.NullString
	)

	err := row.Scan(
		&tx.ID,
		&tx.Type,
		&tx.Category,
		&amount,
		&tx.Currency,
		&tx.Date,
		&tx.Description,
		&clientID,
		&projectID,
		&tx.IsRecurring,
		&frequency,
		&tx.CreatedAt,
		&tx.UpdatedAt,
		&tx.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	if tx.Amount, err = domain.NewAmount(amount); err != nil {
		return nil, fmt.Errorf("stored amount is invalid: %w", err)
	}
	if clientID.Valid {
		tx.ClientID = &clientID.UUID
	}
	if projectID.Valid {
		tx.ProjectID = &projectID.UUID
	}
	if frequency.Valid {
		tx.RecurringFrequency = domain.RecurringFrequency(frequency.String)
	}

	return &tx, nil
}

// nullableString maps the empty string to SQL NULL.
func nullableString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
