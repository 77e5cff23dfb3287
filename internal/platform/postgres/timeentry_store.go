package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pvaldez/cadence-api/internal/domain"
	"github.com/pvaldez/cadence-api/internal/platform/logger"
	"github.com/pvaldez/cadence-api/internal/store"
)

// PostgresTimeEntryStore implements the store.TimeEntryStore interface
// using a PostgreSQL database as the storage backend. Deleted entries drop
// out of every query and sum, so task totals follow soft deletes naturally.
type PostgresTimeEntryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTimeEntryStore creates a new PostgreSQL implementation of the
// TimeEntryStore interface. If logger is nil, a default logger will be used.
func NewPostgresTimeEntryStore(db store.DBTX, logger *slog.Logger) *PostgresTimeEntryStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTimeEntryStore{
		db:     db,
		logger: logger.With(slog.String("component", "time_entry_store")),
	}
}

// Ensure PostgresTimeEntryStore implements store.TimeEntryStore interface
var _ store.TimeEntryStore = (*PostgresTimeEntryStore)(nil)

// WithTx implements store.TimeEntryStore.WithTx
func (s *PostgresTimeEntryStore) WithTx(tx *sql.Tx) store.TimeEntryStore {
	return &PostgresTimeEntryStore{
		db:     tx,
		logger: s.logger,
	}
}

const timeEntryColumns = `id, task_id, user_id, hours, date, description,
	created_at, updated_at, deleted_at`

// Create implements store.TimeEntryStore.Create
func (s *PostgresTimeEntryStore) Create(ctx context.Context, entry *domain.TimeEntry) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := entry.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO time_entries (` + timeEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.TaskID,
		entry.UserID,
		entry.Hours,
		entry.Date,
		entry.Description,
		entry.CreatedAt,
		entry.UpdatedAt,
		entry.DeletedAt,
	)
	if err != nil {
		log.Error("failed to create time entry",
			slog.String("error", err.Error()),
			slog.String("entry_id", entry.ID.String()))
		return MapError(err)
	}

	return nil
}

// GetByID implements store.TimeEntryStore.GetByID
// Soft-deleted entries are not returned.
func (s *PostgresTimeEntryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE id = $1 AND deleted_at IS NULL`

	var entry domain.TimeEntry
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&entry.ID,
		&entry.TaskID,
		&entry.UserID,
		&entry.Hours,
		&entry.Date,
		&entry.Description,
		&entry.CreatedAt,
		&entry.UpdatedAt,
		&entry.DeletedAt,
	)
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrTimeEntryNotFound
		}
		return nil, MapError(err)
	}

	return &entry, nil
}

// ListByTask implements store.TimeEntryStore.ListByTask
func (s *PostgresTimeEntryStore) ListByTask(
	ctx context.Context,
	taskID uuid.UUID,
) ([]*domain.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries
		WHERE task_id = $1 AND deleted_at IS NULL ORDER BY date`
	return s.list(ctx, query, taskID)
}

// ListByUser implements store.TimeEntryStore.ListByUser
func (s *PostgresTimeEntryStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries
		WHERE user_id = $1 AND deleted_at IS NULL ORDER BY date`
	return s.list(ctx, query, userID)
}

func (s *PostgresTimeEntryStore) list(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.TimeEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*domain.TimeEntry
	for rows.Next() {
		var entry domain.TimeEntry
		err := rows.Scan(
			&entry.ID,
			&entry.TaskID,
			&entry.UserID,
			&entry.Hours,
			&entry.Date,
			&entry.Description,
			&entry.CreatedAt,
			&entry.UpdatedAt,
			&entry.DeletedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return entries, nil
}

// SumHoursByTask implements store.TimeEntryStore.SumHoursByTask
// Only surviving entries count toward the total.
func (s *PostgresTimeEntryStore) SumHoursByTask(ctx context.Context, taskID uuid.UUID) (float64, error) {
	query := `SELECT COALESCE(SUM(hours), 0) FROM time_entries
		WHERE task_id = $1 AND deleted_at IS NULL`

	var total float64
	if err := s.db.QueryRowContext(ctx, query, taskID).Scan(&total); err != nil {
		return 0, MapError(err)
	}

	return total, nil
}

// SumHoursByUserAndProject implements store.TimeEntryStore.SumHoursByUserAndProject
// The project scope comes from joining entries to their tasks; deleted tasks
// and deleted entries are both excluded.
func (s *PostgresTimeEntryStore) SumHoursByUserAndProject(
	ctx context.Context,
	userID, projectID uuid.UUID,
) (float64, error) {
	query := `
		SELECT COALESCE(SUM(e.hours), 0)
		FROM time_entries e
		JOIN tasks t ON t.id = e.task_id
		WHERE e.user_id = $1 AND t.project_id = $2
			AND e.deleted_at IS NULL AND t.deleted_at IS NULL
	`

	var total float64
	if err := s.db.QueryRowContext(ctx, query, userID, projectID).Scan(&total); err != nil {
		return 0, MapError(err)
	}

	return total, nil
}

// Delete implements store.TimeEntryStore.Delete
// The row survives with a deleted_at stamp.
func (s *PostgresTimeEntryStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `UPDATE time_entries SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete time entry",
			slog.String("error", err.Error()),
			slog.String("entry_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "time entry"); err != nil {
		return store.ErrTimeEntryNotFound
	}

	return nil
}
