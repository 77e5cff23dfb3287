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

// PostgresGoalStore implements the store.GoalStore interface
// using a PostgreSQL database as the storage backend.
type PostgresGoalStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresGoalStore creates a new PostgreSQL implementation of the
// GoalStore interface. If logger is nil, a default logger will be used.
func NewPostgresGoalStore(db store.DBTX, logger *slog.Logger) *PostgresGoalStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresGoalStore{
		db:     db,
		logger: logger.With(slog.String("component", "goal_store")),
	}
}

// Ensure PostgresGoalStore implements store.GoalStore interface
var _ store.GoalStore = (*PostgresGoalStore)(nil)

// WithTx implements store.GoalStore.WithTx
func (s *PostgresGoalStore) WithTx(tx *sql.Tx) store.GoalStore {
	return &PostgresGoalStore{
		db:     tx,
		logger: s.logger,
	}
}

const goalColumns = `id, title, type, category, period, target_value, current_value,
	unit, owner_id, start_date, end_date, status, created_at, updated_at`

// Create implements store.GoalStore.Create
func (s *PostgresGoalStore) Create(ctx context.Context, goal *domain.Goal) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := goal.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO goals (` + goalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		goal.ID,
		goal.Title,
		goal.Type,
		goal.Category,
		goal.Period,
		goal.TargetValue,
		goal.CurrentValue,
		goal.Unit,
		goal.OwnerID,
		goal.StartDate,
		goal.EndDate,
		goal.Status,
		goal.CreatedAt,
		goal.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create goal",
			slog.String("error", err.Error()),
			slog.String("goal_id", goal.ID.String()))
		return MapError(err)
	}

	return nil
}

// GetByID implements store.GoalStore.GetByID
// Returns store.ErrGoalNotFound if the goal does not exist.
func (s *PostgresGoalStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = $1`

	goal, err := scanGoal(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrGoalNotFound
		}
		return nil, MapError(err)
	}

	return goal, nil
}

// ListByOwner implements store.GoalStore.ListByOwner
func (s *PostgresGoalStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE owner_id = $1 ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var goals []*domain.Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return goals, nil
}

// Update implements store.GoalStore.Update
// Returns store.ErrGoalNotFound if the goal does not exist.
func (s *PostgresGoalStore) Update(ctx context.Context, goal *domain.Goal) error {
	if err := goal.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE goals
		SET title = $2, type = $3, category = $4, period = $5, target_value = $6,
			current_value = $7, unit = $8, start_date = $9, end_date = $10,
			status = $11, updated_at = $12
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		goal.ID,
		goal.Title,
		goal.Type,
		goal.Category,
		goal.Period,
		goal.TargetValue,
		goal.CurrentValue,
		goal.Unit,
		goal.StartDate,
		goal.EndDate,
		goal.Status,
		goal.UpdatedAt,
	)
	if err != nil {
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "goal"); err != nil {
		return store.ErrGoalNotFound
	}

	return nil
}

func scanGoal(row rowScanner) (*domain.Goal, error) {
	var goal domain.Goal

	err := row.Scan(
		&goal.ID,
		&goal.Title,
		&goal.Type,
		&goal.Category,
		&goal.Period,
		&goal.TargetValue,
		&goal.CurrentValue,
		&goal.Unit,
		&goal.OwnerID,
		&goal.StartDate,
		&goal.EndDate,
		&goal.Status,
		&goal.CreatedAt,
		&goal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &goal, nil
}
