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

// PostgresSprintStore implements the store.SprintStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSprintStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSprintStore creates a new PostgreSQL implementation of the
// SprintStore interface. If logger is nil, a default logger will be used.
func NewPostgresSprintStore(db store.DBTX, logger *slog.Logger) *PostgresSprintStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSprintStore{
		db:     db,
		logger: logger.With(slog.String("component", "sprint_store")),
	}
}

// Ensure PostgresSprintStore implements store.SprintStore interface
var _ store.SprintStore = (*PostgresSprintStore)(nil)

// WithTx implements store.SprintStore.WithTx
func (s *PostgresSprintStore) WithTx(tx *sql.Tx) store.SprintStore {
	return &PostgresSprintStore{
		db:     tx,
		logger: s.logger,
	}
}

const sprintColumns = `id, name, project_id, goal, start_date, end_date, status, velocity,
	story_points_committed, story_points_completed, team_members, retrospective_notes,
	created_at, updated_at`

// Create implements store.SprintStore.Create
func (s *PostgresSprintStore) Create(ctx context.Context, sprint *domain.Sprint) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := sprint.Validate(); err != nil {
		return err
	}

	members, err := marshalJSONColumn(sprint.TeamMembers)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO sprints (` + sprintColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		sprint.ID,
		sprint.Name,
		sprint.ProjectID,
		sprint.Goal,
		sprint.StartDate,
		sprint.EndDate,
		sprint.Status,
		sprint.Velocity,
		sprint.StoryPointsCommitted,
		sprint.StoryPointsCompleted,
		members,
		sprint.RetrospectiveNotes,
		sprint.CreatedAt,
		sprint.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create sprint",
			slog.String("error", err.Error()),
			slog.String("sprint_id", sprint.ID.String()))
		return MapError(err)
	}

	return nil
}

// GetByID implements store.SprintStore.GetByID
// Returns store.ErrSprintNotFound if the sprint does not exist.
func (s *PostgresSprintStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Sprint, error) {
	query := `SELECT ` + sprintColumns + ` FROM sprints WHERE id = $1`

	sprint, err := scanSprint(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrSprintNotFound
		}
		return nil, MapError(err)
	}

	return sprint, nil
}

// ListByProject implements store.SprintStore.ListByProject
func (s *PostgresSprintStore) ListByProject(
	ctx context.Context,
	projectID uuid.UUID,
) ([]*domain.Sprint, error) {
	query := `SELECT ` + sprintColumns + ` FROM sprints WHERE project_id = $1 ORDER BY start_date`

	rows, err := s.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var sprints []*domain.Sprint
	for rows.Next() {
		sprint, err := scanSprint(rows)
		if err != nil {
			return nil, err
		}
		sprints = append(sprints, sprint)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return sprints, nil
}

// Update implements store.SprintStore.Update
// Returns store.ErrSprintNotFound if the sprint does not exist.
func (s *PostgresSprintStore) Update(ctx context.Context, sprint *domain.Sprint) error {
	if err := sprint.Validate(); err != nil {
		return err
	}

	members, err := marshalJSONColumn(sprint.TeamMembers)
	if err != nil {
		return err
	}

	query := `
		UPDATE sprints
		SET name = $2, goal = $3, start_date = $4, end_date = $5, status = $6,
			velocity = $7, story_points_committed = $8, story_points_completed = $9,
			team_members = $10, retrospective_notes = $11, updated_at = $12
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		sprint.ID,
		sprint.Name,
		sprint.Goal,
		sprint.StartDate,
		sprint.EndDate,
		sprint.Status,
		sprint.Velocity,
		sprint.StoryPointsCommitted,
		sprint.StoryPointsCompleted,
		members,
		sprint.RetrospectiveNotes,
		sprint.UpdatedAt,
	)
	if err != nil {
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "sprint"); err != nil {
		return store.ErrSprintNotFound
	}

	return nil
}

func scanSprint(row rowScanner) (*domain.Sprint, error) {
	var (
		sprint  domain.Sprint
		members []byte
	)

	err := row.Scan(
		&sprint.ID,
		&sprint.Name,
		&sprint.ProjectID,
		&sprint.Goal,
		&sprint.StartDate,
		&sprint.EndDate,
		&sprint.Status,
		&sprint.Velocity,
		&sprint.StoryPointsCommitted,
		&sprint.StoryPointsCompleted,
		&members,
		&sprint.RetrospectiveNotes,
		&sprint.CreatedAt,
		&sprint.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := unmarshalJSONColumn(members, &sprint.TeamMembers); err != nil {
		return nil, err
	}

	return &sprint, nil
}
