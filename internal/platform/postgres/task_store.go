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

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend. Dependency, subtask,
// and tag collections live in JSONB columns on the task row. Deletes are
// soft: other tasks' references to a deleted task stay in place.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

const taskColumns = `id, title, description, project_id, sprint_id, assignee_id, status,
	priority, estimated_hours, actual_hours, story_points, tags, dependencies, subtasks,
	completed_at, created_at, updated_at, deleted_at`

// Create implements store.TaskStore.Create
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return err
	}

	tags, dependencies, subtasks, err := marshalTaskCollections(task)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.Title,
		task.Description,
		task.ProjectID,
		task.SprintID,
		task.AssignedTo,
		task.Status,
		task.Priority,
		task.EstimatedHours,
		task.ActualHours,
		task.StoryPoints,
		tags,
		dependencies,
		subtasks,
		task.CompletedAt,
		task.CreatedAt,
		task.UpdatedAt,
		task.DeletedAt,
	)
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}

	return nil
}

// GetByID implements store.TaskStore.GetByID
// Soft-deleted tasks are not returned.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1 AND deleted_at IS NULL`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrTaskNotFound
		}
		return nil, MapError(err)
	}

	return task, nil
}

// ListByProject implements store.TaskStore.ListByProject
func (s *PostgresTaskStore) ListByProject(
	ctx context.Context,
	projectID uuid.UUID,
) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE project_id = $1 AND deleted_at IS NULL ORDER BY created_at`
	return s.list(ctx, query, projectID)
}

// ListBySprint implements store.TaskStore.ListBySprint
func (s *PostgresTaskStore) ListBySprint(
	ctx context.Context,
	sprintID uuid.UUID,
) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE sprint_id = $1 AND deleted_at IS NULL ORDER BY created_at`
	return s.list(ctx, query, sprintID)
}

func (s *PostgresTaskStore) list(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return tasks, nil
}

// Update implements store.TaskStore.Update
// Returns store.ErrTaskNotFound if the task does not exist or is deleted.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	tags, dependencies, subtasks, err := marshalTaskCollections(task)
	if err != nil {
		return err
	}

	query := `
		UPDATE tasks
		SET title = $2, description = $3, sprint_id = $4, assignee_id = $5, status = $6,
			priority = $7, estimated_hours = $8, actual_hours = $9, story_points = $10,
			tags = $11, dependencies = $12, subtasks = $13, completed_at = $14,
			updated_at = $15
		WHERE id = $1 AND deleted_at IS NULL
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.Title,
		task.Description,
		task.SprintID,
		task.AssignedTo,
		task.Status,
		task.Priority,
		task.EstimatedHours,
		task.ActualHours,
		task.StoryPoints,
		tags,
		dependencies,
		subtasks,
		task.CompletedAt,
		task.UpdatedAt,
	)
	if err != nil {
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "task"); err != nil {
		return store.ErrTaskNotFound
	}

	return nil
}

// Delete implements store.TaskStore.Delete
// The row survives with a deleted_at stamp; references held by other tasks
// stay intact.
func (s *PostgresTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `UPDATE tasks SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "task"); err != nil {
		return store.ErrTaskNotFound
	}

	return nil
}

func marshalTaskCollections(task *domain.Task) (tags, dependencies, subtasks []byte, err error) {
	if tags, err = marshalJSONColumn(task.Tags); err != nil {
		return nil, nil, nil, err
	}
	if dependencies, err = marshalJSONColumn(task.Dependencies); err != nil {
		return nil, nil, nil, err
	}
	if subtasks, err = marshalJSONColumn(task.Subtasks); err != nil {
		return nil, nil, nil, err
	}
	return tags, dependencies, subtasks, nil
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task         domain.Task
		sprintID     uuid.NullUUID
		assigneeID   uuid.NullUUID
		tags         []byte
		dependencies []byte
		subtasks     []byte
	)

	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.ProjectID,
		&sprintID,
		&assigneeID,
		&task.Status,
		&task.Priority,
		&task.EstimatedHours,
		&task.ActualHours,
		&task.StoryPoints,
		&tags,
		&dependencies,
		&subtasks,
		&task.CompletedAt,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	if sprintID.Valid {
		task.SprintID = &sprintID.UUID
	}
	if assigneeID.Valid {
		task.AssignedTo = &assigneeID.UUID
	}

	if err := unmarshalJSONColumn(tags, &task.Tags); err != nil {
		return nil, err
	}
	if err := unmarshalJSONColumn(dependencies, &task.Dependencies); err != nil {
		return nil, err
	}
	if err := unmarshalJSONColumn(subtasks, &task.Subtasks); err != nil {
		return nil, err
	}

	return &task, nil
}
