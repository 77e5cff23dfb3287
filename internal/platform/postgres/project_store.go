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

// PostgresProjectStore implements the store.ProjectStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProjectStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProjectStore creates a new PostgreSQL implementation of the
// ProjectStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresProjectStore(db store.DBTX, logger *slog.Logger) *PostgresProjectStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProjectStore{
		db:     db,
		logger: logger.With(slog.String("component", "project_store")),
	}
}

// Ensure PostgresProjectStore implements store.ProjectStore interface
var _ store.ProjectStore = (*PostgresProjectStore)(nil)

// WithTx implements store.ProjectStore.WithTx
func (s *PostgresProjectStore) WithTx(tx *sql.Tx) store.ProjectStore {
	return &PostgresProjectStore{
		db:     tx,
		logger: s.logger,
	}
}

const projectColumns = `id, name, description, client_id, budget, spent, currency,
	status, total_hours_planned, team_members, created_at, updated_at`

// Create implements store.ProjectStore.Create
// It saves a new project to the database, handling domain validation.
func (s *PostgresProjectStore) Create(ctx context.Context, project *domain.Project) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := project.Validate(); err != nil {
		log.Warn("project validation failed during create",
			slog.String("error", err.Error()),
			slog.String("project_id", project.ID.String()))
		return err
	}

	members, err := marshalJSONColumn(project.TeamMembers)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		project.ID,
		project.Name,
		project.Description,
		project.ClientID,
		project.Budget.Decimal(),
		project.Spent.Decimal(),
		project.Currency,
		project.Status,
		project.TotalHoursPlanned,
		members,
		project.CreatedAt,
		project.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create project",
			slog.String("error", err.Error()),
			slog.String("project_id", project.ID.String()))
		return MapError(err)
	}

	log.Info("project created",
		slog.String("project_id", project.ID.String()),
		slog.String("name", project.Name))
	return nil
}

// GetByID implements store.ProjectStore.GetByID
// Returns store.ErrProjectNotFound if the project does not exist.
func (s *PostgresProjectStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	project, err := scanProject(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrProjectNotFound
		}
		return nil, MapError(err)
	}

	return project, nil
}

// List implements store.ProjectStore.List
func (s *PostgresProjectStore) List(ctx context.Context) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects ORDER BY created_at`
	return s.list(ctx, query)
}

// ListActive implements store.ProjectStore.ListActive
func (s *PostgresProjectStore) ListActive(ctx context.Context) ([]*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE status = $1 ORDER BY created_at`
	return s.list(ctx, query, domain.ProjectStatusActive)
}

func (s *PostgresProjectStore) list(ctx context.Context, query string, args ...any) ([]*domain.Project, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var projects []*domain.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return projects, nil
}

// Update implements store.ProjectStore.Update
// Returns store.ErrProjectNotFound if the project does not exist.
func (s *PostgresProjectStore) Update(ctx context.Context, project *domain.Project) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := project.Validate(); err != nil {
		return err
	}

	members, err := marshalJSONColumn(project.TeamMembers)
	if err != nil {
		return err
	}

	query := `
		UPDATE projects
		SET name = $2, description = $3, client_id = $4, budget = $5, spent = $6,
			currency = $7, status = $8, total_hours_planned = $9, team_members = $10,
			updated_at = $11
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		project.ID,
		project.Name,
		project.Description,
		project.ClientID,
		project.Budget.Decimal(),
		project.Spent.Decimal(),
		project.Currency,
		project.Status,
		project.TotalHoursPlanned,
		members,
		project.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to update project",
			slog.String("error", err.Error()),
			slog.String("project_id", project.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "project"); err != nil {
		return store.ErrProjectNotFound
	}

	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var (
		project  domain.Project
		clientID uuid.NullUUID
		budget   decimal.Decimal
		spent    decimal.Decimal
		members  []byte
	)

	err := row.Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&clientID,
		&budget,
		&spent,
		&project.Currency,
		&project.Status,
		&project.TotalHoursPlanned,
		&members,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if clientID.Valid {
		project.ClientID = &clientID.UUID
	}

	if project.Budget, err = domain.NewAmount(budget); err != nil {
		return nil, fmt.Errorf("stored budget is invalid: %w", err)
	}
	if project.Spent, err = domain.NewAmount(spent); err != nil {
		return nil, fmt.Errorf("stored spent is invalid: %w", err)
	}

	if err := unmarshalJSONColumn(members, &project.TeamMembers); err != nil {
		return nil, err
	}

	return &project, nil
}
