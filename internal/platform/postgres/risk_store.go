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

// PostgresRiskStore implements the store.RiskStore interface
// using a PostgreSQL database as the storage backend. Severity is never
// stored; the domain entity derives it from probability and impact.
type PostgresRiskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresRiskStore creates a new PostgreSQL implementation of the
// RiskStore interface. If logger is nil, a default logger will be used.
func NewPostgresRiskStore(db store.DBTX, logger *slog.Logger) *PostgresRiskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresRiskStore{
		db:     db,
		logger: logger.With(slog.String("component", "risk_store")),
	}
}

// Ensure PostgresRiskStore implements store.RiskStore interface
var _ store.RiskStore = (*PostgresRiskStore)(nil)

// WithTx implements store.RiskStore.WithTx
func (s *PostgresRiskStore) WithTx(tx *sql.Tx) store.RiskStore {
	return &PostgresRiskStore{
		db:     tx,
		logger: s.logger,
	}
}

const riskColumns = `id, project_id, title, description, category, probability, impact,
	responsible_id, status, is_core, comments, created_at, updated_at`

// Create implements store.RiskStore.Create
func (s *PostgresRiskStore) Create(ctx context.Context, risk *domain.Risk) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := risk.Validate(); err != nil {
		return err
	}

	comments, err := marshalJSONColumn(risk.Comments)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO risks (` + riskColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		risk.ID,
		risk.ProjectID,
		risk.Title,
		risk.Description,
		risk.Category,
		risk.Probability,
		risk.Impact,
		risk.ResponsibleID,
		risk.Status,
		risk.IsCore,
		comments,
		risk.CreatedAt,
		risk.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create risk",
			slog.String("error", err.Error()),
			slog.String("risk_id", risk.ID.String()))
		return MapError(err)
	}

	return nil
}

// GetByID implements store.RiskStore.GetByID
// Returns store.ErrRiskNotFound if the risk does not exist.
func (s *PostgresRiskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Risk, error) {
	query := `SELECT ` + riskColumns + ` FROM risks WHERE id = $1`

	risk, err := scanRisk(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrRiskNotFound
		}
		return nil, MapError(err)
	}

	return risk, nil
}

// ListByProject implements store.RiskStore.ListByProject
func (s *PostgresRiskStore) ListByProject(
	ctx context.Context,
	projectID uuid.UUID,
) ([]*domain.Risk, error) {
	query := `SELECT ` + riskColumns + ` FROM risks WHERE project_id = $1 ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var risks []*domain.Risk
	for rows.Next() {
		risk, err := scanRisk(rows)
		if err != nil {
			return nil, err
		}
		risks = append(risks, risk)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return risks, nil
}

// Update implements store.RiskStore.Update
// Returns store.ErrRiskNotFound if the risk does not exist.
func (s *PostgresRiskStore) Update(ctx context.Context, risk *domain.Risk) error {
	if err := risk.Validate(); err != nil {
		return err
	}

	comments, err := marshalJSONColumn(risk.Comments)
	if err != nil {
		return err
	}

	query := `
		UPDATE risks
		SET title = $2, description = $3, category = $4, probability = $5, impact = $6,
			responsible_id = $7, status = $8, is_core = $9, comments = $10, updated_at = $11
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		risk.ID,
		risk.Title,
		risk.Description,
		risk.Category,
		risk.Probability,
		risk.Impact,
		risk.ResponsibleID,
		risk.Status,
		risk.IsCore,
		comments,
		risk.UpdatedAt,
	)
	if err != nil {
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "risk"); err != nil {
		return store.ErrRiskNotFound
	}

	return nil
}

func scanRisk(row rowScanner) (*domain.Risk, error) {
	var (
		risk          domain.Risk
		responsibleID uuid.NullUUID
		comments      []byte
	)

	err := row.Scan(
		&risk.ID,
		&risk.ProjectID,
		&risk.Title,
		&risk.Description,
		&risk.Category,
		&risk.Probability,
		&risk.Impact,
		&responsibleID,
		&risk.Status,
		&risk.IsCore,
		&comments,
		&risk.CreatedAt,
		&risk.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if responsibleID.Valid {
		risk.ResponsibleID = &responsibleID.UUID
	}

	if err := unmarshalJSONColumn(comments, &risk.Comments); err != nil {
		return nil, err
	}

	return &risk, nil
}
