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

// PostgresFeedbackStore implements the store.FeedbackStore interface
// using a PostgreSQL database as the storage backend. Anonymous feedback is
// stored with a NULL sender column, so anonymity survives at the data layer.
type PostgresFeedbackStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFeedbackStore creates a new PostgreSQL implementation of the
// FeedbackStore interface. If logger is nil, a default logger will be used.
func NewPostgresFeedbackStore(db store.DBTX, logger *slog.Logger) *PostgresFeedbackStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresFeedbackStore{
		db:     db,
		logger: logger.With(slog.String("component", "feedback_store")),
	}
}

// Ensure PostgresFeedbackStore implements store.FeedbackStore interface
var _ store.FeedbackStore = (*PostgresFeedbackStore)(nil)

// WithTx implements store.FeedbackStore.WithTx
func (s *PostgresFeedbackStore) WithTx(tx *sql.Tx) store.FeedbackStore {
	return &PostgresFeedbackStore{
		db:     tx,
		logger: s.logger,
	}
}

const feedbackColumns = `id, from_user_id, to_user_id, type, category, rating, comment,
	sprint_id, is_anonymous, created_at, updated_at, deleted_at`

// Create implements store.FeedbackStore.Create
func (s *PostgresFeedbackStore) Create(ctx context.Context, feedback *domain.Feedback) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := feedback.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO feedback (` + feedbackColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		feedback.ID,
		feedback.FromUserID,
		feedback.ToUserID,
		feedback.Type,
		feedback.Category,
		feedback.Rating,
		feedback.Comment,
		feedback.SprintID,
		feedback.IsAnonymous,
		feedback.CreatedAt,
		feedback.UpdatedAt,
		feedback.DeletedAt,
	)
	if err != nil {
		log.Error("failed to create feedback",
			slog.String("error", err.Error()),
			slog.String("feedback_id", feedback.ID.String()))
		return MapError(err)
	}

	return nil
}

// GetByID implements store.FeedbackStore.GetByID
// Soft-deleted feedback is not returned.
func (s *PostgresFeedbackStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback WHERE id = $1 AND deleted_at IS NULL`

	feedback, err := scanFeedback(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrFeedbackNotFound
		}
		return nil, MapError(err)
	}

	return feedback, nil
}

// ListByRecipient implements store.FeedbackStore.ListByRecipient
func (s *PostgresFeedbackStore) ListByRecipient(
	ctx context.Context,
	toUserID uuid.UUID,
) ([]*domain.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback
		WHERE to_user_id = $1 AND deleted_at IS NULL ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, toUserID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var items []*domain.Feedback
	for rows.Next() {
		feedback, err := scanFeedback(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, feedback)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return items, nil
}

// Delete implements store.FeedbackStore.Delete
// The row survives with a deleted_at stamp.
func (s *PostgresFeedbackStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `UPDATE feedback SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete feedback",
			slog.String("error", err.Error()),
			slog.String("feedback_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "feedback"); err != nil {
		return store.ErrFeedbackNotFound
	}

	return nil
}

func scanFeedback(row rowScanner) (*domain.Feedback, error) {
	var (
		feedback   domain.Feedback
		fromUserID uuid.NullUUID
		sprintID   uuid.NullUUID
	)

	err := row.Scan(
		&feedback.ID,
		&fromUserID,
		&feedback.ToUserID,
		&feedback.Type,
		&feedback.Category,
		&feedback.Rating,
		&feedback.Comment,
		&sprintID,
		&feedback.IsAnonymous,
		&feedback.CreatedAt,
		&feedback.UpdatedAt,
		&feedback.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	if fromUserID.Valid {
		feedback.FromUserID = &fromUserID.UUID
	}
	if sprintID.Valid {
		feedback.SprintID = &sprintID.UUID
	}

	return &feedback, nil
}
