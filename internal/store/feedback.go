package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/pvaldez/cadence-api/internal/domain"
)

// FeedbackStore defines the interface for feedback persistence.
// Soft-deleted feedback is excluded from reads.
type FeedbackStore interface {
	// Create saves new feedback to the store. Anonymous feedback is stored
	// without a sender reference.
	Create(ctx context.Context, feedback *domain.Feedback) error

	// GetByID retrieves feedback by its unique ID.
	// Returns ErrFeedbackNotFound if the feedback does not exist or is soft-deleted.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Feedback, error)

	// ListByRecipient returns the non-deleted feedback addressed to a user.
	ListByRecipient(ctx context.Context, toUserID uuid.UUID) ([]*domain.Feedback, error)

	// Delete soft-deletes the feedback by stamping deleted_at.
	// Returns ErrFeedbackNotFound if the feedback does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new FeedbackStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) FeedbackStore
}
