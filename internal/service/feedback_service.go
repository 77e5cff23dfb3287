package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pvaldez/cadence-api/internal/domain"
	"github.com/pvaldez/cadence-api/internal/platform/logger"
	"github.com/pvaldez/cadence-api/internal/store"
)

// GiveFeedbackCommand carries the input for giving feedback to a team member.
// FromUserID identifies the authenticated sender; when Anonymous is set the
// stored feedback carries no sender reference.
type GiveFeedbackCommand struct {
	FromUserID uuid.UUID
	ToUserID   uuid.UUID
	Type       string
	Category   string
	Rating     int
	Comment    string
	SprintID   *uuid.UUID
	Anonymous  bool
}

// FeedbackService provides peer feedback operations.
type FeedbackService interface {
	// GiveFeedback stores feedback for a user. Anonymous feedback drops the
	// sender identity before it is persisted.
	GiveFeedback(ctx context.Context, cmd GiveFeedbackCommand) (*domain.Feedback, error)

	// ListReceivedFeedback returns the non-deleted feedback addressed to a user.
	ListReceivedFeedback(ctx context.Context, toUserID uuid.UUID) ([]*domain.Feedback, error)

	// DeleteFeedback soft-deletes a feedback entry.
	DeleteFeedback(ctx context.Context, id uuid.UUID) error
}

// feedbackServiceImpl implements the FeedbackService interface.
type feedbackServiceImpl struct {
	feedback store.FeedbackStore
	users    store.UserStore
	logger   *slog.Logger
}

// NewFeedbackService creates a new FeedbackService.
// It returns an error if any of the required dependencies are nil.
func NewFeedbackService(
	feedback store.FeedbackStore,
	users store.UserStore,
	log *slog.Logger,
) (FeedbackService, error) {
	if feedback == nil {
		return nil, domain.NewValidationError("feedback", "cannot be nil", domain.ErrValidation)
	}
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}

	if log == nil {
		log = slog.Default()
	}

	return &feedbackServiceImpl{
		feedback: feedback,
		users:    users,
		logger:   log.With(slog.String("component", "feedback_service")),
	}, nil
}

// GiveFeedback implements FeedbackService.GiveFeedback.
func (s *feedbackServiceImpl) GiveFeedback(
	ctx context.Context,
	cmd GiveFeedbackCommand,
) (*domain.Feedback, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	fbType, err := domain.ParseFeedbackType(cmd.Type)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.GetByID(ctx, cmd.ToUserID); err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewServiceError("feedback", "give", "recipient does not exist", store.ErrUserNotFound)
		}
		return nil, NewServiceError("feedback", "give", "failed to load recipient", err)
	}

	fb, err := domain.NewFeedback(
		cmd.FromUserID,
		cmd.ToUserID,
		fbType,
		cmd.Category,
		cmd.Rating,
		cmd.Comment,
		cmd.Anonymous,
	)
	if err != nil {
		return nil, err
	}

	if cmd.SprintID != nil {
		fb.LinkSprint(*cmd.SprintID)
	}

	if err := s.feedback.Create(ctx, fb); err != nil {
		log.Error("failed to save feedback",
			slog.String("error", err.Error()),
			slog.String("to_user_id", cmd.ToUserID.String()))
		return nil, NewServiceError("feedback", "give", "failed to save feedback", err)
	}

	// Anonymous feedback is logged without the sender.
	log.Info("feedback recorded",
		slog.String("feedback_id", fb.ID.String()),
		slog.String("to_user_id", fb.ToUserID.String()),
		slog.Bool("anonymous", fb.IsAnonymous))
	return fb, nil
}

// ListReceivedFeedback implements FeedbackService.ListReceivedFeedback.
func (s *feedbackServiceImpl) ListReceivedFeedback(
	ctx context.Context,
	toUserID uuid.UUID,
) ([]*domain.Feedback, error) {
	items, err := s.feedback.ListByRecipient(ctx, toUserID)
	if err != nil {
		return nil, NewServiceError("feedback", "list", "failed to list feedback", err)
	}
	return items, nil
}

// DeleteFeedback implements FeedbackService.DeleteFeedback.
func (s *feedbackServiceImpl) DeleteFeedback(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.feedback.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return NewServiceError("feedback", "delete", "feedback not found", store.ErrFeedbackNotFound)
		}
		return NewServiceError("feedback", "delete", "failed to delete feedback", err)
	}

	log.Info("feedback soft-deleted", slog.String("feedback_id", id.String()))
	return nil
}
