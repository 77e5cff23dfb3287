package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// FeedbackType distinguishes praise from improvement suggestions.
type FeedbackType string

// Possible feedback type values
const (
	FeedbackTypePraise      FeedbackType = "praise"
	FeedbackTypeImprovement FeedbackType = "improvement"
	FeedbackTypeGeneral     FeedbackType = "general"
)

// Feedback-specific validation errors
var (
	ErrFeedbackIDEmpty       = errors.New("feedback ID cannot be empty")
	ErrFeedbackToUserEmpty   = errors.New("feedback recipient cannot be empty")
	ErrFeedbackTypeInvalid   = errors.New("invalid feedback type")
	ErrFeedbackRatingRange   = errors.New("feedback rating must be between 1 and 5")
	ErrFeedbackAnonymousFrom = errors.New("anonymous feedback cannot carry a sender")
)

// Feedback is a rated note from one user to another, optionally tied to a
// sprint. Anonymous feedback carries no sender reference at all.
type Feedback struct {
	ID          uuid.UUID    `json:"id"`
	FromUserID  *uuid.UUID   `json:"from_user_id,omitempty"`
	ToUserID    uuid.UUID    `json:"to_user_id"`
	Type        FeedbackType `json:"type"`
	Category    string       `json:"category"`
	Rating      int          `json:"rating"`
	Comment     string       `json:"comment"`
	SprintID    *uuid.UUID   `json:"sprint_id,omitempty"`
	IsAnonymous bool         `json:"is_anonymous"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	DeletedAt   *time.Time   `json:"deleted_at,omitempty"`
}

// NewFeedback creates a new Feedback with a fresh UUID and UTC timestamps.
// When anonymous is true the sender reference is dropped before storage.
// Returns an error if validation fails.
func NewFeedback(
	fromUserID uuid.UUID,
	toUserID uuid.UUID,
	fbType FeedbackType,
	category string,
	rating int,
	comment string,
	anonymous bool,
) (*Feedback, error) {
	now := time.Now().UTC()
	fb := &Feedback{
		ID:          uuid.New(),
		ToUserID:    toUserID,
		Type:        fbType,
		Category:    category,
		Rating:      rating,
		Comment:     comment,
		IsAnonymous: anonymous,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if !anonymous {
		fb.FromUserID = &fromUserID
	}

	if err := fb.Validate(); err != nil {
		return nil, err
	}

	return fb, nil
}

// Validate checks if the Feedback has valid data.
// Returns an error if any field fails validation.
func (f *Feedback) Validate() error {
	if f.ID == uuid.Nil {
		return ErrFeedbackIDEmpty
	}

	if f.ToUserID == uuid.Nil {
		return ErrFeedbackToUserEmpty
	}

	if !isValidFeedbackType(f.Type) {
		return ErrFeedbackTypeInvalid
	}

	if f.Rating < 1 || f.Rating > 5 {
		return ErrFeedbackRatingRange
	}

	if f.IsAnonymous && f.FromUserID != nil {
		return ErrFeedbackAnonymousFrom
	}

	return nil
}

// LinkSprint ties the feedback to a sprint.
func (f *Feedback) LinkSprint(sprintID uuid.UUID) {
	f.SprintID = &sprintID
	f.UpdatedAt = time.Now().UTC()
}

// SoftDelete marks the feedback deleted. Recipient and sprint references stay
// intact.
func (f *Feedback) SoftDelete() {
	now := time.Now().UTC()
	f.DeletedAt = &now
	f.UpdatedAt = now
}

// IsDeleted reports whether the feedback has been soft-deleted.
func (f *Feedback) IsDeleted() bool {
	return f.DeletedAt != nil
}

// ParseFeedbackType validates a type literal and returns the typed value.
func ParseFeedbackType(v string) (FeedbackType, error) {
	t := FeedbackType(v)
	if !isValidFeedbackType(t) {
		return "", ErrFeedbackTypeInvalid
	}
	return t, nil
}

// isValidFeedbackType checks if the given value is a valid FeedbackType.
func isValidFeedbackType(t FeedbackType) bool {
	switch t {
	case FeedbackTypePraise, FeedbackTypeImprovement, FeedbackTypeGeneral:
		return true
	default:
		return false
	}
}
