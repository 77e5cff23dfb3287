package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewFeedback(t *testing.T) {
	t.Parallel()

	from, to := uuid.New(), uuid.New()

	fb, err := NewFeedback(from, to, FeedbackTypePraise, "collaboration", 5, "Great sprint", false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if fb.FromUserID == nil || *fb.FromUserID != from {
		t.Error("Expected sender to be recorded on signed feedback")
	}
}

func TestNewFeedbackAnonymousDropsSender(t *testing.T) {
	t.Parallel()

	from, to := uuid.New(), uuid.New()

	fb, err := NewFeedback(from, to, FeedbackTypeImprovement, "", 3, "Standups run long", true)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if fb.FromUserID != nil {
		t.Error("Expected no sender reference on anonymous feedback")
	}
	if !fb.IsAnonymous {
		t.Error("Expected anonymous flag to be set")
	}
}

func TestNewFeedbackValidation(t *testing.T) {
	t.Parallel()

	from, to := uuid.New(), uuid.New()

	if _, err := NewFeedback(from, uuid.Nil, FeedbackTypeGeneral, "", 3, "c", false); err != ErrFeedbackToUserEmpty {
		t.Errorf("Expected ErrFeedbackToUserEmpty, got %v", err)
	}
	if _, err := NewFeedback(from, to, FeedbackType("rant"), "", 3, "c", false); err != ErrFeedbackTypeInvalid {
		t.Errorf("Expected ErrFeedbackTypeInvalid, got %v", err)
	}
	if _, err := NewFeedback(from, to, FeedbackTypeGeneral, "", 0, "c", false); err != ErrFeedbackRatingRange {
		t.Errorf("Expected ErrFeedbackRatingRange, got %v", err)
	}
	if _, err := NewFeedback(from, to, FeedbackTypeGeneral, "", 6, "c", false); err != ErrFeedbackRatingRange {
		t.Errorf("Expected ErrFeedbackRatingRange, got %v", err)
	}
}

func TestFeedbackSoftDelete(t *testing.T) {
	t.Parallel()

	fb, err := NewFeedback(uuid.New(), uuid.New(), FeedbackTypePraise, "", 4, "c", false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	fb.LinkSprint(uuid.New())
	fb.SoftDelete()

	if !fb.IsDeleted() {
		t.Error("Expected feedback to report deleted")
	}
	if fb.SprintID == nil {
		t.Error("Expected sprint reference to survive soft delete")
	}
}
