package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pvaldez/cadence-api/internal/domain"
	"github.com/pvaldez/cadence-api/internal/service"
	"github.com/pvaldez/cadence-api/internal/store"
)

// mockFeedbackStore is a hand-written store.FeedbackStore backed by a map.
type mockFeedbackStore struct {
	feedback map[uuid.UUID]*domain.Feedback
}

func newMockFeedbackStore() *mockFeedbackStore {
	return &mockFeedbackStore{feedback: make(map[uuid.UUID]*domain.Feedback)}
}

func (m *mockFeedbackStore) Create(_ context.Context, fb *domain.Feedback) error {
	m.feedback[fb.ID] = fb
	return nil
}

func (m *mockFeedbackStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Feedback, error) {
	fb, ok := m.feedback[id]
	if !ok || fb.DeletedAt != nil {
		return nil, store.ErrFeedbackNotFound
	}
	return fb, nil
}

func (m *mockFeedbackStore) ListByRecipient(_ context.Context, toUserID uuid.UUID) ([]*domain.Feedback, error) {
	var out []*domain.Feedback
	for _, fb := range m.feedback {
		if fb.ToUserID == toUserID && fb.DeletedAt == nil {
			out = append(out, fb)
		}
	}
	return out, nil
}

func (m *mockFeedbackStore) Delete(_ context.Context, id uuid.UUID) error {
	fb, ok := m.feedback[id]
	if !ok || fb.DeletedAt != nil {
		return store.ErrFeedbackNotFound
	}
	now := time.Now().UTC()
	fb.DeletedAt = &now
	return nil
}

func (m *mockFeedbackStore) WithTx(_ *sql.Tx) store.FeedbackStore { return m }

type feedbackFixture struct {
	svc      service.FeedbackService
	feedback *mockFeedbackStore
	sender   *domain.User
	receiver *domain.User
}

func newFeedbackFixture(t *testing.T) *feedbackFixture {
	t.Helper()

	feedback := newMockFeedbackStore()
	users := newMockUserStore()
	ctx := context.Background()

	sender, err := domain.NewUser("sender@example.com", "a long enough password", "Sender")
	require.NoError(t, err)
	sender.HashedPassword = "hashed:whatever"
	sender.Password = ""
	require.NoError(t, users.Create(ctx, sender))

	receiver, err := domain.NewUser("receiver@example.com", "a long enough password", "Receiver")
	require.NoError(t, err)
	receiver.HashedPassword = "hashed:whatever"
	receiver.Password = ""
	require.NoError(t, users.Create(ctx, receiver))

	svc, err := service.NewFeedbackService(feedback, users, nil)
	require.NoError(t, err)

	return &feedbackFixture{svc: svc, feedback: feedback, sender: sender, receiver: receiver}
}

func TestGiveFeedback(t *testing.T) {
	t.Parallel()

	f := newFeedbackFixture(t)
	sprintID := uuid.New()

	fb, err := f.svc.GiveFeedback(context.Background(), service.GiveFeedbackCommand{
		FromUserID: f.sender.ID,
		ToUserID:   f.receiver.ID,
		Type:       "praise",
		Category:   "collaboration",
		Rating:     5,
		Comment:    "carried the release week",
		SprintID:   &sprintID,
	})
	require.NoError(t, err)

	require.NotNil(t, fb.FromUserID)
	assert.Equal(t, f.sender.ID, *fb.FromUserID)
	assert.Equal(t, f.receiver.ID, fb.ToUserID)
	require.NotNil(t, fb.SprintID)
	assert.Equal(t, sprintID, *fb.SprintID)
	assert.False(t, fb.IsAnonymous)
}

func TestGiveFeedbackAnonymous(t *testing.T) {
	t.Parallel()

	f := newFeedbackFixture(t)

	fb, err := f.svc.GiveFeedback(context.Background(), service.GiveFeedbackCommand{
		FromUserID: f.sender.ID,
		ToUserID:   f.receiver.ID,
		Type:       "improvement",
		Rating:     3,
		Comment:    "standups run long",
		Anonymous:  true,
	})
	require.NoError(t, err)

	assert.Nil(t, fb.FromUserID, "anonymous feedback must not carry the sender")
	assert.True(t, fb.IsAnonymous)

	// The stored copy has no sender either.
	stored, err := f.feedback.GetByID(context.Background(), fb.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.FromUserID)
}

func TestGiveFeedbackRejections(t *testing.T) {
	t.Parallel()

	f := newFeedbackFixture(t)
	ctx := context.Background()

	_, err := f.svc.GiveFeedback(ctx, service.GiveFeedbackCommand{
		FromUserID: f.sender.ID,
		ToUserID:   uuid.New(),
		Type:       "praise",
		Rating:     4,
		Comment:    "to nobody",
	})
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	_, err = f.svc.GiveFeedback(ctx, service.GiveFeedbackCommand{
		FromUserID: f.sender.ID,
		ToUserID:   f.receiver.ID,
		Type:       "rant",
		Rating:     4,
		Comment:    "unknown type",
	})
	assert.ErrorIs(t, err, domain.ErrFeedbackTypeInvalid)

	_, err = f.svc.GiveFeedback(ctx, service.GiveFeedbackCommand{
		FromUserID: f.sender.ID,
		ToUserID:   f.receiver.ID,
		Type:       "praise",
		Rating:     6,
		Comment:    "too enthusiastic",
	})
	assert.ErrorIs(t, err, domain.ErrFeedbackRatingRange)
}

func TestListAndDeleteFeedback(t *testing.T) {
	t.Parallel()

	f := newFeedbackFixture(t)
	ctx := context.Background()

	fb, err := f.svc.GiveFeedback(ctx, service.GiveFeedbackCommand{
		FromUserID: f.sender.ID,
		ToUserID:   f.receiver.ID,
		Type:       "general",
		Rating:     4,
		Comment:    "solid sprint",
	})
	require.NoError(t, err)

	received, err := f.svc.ListReceivedFeedback(ctx, f.receiver.ID)
	require.NoError(t, err)
	assert.Len(t, received, 1)

	require.NoError(t, f.svc.DeleteFeedback(ctx, fb.ID))

	received, err = f.svc.ListReceivedFeedback(ctx, f.receiver.ID)
	require.NoError(t, err)
	assert.Empty(t, received)

	err = f.svc.DeleteFeedback(ctx, fb.ID)
	assert.ErrorIs(t, err, store.ErrFeedbackNotFound)
}
