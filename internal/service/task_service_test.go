package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pvaldez/cadence-api/internal/domain"
	"github.com/pvaldez/cadence-api/internal/service"
	"github.com/pvaldez/cadence-api/internal/store"
)

// mockTimeEntryStore is a hand-written store.TimeEntryStore backed by a map.
type mockTimeEntryStore struct {
	entries map[uuid.UUID]*domain.TimeEntry
}

func newMockTimeEntryStore() *mockTimeEntryStore {
	return &mockTimeEntryStore{entries: make(map[uuid.UUID]*domain.TimeEntry)}
}

func (m *mockTimeEntryStore) Create(_ context.Context, entry *domain.TimeEntry) error {
	m.entries[entry.ID] = entry
	return nil
}

func (m *mockTimeEntryStore) GetByID(_ context.Context, id uuid.UUID) (*domain.TimeEntry, error) {
	entry, ok := m.entries[id]
	if !ok || entry.DeletedAt != nil {
		return nil, store.ErrTimeEntryNotFound
	}
	return entry, nil
}

func (m *mockTimeEntryStore) ListByTask(_ context.Context, taskID uuid.UUID) ([]*domain.TimeEntry, error) {
	var out []*domain.TimeEntry
	for _, entry := range m.entries {
		if entry.TaskID == taskID && entry.DeletedAt == nil {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (m *mockTimeEntryStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*domain.TimeEntry, error) {
	var out []*domain.TimeEntry
	for _, entry := range m.entries {
		if entry.UserID == userID && entry.DeletedAt == nil {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (m *mockTimeEntryStore) SumHoursByTask(_ context.Context, taskID uuid.UUID) (float64, error) {
	var total float64
	for _, entry := range m.entries {
		if entry.TaskID == taskID && entry.DeletedAt == nil {
			total += entry.Hours
		}
	}
	return total, nil
}

func (m *mockTimeEntryStore) SumHoursByUserAndProject(_ context.Context, userID, _ uuid.UUID) (float64, error) {
	var total float64
	for _, entry := range m.entries {
		if entry.UserID == userID && entry.DeletedAt == nil {
			total += entry.Hours
		}
	}
	return total, nil
}

func (m *mockTimeEntryStore) Delete(_ context.Context, id uuid.UUID) error {
	entry, ok := m.entries[id]
	if !ok || entry.DeletedAt != nil {
		return store.ErrTimeEntryNotFound
	}
	entry.SoftDelete()
	return nil
}

func (m *mockTimeEntryStore) WithTx(_ *sql.Tx) store.TimeEntryStore { return m }

type taskFixture struct {
	svc     service.TaskService
	mock    sqlmock.Sqlmock
	tasks   *mockTaskStore
	entries *mockTimeEntryStore
	project *domain.Project
}

func newTaskFixture(t *testing.T) *taskFixture {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	tasks := newMockTaskStore()
	projects := newMockProjectStore()
	entries := newMockTimeEntryStore()

	budget, err := domain.NewAmountFromFloat(8000)
	require.NoError(t, err)
	project, err := domain.NewProject("platform", budget, domain.CurrencyUSD, 300)
	require.NoError(t, err)
	require.NoError(t, projects.Create(context.Background(), project))

	svc, err := service.NewTaskService(db, tasks, projects, entries, nil)
	require.NoError(t, err)

	return &taskFixture{svc: svc, mock: mock, tasks: tasks, entries: entries, project: project}
}

func (f *taskFixture) createTask(t *testing.T, title string) *domain.Task {
	t.Helper()

	task, err := f.svc.CreateTask(context.Background(), service.CreateTaskCommand{
		Title:          title,
		ProjectID:      f.project.ID,
		Priority:       "medium",
		EstimatedHours: 8,
		StoryPoints:    3,
	})
	require.NoError(t, err)
	return task
}

func TestCreateTask(t *testing.T) {
	t.Parallel()

	f := newTaskFixture(t)
	sprintID := uuid.New()
	assignee := uuid.New()

	task, err := f.svc.CreateTask(context.Background(), service.CreateTaskCommand{
		Title:          "wire payment provider",
		Description:    "sandbox first",
		ProjectID:      f.project.ID,
		SprintID:       &sprintID,
		AssigneeID:     &assignee,
		Priority:       "high",
		EstimatedHours: 16,
		StoryPoints:    8,
		Tags:           []string{"payments"},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.TaskStatusTodo, task.Status)
	assert.Equal(t, domain.TaskPriorityHigh, task.Priority)
	require.NotNil(t, task.SprintID)
	assert.Equal(t, sprintID, *task.SprintID)
	require.NotNil(t, task.AssignedTo)
	assert.Equal(t, assignee, *task.AssignedTo)
}

func TestCreateTaskRejections(t *testing.T) {
	t.Parallel()

	f := newTaskFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateTask(ctx, service.CreateTaskCommand{
		Title:     "orphan",
		ProjectID: uuid.New(),
		Priority:  "low",
	})
	assert.ErrorIs(t, err, store.ErrProjectNotFound)

	_, err = f.svc.CreateTask(ctx, service.CreateTaskCommand{
		Title:     "bad priority",
		ProjectID: f.project.ID,
		Priority:  "whenever",
	})
	assert.ErrorIs(t, err, domain.ErrTaskPriorityInvalid)
}

func TestUpdateTaskStatus(t *testing.T) {
	t.Parallel()

	f := newTaskFixture(t)
	ctx := context.Background()
	task := f.createTask(t, "review contract")

	updated, err := f.svc.UpdateStatus(ctx, task.ID, "done")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusDone, updated.Status)
	assert.NotNil(t, updated.CompletedAt)

	// Reopening clears the completion stamp.
	updated, err = f.svc.UpdateStatus(ctx, task.ID, "in_progress")
	require.NoError(t, err)
	assert.Nil(t, updated.CompletedAt)

	_, err = f.svc.UpdateStatus(ctx, task.ID, "parked")
	assert.ErrorIs(t, err, domain.ErrTaskStatusInvalid)
}

func TestAddDependencyRejectsCycles(t *testing.T) {
	t.Parallel()

	f := newTaskFixture(t)
	ctx := context.Background()

	a := f.createTask(t, "schema")
	b := f.createTask(t, "api")
	c := f.createTask(t, "frontend")

	_, err := f.svc.AddDependency(ctx, b.ID, a.ID)
	require.NoError(t, err)
	_, err = f.svc.AddDependency(ctx, c.ID, b.ID)
	require.NoError(t, err)

	// a -> b -> c exists transitively, so a depending on c closes a loop.
	_, err = f.svc.AddDependency(ctx, a.ID, c.ID)
	assert.ErrorIs(t, err, domain.ErrTaskDependencyCycle)

	_, err = f.svc.AddDependency(ctx, a.ID, uuid.New())
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestAssignToSprint(t *testing.T) {
	t.Parallel()

	f := newTaskFixture(t)
	task := f.createTask(t, "retro prep")
	sprintID := uuid.New()

	updated, err := f.svc.AssignToSprint(context.Background(), task.ID, sprintID)
	require.NoError(t, err)
	require.NotNil(t, updated.SprintID)
	assert.Equal(t, sprintID, *updated.SprintID)
}

func TestLogTimeUpdatesActualHours(t *testing.T) {
	t.Parallel()

	f := newTaskFixture(t)
	ctx := context.Background()
	task := f.createTask(t, "ingest pipeline")
	userID := uuid.New()
	day := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	entry, err := f.svc.LogTime(ctx, service.LogTimeCommand{
		TaskID:      task.ID,
		UserID:      userID,
		Hours:       3.5,
		Date:        day,
		Description: "spike",
	})
	require.NoError(t, err)
	assert.Equal(t, 3.5, entry.Hours)

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	_, err = f.svc.LogTime(ctx, service.LogTimeCommand{
		TaskID: task.ID,
		UserID: userID,
		Hours:  2,
		Date:   day.AddDate(0, 0, 1),
	})
	require.NoError(t, err)

	stored, err := f.svc.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.5, stored.ActualHours)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestLogTimeRejectsNonPositiveHours(t *testing.T) {
	t.Parallel()

	f := newTaskFixture(t)
	task := f.createTask(t, "doc pass")

	_, err := f.svc.LogTime(context.Background(), service.LogTimeCommand{
		TaskID: task.ID,
		UserID: uuid.New(),
		Hours:  0,
		Date:   time.Now().UTC(),
	})
	assert.ErrorIs(t, err, domain.ErrTimeEntryHours)
}

func TestDeleteTimeEntryRefreshesHours(t *testing.T) {
	t.Parallel()

	f := newTaskFixture(t)
	ctx := context.Background()
	task := f.createTask(t, "load test")
	day := time.Date(2026, 2, 12, 0, 0, 0, 0, time.UTC)

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	entry, err := f.svc.LogTime(ctx, service.LogTimeCommand{
		TaskID: task.ID,
		UserID: uuid.New(),
		Hours:  4,
		Date:   day,
	})
	require.NoError(t, err)

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	require.NoError(t, f.svc.DeleteTimeEntry(ctx, entry.ID))

	stored, err := f.svc.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Zero(t, stored.ActualHours)

	err = f.svc.DeleteTimeEntry(ctx, entry.ID)
	assert.ErrorIs(t, err, store.ErrTimeEntryNotFound)
	assert.NoError(t, f.mock.ExpectationsWereMet())
}

func TestDeleteTaskKeepsReferencesOnOthers(t *testing.T) {
	t.Parallel()

	f := newTaskFixture(t)
	ctx := context.Background()

	dep := f.createTask(t, "upstream")
	task := f.createTask(t, "downstream")
	_, err := f.svc.AddDependency(ctx, task.ID, dep.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteTask(ctx, dep.ID))

	_, err = f.svc.GetTask(ctx, dep.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	// The surviving task still lists the deleted one as a dependency.
	survivor, err := f.svc.GetTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Contains(t, survivor.Dependencies, dep.ID)
}
