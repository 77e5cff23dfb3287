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

// mockSprintStore is a hand-written store.SprintStore backed by a map.
type mockSprintStore struct {
	sprints   map[uuid.UUID]*domain.Sprint
	updateErr error
}

func newMockSprintStore() *mockSprintStore {
	return &mockSprintStore{sprints: make(map[uuid.UUID]*domain.Sprint)}
}

func (m *mockSprintStore) Create(_ context.Context, sprint *domain.Sprint) error {
	m.sprints[sprint.ID] = sprint
	return nil
}

func (m *mockSprintStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Sprint, error) {
	sprint, ok := m.sprints[id]
	if !ok {
		return nil, store.ErrSprintNotFound
	}
	return sprint, nil
}

func (m *mockSprintStore) ListByProject(_ context.Context, projectID uuid.UUID) ([]*domain.Sprint, error) {
	var out []*domain.Sprint
	for _, sprint := range m.sprints {
		if sprint.ProjectID == projectID {
			out = append(out, sprint)
		}
	}
	return out, nil
}

func (m *mockSprintStore) Update(_ context.Context, sprint *domain.Sprint) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.sprints[sprint.ID]; !ok {
		return store.ErrSprintNotFound
	}
	m.sprints[sprint.ID] = sprint
	return nil
}

func (m *mockSprintStore) WithTx(_ *sql.Tx) store.SprintStore { return m }

// mockProjectStore is a hand-written store.ProjectStore backed by a map.
type mockProjectStore struct {
	projects map[uuid.UUID]*domain.Project
}

func newMockProjectStore() *mockProjectStore {
	return &mockProjectStore{projects: make(map[uuid.UUID]*domain.Project)}
}

func (m *mockProjectStore) Create(_ context.Context, project *domain.Project) error {
	m.projects[project.ID] = project
	return nil
}

func (m *mockProjectStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Project, error) {
	project, ok := m.projects[id]
	if !ok {
		return nil, store.ErrProjectNotFound
	}
	return project, nil
}

func (m *mockProjectStore) List(_ context.Context) ([]*domain.Project, error) {
	var out []*domain.Project
	for _, project := range m.projects {
		out = append(out, project)
	}
	return out, nil
}

func (m *mockProjectStore) ListActive(_ context.Context) ([]*domain.Project, error) {
	var out []*domain.Project
	for _, project := range m.projects {
		if project.Status == domain.ProjectStatusActive {
			out = append(out, project)
		}
	}
	return out, nil
}

func (m *mockProjectStore) Update(_ context.Context, project *domain.Project) error {
	if _, ok := m.projects[project.ID]; !ok {
		return store.ErrProjectNotFound
	}
	m.projects[project.ID] = project
	return nil
}

func (m *mockProjectStore) WithTx(_ *sql.Tx) store.ProjectStore { return m }

// mockTaskStore is a hand-written store.TaskStore backed by a map.
type mockTaskStore struct {
	tasks map[uuid.UUID]*domain.Task
}

func newMockTaskStore() *mockTaskStore {
	return &mockTaskStore{tasks: make(map[uuid.UUID]*domain.Task)}
}

func (m *mockTaskStore) Create(_ context.Context, task *domain.Task) error {
	m.tasks[task.ID] = task
	return nil
}

func (m *mockTaskStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Task, error) {
	task, ok := m.tasks[id]
	if !ok || task.DeletedAt != nil {
		return nil, store.ErrTaskNotFound
	}
	return task, nil
}

func (m *mockTaskStore) ListByProject(_ context.Context, projectID uuid.UUID) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, task := range m.tasks {
		if task.ProjectID == projectID && task.DeletedAt == nil {
			out = append(out, task)
		}
	}
	return out, nil
}

func (m *mockTaskStore) ListBySprint(_ context.Context, sprintID uuid.UUID) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, task := range m.tasks {
		if task.SprintID != nil && *task.SprintID == sprintID && task.DeletedAt == nil {
			out = append(out, task)
		}
	}
	return out, nil
}

func (m *mockTaskStore) Update(_ context.Context, task *domain.Task) error {
	if _, ok := m.tasks[task.ID]; !ok {
		return store.ErrTaskNotFound
	}
	m.tasks[task.ID] = task
	return nil
}

func (m *mockTaskStore) Delete(_ context.Context, id uuid.UUID) error {
	task, ok := m.tasks[id]
	if !ok {
		return store.ErrTaskNotFound
	}
	now := time.Now().UTC()
	task.DeletedAt = &now
	return nil
}

func (m *mockTaskStore) WithTx(_ *sql.Tx) store.TaskStore { return m }

type sprintFixture struct {
	svc      service.SprintService
	sprints  *mockSprintStore
	projects *mockProjectStore
	tasks    *mockTaskStore
	project  *domain.Project
}

func newSprintFixture(t *testing.T) *sprintFixture {
	t.Helper()

	sprints := newMockSprintStore()
	projects := newMockProjectStore()
	tasks := newMockTaskStore()

	budget, err := domain.NewAmountFromFloat(5000)
	require.NoError(t, err)
	project, err := domain.NewProject("website revamp", budget, domain.CurrencyUSD, 200)
	require.NoError(t, err)
	require.NoError(t, projects.Create(context.Background(), project))

	svc, err := service.NewSprintService(sprints, projects, tasks, nil)
	require.NoError(t, err)

	return &sprintFixture{svc: svc, sprints: sprints, projects: projects, tasks: tasks, project: project}
}

func (f *sprintFixture) createSprint(t *testing.T) *domain.Sprint {
	t.Helper()

	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	sprint, err := f.svc.CreateSprint(context.Background(), service.CreateSprintCommand{
		Name:      "sprint 12",
		ProjectID: f.project.ID,
		Goal:      "checkout flow",
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 14),
	})
	require.NoError(t, err)
	return sprint
}

// addSprintTask schedules a task with the given points into the sprint,
// optionally marking it done.
func (f *sprintFixture) addSprintTask(t *testing.T, sprintID uuid.UUID, points int, done bool) {
	t.Helper()

	task, err := domain.NewTask("task", f.project.ID, domain.TaskPriorityMedium, 4, points)
	require.NoError(t, err)
	task.SprintID = &sprintID
	if done {
		require.NoError(t, task.SetStatus(domain.TaskStatusDone))
	}
	require.NoError(t, f.tasks.Create(context.Background(), task))
}

func TestCreateSprintUnknownProject(t *testing.T) {
	t.Parallel()

	f := newSprintFixture(t)
	start := time.Now().UTC()

	_, err := f.svc.CreateSprint(context.Background(), service.CreateSprintCommand{
		Name:      "orphan",
		ProjectID: uuid.New(),
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 14),
	})
	assert.ErrorIs(t, err, service.ErrSprintHasNoProject)
}

func TestSprintLifecycle(t *testing.T) {
	t.Parallel()

	f := newSprintFixture(t)
	ctx := context.Background()
	sprint := f.createSprint(t)

	assert.Equal(t, domain.SprintStatusPlanning, sprint.Status)

	_, err := f.svc.CommitStoryPoints(ctx, sprint.ID, 10)
	require.NoError(t, err)

	activated, err := f.svc.ActivateSprint(ctx, sprint.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SprintStatusActive, activated.Status)

	// 5 + 3 done, 2 still open.
	f.addSprintTask(t, sprint.ID, 5, true)
	f.addSprintTask(t, sprint.ID, 3, true)
	f.addSprintTask(t, sprint.ID, 2, false)

	completed, err := f.svc.CompleteSprint(ctx, sprint.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SprintStatusCompleted, completed.Status)
	assert.Equal(t, 8, completed.Velocity)
	assert.Equal(t, 8, completed.StoryPointsCompleted)
	assert.Equal(t, 10, completed.StoryPointsCommitted)

	_, err = f.svc.CompleteSprint(ctx, sprint.ID)
	assert.ErrorIs(t, err, domain.ErrSprintAlreadyCompleted)
}

func TestActivateSprintTwice(t *testing.T) {
	t.Parallel()

	f := newSprintFixture(t)
	ctx := context.Background()
	sprint := f.createSprint(t)

	_, err := f.svc.ActivateSprint(ctx, sprint.ID)
	require.NoError(t, err)

	_, err = f.svc.ActivateSprint(ctx, sprint.ID)
	assert.ErrorIs(t, err, domain.ErrSprintNotPlanning)
}

func TestSprintMetricsFromTasks(t *testing.T) {
	t.Parallel()

	f := newSprintFixture(t)
	ctx := context.Background()
	sprint := f.createSprint(t)

	f.addSprintTask(t, sprint.ID, 5, true)
	f.addSprintTask(t, sprint.ID, 3, true)
	f.addSprintTask(t, sprint.ID, 2, false)

	m, err := f.svc.SprintMetrics(ctx, sprint.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, m.Velocity)
	assert.Equal(t, 10, m.StoryPointsCommitted)
	assert.Equal(t, 66.67, m.CompletionRate)
}

func TestSetRetrospectiveNotes(t *testing.T) {
	t.Parallel()

	f := newSprintFixture(t)
	ctx := context.Background()
	sprint := f.createSprint(t)

	updated, err := f.svc.SetRetrospectiveNotes(ctx, sprint.ID, "demo went long, cut scope earlier")
	require.NoError(t, err)
	assert.Equal(t, "demo went long, cut scope earlier", updated.RetrospectiveNotes)

	_, err = f.svc.SetRetrospectiveNotes(ctx, uuid.New(), "nope")
	assert.ErrorIs(t, err, store.ErrSprintNotFound)
}

func TestListProjectSprints(t *testing.T) {
	t.Parallel()

	f := newSprintFixture(t)
	ctx := context.Background()
	f.createSprint(t)
	f.createSprint(t)

	sprints, err := f.svc.ListProjectSprints(ctx, f.project.ID)
	require.NoError(t, err)
	assert.Len(t, sprints, 2)
}
