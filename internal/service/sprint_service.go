package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pvaldez/cadence-api/internal/domain"
	"github.com/pvaldez/cadence-api/internal/domain/metrics"
	"github.com/pvaldez/cadence-api/internal/platform/logger"
	"github.com/pvaldez/cadence-api/internal/store"
)

// CreateSprintCommand carries the input for creating a sprint.
type CreateSprintCommand struct {
	Name        string
	ProjectID   uuid.UUID
	Goal        string
	StartDate   time.Time
	EndDate     time.Time
	TeamMembers []uuid.UUID
}

// SprintService provides sprint lifecycle and reporting operations.
type SprintService interface {
	// CreateSprint stores a new sprint in planning status. The referenced
	// project must exist.
	CreateSprint(ctx context.Context, cmd CreateSprintCommand) (*domain.Sprint, error)

	// GetSprint returns a sprint by ID.
	GetSprint(ctx context.Context, id uuid.UUID) (*domain.Sprint, error)

	// ListProjectSprints returns the sprints of a project.
	ListProjectSprints(ctx context.Context, projectID uuid.UUID) ([]*domain.Sprint, error)

	// ActivateSprint moves a planning sprint to active.
	ActivateSprint(ctx context.Context, id uuid.UUID) (*domain.Sprint, error)

	// CompleteSprint closes an active sprint, counting done story points from
	// its tasks and persisting the resulting velocity.
	CompleteSprint(ctx context.Context, id uuid.UUID) (*domain.Sprint, error)

	// CommitStoryPoints sets the committed story point total of a sprint.
	CommitStoryPoints(ctx context.Context, id uuid.UUID, points int) (*domain.Sprint, error)

	// SetRetrospectiveNotes attaches retrospective notes to a sprint.
	SetRetrospectiveNotes(ctx context.Context, id uuid.UUID, notes string) (*domain.Sprint, error)

	// SprintMetrics computes velocity, completion rate, and cycle time for a
	// sprint from its tasks.
	SprintMetrics(ctx context.Context, id uuid.UUID) (metrics.SprintMetrics, error)
}

// sprintServiceImpl implements the SprintService interface.
type sprintServiceImpl struct {
	sprints  store.SprintStore
	projects store.ProjectStore
	tasks    store.TaskStore
	logger   *slog.Logger
}

// NewSprintService creates a new SprintService.
// It returns an error if any of the required dependencies are nil.
func NewSprintService(
	sprints store.SprintStore,
	projects store.ProjectStore,
	tasks store.TaskStore,
	log *slog.Logger,
) (SprintService, error) {
	if sprints == nil {
		return nil, domain.NewValidationError("sprints", "cannot be nil", domain.ErrValidation)
	}
	if projects == nil {
		return nil, domain.NewValidationError("projects", "cannot be nil", domain.ErrValidation)
	}
	if tasks == nil {
		return nil, domain.NewValidationError("tasks", "cannot be nil", domain.ErrValidation)
	}

	if log == nil {
		log = slog.Default()
	}

	return &sprintServiceImpl{
		sprints:  sprints,
		projects: projects,
		tasks:    tasks,
		logger:   log.With(slog.String("component", "sprint_service")),
	}, nil
}

// CreateSprint implements SprintService.CreateSprint.
func (s *sprintServiceImpl) CreateSprint(
	ctx context.Context,
	cmd CreateSprintCommand,
) (*domain.Sprint, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.projects.GetByID(ctx, cmd.ProjectID); err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewServiceError("sprint", "create", "referenced project does not exist", ErrSprintHasNoProject)
		}
		return nil, NewServiceError("sprint", "create", "failed to load project", err)
	}

	sprint, err := domain.NewSprint(cmd.Name, cmd.ProjectID, cmd.Goal, cmd.StartDate, cmd.EndDate)
	if err != nil {
		return nil, err
	}

	for _, member := range cmd.TeamMembers {
		sprint.AddTeamMember(member)
	}

	if err := s.sprints.Create(ctx, sprint); err != nil {
		log.Error("failed to create sprint",
			slog.String("error", err.Error()),
			slog.String("project_id", cmd.ProjectID.String()))
		return nil, NewServiceError("sprint", "create", "failed to save sprint", err)
	}

	log.Info("sprint created",
		slog.String("sprint_id", sprint.ID.String()),
		slog.String("project_id", sprint.ProjectID.String()))
	return sprint, nil
}

// GetSprint implements SprintService.GetSprint.
func (s *sprintServiceImpl) GetSprint(ctx context.Context, id uuid.UUID) (*domain.Sprint, error) {
	sprint, err := s.sprints.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewServiceError("sprint", "get", "sprint not found", store.ErrSprintNotFound)
		}
		return nil, NewServiceError("sprint", "get", "failed to load sprint", err)
	}
	return sprint, nil
}

// ListProjectSprints implements SprintService.ListProjectSprints.
func (s *sprintServiceImpl) ListProjectSprints(
	ctx context.Context,
	projectID uuid.UUID,
) ([]*domain.Sprint, error) {
	sprints, err := s.sprints.ListByProject(ctx, projectID)
	if err != nil {
		return nil, NewServiceError("sprint", "list", "failed to list sprints", err)
	}
	return sprints, nil
}

// ActivateSprint implements SprintService.ActivateSprint.
func (s *sprintServiceImpl) ActivateSprint(ctx context.Context, id uuid.UUID) (*domain.Sprint, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sprint, err := s.GetSprint(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := sprint.Activate(); err != nil {
		return nil, err
	}

	if err := s.sprints.Update(ctx, sprint); err != nil {
		return nil, NewServiceError("sprint", "activate", "failed to update sprint", err)
	}

	log.Info("sprint activated", slog.String("sprint_id", sprint.ID.String()))
	return sprint, nil
}

// CompleteSprint implements SprintService.CompleteSprint.
func (s *sprintServiceImpl) CompleteSprint(ctx context.Context, id uuid.UUID) (*domain.Sprint, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sprint, err := s.GetSprint(ctx, id)
	if err != nil {
		return nil, err
	}

	tasks, err := s.tasks.ListBySprint(ctx, id)
	if err != nil {
		return nil, NewServiceError("sprint", "complete", "failed to list sprint tasks", err)
	}

	completed := 0
	for _, task := range tasks {
		if task.Status == domain.TaskStatusDone {
			completed += task.StoryPoints
		}
	}

	if err := sprint.Complete(completed); err != nil {
		return nil, err
	}

	if err := s.sprints.Update(ctx, sprint); err != nil {
		return nil, NewServiceError("sprint", "complete", "failed to update sprint", err)
	}

	log.Info("sprint completed",
		slog.String("sprint_id", sprint.ID.String()),
		slog.Int("velocity", sprint.Velocity))
	return sprint, nil
}

// CommitStoryPoints implements SprintService.CommitStoryPoints.
func (s *sprintServiceImpl) CommitStoryPoints(
	ctx context.Context,
	id uuid.UUID,
	points int,
) (*domain.Sprint, error) {
	sprint, err := s.GetSprint(ctx, id)
	if err != nil {
		return nil, err
	}

	sprint.CommitStoryPoints(points)

	if err := s.sprints.Update(ctx, sprint); err != nil {
		return nil, NewServiceError("sprint", "commit_points", "failed to update sprint", err)
	}

	return sprint, nil
}

// SetRetrospectiveNotes implements SprintService.SetRetrospectiveNotes.
func (s *sprintServiceImpl) SetRetrospectiveNotes(
	ctx context.Context,
	id uuid.UUID,
	notes string,
) (*domain.Sprint, error) {
	sprint, err := s.GetSprint(ctx, id)
	if err != nil {
		return nil, err
	}

	sprint.SetRetrospectiveNotes(notes)

	if err := s.sprints.Update(ctx, sprint); err != nil {
		return nil, NewServiceError("sprint", "set_retrospective", "failed to update sprint", err)
	}

	return sprint, nil
}

// SprintMetrics implements SprintService.SprintMetrics.
func (s *sprintServiceImpl) SprintMetrics(
	ctx context.Context,
	id uuid.UUID,
) (metrics.SprintMetrics, error) {
	if _, err := s.GetSprint(ctx, id); err != nil {
		return metrics.SprintMetrics{}, err
	}

	tasks, err := s.tasks.ListBySprint(ctx, id)
	if err != nil {
		return metrics.SprintMetrics{}, NewServiceError("sprint", "metrics", "failed to list sprint tasks", err)
	}

	return metrics.CalculateSprintMetrics(tasks), nil
}
