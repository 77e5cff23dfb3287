package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pvaldez/cadence-api/internal/domain"
	"github.com/pvaldez/cadence-api/internal/domain/metrics"
	"github.com/pvaldez/cadence-api/internal/platform/logger"
	"github.com/pvaldez/cadence-api/internal/store"
)

// CreateProjectCommand carries the input for creating a project.
type CreateProjectCommand struct {
	Name              string
	Description       string
	ClientID          *uuid.UUID
	Budget            decimal.Decimal
	Currency          string
	TotalHoursPlanned float64
	TeamMembers       []uuid.UUID
}

// ProjectService provides project lifecycle and reporting operations.
type ProjectService interface {
	// CreateProject stores a new active project with zero spend.
	CreateProject(ctx context.Context, cmd CreateProjectCommand) (*domain.Project, error)

	// GetProject returns a project by ID.
	GetProject(ctx context.Context, id uuid.UUID) (*domain.Project, error)

	// ListProjects returns all projects.
	ListProjects(ctx context.Context) ([]*domain.Project, error)

	// ChangeStatus moves a project to the given status.
	ChangeStatus(ctx context.Context, id uuid.UUID, status string) (*domain.Project, error)

	// AddTeamMember adds a user to the project team. Adding a member twice is
	// a no-op.
	AddTeamMember(ctx context.Context, projectID, userID uuid.UUID) (*domain.Project, error)

	// ProjectMetrics computes progress, budget utilization, and efficiency for
	// one project from its non-deleted tasks.
	ProjectMetrics(ctx context.Context, projectID uuid.UUID) (metrics.ProjectMetrics, error)

	// Dashboard aggregates per-project metrics across all active projects.
	Dashboard(ctx context.Context) (metrics.DashboardMetrics, error)
}

// projectServiceImpl implements the ProjectService interface.
type projectServiceImpl struct {
	projects store.ProjectStore
	tasks    store.TaskStore
	logger   *slog.Logger
}

// NewProjectService creates a new ProjectService.
// It returns an error if any of the required dependencies are nil.
func NewProjectService(
	projects store.ProjectStore,
	tasks store.TaskStore,
	log *slog.Logger,
) (ProjectService, error) {
	if projects == nil {
		return nil, domain.NewValidationError("projects", "cannot be nil", domain.ErrValidation)
	}
	if tasks == nil {
		return nil, domain.NewValidationError("tasks", "cannot be nil", domain.ErrValidation)
	}

	if log == nil {
		log = slog.Default()
	}

	return &projectServiceImpl{
		projects: projects,
		tasks:    tasks,
		logger:   log.With(slog.String("component", "project_service")),
	}, nil
}

// CreateProject implements ProjectService.CreateProject.
func (s *projectServiceImpl) CreateProject(
	ctx context.Context,
	cmd CreateProjectCommand,
) (*domain.Project, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	budget, err := domain.NewAmount(cmd.Budget)
	if err != nil {
		return nil, err
	}

	currency, err := domain.ParseCurrency(cmd.Currency)
	if err != nil {
		return nil, err
	}

	project, err := domain.NewProject(cmd.Name, budget, currency, cmd.TotalHoursPlanned)
	if err != nil {
		return nil, err
	}

	project.Description = cmd.Description
	project.ClientID = cmd.ClientID
	for _, member := range cmd.TeamMembers {
		project.AddTeamMember(member)
	}

	if err := s.projects.Create(ctx, project); err != nil {
		log.Error("failed to create project",
			slog.String("error", err.Error()),
			slog.String("project_name", cmd.Name))
		return nil, NewServiceError("project", "create", "failed to save project", err)
	}

	log.Info("project created",
		slog.String("project_id", project.ID.String()),
		slog.String("project_name", project.Name))
	return project, nil
}

// GetProject implements ProjectService.GetProject.
func (s *projectServiceImpl) GetProject(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewServiceError("project", "get", "project not found", store.ErrProjectNotFound)
		}
		return nil, NewServiceError("project", "get", "failed to load project", err)
	}
	return project, nil
}

// ListProjects implements ProjectService.ListProjects.
func (s *projectServiceImpl) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, NewServiceError("project", "list", "failed to list projects", err)
	}
	return projects, nil
}

// ChangeStatus implements ProjectService.ChangeStatus.
func (s *projectServiceImpl) ChangeStatus(
	ctx context.Context,
	id uuid.UUID,
	status string,
) (*domain.Project, error) {
	parsed, err := domain.ParseProjectStatus(status)
	if err != nil {
		return nil, err
	}

	project, err := s.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := project.SetStatus(parsed); err != nil {
		return nil, err
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, NewServiceError("project", "change_status", "failed to update project", err)
	}

	return project, nil
}

// AddTeamMember implements ProjectService.AddTeamMember.
func (s *projectServiceImpl) AddTeamMember(
	ctx context.Context,
	projectID, userID uuid.UUID,
) (*domain.Project, error) {
	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	project.AddTeamMember(userID)

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, NewServiceError("project", "add_team_member", "failed to update project", err)
	}

	return project, nil
}

// ProjectMetrics implements ProjectService.ProjectMetrics.
func (s *projectServiceImpl) ProjectMetrics(
	ctx context.Context,
	projectID uuid.UUID,
) (metrics.ProjectMetrics, error) {
	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return metrics.ProjectMetrics{}, err
	}

	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return metrics.ProjectMetrics{}, NewServiceError("project", "metrics", "failed to list tasks", err)
	}

	return metrics.CalculateProjectMetrics(project, tasks), nil
}

// Dashboard implements ProjectService.Dashboard.
func (s *projectServiceImpl) Dashboard(ctx context.Context) (metrics.DashboardMetrics, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	projects, err := s.projects.ListActive(ctx)
	if err != nil {
		return metrics.DashboardMetrics{}, NewServiceError("project", "dashboard", "failed to list active projects", err)
	}

	acc := metrics.NewDashboardAccumulator()
	for _, project := range projects {
		tasks, err := s.tasks.ListByProject(ctx, project.ID)
		if err != nil {
			return metrics.DashboardMetrics{}, NewServiceError("project", "dashboard", "failed to list tasks", err)
		}
		acc.Add(metrics.CalculateProjectMetrics(project, tasks))
	}

	log.Debug("dashboard aggregated", slog.Int("project_count", len(projects)))
	return acc.Metrics(), nil
}
