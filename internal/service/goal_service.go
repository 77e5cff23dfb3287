package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pvaldez/cadence-api/internal/domain"
	"github.com/pvaldez/cadence-api/internal/platform/logger"
	"github.com/pvaldez/cadence-api/internal/store"
)

// CreateGoalCommand carries the input for creating a measurable goal.
type CreateGoalCommand struct {
	Title       string
	Type        string
	Category    string
	Period      string
	TargetValue float64
	Unit        string
	OwnerID     uuid.UUID
	StartDate   time.Time
	EndDate     time.Time
}

// GoalService provides goal tracking operations.
type GoalService interface {
	// CreateGoal stores a new active goal with a positive target.
	CreateGoal(ctx context.Context, cmd CreateGoalCommand) (*domain.Goal, error)

	// GetGoal returns a goal by ID.
	GetGoal(ctx context.Context, id uuid.UUID) (*domain.Goal, error)

	// ListOwnerGoals returns the goals owned by a user.
	ListOwnerGoals(ctx context.Context, ownerID uuid.UUID) ([]*domain.Goal, error)

	// UpdateProgress replaces a goal's current value. Reaching or passing the
	// target flips the goal to achieved; dropping back below reopens it.
	UpdateProgress(ctx context.Context, id uuid.UUID, currentValue float64) (*domain.Goal, error)
}

// goalServiceImpl implements the GoalService interface.
type goalServiceImpl struct {
	goals  store.GoalStore
	logger *slog.Logger
}

// NewGoalService creates a new GoalService.
// It returns an error if any of the required dependencies are nil.
func NewGoalService(goals store.GoalStore, log *slog.Logger) (GoalService, error) {
	if goals == nil {
		return nil, domain.NewValidationError("goals", "cannot be nil", domain.ErrValidation)
	}

	if log == nil {
		log = slog.Default()
	}

	return &goalServiceImpl{
		goals:  goals,
		logger: log.With(slog.String("component", "goal_service")),
	}, nil
}

// CreateGoal implements GoalService.CreateGoal.
func (s *goalServiceImpl) CreateGoal(ctx context.Context, cmd CreateGoalCommand) (*domain.Goal, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	period, err := domain.ParseGoalPeriod(cmd.Period)
	if err != nil {
		return nil, err
	}

	goal, err := domain.NewGoal(cmd.Title, cmd.Type, period, cmd.TargetValue, cmd.Unit, cmd.OwnerID)
	if err != nil {
		return nil, err
	}

	goal.Category = cmd.Category
	goal.StartDate = cmd.StartDate
	goal.EndDate = cmd.EndDate

	if err := s.goals.Create(ctx, goal); err != nil {
		log.Error("failed to create goal",
			slog.String("error", err.Error()),
			slog.String("owner_id", cmd.OwnerID.String()))
		return nil, NewServiceError("goal", "create", "failed to save goal", err)
	}

	log.Info("goal created",
		slog.String("goal_id", goal.ID.String()),
		slog.String("owner_id", goal.OwnerID.String()))
	return goal, nil
}

// GetGoal implements GoalService.GetGoal.
func (s *goalServiceImpl) GetGoal(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	goal, err := s.goals.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewServiceError("goal", "get", "goal not found", store.ErrGoalNotFound)
		}
		return nil, NewServiceError("goal", "get", "failed to load goal", err)
	}
	return goal, nil
}

// ListOwnerGoals implements GoalService.ListOwnerGoals.
func (s *goalServiceImpl) ListOwnerGoals(
	ctx context.Context,
	ownerID uuid.UUID,
) ([]*domain.Goal, error) {
	goals, err := s.goals.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, NewServiceError("goal", "list", "failed to list goals", err)
	}
	return goals, nil
}

// UpdateProgress implements GoalService.UpdateProgress.
func (s *goalServiceImpl) UpdateProgress(
	ctx context.Context,
	id uuid.UUID,
	currentValue float64,
) (*domain.Goal, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	goal, err := s.GetGoal(ctx, id)
	if err != nil {
		return nil, err
	}

	goal.UpdateProgress(currentValue)

	if err := s.goals.Update(ctx, goal); err != nil {
		return nil, NewServiceError("goal", "update_progress", "failed to update goal", err)
	}

	log.Info("goal progress updated",
		slog.String("goal_id", goal.ID.String()),
		slog.Float64("progress_percent", goal.Progress()),
		slog.String("status", string(goal.Status)))
	return goal, nil
}
