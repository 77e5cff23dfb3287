package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pvaldez/cadence-api/internal/domain"
	"github.com/pvaldez/cadence-api/internal/platform/logger"
	"github.com/pvaldez/cadence-api/internal/store"
)

// CreateRiskCommand carries the input for registering a project risk.
type CreateRiskCommand struct {
	ProjectID     uuid.UUID
	Title         string
	Description   string
	Category      string
	Probability   string
	Impact        string
	ResponsibleID *uuid.UUID
	IsCore        bool
}

// RiskService provides risk register operations.
type RiskService interface {
	// CreateRisk registers a new identified risk for an existing project.
	CreateRisk(ctx context.Context, cmd CreateRiskCommand) (*domain.Risk, error)

	// GetRisk returns a risk by ID.
	GetRisk(ctx context.Context, id uuid.UUID) (*domain.Risk, error)

	// ListProjectRisks returns the risks registered against a project.
	ListProjectRisks(ctx context.Context, projectID uuid.UUID) ([]*domain.Risk, error)

	// ReassessRisk replaces a risk's probability and impact; its severity
	// score follows from the new pair.
	ReassessRisk(ctx context.Context, id uuid.UUID, probability, impact string) (*domain.Risk, error)

	// ChangeStatus moves a risk through its lifecycle.
	ChangeStatus(ctx context.Context, id uuid.UUID, status string) (*domain.Risk, error)

	// AssignResponsible puts a user in charge of mitigating a risk.
	AssignResponsible(ctx context.Context, riskID, userID uuid.UUID) (*domain.Risk, error)

	// AddComment appends a discussion comment to a risk.
	AddComment(ctx context.Context, riskID, authorID uuid.UUID, text string) (*domain.Risk, error)
}

// riskServiceImpl implements the RiskService interface.
type riskServiceImpl struct {
	risks    store.RiskStore
	projects store.ProjectStore
	logger   *slog.Logger
}

// NewRiskService creates a new RiskService.
// It returns an error if any of the required dependencies are nil.
func NewRiskService(
	risks store.RiskStore,
	projects store.ProjectStore,
	log *slog.Logger,
) (RiskService, error) {
	if risks == nil {
		return nil, domain.NewValidationError("risks", "cannot be nil", domain.ErrValidation)
	}
	if projects == nil {
		return nil, domain.NewValidationError("projects", "cannot be nil", domain.ErrValidation)
	}

	if log == nil {
		log = slog.Default()
	}

	return &riskServiceImpl{
		risks:    risks,
		projects: projects,
		logger:   log.With(slog.String("component", "risk_service")),
	}, nil
}

// CreateRisk implements RiskService.CreateRisk.
func (s *riskServiceImpl) CreateRisk(ctx context.Context, cmd CreateRiskCommand) (*domain.Risk, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	probability, err := domain.ParseRiskProbability(cmd.Probability)
	if err != nil {
		return nil, err
	}

	impact, err := domain.ParseRiskImpact(cmd.Impact)
	if err != nil {
		return nil, err
	}

	if _, err := s.projects.GetByID(ctx, cmd.ProjectID); err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewServiceError("risk", "create", "referenced project does not exist", store.ErrProjectNotFound)
		}
		return nil, NewServiceError("risk", "create", "failed to load project", err)
	}

	risk, err := domain.NewRisk(cmd.ProjectID, cmd.Title, cmd.Category, probability, impact)
	if err != nil {
		return nil, err
	}

	risk.Description = cmd.Description
	risk.IsCore = cmd.IsCore
	if cmd.ResponsibleID != nil {
		risk.AssignResponsible(*cmd.ResponsibleID)
	}

	if err := s.risks.Create(ctx, risk); err != nil {
		log.Error("failed to create risk",
			slog.String("error", err.Error()),
			slog.String("project_id", cmd.ProjectID.String()))
		return nil, NewServiceError("risk", "create", "failed to save risk", err)
	}

	log.Info("risk registered",
		slog.String("risk_id", risk.ID.String()),
		slog.String("project_id", risk.ProjectID.String()),
		slog.Int("severity", risk.Severity()))
	return risk, nil
}

// GetRisk implements RiskService.GetRisk.
func (s *riskServiceImpl) GetRisk(ctx context.Context, id uuid.UUID) (*domain.Risk, error) {
	risk, err := s.risks.GetByID(ctx, id)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewServiceError("risk", "get", "risk not found", store.ErrRiskNotFound)
		}
		return nil, NewServiceError("risk", "get", "failed to load risk", err)
	}
	return risk, nil
}

// ListProjectRisks implements RiskService.ListProjectRisks.
func (s *riskServiceImpl) ListProjectRisks(
	ctx context.Context,
	projectID uuid.UUID,
) ([]*domain.Risk, error) {
	risks, err := s.risks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, NewServiceError("risk", "list", "failed to list risks", err)
	}
	return risks, nil
}

// ReassessRisk implements RiskService.ReassessRisk.
func (s *riskServiceImpl) ReassessRisk(
	ctx context.Context,
	id uuid.UUID,
	probability, impact string,
) (*domain.Risk, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	parsedProbability, err := domain.ParseRiskProbability(probability)
	if err != nil {
		return nil, err
	}

	parsedImpact, err := domain.ParseRiskImpact(impact)
	if err != nil {
		return nil, err
	}

	risk, err := s.GetRisk(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := risk.Reassess(parsedProbability, parsedImpact); err != nil {
		return nil, err
	}

	if err := s.risks.Update(ctx, risk); err != nil {
		return nil, NewServiceError("risk", "reassess", "failed to update risk", err)
	}

	log.Info("risk reassessed",
		slog.String("risk_id", risk.ID.String()),
		slog.Int("severity", risk.Severity()))
	return risk, nil
}

// ChangeStatus implements RiskService.ChangeStatus.
func (s *riskServiceImpl) ChangeStatus(
	ctx context.Context,
	id uuid.UUID,
	status string,
) (*domain.Risk, error) {
	risk, err := s.GetRisk(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := risk.SetStatus(domain.RiskStatus(status)); err != nil {
		return nil, err
	}

	if err := s.risks.Update(ctx, risk); err != nil {
		return nil, NewServiceError("risk", "change_status", "failed to update risk", err)
	}

	return risk, nil
}

// AssignResponsible implements RiskService.AssignResponsible.
func (s *riskServiceImpl) AssignResponsible(
	ctx context.Context,
	riskID, userID uuid.UUID,
) (*domain.Risk, error) {
	risk, err := s.GetRisk(ctx, riskID)
	if err != nil {
		return nil, err
	}

	risk.AssignResponsible(userID)

	if err := s.risks.Update(ctx, risk); err != nil {
		return nil, NewServiceError("risk", "assign_responsible", "failed to update risk", err)
	}

	return risk, nil
}

// AddComment implements RiskService.AddComment.
func (s *riskServiceImpl) AddComment(
	ctx context.Context,
	riskID, authorID uuid.UUID,
	text string,
) (*domain.Risk, error) {
	risk, err := s.GetRisk(ctx, riskID)
	if err != nil {
		return nil, err
	}

	if err := risk.AddComment(authorID, text); err != nil {
		return nil, err
	}

	if err := s.risks.Update(ctx, risk); err != nil {
		return nil, NewServiceError("risk", "add_comment", "failed to update risk", err)
	}

	return risk, nil
}
