package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pvaldez/cadence-api/internal/api/shared"
	"github.com/pvaldez/cadence-api/internal/service"
)

// CreateProjectRequest represents the request body for creating a project.
type CreateProjectRequest struct {
	Name              string      `json:"name"                validate:"required,min=1"`
	Description       string      `json:"description"`
	ClientID          *uuid.UUID  `json:"client_id,omitempty"`
	Budget            float64     `json:"budget"              validate:"gte=0"`
	Currency          string      `json:"currency"            validate:"required"`
	TotalHoursPlanned float64     `json:"total_hours_planned" validate:"gte=0"`
	TeamMembers       []uuid.UUID `json:"team_members,omitempty"`
}

// ChangeProjectStatusRequest represents the request body for a status change.
type ChangeProjectStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AddTeamMemberRequest represents the request body for adding a team member.
type AddTeamMemberRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

// ProjectHandler handles project-related HTTP requests.
type ProjectHandler struct {
	projectService service.ProjectService
	validator      *validator.Validate
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		validator:      validator.New(),
	}
}

// CreateProject handles POST /api/projects requests.
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	project, err := h.projectService.CreateProject(r.Context(), service.CreateProjectCommand{
		Name:              req.Name,
		Description:       req.Description,
		ClientID:          req.ClientID,
		Budget:            decimal.NewFromFloat(req.Budget),
		Currency:          req.Currency,
		TotalHoursPlanned: req.TotalHoursPlanned,
		TeamMembers:       req.TeamMembers,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, project)
}

// ListProjects handles GET /api/projects requests.
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectService.ListProjects(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, projects)
}

// GetProject handles GET /api/projects/{projectID} requests.
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := urlParamUUID(r, "projectID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid project ID")
		return
	}

	project, err := h.projectService.GetProject(r.Context(), projectID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, project)
}

// ChangeStatus handles PATCH /api/projects/{projectID}/status requests.
func (h *ProjectHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	projectID, err := urlParamUUID(r, "projectID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var req ChangeProjectStatusRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	project, err := h.projectService.ChangeStatus(r.Context(), projectID, req.Status)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, project)
}

// AddTeamMember handles POST /api/projects/{projectID}/team requests.
func (h *ProjectHandler) AddTeamMember(w http.ResponseWriter, r *http.Request) {
	projectID, err := urlParamUUID(r, "projectID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var req AddTeamMemberRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	project, err := h.projectService.AddTeamMember(r.Context(), projectID, req.UserID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, project)
}

// GetMetrics handles GET /api/projects/{projectID}/metrics requests.
func (h *ProjectHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	projectID, err := urlParamUUID(r, "projectID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid project ID")
		return
	}

	m, err := h.projectService.ProjectMetrics(r.Context(), projectID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, m)
}

// GetDashboard handles GET /api/dashboard requests.
func (h *ProjectHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	m, err := h.projectService.Dashboard(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, m)
}
