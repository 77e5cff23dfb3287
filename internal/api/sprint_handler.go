package api

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pvaldez/cadence-api/internal/api/shared"
	"github.com/pvaldez/cadence-api/internal/service"
)

// CreateSprintRequest represents the request body for creating a sprint.
type CreateSprintRequest struct {
	Name        string      `json:"name"       validate:"required,min=1"`
	ProjectID   uuid.UUID   `json:"project_id" validate:"required"`
	Goal        string      `json:"goal"`
	StartDate   time.Time   `json:"start_date" validate:"required"`
	EndDate     time.Time   `json:"end_date"   validate:"required"`
	TeamMembers []uuid.UUID `json:"team_members,omitempty"`
}

// CommitStoryPointsRequest represents the request body for committing points.
type CommitStoryPointsRequest struct {
	Points int `json:"points" validate:"gte=0"`
}

// RetrospectiveRequest represents the request body for retrospective notes.
type RetrospectiveRequest struct {
	Notes string `json:"notes" validate:"required,min=1"`
}

// SprintHandler handles sprint-related HTTP requests.
type SprintHandler struct {
	sprintService service.SprintService
	validator     *validator.Validate
}

// NewSprintHandler creates a new SprintHandler.
func NewSprintHandler(sprintService service.SprintService) *SprintHandler {
	return &SprintHandler{
		sprintService: sprintService,
		validator:     validator.New(),
	}
}

// CreateSprint handles POST /api/sprints requests.
func (h *SprintHandler) CreateSprint(w http.ResponseWriter, r *http.Request) {
	var req CreateSprintRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	sprint, err := h.sprintService.CreateSprint(r.Context(), service.CreateSprintCommand{
		Name:        req.Name,
		ProjectID:   req.ProjectID,
		Goal:        req.Goal,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		TeamMembers: req.TeamMembers,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, sprint)
}

// GetSprint handles GET /api/sprints/{sprintID} requests.
func (h *SprintHandler) GetSprint(w http.ResponseWriter, r *http.Request) {
	sprintID, err := urlParamUUID(r, "sprintID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid sprint ID")
		return
	}

	sprint, err := h.sprintService.GetSprint(r.Context(), sprintID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sprint)
}

// ListProjectSprints handles GET /api/projects/{projectID}/sprints requests.
func (h *SprintHandler) ListProjectSprints(w http.ResponseWriter, r *http.Request) {
	projectID, err := urlParamUUID(r, "projectID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid project ID")
		return
	}

	sprints, err := h.sprintService.ListProjectSprints(r.Context(), projectID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sprints)
}

// ActivateSprint handles POST /api/sprints/{sprintID}/activate requests.
func (h *SprintHandler) ActivateSprint(w http.ResponseWriter, r *http.Request) {
	sprintID, err := urlParamUUID(r, "sprintID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid sprint ID")
		return
	}

	sprint, err := h.sprintService.ActivateSprint(r.Context(), sprintID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sprint)
}

// CompleteSprint handles POST /api/sprints/{sprintID}/complete requests.
func (h *SprintHandler) CompleteSprint(w http.ResponseWriter, r *http.Request) {
	sprintID, err := urlParamUUID(r, "sprintID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid sprint ID")
		return
	}

	sprint, err := h.sprintService.CompleteSprint(r.Context(), sprintID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sprint)
}

// CommitStoryPoints handles POST /api/sprints/{sprintID}/commit requests.
func (h *SprintHandler) CommitStoryPoints(w http.ResponseWriter, r *http.Request) {
	sprintID, err := urlParamUUID(r, "sprintID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid sprint ID")
		return
	}

	var req CommitStoryPointsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	sprint, err := h.sprintService.CommitStoryPoints(r.Context(), sprintID, req.Points)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sprint)
}

// SetRetrospectiveNotes handles PUT /api/sprints/{sprintID}/retrospective requests.
func (h *SprintHandler) SetRetrospectiveNotes(w http.ResponseWriter, r *http.Request) {
	sprintID, err := urlParamUUID(r, "sprintID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid sprint ID")
		return
	}

	var req RetrospectiveRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	sprint, err := h.sprintService.SetRetrospectiveNotes(r.Context(), sprintID, req.Notes)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sprint)
}

// GetMetrics handles GET /api/sprints/{sprintID}/metrics requests.
func (h *SprintHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	sprintID, err := urlParamUUID(r, "sprintID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid sprint ID")
		return
	}

	m, err := h.sprintService.SprintMetrics(r.Context(), sprintID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, m)
}
