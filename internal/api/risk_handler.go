package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pvaldez/cadence-api/internal/api/middleware"
	"github.com/pvaldez/cadence-api/internal/api/shared"
	"github.com/pvaldez/cadence-api/internal/service"
)

// CreateRiskRequest represents the request body for registering a risk.
type CreateRiskRequest struct {
	ProjectID     uuid.UUID  `json:"project_id"  validate:"required"`
	Title         string     `json:"title"       validate:"required,min=1"`
	Description   string     `json:"description"`
	Category      string     `json:"category"    validate:"required"`
	Probability   string     `json:"probability" validate:"required,oneof=low medium high"`
	Impact        string     `json:"impact"      validate:"required,oneof=low medium high"`
	ResponsibleID *uuid.UUID `json:"responsible_id,omitempty"`
	IsCore        bool       `json:"is_core"`
}

// ReassessRiskRequest represents the request body for a risk reassessment.
type ReassessRiskRequest struct {
	Probability string `json:"probability" validate:"required,oneof=low medium high"`
	Impact      string `json:"impact"      validate:"required,oneof=low medium high"`
}

// ChangeRiskStatusRequest represents the request body for a status change.
type ChangeRiskStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// AssignResponsibleRequest represents the request body for assigning an owner.
type AssignResponsibleRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

// AddRiskCommentRequest represents the request body for a risk comment.
type AddRiskCommentRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

// RiskHandler handles risk register HTTP requests.
type RiskHandler struct {
	riskService service.RiskService
	validator   *validator.Validate
}

// NewRiskHandler creates a new RiskHandler.
func NewRiskHandler(riskService service.RiskService) *RiskHandler {
	return &RiskHandler{
		riskService: riskService,
		validator:   validator.New(),
	}
}

// CreateRisk handles POST /api/risks requests.
func (h *RiskHandler) CreateRisk(w http.ResponseWriter, r *http.Request) {
	var req CreateRiskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	risk, err := h.riskService.CreateRisk(r.Context(), service.CreateRiskCommand{
		ProjectID:     req.ProjectID,
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Probability:   req.Probability,
		Impact:        req.Impact,
		ResponsibleID: req.ResponsibleID,
		IsCore:        req.IsCore,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, risk)
}

// GetRisk handles GET /api/risks/{riskID} requests.
func (h *RiskHandler) GetRisk(w http.ResponseWriter, r *http.Request) {
	riskID, err := urlParamUUID(r, "riskID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid risk ID")
		return
	}

	risk, err := h.riskService.GetRisk(r.Context(), riskID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, risk)
}

// ListProjectRisks handles GET /api/projects/{projectID}/risks requests.
func (h *RiskHandler) ListProjectRisks(w http.ResponseWriter, r *http.Request) {
	projectID, err := urlParamUUID(r, "projectID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid project ID")
		return
	}

	risks, err := h.riskService.ListProjectRisks(r.Context(), projectID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, risks)
}

// ReassessRisk handles PUT /api/risks/{riskID}/assessment requests.
func (h *RiskHandler) ReassessRisk(w http.ResponseWriter, r *http.Request) {
	riskID, err := urlParamUUID(r, "riskID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid risk ID")
		return
	}

	var req ReassessRiskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	risk, err := h.riskService.ReassessRisk(r.Context(), riskID, req.Probability, req.Impact)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, risk)
}

// ChangeStatus handles PUT /api/risks/{riskID}/status requests.
func (h *RiskHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	riskID, err := urlParamUUID(r, "riskID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid risk ID")
		return
	}

	var req ChangeRiskStatusRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	risk, err := h.riskService.ChangeStatus(r.Context(), riskID, req.Status)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, risk)
}

// AssignResponsible handles PUT /api/risks/{riskID}/responsible requests.
func (h *RiskHandler) AssignResponsible(w http.ResponseWriter, r *http.Request) {
	riskID, err := urlParamUUID(r, "riskID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid risk ID")
		return
	}

	var req AssignResponsibleRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	risk, err := h.riskService.AssignResponsible(r.Context(), riskID, req.UserID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, risk)
}

// AddComment handles POST /api/risks/{riskID}/comments requests. The
// authenticated user is recorded as the comment's author.
func (h *RiskHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	riskID, err := urlParamUUID(r, "riskID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid risk ID")
		return
	}

	authorID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req AddRiskCommentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	risk, err := h.riskService.AddComment(r.Context(), riskID, authorID, req.Text)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, risk)
}
