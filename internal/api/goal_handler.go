package api

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/pvaldez/cadence-api/internal/api/middleware"
	"github.com/pvaldez/cadence-api/internal/api/shared"
	"github.com/pvaldez/cadence-api/internal/service"
)

// CreateGoalRequest represents the request body for creating a goal. The
// authenticated user becomes the goal's owner.
type CreateGoalRequest struct {
	Title       string    `json:"title"        validate:"required,min=1"`
	Type        string    `json:"type"         validate:"required"`
	Category    string    `json:"category"`
	Period      string    `json:"period"       validate:"required,oneof=weekly monthly quarterly yearly"`
	TargetValue float64   `json:"target_value" validate:"required,gt=0"`
	Unit        string    `json:"unit"         validate:"required"`
	StartDate   time.Time `json:"start_date"   validate:"required"`
	EndDate     time.Time `json:"end_date"     validate:"required"`
}

// UpdateGoalProgressRequest represents the request body for a progress update.
type UpdateGoalProgressRequest struct {
	CurrentValue float64 `json:"current_value" validate:"gte=0"`
}

// GoalHandler handles goal tracking HTTP requests.
type GoalHandler struct {
	goalService service.GoalService
	validator   *validator.Validate
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalService service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
		validator:   validator.New(),
	}
}

// CreateGoal handles POST /api/goals requests.
func (h *GoalHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateGoalRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	goal, err := h.goalService.CreateGoal(r.Context(), service.CreateGoalCommand{
		Title:       req.Title,
		Type:        req.Type,
		Category:    req.Category,
		Period:      req.Period,
		TargetValue: req.TargetValue,
		Unit:        req.Unit,
		OwnerID:     ownerID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, goal)
}

// GetGoal handles GET /api/goals/{goalID} requests.
func (h *GoalHandler) GetGoal(w http.ResponseWriter, r *http.Request) {
	goalID, err := urlParamUUID(r, "goalID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid goal ID")
		return
	}

	goal, err := h.goalService.GetGoal(r.Context(), goalID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, goal)
}

// ListGoals handles GET /api/goals requests, returning the authenticated
// user's goals.
func (h *GoalHandler) ListGoals(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	goals, err := h.goalService.ListOwnerGoals(r.Context(), ownerID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, goals)
}

// UpdateProgress handles PUT /api/goals/{goalID}/progress requests.
func (h *GoalHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	goalID, err := urlParamUUID(r, "goalID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid goal ID")
		return
	}

	var req UpdateGoalProgressRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	goal, err := h.goalService.UpdateProgress(r.Context(), goalID, req.CurrentValue)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, goal)
}
