package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/pvaldez/cadence-api/internal/api/middleware"
	"github.com/pvaldez/cadence-api/internal/api/shared"
	"github.com/pvaldez/cadence-api/internal/service"
)

// GiveFeedbackRequest represents the request body for giving feedback. The
// authenticated user is the sender; anonymous feedback never exposes them.
type GiveFeedbackRequest struct {
	ToUserID  uuid.UUID  `json:"to_user_id" validate:"required"`
	Type      string     `json:"type"       validate:"required,oneof=praise improvement general"`
	Category  string     `json:"category"`
	Rating    int        `json:"rating"     validate:"required,min=1,max=5"`
	Comment   string     `json:"comment"    validate:"required,min=1"`
	SprintID  *uuid.UUID `json:"sprint_id,omitempty"`
	Anonymous bool       `json:"anonymous"`
}

// FeedbackHandler handles peer feedback HTTP requests.
type FeedbackHandler struct {
	feedbackService service.FeedbackService
	validator       *validator.Validate
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(feedbackService service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		validator:       validator.New(),
	}
}

// GiveFeedback handles POST /api/feedback requests.
func (h *FeedbackHandler) GiveFeedback(w http.ResponseWriter, r *http.Request) {
	fromUserID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req GiveFeedbackRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	fb, err := h.feedbackService.GiveFeedback(r.Context(), service.GiveFeedbackCommand{
		FromUserID: fromUserID,
		ToUserID:   req.ToUserID,
		Type:       req.Type,
		Category:   req.Category,
		Rating:     req.Rating,
		Comment:    req.Comment,
		SprintID:   req.SprintID,
		Anonymous:  req.Anonymous,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, fb)
}

// ListReceivedFeedback handles GET /api/feedback requests, returning the
// feedback addressed to the authenticated user.
func (h *FeedbackHandler) ListReceivedFeedback(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	feedback, err := h.feedbackService.ListReceivedFeedback(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, feedback)
}

// DeleteFeedback handles DELETE /api/feedback/{feedbackID} requests.
func (h *FeedbackHandler) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	feedbackID, err := urlParamUUID(r, "feedbackID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid feedback ID")
		return
	}

	if err := h.feedbackService.DeleteFeedback(r.Context(), feedbackID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
