package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/pvaldez/cadence-api/internal/api/middleware"
	"github.com/pvaldez/cadence-api/internal/api/shared"
	"github.com/pvaldez/cadence-api/internal/domain"
	"github.com/pvaldez/cadence-api/internal/service"
)

// AuthHandler handles authentication and profile API requests.
type AuthHandler struct {
	userService service.UserService
	validator   *validator.Validate
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(userService service.UserService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		validator:   validator.New(),
	}
}

// Register handles POST /auth/register requests.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.userService.Register(r.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, userToResponse(user))
}

// Login handles POST /auth/login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, token, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		UserID:      user.ID,
		AccessToken: token,
	})
}

// GetProfile handles GET /users/{userID} requests.
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamUUID(r, "userID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// UpdateProfile handles PUT /users/{userID} requests. Only the profile's
// owner can edit it.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	userID, err := urlParamUUID(r, "userID")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req UpdateProfileRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), service.UpdateProfileCommand{
		CallerID:     callerID,
		UserID:       userID,
		DisplayName:  req.DisplayName,
		Position:     req.Position,
		HoursPerWeek: req.HoursPerWeek,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// userToResponse converts a domain.User to its public representation.
func userToResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		DisplayName:  user.DisplayName,
		Position:     user.Position,
		HoursPerWeek: user.HoursPerWeek,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}
