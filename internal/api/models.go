package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email       string `json:"email"        validate:"required,email"`
	Password    string `json:"password"     validate:"required,min=12,max=72"`
	DisplayName string `json:"display_name" validate:"required,min=1"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`
}

// UserResponse defines the public view of a user profile.
type UserResponse struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	Position     string    `json:"position"`
	HoursPerWeek float64   `json:"hours_per_week"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UpdateProfileRequest defines the payload for the profile update endpoint.
type UpdateProfileRequest struct {
	DisplayName  string  `json:"display_name"   validate:"required,min=1"`
	Position     string  `json:"position"`
	HoursPerWeek float64 `json:"hours_per_week" validate:"gte=0,lte=168"`
}

// urlParamUUID parses a UUID path parameter from the chi route context.
func urlParamUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}
