package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrPasswordTooShort    = errors.New("password must be at least 12 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User represents a registered user and their profile. Profile fields are
// modifiable only by their owner; that rule lives in the user service.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext password, used temporarily during registration/updates
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	DisplayName    string    `json:"display_name"`
	Position       string    `json:"position"`
	HoursPerWeek   float64   `json:"hours_per_week"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given email and password.
// It generates a new UUID for the user ID and sets the creation/update timestamps.
// Returns an error if validation fails.
//
// NOTE: This function only sets up the user structure with the plaintext password.
// The caller is responsible for hashing the password before storing the user.
func NewUser(email, password, displayName string) (*User, error) {
	user := &User{
		ID:          uuid.New(),
		Email:       email,
		Password:    password, // Plaintext password - must be hashed before storage
		DisplayName: displayName,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validateEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	// Password validation
	// During user creation/update we need to validate the provided password
	if u.Password != "" {
		// When plaintext password is provided, validate its length
		if !validatePasswordComplexity(u.Password) {
			if len(u.Password) < 12 {
				return ErrPasswordTooShort
			}
			return ErrPasswordTooLong
		}
	} else {
		// When no plaintext password is provided, the user must have a hashed password
		// (this would be the case for existing users in the database)
		if u.HashedPassword == "" {
			return ErrEmptyPassword
		}
	}

	return nil
}

// UpdateProfile replaces the profile fields and bumps the updated timestamp.
// Whether the caller is allowed to touch this profile is decided upstream.
func (u *User) UpdateProfile(displayName, position string, hoursPerWeek float64) {
	u.DisplayName = displayName
	u.Position = position
	u.HoursPerWeek = hoursPerWeek
	u.UpdatedAt = time.Now().UTC()
}

// validateEmailFormat performs basic validation of email format.
// Returns true if the email appears to be in a valid format.
func validateEmailFormat(email string) bool {
	// Simple check - should have @ and at least one . after @
	atIndex := -1
	for i, char := range email {
		if char == '@' {
			atIndex = i
			break
		}
	}

	if atIndex == -1 || atIndex == 0 || atIndex == len(email)-1 {
		return false
	}

	// Check for domain part after @
	domainPart := email[atIndex+1:]
	if len(domainPart) < 3 { // minimum would be "a.b"
		return false
	}

	// Check for dot in domain, but not immediately after @ and not at the end
	dotIndex := -1
	for i, char := range domainPart {
		if char == '.' {
			dotIndex = i
			break
		}
	}

	if dotIndex == -1 || dotIndex == 0 || dotIndex == len(domainPart)-1 {
		return false
	}

	return true
}

// validatePasswordComplexity checks if a password meets length requirements:
// - Minimum length: 12 characters
// - Maximum length: 72 characters (bcrypt's practical limit)
//
// This simplified approach focuses on length rather than character complexity
// because longer passwords provide better security than shorter ones with
// special character requirements, which can be harder for users to remember.
func validatePasswordComplexity(password string) bool {
	passLen := len(password)
	return passLen >= 12 && passLen <= 72
}
