package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	user, err := NewUser("test@example.com", "averylongpassword", "Test User")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("Expected a generated UUID, got uuid.Nil")
	}
	if user.Email != "test@example.com" {
		t.Errorf("Expected email test@example.com, got %s", user.Email)
	}
	if user.DisplayName != "Test User" {
		t.Errorf("Expected display name Test User, got %s", user.DisplayName)
	}
	if user.CreatedAt.IsZero() || user.UpdatedAt.IsZero() {
		t.Error("Expected timestamps to be set")
	}
	if user.CreatedAt.Location() != user.CreatedAt.UTC().Location() {
		t.Error("Expected timestamps in UTC")
	}
}

func TestNewUserValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "empty email",
			email:    "",
			password: "averylongpassword",
			wantErr:  ErrEmptyEmail,
		},
		{
			name:     "malformed email",
			email:    "not-an-email",
			password: "averylongpassword",
			wantErr:  ErrInvalidEmail,
		},
		{
			name:     "missing domain dot",
			email:    "user@localhost",
			password: "averylongpassword",
			wantErr:  ErrInvalidEmail,
		},
		{
			name:     "password too short",
			email:    "test@example.com",
			password: "short",
			wantErr:  ErrPasswordTooShort,
		},
		{
			name:     "password too long",
			email:    "test@example.com",
			password: string(make([]byte, 73)),
			wantErr:  ErrPasswordTooLong,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewUser(tc.email, tc.password, "Someone")
			if err != tc.wantErr {
				t.Errorf("Expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestUserValidateHashedOnly(t *testing.T) {
	t.Parallel()

	user := &User{
		ID:             uuid.New(),
		Email:          "test@example.com",
		HashedPassword: "$2a$10$somethinghashed",
	}
	if err := user.Validate(); err != nil {
		t.Errorf("Expected stored user without plaintext to validate, got %v", err)
	}

	user.HashedPassword = ""
	if err := user.Validate(); err != ErrEmptyPassword {
		t.Errorf("Expected ErrEmptyPassword, got %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	t.Parallel()

	user, err := NewUser("test@example.com", "averylongpassword", "Before")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	before := user.UpdatedAt
	user.UpdateProfile("After", "Engineer", 32)

	if user.DisplayName != "After" {
		t.Errorf("Expected display name After, got %s", user.DisplayName)
	}
	if user.Position != "Engineer" {
		t.Errorf("Expected position Engineer, got %s", user.Position)
	}
	if user.HoursPerWeek != 32 {
		t.Errorf("Expected 32 hours per week, got %f", user.HoursPerWeek)
	}
	if user.UpdatedAt.Before(before) {
		t.Error("Expected UpdatedAt to move forward")
	}
}
