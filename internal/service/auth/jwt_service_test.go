package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/pvaldez/cadence-api/internal/config"
)

const testSecret = "test-secret-key-that-is-32-bytes!"

func newTestJWTService(t *testing.T) *hmacJWTService {
	t.Helper()

	svc, err := NewJWTService(config.AuthConfig{
		JWTSecret:            testSecret,
		TokenLifetimeMinutes: 60,
	})
	if err != nil {
		t.Fatalf("failed to create JWT service: %v", err)
	}
	return svc.(*hmacJWTService)
}

func TestNewJWTServiceRejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{
		JWTSecret:            "too-short",
		TokenLifetimeMinutes: 60,
	})
	if err == nil {
		t.Error("Expected error for a secret shorter than 32 bytes")
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t)
	userID := uuid.New()
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, userID)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if token == "" {
		t.Fatal("Expected a non-empty token")
	}

	claims, err := svc.ValidateToken(ctx, token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("Expected user ID %s in claims, got %s", userID, claims.UserID)
	}
	if claims.Subject != userID.String() {
		t.Errorf("Expected subject %s, got %s", userID, claims.Subject)
	}
	if claims.ID == "" {
		t.Error("Expected a token ID (jti) in claims")
	}
	if !claims.ExpiresAt.After(claims.IssuedAt) {
		t.Errorf("Expected expiry %v after issuance %v", claims.ExpiresAt, claims.IssuedAt)
	}
}

func TestValidateTokenExpired(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t)
	ctx := context.Background()

	issued := time.Now()
	svc.timeFunc = func() time.Time { return issued }

	token, err := svc.GenerateToken(ctx, uuid.New())
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	// Jump past the lifetime plus the allowed clock skew.
	svc.timeFunc = func() time.Time {
		return issued.Add(svc.tokenLifetime + svc.clockSkew + time.Minute)
	}

	_, err = svc.ValidateToken(ctx, token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Errorf("Expected ErrExpiredToken, got %v", err)
	}
}

func TestValidateTokenWithinClockSkew(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t)
	ctx := context.Background()

	issued := time.Now()
	svc.timeFunc = func() time.Time { return issued }

	token, err := svc.GenerateToken(ctx, uuid.New())
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	// Expired, but within the skew window the token is still accepted.
	svc.timeFunc = func() time.Time {
		return issued.Add(svc.tokenLifetime + svc.clockSkew/2)
	}

	if _, err := svc.ValidateToken(ctx, token); err != nil {
		t.Errorf("Expected token within clock skew to validate, got %v", err)
	}
}

func TestValidateTokenWrongKey(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestJWTService(t)

	other, err := NewJWTService(config.AuthConfig{
		JWTSecret:            "another-secret-key-that-is-32-b!",
		TokenLifetimeMinutes: 60,
	})
	if err != nil {
		t.Fatalf("failed to create JWT service: %v", err)
	}

	token, err := other.GenerateToken(ctx, uuid.New())
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	_, err = svc.ValidateToken(ctx, token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for a foreign signature, got %v", err)
	}
}

func TestValidateTokenMalformed(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t)

	for _, tokenString := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := svc.ValidateToken(context.Background(), tokenString)
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken for %q, got %v", tokenString, err)
		}
	}
}
