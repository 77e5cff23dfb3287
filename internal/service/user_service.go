package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pvaldez/cadence-api/internal/domain"
	"github.com/pvaldez/cadence-api/internal/platform/logger"
	"github.com/pvaldez/cadence-api/internal/service/auth"
	"github.com/pvaldez/cadence-api/internal/store"
)

// UpdateProfileCommand carries the input for editing a user profile.
type UpdateProfileCommand struct {
	CallerID     uuid.UUID
	UserID       uuid.UUID
	DisplayName  string
	Position     string
	HoursPerWeek float64
}

// UserService provides account and profile operations.
type UserService interface {
	// Register creates a new account with a hashed password. Duplicate emails
	// are rejected.
	Register(ctx context.Context, email, password, displayName string) (*domain.User, error)

	// Authenticate checks an email/password pair and returns a signed access
	// token for the matching account.
	Authenticate(ctx context.Context, email, password string) (*domain.User, string, error)

	// GetProfile returns a user's profile.
	GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// UpdateProfile edits a profile. Only the profile's owner may edit it;
	// any other caller gets ErrNotOwned.
	UpdateProfile(ctx context.Context, cmd UpdateProfileCommand) (*domain.User, error)
}

// userServiceImpl implements the UserService interface.
type userServiceImpl struct {
	users  store.UserStore
	hasher auth.PasswordHasher
	jwt    auth.JWTService
	logger *slog.Logger
}

// NewUserService creates a new UserService.
// It returns an error if any of the required dependencies are nil.
func NewUserService(
	users store.UserStore,
	hasher auth.PasswordHasher,
	jwtService auth.JWTService,
	log *slog.Logger,
) (UserService, error) {
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", domain.ErrValidation)
	}
	if hasher == nil {
		return nil, domain.NewValidationError("hasher", "cannot be nil", domain.ErrValidation)
	}
	if jwtService == nil {
		return nil, domain.NewValidationError("jwtService", "cannot be nil", domain.ErrValidation)
	}

	if log == nil {
		log = slog.Default()
	}

	return &userServiceImpl{
		users:  users,
		hasher: hasher,
		jwt:    jwtService,
		logger: log.With(slog.String("component", "user_service")),
	}, nil
}

// Register implements UserService.Register.
func (s *userServiceImpl) Register(
	ctx context.Context,
	email, password, displayName string,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(email, password, displayName)
	if err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		return nil, NewServiceError("user", "register", "failed to hash password", err)
	}

	// The plaintext never leaves this function.
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.users.Create(ctx, user); err != nil {
		if store.IsDuplicateError(err) {
			return nil, NewServiceError("user", "register", "email already registered", store.ErrEmailExists)
		}
		return nil, NewServiceError("user", "register", "failed to save user", err)
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	return user, nil
}

// Authenticate implements UserService.Authenticate.
func (s *userServiceImpl) Authenticate(
	ctx context.Context,
	email, password string,
) (*domain.User, string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if store.IsNotFoundError(err) {
			// Same error as a wrong password, so probes can't tell which failed.
			return nil, "", auth.ErrInvalidCredentials
		}
		return nil, "", NewServiceError("user", "authenticate", "failed to load user", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, password); err != nil {
		log.Debug("authentication failed: password mismatch",
			slog.String("user_id", user.ID.String()))
		return nil, "", auth.ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(ctx, user.ID)
	if err != nil {
		return nil, "", NewServiceError("user", "authenticate", "failed to generate token", err)
	}

	log.Info("user authenticated", slog.String("user_id", user.ID.String()))
	return user, token, nil
}

// GetProfile implements UserService.GetProfile.
func (s *userServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, NewServiceError("user", "get_profile", "user not found", store.ErrUserNotFound)
		}
		return nil, NewServiceError("user", "get_profile", "failed to load user", err)
	}
	return user, nil
}

// UpdateProfile implements UserService.UpdateProfile.
func (s *userServiceImpl) UpdateProfile(
	ctx context.Context,
	cmd UpdateProfileCommand,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if cmd.CallerID != cmd.UserID {
		return nil, ErrNotOwned
	}

	user, err := s.GetProfile(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}

	user.UpdateProfile(cmd.DisplayName, cmd.Position, cmd.HoursPerWeek)
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, NewServiceError("user", "update_profile", "failed to update user", err)
	}

	log.Info("profile updated", slog.String("user_id", user.ID.String()))
	return user, nil
}
