package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/auth"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/domain"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/event"
	"github.com/Zeresenayaregal/simpleHospitalManagment-system/internal/repository"
	apperrors "github.com/Zeresenayaregal/simpleHospitalManagment-system/pkg/errors"
)

// bcryptCost is the cost factor for bcrypt password hashing.
const bcryptCost = 10

// AuthService implements registration, login and profile management.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
	producer *event.Producer
	logger   *slog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(
	userRepo repository.UserRepository,
	tokens *auth.TokenManager,
	producer *event.Producer,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		producer: producer,
		logger:   logger,
	}
}

// RegisterInput holds the parameters for registering a new user.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
	Role     string
}

// LoginInput holds the parameters for user login.
type LoginInput struct {
	Email    string
	Password string
}

// UpdateProfileInput holds the parameters for updating a user's own profile.
// Nil fields are left unchanged; a blank Password keeps the stored hash.
type UpdateProfileInput struct {
	Name     *string
	Email    *string
	Password *string
}

// Register creates a new user account, hashes the password, and returns the
// user with a signed token. An omitted role defaults to patient.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.AuthResult, error) {
	if input.Email == "" {
		return nil, apperrors.InvalidInput("email is required")
	}
	if input.Name == "" {
		return nil, apperrors.InvalidInput("name is required")
	}
	if input.Password == "" {
		return nil, apperrors.InvalidInput("password is required")
	}

	role := input.Role
	if role == "" {
		role = domain.RolePatient
	}
	if !domain.IsValidRole(role) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("role must be one of: %s", strings.Join(domain.ValidRoles(), ", ")))
	}

	// Friendly duplicate check first; the unique constraint on email is the
	// authoritative guard against races.
	if _, err := s.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.AlreadyExists("user", "email", input.Email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Name:         input.Name,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	// Publish registration event (non-blocking on failure).
	if err := s.producer.PublishUserRegistered(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.registered event",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
		slog.String("role", user.Role),
	)

	return &domain.AuthResult{User: user, Token: token}, nil
}

// Login authenticates a user with email and password. Unknown email and wrong
// password produce the same error so callers cannot probe which emails exist.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*domain.AuthResult, error) {
	if input.Email == "" {
		return nil, apperrors.InvalidInput("email is required")
	}
	if input.Password == "" {
		return nil, apperrors.InvalidInput("password is required")
	}

	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		// Only a missing row means bad credentials; a storage fault must
		// surface as a server error, not a 401.
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.InvalidCredentials()
		}
		return nil, fmt.Errorf("look up user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperrors.InvalidCredentials()
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return &domain.AuthResult{User: user, Token: token}, nil
}

// UpdateProfile applies a partial update to the caller's own account and
// returns the stored user with a freshly issued token, since the identity
// embedded in the old token may be stale.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*domain.AuthResult, error) {
	update := repository.UserUpdate{
		Name:  input.Name,
		Email: input.Email,
	}

	// A blank or whitespace-only password means "keep the current one".
	if input.Password != nil && strings.TrimSpace(*input.Password) != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		hash := string(hashedPassword)
		update.PasswordHash = &hash
	}

	user, err := s.userRepo.UpdateProfile(ctx, userID, update)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	// Publish update event (non-blocking on failure).
	if err := s.producer.PublishUserUpdated(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.updated event",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user profile updated",
		slog.String("user_id", user.ID),
	)

	return &domain.AuthResult{User: user, Token: token}, nil
}

// ListUsers returns all user accounts.
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// DeleteUser is intentionally not supported. Accounts are load-bearing for
// audit history, so the operation is rejected rather than silently ignored.
func (s *AuthService) DeleteUser(ctx context.Context, id string) error {
	return apperrors.Unsupported("delete user")
}
