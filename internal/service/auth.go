package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sakif/mood-lantern/internal/apperror"
	"github.com/sakif/mood-lantern/internal/auth"
	"github.com/sakif/mood-lantern/internal/model"
	"github.com/sakif/mood-lantern/internal/repository"
)

// AuthService handles registration, login and token checks.
//
//	AuthHandler (HTTP) → AuthService → UserRepository (DB)
//	                              ↘ TokenService (JWT), PasswordService (bcrypt)
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// AuthResult bundles the user and a freshly issued token so the handler can
// set the cookie and respond in one step.
type AuthResult struct {
	User  *model.User
	Token string
}

// RegisterInput is the profile collected at sign-up. Shape validation
// (required fields, email syntax, password length) happens in the handler.
type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Prefecture string
	Birthday   *time.Time
	Gender     string
}

// errBadCredentials is returned for both an unknown email and a wrong
// password, so a caller cannot tell which emails are registered.
var errBadCredentials = apperror.Unauthenticated("invalid email or password")

// Register creates a user and logs them in. Emails are stored lower-cased;
// a second registration with the same address is a Conflict.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := normalizeEmail(in.Email)
	if email == "" {
		return nil, apperror.ValidationFailed("email", "is required")
	}
	if in.Password == "" {
		return nil, apperror.ValidationFailed("password", "is required")
	}

	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, apperror.ValidationFailed("password", err.Error())
	}

	user := &model.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: hash,
		Prefecture:   in.Prefecture,
		Birthday:     in.Birthday,
		Gender:       in.Gender,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		logFailure(s.logger, "creating user failed", err)
		return nil, fmt.Errorf("service/auth: creating user: %w", err)
	}

	s.logger.Info("user registered", slog.String("userID", user.ID))

	return s.issue(user)
}

// Login checks email and password and returns the user with a new token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, errBadCredentials
		}
		logFailure(s.logger, "looking up user failed", err)
		return nil, fmt.Errorf("service/auth: looking up user: %w", err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			s.logger.Warn("stored password hash is unreadable",
				slog.String("userID", user.ID),
				slog.String("error", err.Error()),
			)
		}
		return nil, errBadCredentials
	}

	s.logger.Info("user logged in", slog.String("userID", user.ID))

	return s.issue(user)
}

// GetUserByID returns the user for the given internal ID. Used by /api/me.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, apperror.ValidationFailed("id", "must not be empty")
	}

	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service/auth: fetching user %s: %w", id, err)
	}

	return user, nil
}

// ValidateToken returns the user ID a token was issued for. Any failure is
// reported as Unauthenticated.
func (s *AuthService) ValidateToken(tokenStr string) (string, error) {
	userID, err := s.tokens.Validate(tokenStr)
	if err != nil {
		return "", &apperror.AppError{
			Err:     apperror.ErrUnauthenticated,
			Message: "invalid or expired token",
			Cause:   err,
		}
	}
	return userID, nil
}

func (s *AuthService) issue(user *model.User) (*AuthResult, error) {
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %s: %w", user.ID, err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
