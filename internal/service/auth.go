package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/starwars-api/internal/apperror"
	"github.com/sakif/starwars-api/internal/auth"
	"github.com/sakif/starwars-api/internal/repository"
)

// AuthService turns an email and password into a bearer token.
//
//	AuthHandler (HTTP) → AuthService → UserRepository (DB)
//	                                 ↘ PasswordService (bcrypt)
//	                                 ↘ TokenService (JWT)
//
// Tokens are stateless: the handler's RequireAuth middleware re-derives the
// caller from the token on every request, so nothing is stored at login.
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

// Login checks the credentials and returns a signed JWT whose subject is the
// user's email.
//
// Outcomes, in the order they are checked:
//   - email or password missing: apperror.ErrValidation
//   - no user with that email: apperror.ErrNotFound ("user does not exist")
//   - user inactive, or password wrong: apperror.ErrUnauthorized
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", apperror.ValidationFailed("email", "email is required")
	}
	if password == "" {
		return "", apperror.ValidationFailed("password", "password is required")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	if !user.IsActive {
		s.logger.Info("login refused for inactive user", slog.Int64("user_id", user.ID))
		return "", apperror.Unauthorized("user account is inactive")
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			s.logger.Info("login failed", slog.Int64("user_id", user.ID))
			return "", apperror.Unauthorized("bad email or password")
		}
		return "", fmt.Errorf("service/auth: verifying password for user %d: %w", user.ID, err)
	}

	token, err := s.tokens.Generate(user.Email)
	if err != nil {
		return "", fmt.Errorf("service/auth: generating token for user %d: %w", user.ID, err)
	}

	s.logger.Info("user logged in", slog.Int64("user_id", user.ID))
	return token, nil
}
