package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/starwars-api/internal/auth"
	"github.com/sakif/starwars-api/internal/model"
	"github.com/sakif/starwars-api/internal/repository"
	"github.com/sakif/starwars-api/internal/validation"
)

// UserService handles business logic for users.
//
// Passwords enter as plaintext and leave this service only as bcrypt hashes.
// The JSON view of model.User omits the hash entirely.
type UserService struct {
	repo      repository.UserRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewUserService(repo repository.UserRepository, passwords *auth.PasswordService, logger *slog.Logger) *UserService {
	return &UserService{repo: repo, passwords: passwords, logger: logger}
}

// passwordRule validates a replacement password on update.
type passwordRule struct {
	Password string `json:"password" validate:"required,max=72"`
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		s.logger.Error("failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	if err := checkID("user", id); err != nil {
		return nil, err
	}
	return s.repo.GetUser(ctx, id)
}

// Create registers a user. New users are active. A taken email or username
// is apperror.ErrConflict naming the column.
func (s *UserService) Create(ctx context.Context, in model.CreateUserInput) (*model.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	in.Username = strings.TrimSpace(in.Username)
	in.Name = trimPtr(in.Name)
	in.Lastname = trimPtr(in.Lastname)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	user := &model.User{
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: hash,
		IsActive:     true,
		Name:         in.Name,
		Lastname:     in.Lastname,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user created", slog.Int64("id", user.ID), slog.String("username", user.Username))
	return user, nil
}

// Update merges patch into the stored user. A password in the patch is
// validated and re-hashed; it is never stored as sent.
func (s *UserService) Update(ctx context.Context, id int64, patch model.UserPatch) (*model.User, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Email.Set {
		patch.Email.Value = strings.TrimSpace(patch.Email.Value)
	}
	if patch.Username.Set {
		patch.Username.Value = strings.TrimSpace(patch.Username.Value)
	}
	updated := patch.Apply(*current)
	if err := validation.Struct(updated.Rules()); err != nil {
		return nil, err
	}

	if patch.Password.Set {
		if err := validation.Struct(passwordRule{Password: patch.Password.Value}); err != nil {
			return nil, err
		}
		hash, err := s.passwords.Hash(patch.Password.Value)
		if err != nil {
			return nil, fmt.Errorf("updating user: %w", err)
		}
		updated.PasswordHash = hash
	}

	if err := s.repo.UpdateUser(ctx, &updated); err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	s.logger.Info("user updated", slog.Int64("id", updated.ID), slog.Bool("password_changed", patch.Password.Set))
	return &updated, nil
}

// Delete removes the user and all of their favorites.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := checkID("user", id); err != nil {
		return err
	}
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}

	s.logger.Info("user deleted", slog.Int64("id", id))
	return nil
}
