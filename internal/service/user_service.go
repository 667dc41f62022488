package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"merlin/backend/internal/auth"
	app_errors "merlin/backend/internal/errors"
	"merlin/backend/internal/model"
	"merlin/backend/internal/repository"
)

const adminUsername = "admin"

// UserService handles authentication and the user's stored location.
type UserService struct {
	repo repository.Repository
}

func NewUserService(repo repository.Repository) *UserService {
	return &UserService{repo: repo}
}

// Login checks the credentials and issues a fresh bearer token, replacing
// any previous one.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", fmt.Errorf("%w: invalid credentials", app_errors.ErrUnauthorized)
		}
		return "", err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", fmt.Errorf("%w: invalid credentials", app_errors.ErrUnauthorized)
	}

	token := uuid.NewString()
	if err := s.repo.SetUserToken(ctx, user.ID, &token); err != nil {
		return "", fmt.Errorf("could not store token: %w", err)
	}
	return token, nil
}

// Logout invalidates the user's current token.
func (s *UserService) Logout(ctx context.Context, userID int64) error {
	if err := s.repo.SetUserToken(ctx, userID, nil); err != nil {
		return fmt.Errorf("could not clear token: %w", err)
	}
	return nil
}

// Authenticate resolves a bearer token to its user.
func (s *UserService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	user, err := s.repo.GetUserByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid authentication token", app_errors.ErrUnauthorized)
		}
		return nil, err
	}
	return user, nil
}

// UpdateLocation stores or clears the user's coordinates. Both must be
// provided or both absent; partial updates are rejected.
func (s *UserService) UpdateLocation(ctx context.Context, userID int64, latitude, longitude *float64) error {
	if latitude != nil && longitude == nil {
		return fmt.Errorf("%w: longitude must be provided if latitude is provided", app_errors.ErrValidation)
	}
	if longitude != nil && latitude == nil {
		return fmt.Errorf("%w: latitude must be provided if longitude is provided", app_errors.ErrValidation)
	}
	if err := s.repo.UpdateUserLocation(ctx, userID, latitude, longitude); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: user not found", app_errors.ErrNotFound)
		}
		return err
	}
	return nil
}

// EnsureAdminUser seeds the default admin account on first start.
func (s *UserService) EnsureAdminUser(ctx context.Context, password string) error {
	_, err := s.repo.GetUserByUsername(ctx, adminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("could not hash admin password: %w", err)
	}
	if err := s.repo.CreateUser(ctx, &model.User{Username: adminUsername, PasswordHash: hash}); err != nil {
		return fmt.Errorf("could not create admin user: %w", err)
	}
	slog.Info("Created default admin user.")
	return nil
}
