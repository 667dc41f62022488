package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"merlin/backend/internal/auth"
	app_errors "merlin/backend/internal/errors"
	"merlin/backend/internal/model"
	"merlin/backend/internal/repository"
	mock_repo "merlin/backend/internal/repository/mocks"
	"merlin/backend/internal/service"
)

func setupUserService(t *testing.T) (*service.UserService, *mock_repo.MockRepository) {
	repo := mock_repo.NewMockRepository(t)
	return service.NewUserService(repo), repo
}

func hashedUser(t *testing.T, password string) *model.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &model.User{ID: 1, Username: "admin", PasswordHash: hash}
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		userService, repo := setupUserService(t)
		user := hashedUser(t, "Password@123")

		repo.On("GetUserByUsername", ctx, "admin").Return(user, nil).Once()
		repo.On("SetUserToken", ctx, int64(1), mock.AnythingOfType("*string")).Return(nil).Once()

		token, err := userService.Login(ctx, "admin", "Password@123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("Failure - unknown user", func(t *testing.T) {
		userService, repo := setupUserService(t)

		repo.On("GetUserByUsername", ctx, "nobody").Return(nil, repository.ErrNotFound).Once()

		_, err := userService.Login(ctx, "nobody", "whatever")
		assert.ErrorIs(t, err, app_errors.ErrUnauthorized)
	})

	t.Run("Failure - wrong password", func(t *testing.T) {
		userService, repo := setupUserService(t)
		user := hashedUser(t, "Password@123")

		repo.On("GetUserByUsername", ctx, "admin").Return(user, nil).Once()

		_, err := userService.Login(ctx, "admin", "wrong")
		assert.ErrorIs(t, err, app_errors.ErrUnauthorized)
	})
}

func TestUserService_Logout(t *testing.T) {
	ctx := context.Background()
	userService, repo := setupUserService(t)

	repo.On("SetUserToken", ctx, int64(1), (*string)(nil)).Return(nil).Once()

	err := userService.Logout(ctx, 1)
	assert.NoError(t, err)
}

func TestUserService_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		userService, repo := setupUserService(t)
		user := &model.User{ID: 1, Username: "admin"}

		repo.On("GetUserByToken", ctx, "token123").Return(user, nil).Once()

		got, err := userService.Authenticate(ctx, "token123")
		require.NoError(t, err)
		assert.Equal(t, user, got)
	})

	t.Run("Failure - unknown token", func(t *testing.T) {
		userService, repo := setupUserService(t)

		repo.On("GetUserByToken", ctx, "stale").Return(nil, repository.ErrNotFound).Once()

		_, err := userService.Authenticate(ctx, "stale")
		assert.ErrorIs(t, err, app_errors.ErrUnauthorized)
	})
}

func TestUserService_UpdateLocation(t *testing.T) {
	ctx := context.Background()
	lat, lng := 48.1, 11.5

	t.Run("Success - set both", func(t *testing.T) {
		userService, repo := setupUserService(t)

		repo.On("UpdateUserLocation", ctx, int64(1), &lat, &lng).Return(nil).Once()

		err := userService.UpdateLocation(ctx, 1, &lat, &lng)
		assert.NoError(t, err)
	})

	t.Run("Success - clear both", func(t *testing.T) {
		userService, repo := setupUserService(t)

		repo.On("UpdateUserLocation", ctx, int64(1), (*float64)(nil), (*float64)(nil)).Return(nil).Once()

		err := userService.UpdateLocation(ctx, 1, nil, nil)
		assert.NoError(t, err)
	})

	t.Run("Failure - latitude without longitude", func(t *testing.T) {
		userService, _ := setupUserService(t)

		err := userService.UpdateLocation(ctx, 1, &lat, nil)
		assert.ErrorIs(t, err, app_errors.ErrValidation)
		assert.ErrorContains(t, err, "longitude must be provided")
	})

	t.Run("Failure - longitude without latitude", func(t *testing.T) {
		userService, _ := setupUserService(t)

		err := userService.UpdateLocation(ctx, 1, nil, &lng)
		assert.ErrorIs(t, err, app_errors.ErrValidation)
		assert.ErrorContains(t, err, "latitude must be provided")
	})
}

func TestUserService_EnsureAdminUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Already exists", func(t *testing.T) {
		userService, repo := setupUserService(t)

		repo.On("GetUserByUsername", ctx, "admin").Return(&model.User{ID: 1, Username: "admin"}, nil).Once()

		err := userService.EnsureAdminUser(ctx, "Password@123")
		assert.NoError(t, err)
	})

	t.Run("Seeded on first start", func(t *testing.T) {
		userService, repo := setupUserService(t)

		repo.On("GetUserByUsername", ctx, "admin").Return(nil, repository.ErrNotFound).Once()
		repo.On("CreateUser", ctx, mock.MatchedBy(func(u *model.User) bool {
			return u.Username == "admin" && auth.CheckPassword(u.PasswordHash, "Password@123")
		})).Return(nil).Once()

		err := userService.EnsureAdminUser(ctx, "Password@123")
		assert.NoError(t, err)
	})

	t.Run("Failure - lookup error", func(t *testing.T) {
		userService, repo := setupUserService(t)

		repo.On("GetUserByUsername", ctx, "admin").Return(nil, errors.New("db error")).Once()

		err := userService.EnsureAdminUser(ctx, "Password@123")
		assert.Error(t, err)
	})
}
