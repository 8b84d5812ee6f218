package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loyalty-platform-backend/internal/features/auth/models"
	"loyalty-platform-backend/internal/features/auth/repository/memory"
	usermodels "loyalty-platform-backend/internal/features/user/models"
	usermemory "loyalty-platform-backend/internal/features/user/repository/memory"
	userservice "loyalty-platform-backend/internal/features/user/service"
)

func newTestAuth(t *testing.T) AuthService {
	t.Helper()

	users := userservice.NewUserService(usermemory.NewMemoryRepository(), zerolog.Nop())
	_, err := users.CreateUser(context.Background(), &usermodels.CreateUserInput{
		Username: "alice",
		Password: "secret123",
	})
	require.NoError(t, err)

	return NewAuthService(memory.NewMemoryRepository(), users, zerolog.Nop())
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		auth := newTestAuth(t)

		resp, err := auth.Login(ctx, &models.LoginInput{Username: "alice", Password: "secret123"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "alice", resp.User.Username)

		session, err := auth.ValidateToken(ctx, resp.Token)
		require.NoError(t, err)
		require.NotNil(t, session)
		assert.Equal(t, resp.User.ID, session.UserID)
		assert.Equal(t, usermodels.RoleUser, session.Role)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		auth := newTestAuth(t)

		_, err := auth.Login(ctx, &models.LoginInput{Username: "alice", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownUsername", func(t *testing.T) {
		auth := newTestAuth(t)

		_, err := auth.Login(ctx, &models.LoginInput{Username: "nobody", Password: "secret123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	auth := newTestAuth(t)

	resp, err := auth.Login(ctx, &models.LoginInput{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, auth.Logout(ctx, resp.Token))

	session, err := auth.ValidateToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestAuthService_ValidateToken_Unknown(t *testing.T) {
	ctx := context.Background()
	auth := newTestAuth(t)

	session, err := auth.ValidateToken(ctx, "not-a-token")
	require.NoError(t, err)
	assert.Nil(t, session)

	session, err = auth.ValidateToken(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, session)
}
