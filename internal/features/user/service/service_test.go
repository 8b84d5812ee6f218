package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"loyalty-platform-backend/internal/features/user/models"
	"loyalty-platform-backend/internal/features/user/repository/memory"
)

func newTestService() UserService {
	return NewUserService(memory.NewMemoryRepository(), zerolog.Nop())
}

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created, err := svc.CreateUser(ctx, &models.CreateUserInput{
		Username: "alice",
		Password: "secret123",
	})
	require.NoError(t, err)

	assert.NotZero(t, created.ID)
	assert.Equal(t, "alice", created.Username)
	assert.Equal(t, "0.00", created.Points)
	assert.Len(t, created.ReferralCode, 8)
	assert.Nil(t, created.TelegramID)
	assert.Equal(t, models.RoleUser, created.Role)

	t.Run("RoundTrip", func(t *testing.T) {
		got, err := svc.GetUser(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, created.Username, got.Username)
		assert.Equal(t, created.ReferralCode, got.ReferralCode)
		assert.Equal(t, "0.00", got.Points)
		assert.Nil(t, got.TelegramID)
	})

	t.Run("PasswordHashed", func(t *testing.T) {
		row, err := svc.GetUserByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.NotEqual(t, "secret123", row.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(row.Password), []byte("secret123")))
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, &models.CreateUserInput{
			Username: "alice",
			Password: "another456",
		})
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})
}

func TestUserService_ReferralCodesUnique(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		user, err := svc.CreateUser(ctx, &models.CreateUserInput{
			Username: "user" + string(rune('a'+i%26)) + string(rune('0'+i/26)),
			Password: "secret123",
		})
		require.NoError(t, err)
		require.Len(t, user.ReferralCode, 8)

		_, dup := seen[user.ReferralCode]
		require.False(t, dup, "referral code %q assigned twice", user.ReferralCode)
		seen[user.ReferralCode] = struct{}{}
	}
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	svc := newTestService()

	_, err := svc.GetUser(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_UpdatePoints(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created, err := svc.CreateUser(ctx, &models.CreateUserInput{Username: "bob", Password: "secret123"})
	require.NoError(t, err)

	updated, err := svc.UpdatePoints(ctx, created.ID, "150.50")
	require.NoError(t, err)
	assert.Equal(t, "150.50", updated.Points)

	got, err := svc.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "150.50", got.Points)

	_, err = svc.UpdatePoints(ctx, 9999, "1.00")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_LinkTelegram(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	created, err := svc.CreateUser(ctx, &models.CreateUserInput{Username: "carol", Password: "secret123"})
	require.NoError(t, err)

	t.Run("InvalidCode", func(t *testing.T) {
		_, err := svc.LinkTelegram(ctx, "nope1234", "555")
		assert.ErrorIs(t, err, ErrInvalidReferral)
	})

	t.Run("Link", func(t *testing.T) {
		linked, err := svc.LinkTelegram(ctx, created.ReferralCode, "555")
		require.NoError(t, err)
		require.NotNil(t, linked.TelegramID)
		assert.Equal(t, "555", *linked.TelegramID)
	})

	t.Run("AlreadyLinked", func(t *testing.T) {
		_, err := svc.LinkTelegram(ctx, created.ReferralCode, "777")
		assert.ErrorIs(t, err, ErrAlreadyLinked)

		// The original link must be untouched.
		row, err := svc.GetUserByTelegramID(ctx, "555")
		require.NoError(t, err)
		assert.Equal(t, created.ID, row.ID)

		_, err = svc.GetUserByTelegramID(ctx, "777")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
