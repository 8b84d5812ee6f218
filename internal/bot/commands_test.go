package bot

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	usermodels "loyalty-platform-backend/internal/features/user/models"
	"loyalty-platform-backend/internal/features/user/repository/memory"
	userservice "loyalty-platform-backend/internal/features/user/service"
)

func newTestBot() *Bot {
	return &Bot{
		log:   zerolog.Nop(),
		users: userservice.NewUserService(memory.NewMemoryRepository(), zerolog.Nop()),
	}
}

func registerUser(t *testing.T, b *Bot, username string) *usermodels.UserResponse {
	t.Helper()
	user, err := b.users.CreateUser(context.Background(), &usermodels.CreateUserInput{
		Username: username,
		Password: "secret123",
	})
	require.NoError(t, err)
	return user
}

func TestDispatch_Start(t *testing.T) {
	ctx := context.Background()
	b := newTestBot()

	t.Run("UnknownChat", func(t *testing.T) {
		reply := b.Dispatch(ctx, 100, "/start")
		assert.Contains(t, reply, "register on our website")
	})

	t.Run("LinkedChat", func(t *testing.T) {
		alice := registerUser(t, b, "alice")
		reply := b.Dispatch(ctx, 100, "/link "+alice.ReferralCode)
		require.Contains(t, reply, "Account linked")

		reply = b.Dispatch(ctx, 100, "/start")
		assert.Equal(t, "Welcome back alice! Use /balance to check your points.", reply)
	})
}

func TestDispatch_Link(t *testing.T) {
	ctx := context.Background()

	t.Run("MissingCode", func(t *testing.T) {
		b := newTestBot()
		assert.Equal(t, "Usage: /link <referral code>", b.Dispatch(ctx, 100, "/link"))
	})

	t.Run("InvalidCode", func(t *testing.T) {
		b := newTestBot()
		assert.Equal(t, "Invalid referral code.", b.Dispatch(ctx, 100, "/link NOPE1234"))
	})

	t.Run("Success", func(t *testing.T) {
		b := newTestBot()
		alice := registerUser(t, b, "alice")

		reply := b.Dispatch(ctx, 42, "/link "+alice.ReferralCode)
		assert.True(t, strings.HasPrefix(reply, "Account linked! Welcome, alice."))

		linked, err := b.users.GetUserByTelegramID(ctx, "42")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, linked.ID)
	})

	t.Run("AlreadyLinked", func(t *testing.T) {
		b := newTestBot()
		alice := registerUser(t, b, "alice")

		require.Contains(t, b.Dispatch(ctx, 42, "/link "+alice.ReferralCode), "Account linked")

		// Linking the same account again is refused.
		reply := b.Dispatch(ctx, 7, "/link "+alice.ReferralCode)
		assert.Equal(t, "This account is already linked.", reply)

		// The original link is untouched.
		linked, err := b.users.GetUserByTelegramID(ctx, "42")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, linked.ID)
	})
}

func TestDispatch_Balance(t *testing.T) {
	ctx := context.Background()
	b := newTestBot()

	t.Run("Unlinked", func(t *testing.T) {
		reply := b.Dispatch(ctx, 100, "/balance")
		assert.Equal(t, "Please link your account first with /link <referral code>.", reply)
	})

	t.Run("Linked", func(t *testing.T) {
		alice := registerUser(t, b, "alice")
		require.Contains(t, b.Dispatch(ctx, 100, "/link "+alice.ReferralCode), "Account linked")

		reply := b.Dispatch(ctx, 100, "/balance")
		assert.Equal(t, "Your current balance: 0.00 points", reply)
	})

	t.Run("ReflectsUpdatedPoints", func(t *testing.T) {
		bob := registerUser(t, b, "bob")
		require.Contains(t, b.Dispatch(ctx, 200, "/link "+bob.ReferralCode), "Account linked")

		_, err := b.users.UpdatePoints(ctx, bob.ID, "125.50")
		require.NoError(t, err)

		reply := b.Dispatch(ctx, 200, "/balance")
		assert.Equal(t, "Your current balance: 125.50 points", reply)
	})
}

func TestDispatch_Ignored(t *testing.T) {
	ctx := context.Background()
	b := newTestBot()

	for _, text := range []string{"", "   ", "hello there", "/unknown", "balance"} {
		assert.Empty(t, b.Dispatch(ctx, 100, text))
	}
}
