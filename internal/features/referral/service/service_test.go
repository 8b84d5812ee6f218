package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	referralmodels "loyalty-platform-backend/internal/features/referral/models"
	"loyalty-platform-backend/internal/features/referral/repository/memory"
	usermodels "loyalty-platform-backend/internal/features/user/models"
	usermemory "loyalty-platform-backend/internal/features/user/repository/memory"
	userservice "loyalty-platform-backend/internal/features/user/service"
)

type testEnv struct {
	referrals ReferralService
	users     userservice.UserService
}

func newTestEnv() *testEnv {
	users := usermemory.NewMemoryRepository()
	return &testEnv{
		referrals: NewReferralService(memory.NewMemoryRepository(), users, zerolog.Nop()),
		users:     userservice.NewUserService(users, zerolog.Nop()),
	}
}

func (e *testEnv) createUser(t *testing.T, username string) *usermodels.UserResponse {
	t.Helper()
	user, err := e.users.CreateUser(context.Background(), &usermodels.CreateUserInput{
		Username: username,
		Password: "secret123",
	})
	require.NoError(t, err)
	return user
}

func TestReferralService_CreateReferral(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	referral, err := env.referrals.CreateReferral(ctx, &referralmodels.CreateReferralInput{
		ReferrerID: alice.ID,
		ReferredID: bob.ID,
	})
	require.NoError(t, err)
	assert.NotZero(t, referral.ID)
	assert.Equal(t, "0.00", referral.Points)

	listed, err := env.referrals.GetReferrals(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, bob.ID, listed[0].ReferredID)
	assert.Equal(t, "0.00", listed[0].Points)

	// Bob referred nobody.
	empty, err := env.referrals.GetReferrals(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestReferralService_CreateReferral_UnknownUser(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	alice := env.createUser(t, "alice")

	_, err := env.referrals.CreateReferral(ctx, &referralmodels.CreateReferralInput{
		ReferrerID: alice.ID,
		ReferredID: 9999,
	})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = env.referrals.CreateReferral(ctx, &referralmodels.CreateReferralInput{
		ReferrerID: 9999,
		ReferredID: alice.ID,
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestReferralService_ListReferrals(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	carol := env.createUser(t, "carol")

	for _, referred := range []int{bob.ID, carol.ID} {
		_, err := env.referrals.CreateReferral(ctx, &referralmodels.CreateReferralInput{
			ReferrerID: alice.ID,
			ReferredID: referred,
		})
		require.NoError(t, err)
	}

	all, err := env.referrals.ListReferrals(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
