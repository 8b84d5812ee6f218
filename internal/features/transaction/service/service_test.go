package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	transactionmodels "loyalty-platform-backend/internal/features/transaction/models"
	"loyalty-platform-backend/internal/features/transaction/repository/memory"
	usermodels "loyalty-platform-backend/internal/features/user/models"
	usermemory "loyalty-platform-backend/internal/features/user/repository/memory"
)

func setup(t *testing.T) (TransactionService, *usermodels.User) {
	t.Helper()

	users := usermemory.NewMemoryRepository()
	user := &usermodels.User{
		Username:     "alice",
		Password:     "hash",
		Points:       usermodels.InitialPoints,
		ReferralCode: "AbCdEf12",
		Role:         usermodels.RoleUser,
	}
	require.NoError(t, users.Create(context.Background(), user))

	return NewTransactionService(memory.NewMemoryRepository(), users, zerolog.Nop()), user
}

func TestTransactionService_CreateTransaction(t *testing.T) {
	ctx := context.Background()
	svc, user := setup(t)

	tx, err := svc.CreateTransaction(ctx, &transactionmodels.CreateTransactionInput{
		UserID: user.ID,
		Type:   transactionmodels.TypeDeposit,
		Amount: "100.00",
	})
	require.NoError(t, err)
	assert.NotZero(t, tx.ID)
	assert.Equal(t, transactionmodels.TypeDeposit, tx.Type)
	assert.Equal(t, "100.00", tx.Amount)
	assert.False(t, tx.CreatedAt.IsZero())
}

func TestTransactionService_CreateTransaction_UnknownUser(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)

	_, err := svc.CreateTransaction(ctx, &transactionmodels.CreateTransactionInput{
		UserID: 9999,
		Type:   transactionmodels.TypeDeposit,
		Amount: "1.00",
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestTransactionService_GetTransactions(t *testing.T) {
	ctx := context.Background()
	svc, user := setup(t)

	// The ledger is append-only: every recorded row stays visible.
	for _, in := range []*transactionmodels.CreateTransactionInput{
		{UserID: user.ID, Type: transactionmodels.TypeDeposit, Amount: "100.00"},
		{UserID: user.ID, Type: transactionmodels.TypeWithdrawal, Amount: "25.00"},
		{UserID: user.ID, Type: transactionmodels.TypeConvert, Amount: "10.00"},
	} {
		_, err := svc.CreateTransaction(ctx, in)
		require.NoError(t, err)
	}

	txs, err := svc.GetTransactions(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, txs, 3)

	// A user with no rows gets an empty list, not nil.
	empty, err := svc.GetTransactions(ctx, 424242)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
