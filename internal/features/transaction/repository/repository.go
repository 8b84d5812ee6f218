package repository

import (
	"context"

	"loyalty-platform-backend/internal/features/transaction/models"
)

// TransactionRepository stores append-only ledger rows; rows are never
// updated or deleted.
type TransactionRepository interface {
	// Create persists the transaction and fills ID and CreatedAt.
	Create(ctx context.Context, tx *models.Transaction) error
	ListByUser(ctx context.Context, userID int) ([]*models.Transaction, error)
}
