package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"loyalty-platform-backend/internal/features/transaction/models"
	"loyalty-platform-backend/internal/features/transaction/repository"
)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.TransactionRepository {
	return &postgresRepository{db: db}
}

// Create создает запись в журнале транзакций
func (r *postgresRepository) Create(ctx context.Context, tx *models.Transaction) error {
	query := `
		INSERT INTO transactions (user_id, type, amount)
		VALUES ($1, $2, $3::numeric)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query, tx.UserID, tx.Type, tx.Amount).
		Scan(&tx.ID, &tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	return nil
}

// ListByUser возвращает транзакции пользователя
func (r *postgresRepository) ListByUser(ctx context.Context, userID int) ([]*models.Transaction, error) {
	query := `
		SELECT id, user_id, type, amount::text, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txs []*models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Type, &tx.Amount, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, &tx)
	}

	return txs, rows.Err()
}
