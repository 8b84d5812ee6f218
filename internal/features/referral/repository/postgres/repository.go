package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"loyalty-platform-backend/internal/features/referral/models"
	"loyalty-platform-backend/internal/features/referral/repository"
)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.ReferralRepository {
	return &postgresRepository{db: db}
}

// Create создает реферальную запись
func (r *postgresRepository) Create(ctx context.Context, referral *models.Referral) error {
	query := `
		INSERT INTO referrals (referrer_id, referred_id, points)
		VALUES ($1, $2, $3::numeric)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		referral.ReferrerID, referral.ReferredID, referral.Points).
		Scan(&referral.ID, &referral.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create referral: %w", err)
	}

	return nil
}

// ListByReferrer возвращает рефералов пользователя
func (r *postgresRepository) ListByReferrer(ctx context.Context, referrerID int) ([]*models.Referral, error) {
	query := `
		SELECT id, referrer_id, referred_id, points::text, created_at
		FROM referrals
		WHERE referrer_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, referrerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list referrals: %w", err)
	}
	defer rows.Close()

	return scanReferrals(rows)
}

// List возвращает все реферальные записи
func (r *postgresRepository) List(ctx context.Context) ([]*models.Referral, error) {
	query := `
		SELECT id, referrer_id, referred_id, points::text, created_at
		FROM referrals
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list referrals: %w", err)
	}
	defer rows.Close()

	return scanReferrals(rows)
}

func scanReferrals(rows *sql.Rows) ([]*models.Referral, error) {
	var referrals []*models.Referral
	for rows.Next() {
		var ref models.Referral
		if err := rows.Scan(&ref.ID, &ref.ReferrerID, &ref.ReferredID, &ref.Points, &ref.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan referral: %w", err)
		}
		referrals = append(referrals, &ref)
	}
	return referrals, rows.Err()
}
