package repository

import (
	"context"

	"loyalty-platform-backend/internal/features/referral/models"
)

// ReferralRepository stores append-only referral rows. Duplicate prevention is
// deliberately not enforced here; callers own that decision.
type ReferralRepository interface {
	// Create persists the referral and fills ID and CreatedAt.
	Create(ctx context.Context, referral *models.Referral) error
	ListByReferrer(ctx context.Context, referrerID int) ([]*models.Referral, error)
	List(ctx context.Context) ([]*models.Referral, error)
}
