package repository

import (
	"context"

	"loyalty-platform-backend/internal/features/auth/models"
)

// SessionRepository stores bearer-token sessions with a TTL.
// Get returns (nil, nil) for a missing or expired token.
type SessionRepository interface {
	Save(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
}
