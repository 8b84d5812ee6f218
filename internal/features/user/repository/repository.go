package repository

import (
	"context"
	"errors"

	"loyalty-platform-backend/internal/features/user/models"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
)

// UserRepository is the storage contract shared by the Postgres and the
// in-memory backends. Both must be observably identical for every operation.
type UserRepository interface {
	// Create persists the user and fills ID and CreatedAt.
	// A duplicate username surfaces as ErrUsernameTaken.
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByTelegramID(ctx context.Context, telegramID string) (*models.User, error)
	GetByReferralCode(ctx context.Context, code string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	UpdatePoints(ctx context.Context, id int, points string) (*models.User, error)
	UpdateTelegramID(ctx context.Context, id int, telegramID string) (*models.User, error)
}
