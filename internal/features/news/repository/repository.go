package repository

import (
	"context"
	"errors"

	"loyalty-platform-backend/internal/features/news/models"
)

var ErrPreferencesNotFound = errors.New("news preferences not found")

// NewsRepository stores articles, per-user preferences and interactions.
// Articles are immutable once written; the sync upserts by URL to keep the
// periodic fetch idempotent.
type NewsRepository interface {
	Create(ctx context.Context, article *models.News) error
	UpsertByURL(ctx context.Context, article *models.News) error
	// List returns the latest articles, published_at descending.
	List(ctx context.Context, limit int) ([]*models.News, error)
	// ListByCategories returns articles whose category is an exact member of
	// the given set, published_at descending.
	ListByCategories(ctx context.Context, categories []string, limit int) ([]*models.News, error)

	GetPreferences(ctx context.Context, userID int) (*models.Preferences, error)
	// UpsertPreferences creates or replaces the single preferences row of a user.
	UpsertPreferences(ctx context.Context, prefs *models.Preferences) error

	CreateInteraction(ctx context.Context, interaction *models.Interaction) error
	ListInteractions(ctx context.Context, userID int) ([]*models.Interaction, error)
}
