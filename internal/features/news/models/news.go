package models

import "time"

const (
	InteractionRead  = "READ"
	InteractionLike  = "LIKE"
	InteractionShare = "SHARE"
	InteractionSave  = "SAVE"
)

// News is an immutable article row created by the periodic external sync.
// Each article carries a single category.
type News struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	ImageURL    string    `json:"image_url"`
	Category    string    `json:"category"`
	PublishedAt time.Time `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// Preferences holds a user's saved news filters; one row per user, upserted.
type Preferences struct {
	ID         int       `json:"id"`
	UserID     int       `json:"user_id"`
	Categories []string  `json:"categories"`
	Keywords   []string  `json:"keywords"`
	Sources    []string  `json:"sources"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Interaction is an append-only record of a user acting on an article.
type Interaction struct {
	ID          int       `json:"id"`
	UserID      int       `json:"user_id"`
	NewsID      int       `json:"news_id"`
	Interaction string    `json:"interaction"`
	CreatedAt   time.Time `json:"created_at"`
}

type SavePreferencesInput struct {
	Categories []string `json:"categories"`
	Keywords   []string `json:"keywords"`
	Sources    []string `json:"sources"`
}

type CreateInteractionInput struct {
	UserID      int    `json:"user_id" binding:"required"`
	NewsID      int    `json:"news_id" binding:"required"`
	Interaction string `json:"interaction" binding:"required,oneof=READ LIKE SHARE SAVE"`
}
