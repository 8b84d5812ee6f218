package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"loyalty-platform-backend/internal/features/news/models"
	"loyalty-platform-backend/internal/features/news/repository"
)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.NewsRepository {
	return &postgresRepository{db: db}
}

// Create создает новостную статью
func (r *postgresRepository) Create(ctx context.Context, article *models.News) error {
	query := `
		INSERT INTO news (title, content, source, url, image_url, category, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		article.Title, article.Content, article.Source, article.URL,
		article.ImageURL, article.Category, article.PublishedAt).
		Scan(&article.ID, &article.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create news: %w", err)
	}

	return nil
}

// UpsertByURL вставляет статью, пропуская дубликаты по URL
func (r *postgresRepository) UpsertByURL(ctx context.Context, article *models.News) error {
	query := `
		INSERT INTO news (title, content, source, url, image_url, category, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (url) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query,
		article.Title, article.Content, article.Source, article.URL,
		article.ImageURL, article.Category, article.PublishedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert news: %w", err)
	}

	return nil
}

const newsColumns = `id, title, content, source, url, image_url, category, published_at, created_at`

// List возвращает последние статьи
func (r *postgresRepository) List(ctx context.Context, limit int) ([]*models.News, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM news
		ORDER BY published_at DESC
		LIMIT $1`, newsColumns)

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list news: %w", err)
	}
	defer rows.Close()

	return scanNews(rows)
}

// ListByCategories возвращает статьи из выбранных категорий
func (r *postgresRepository) ListByCategories(ctx context.Context, categories []string, limit int) ([]*models.News, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM news
		WHERE category = ANY($1)
		ORDER BY published_at DESC
		LIMIT $2`, newsColumns)

	rows, err := r.db.QueryContext(ctx, query, pq.Array(categories), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list news by categories: %w", err)
	}
	defer rows.Close()

	return scanNews(rows)
}

func scanNews(rows *sql.Rows) ([]*models.News, error) {
	var articles []*models.News
	for rows.Next() {
		var n models.News
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.Source, &n.URL,
			&n.ImageURL, &n.Category, &n.PublishedAt, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan news: %w", err)
		}
		articles = append(articles, &n)
	}
	return articles, rows.Err()
}

// GetPreferences возвращает настройки новостей пользователя
func (r *postgresRepository) GetPreferences(ctx context.Context, userID int) (*models.Preferences, error) {
	query := `
		SELECT id, user_id, categories, keywords, sources, updated_at
		FROM user_news_preferences
		WHERE user_id = $1
	`

	var prefs models.Preferences
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&prefs.ID, &prefs.UserID,
		pq.Array(&prefs.Categories), pq.Array(&prefs.Keywords), pq.Array(&prefs.Sources),
		&prefs.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrPreferencesNotFound
		}
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}

	return &prefs, nil
}

// UpsertPreferences создает или заменяет настройки пользователя
func (r *postgresRepository) UpsertPreferences(ctx context.Context, prefs *models.Preferences) error {
	query := `
		INSERT INTO user_news_preferences (user_id, categories, keywords, sources, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id) DO UPDATE SET
			categories = EXCLUDED.categories,
			keywords   = EXCLUDED.keywords,
			sources    = EXCLUDED.sources,
			updated_at = NOW()
		RETURNING id, updated_at
	`

	err := r.db.QueryRowContext(ctx, query, prefs.UserID,
		pq.Array(prefs.Categories), pq.Array(prefs.Keywords), pq.Array(prefs.Sources)).
		Scan(&prefs.ID, &prefs.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert preferences: %w", err)
	}

	return nil
}

// CreateInteraction создает запись о действии пользователя
func (r *postgresRepository) CreateInteraction(ctx context.Context, interaction *models.Interaction) error {
	query := `
		INSERT INTO user_news_interactions (user_id, news_id, interaction)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.db.QueryRowContext(ctx, query,
		interaction.UserID, interaction.NewsID, interaction.Interaction).
		Scan(&interaction.ID, &interaction.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create interaction: %w", err)
	}

	return nil
}

// ListInteractions возвращает действия пользователя
func (r *postgresRepository) ListInteractions(ctx context.Context, userID int) ([]*models.Interaction, error) {
	query := `
		SELECT id, user_id, news_id, interaction, created_at
		FROM user_news_interactions
		WHERE user_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list interactions: %w", err)
	}
	defer rows.Close()

	var out []*models.Interaction
	for rows.Next() {
		var in models.Interaction
		if err := rows.Scan(&in.ID, &in.UserID, &in.NewsID, &in.Interaction, &in.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan interaction: %w", err)
		}
		out = append(out, &in)
	}

	return out, rows.Err()
}
