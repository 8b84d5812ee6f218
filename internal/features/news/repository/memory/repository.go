package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"loyalty-platform-backend/internal/features/news/models"
	"loyalty-platform-backend/internal/features/news/repository"
)

type memoryRepository struct {
	mu            sync.RWMutex
	articles      map[int]*models.News
	prefs         map[int]*models.Preferences
	interactions  map[int]*models.Interaction
	nextNews      int
	nextPrefs     int
	nextInteraction int
}

func NewMemoryRepository() repository.NewsRepository {
	return &memoryRepository{
		articles:        make(map[int]*models.News),
		prefs:           make(map[int]*models.Preferences),
		interactions:    make(map[int]*models.Interaction),
		nextNews:        1,
		nextPrefs:       1,
		nextInteraction: 1,
	}
}

func (r *memoryRepository) Create(ctx context.Context, article *models.News) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	article.ID = r.nextNews
	r.nextNews++
	article.CreatedAt = time.Now().UTC()

	stored := *article
	r.articles[article.ID] = &stored

	return nil
}

func (r *memoryRepository) UpsertByURL(ctx context.Context, article *models.News) error {
	r.mu.Lock()
	for _, existing := range r.articles {
		if existing.URL == article.URL {
			r.mu.Unlock()
			return nil
		}
	}
	r.mu.Unlock()
	return r.Create(ctx, article)
}

func (r *memoryRepository) List(ctx context.Context, limit int) ([]*models.News, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(*models.News) bool { return true }, limit), nil
}

func (r *memoryRepository) ListByCategories(ctx context.Context, categories []string, limit int) ([]*models.News, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		wanted[c] = struct{}{}
	}

	return r.collect(func(n *models.News) bool {
		_, ok := wanted[n.Category]
		return ok
	}, limit), nil
}

// collect returns matching articles, published_at descending, capped at limit.
// Callers must hold the lock.
func (r *memoryRepository) collect(match func(*models.News) bool, limit int) []*models.News {
	var out []*models.News
	for _, n := range r.articles {
		if match(n) {
			c := *n
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PublishedAt.Equal(out[j].PublishedAt) {
			return out[i].PublishedAt.After(out[j].PublishedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (r *memoryRepository) GetPreferences(ctx context.Context, userID int) (*models.Preferences, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.prefs {
		if p.UserID == userID {
			c := *p
			c.Categories = append([]string(nil), p.Categories...)
			c.Keywords = append([]string(nil), p.Keywords...)
			c.Sources = append([]string(nil), p.Sources...)
			return &c, nil
		}
	}
	return nil, repository.ErrPreferencesNotFound
}

func (r *memoryRepository) UpsertPreferences(ctx context.Context, prefs *models.Preferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.prefs {
		if existing.UserID == prefs.UserID {
			prefs.ID = existing.ID
			prefs.UpdatedAt = time.Now().UTC()
			stored := *prefs
			r.prefs[existing.ID] = &stored
			return nil
		}
	}

	prefs.ID = r.nextPrefs
	r.nextPrefs++
	prefs.UpdatedAt = time.Now().UTC()
	stored := *prefs
	r.prefs[prefs.ID] = &stored

	return nil
}

func (r *memoryRepository) CreateInteraction(ctx context.Context, interaction *models.Interaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	interaction.ID = r.nextInteraction
	r.nextInteraction++
	interaction.CreatedAt = time.Now().UTC()

	stored := *interaction
	r.interactions[interaction.ID] = &stored

	return nil
}

func (r *memoryRepository) ListInteractions(ctx context.Context, userID int) ([]*models.Interaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.Interaction
	for id := 1; id < r.nextInteraction; id++ {
		if in, ok := r.interactions[id]; ok && in.UserID == userID {
			c := *in
			out = append(out, &c)
		}
	}
	return out, nil
}
