package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"loyalty-platform-backend/internal/common/cache"
	"loyalty-platform-backend/internal/features/news/models"
	"loyalty-platform-backend/internal/features/news/repository"
)

// DefaultLimit caps the article lists returned to clients.
const DefaultLimit = 50

// Fetcher is the external news source; satisfied by client.Client.
type Fetcher interface {
	FetchLatest(ctx context.Context) ([]*models.News, error)
}

type NewsService interface {
	// ListNews returns the latest articles, published_at descending.
	ListNews(ctx context.Context, limit int) ([]*models.News, error)
	// GetRecommended filters the feed by the user's saved categories.
	// Without a preferences row, or with an empty category set, it behaves
	// exactly as ListNews. Category matching is exact and case-sensitive.
	GetRecommended(ctx context.Context, userID, limit int) ([]*models.News, error)
	GetPreferences(ctx context.Context, userID int) (*models.Preferences, error)
	SavePreferences(ctx context.Context, userID int, input *models.SavePreferencesInput) (*models.Preferences, error)
	RecordInteraction(ctx context.Context, input *models.CreateInteractionInput) (*models.Interaction, error)
	// Sync pulls the latest articles from the external source. A failed fetch
	// skips the cycle; there are no retries.
	Sync(ctx context.Context) error
}

var ErrPreferencesNotFound = errors.New("news preferences not found")

type newsService struct {
	repo     repository.NewsRepository
	fetcher  Fetcher
	cache    *cache.CacheService
	cacheTTL time.Duration
	logger   zerolog.Logger
}

func NewNewsService(repo repository.NewsRepository, fetcher Fetcher, cacheService *cache.CacheService, cacheTTL time.Duration, logger zerolog.Logger) NewsService {
	return &newsService{
		repo:     repo,
		fetcher:  fetcher,
		cache:    cacheService,
		cacheTTL: cacheTTL,
		logger:   logger.With().Str("component", "news_service").Logger(),
	}
}

func (s *newsService) ListNews(ctx context.Context, limit int) ([]*models.News, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var articles []*models.News
	cacheKey := fmt.Sprintf("news:latest:%d", limit)

	err := s.cacheGetOrSet(ctx, cacheKey, &articles, func() (interface{}, error) {
		return s.repo.List(ctx, limit)
	})
	if err != nil {
		return nil, err
	}

	if articles == nil {
		articles = []*models.News{}
	}
	return articles, nil
}

func (s *newsService) GetRecommended(ctx context.Context, userID, limit int) ([]*models.News, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var articles []*models.News
	cacheKey := fmt.Sprintf("news:recommended:%d:%d", userID, limit)

	err := s.cacheGetOrSet(ctx, cacheKey, &articles, func() (interface{}, error) {
		return s.recommended(ctx, userID, limit)
	})
	if err != nil {
		return nil, err
	}

	if articles == nil {
		articles = []*models.News{}
	}
	return articles, nil
}

func (s *newsService) recommended(ctx context.Context, userID, limit int) ([]*models.News, error) {
	prefs, err := s.repo.GetPreferences(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrPreferencesNotFound) {
			// No saved preferences: fall back to the latest feed.
			return s.repo.List(ctx, limit)
		}
		return nil, err
	}

	if len(prefs.Categories) == 0 {
		// An empty category set matches everything.
		return s.repo.List(ctx, limit)
	}

	return s.repo.ListByCategories(ctx, prefs.Categories, limit)
}

// cacheGetOrSet reads through the cache but never fails a request because of
// it: with no cache configured, or a cache error, the setter runs directly.
func (s *newsService) cacheGetOrSet(ctx context.Context, key string, dest *[]*models.News, setter func() (interface{}, error)) error {
	if s.cache == nil {
		value, err := setter()
		if err != nil {
			return err
		}
		if articles, ok := value.([]*models.News); ok {
			*dest = articles
		}
		return nil
	}

	return s.cache.GetOrSet(ctx, key, dest, s.cacheTTL, setter)
}

func (s *newsService) GetPreferences(ctx context.Context, userID int) (*models.Preferences, error) {
	prefs, err := s.repo.GetPreferences(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrPreferencesNotFound) {
			return nil, ErrPreferencesNotFound
		}
		return nil, err
	}
	return prefs, nil
}

func (s *newsService) SavePreferences(ctx context.Context, userID int, input *models.SavePreferencesInput) (*models.Preferences, error) {
	prefs := &models.Preferences{
		UserID:     userID,
		Categories: input.Categories,
		Keywords:   input.Keywords,
		Sources:    input.Sources,
	}

	if err := s.repo.UpsertPreferences(ctx, prefs); err != nil {
		s.logger.Error().Err(err).Int("user_id", userID).Msg("failed to save preferences")
		return nil, err
	}

	if s.cache != nil {
		// Recommendations for this user are stale now.
		if err := s.cache.DeletePattern(ctx, fmt.Sprintf("news:recommended:%d:*", userID)); err != nil {
			s.logger.Warn().Err(err).Int("user_id", userID).Msg("failed to invalidate recommendation cache")
		}
	}

	return prefs, nil
}

func (s *newsService) RecordInteraction(ctx context.Context, input *models.CreateInteractionInput) (*models.Interaction, error) {
	interaction := &models.Interaction{
		UserID:      input.UserID,
		NewsID:      input.NewsID,
		Interaction: input.Interaction,
	}

	if err := s.repo.CreateInteraction(ctx, interaction); err != nil {
		s.logger.Error().Err(err).Int("user_id", input.UserID).Int("news_id", input.NewsID).Msg("failed to record interaction")
		return nil, err
	}

	return interaction, nil
}

func (s *newsService) Sync(ctx context.Context) error {
	articles, err := s.fetcher.FetchLatest(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("news sync failed, skipping cycle")
		return err
	}

	synced := 0
	for _, article := range articles {
		if err := s.repo.UpsertByURL(ctx, article); err != nil {
			s.logger.Error().Err(err).Str("url", article.URL).Msg("failed to store article")
			continue
		}
		synced++
	}

	if s.cache != nil {
		if err := s.cache.DeletePattern(ctx, "news:*"); err != nil {
			s.logger.Warn().Err(err).Msg("failed to invalidate news cache")
		}
	}

	s.logger.Info().Int("fetched", len(articles)).Int("stored", synced).Msg("news sync completed")

	return nil
}
