package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"loyalty-platform-backend/internal/features/auth/models"
	"loyalty-platform-backend/internal/features/auth/repository"
	"loyalty-platform-backend/internal/platform/redis"
)

const keyPrefixSession = "session:"

type Repository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRepository(client *redis.Client, ttl time.Duration) repository.SessionRepository {
	return &Repository{client: client, ttl: ttl}
}

func (r *Repository) Save(ctx context.Context, session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	key := keyPrefixSession + session.Token
	return r.client.Set(ctx, key, data, r.ttl).Err()
}

func (r *Repository) Get(ctx context.Context, token string) (*models.Session, error) {
	data, err := r.client.Get(ctx, keyPrefixSession+token).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

func (r *Repository) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, keyPrefixSession+token).Err()
}
