package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"loyalty-platform-backend/internal/common/config"
	"loyalty-platform-backend/internal/common/logger"
)

// Client wraps go-redis client to allow future extensions.
type Client struct {
	*redis.Client
}

// Open creates a new Redis client and pings it to validate the connection.
func Open(ctx context.Context, cfg *config.Config) (*Client, error) {
	addr := cfg.RedisAddr()
	if addr == "" {
		return nil, fmt.Errorf("empty redis addr")
	}
	c := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, err
	}

	logger.Info().Str("addr", addr).Int("db", cfg.Redis.DB).Msg("Redis client initialized")

	return &Client{Client: c}, nil
}
