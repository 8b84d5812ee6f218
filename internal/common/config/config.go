package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug bool `env:"DEBUG" envDefault:"false"`

	// Storage selects the backing store: "postgres" or "memory".
	// The memory backend is volatile and meant for local development.
	Storage string `env:"STORAGE_BACKEND" envDefault:"postgres"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"8080"`
		Origin string `env:"ORIGIN" envDefault:"http://localhost:3000"`
	}

	Postgres struct {
		Host            string        `env:"POSTGRES_HOST" envDefault:"localhost"`
		Port            int           `env:"POSTGRES_PORT" envDefault:"5432"`
		User            string        `env:"POSTGRES_USER" envDefault:"postgres"`
		Password        string        `env:"POSTGRES_PASSWORD" envDefault:"postgres"`
		Database        string        `env:"POSTGRES_DB" envDefault:"loyalty"`
		SSLMode         string        `env:"POSTGRES_SSLMODE" envDefault:"disable"`
		MaxOpenConns    int           `env:"POSTGRES_MAX_OPEN_CONNS" envDefault:"25"`
		MaxIdleConns    int           `env:"POSTGRES_MAX_IDLE_CONNS" envDefault:"5"`
		ConnMaxLifetime time.Duration `env:"POSTGRES_CONN_MAX_LIFETIME" envDefault:"30m"`
	}

	Redis struct {
		Host     string `env:"REDIS_HOST" envDefault:"localhost"`
		Port     int    `env:"REDIS_PORT" envDefault:"6379"`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	Telegram struct {
		BotToken string `env:"TELEGRAM_BOT_TOKEN,required"`
		Debug    bool   `env:"TELEGRAM_DEBUG" envDefault:"false"`
	}

	News struct {
		APIKey       string        `env:"CRYPTO_NEWS_API_KEY,required"`
		SyncInterval time.Duration `env:"NEWS_SYNC_INTERVAL" envDefault:"10m"`
		CacheTTL     time.Duration `env:"NEWS_CACHE_TTL" envDefault:"5m"`
	}

	Session struct {
		TTL time.Duration `env:"SESSION_TTL" envDefault:"720h"`
	}
}

// GetDSN builds the lib/pq connection string.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Postgres.Host, c.Postgres.Port, c.Postgres.User,
		c.Postgres.Password, c.Postgres.Database, c.Postgres.SSLMode)
}

func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		// Игнорируем ошибку, если .env файл не найден
		// В production окружении переменные могут быть установлены напрямую
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}

	return cfg
}
