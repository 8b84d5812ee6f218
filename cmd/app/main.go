package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pressly/goose/v3"
	"github.com/robfig/cron/v3"

	"loyalty-platform-backend/internal/bot"
	"loyalty-platform-backend/internal/common/cache"
	"loyalty-platform-backend/internal/common/config"
	"loyalty-platform-backend/internal/common/logger"
	"loyalty-platform-backend/internal/common/middleware"
	adminHandler "loyalty-platform-backend/internal/features/admin/delivery/http"
	authHandler "loyalty-platform-backend/internal/features/auth/delivery/http"
	authRepo "loyalty-platform-backend/internal/features/auth/repository"
	authMemoryRepo "loyalty-platform-backend/internal/features/auth/repository/memory"
	authRedisRepo "loyalty-platform-backend/internal/features/auth/repository/redis"
	authService "loyalty-platform-backend/internal/features/auth/service"
	newsClient "loyalty-platform-backend/internal/features/news/client"
	newsHandler "loyalty-platform-backend/internal/features/news/delivery/http"
	newsRepo "loyalty-platform-backend/internal/features/news/repository"
	newsMemoryRepo "loyalty-platform-backend/internal/features/news/repository/memory"
	newsPostgresRepo "loyalty-platform-backend/internal/features/news/repository/postgres"
	newsService "loyalty-platform-backend/internal/features/news/service"
	referralHandler "loyalty-platform-backend/internal/features/referral/delivery/http"
	referralRepo "loyalty-platform-backend/internal/features/referral/repository"
	referralMemoryRepo "loyalty-platform-backend/internal/features/referral/repository/memory"
	referralPostgresRepo "loyalty-platform-backend/internal/features/referral/repository/postgres"
	referralService "loyalty-platform-backend/internal/features/referral/service"
	transactionHandler "loyalty-platform-backend/internal/features/transaction/delivery/http"
	transactionRepo "loyalty-platform-backend/internal/features/transaction/repository"
	transactionMemoryRepo "loyalty-platform-backend/internal/features/transaction/repository/memory"
	transactionPostgresRepo "loyalty-platform-backend/internal/features/transaction/repository/postgres"
	transactionService "loyalty-platform-backend/internal/features/transaction/service"
	userHandler "loyalty-platform-backend/internal/features/user/delivery/http"
	userRepo "loyalty-platform-backend/internal/features/user/repository"
	userMemoryRepo "loyalty-platform-backend/internal/features/user/repository/memory"
	userPostgresRepo "loyalty-platform-backend/internal/features/user/repository/postgres"
	userService "loyalty-platform-backend/internal/features/user/service"
	"loyalty-platform-backend/internal/platform/db"
	"loyalty-platform-backend/internal/platform/redis"
)

type repositories struct {
	users        userRepo.UserRepository
	referrals    referralRepo.ReferralRepository
	transactions transactionRepo.TransactionRepository
	news         newsRepo.NewsRepository
	sessions     authRepo.SessionRepository
}

func main() {
	cfg := config.Load()

	logger.Init("loyalty-platform-backend", cfg.Debug)
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		repos          repositories
		postgresClient *db.Client
		redisClient    *redis.Client
		cacheService   *cache.CacheService
	)

	if cfg.Storage == "memory" {
		log.Warn().Msg("Using volatile in-memory storage; data is lost on restart")
		repos = repositories{
			users:        userMemoryRepo.NewMemoryRepository(),
			referrals:    referralMemoryRepo.NewMemoryRepository(),
			transactions: transactionMemoryRepo.NewMemoryRepository(),
			news:         newsMemoryRepo.NewMemoryRepository(),
			sessions:     authMemoryRepo.NewMemoryRepository(),
		}
	} else {
		var err error
		postgresClient, err = db.NewClient(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer postgresClient.Close()

		if err := runMigrations(cfg); err != nil {
			log.Fatal().Err(err).Msg("Migrations failed")
		}
		log.Info().Msg("Migrations applied")

		redisClient, err = redis.Open(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer redisClient.Close()

		cacheService = cache.NewCacheService(redisClient)

		sqlDB := postgresClient.GetDB()
		repos = repositories{
			users:        userPostgresRepo.NewPostgresRepository(sqlDB),
			referrals:    referralPostgresRepo.NewPostgresRepository(sqlDB),
			transactions: transactionPostgresRepo.NewPostgresRepository(sqlDB),
			news:         newsPostgresRepo.NewPostgresRepository(sqlDB),
			sessions:     authRedisRepo.NewRepository(redisClient, cfg.Session.TTL),
		}
	}

	// Сервисы
	userSvc := userService.NewUserService(repos.users, log)
	referralSvc := referralService.NewReferralService(repos.referrals, repos.users, log)
	transactionSvc := transactionService.NewTransactionService(repos.transactions, repos.users, log)
	authSvc := authService.NewAuthService(repos.sessions, userSvc, log)

	fetcher, err := newsClient.New(cfg.News.APIKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to construct news client")
	}
	newsSvc := newsService.NewNewsService(repos.news, fetcher, cacheService, cfg.News.CacheTTL, log)

	// Периодическая синхронизация новостей
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(fmt.Sprintf("@every %s", cfg.News.SyncInterval), func() {
		if err := newsSvc.Sync(context.Background()); err != nil {
			log.Error().Err(err).Msg("Scheduled news sync failed")
		}
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule news sync")
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Telegram бот
	tgBot, err := bot.New(cfg.Telegram.BotToken, cfg.Telegram.Debug, userSvc, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Telegram bot")
	}
	go func() {
		if err := tgBot.Run(ctx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("Bot stopped")
		}
	}()

	// HTTP сервер
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler(log))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "Accept"}
	router.Use(cors.New(corsConfig))

	api := router.Group("/api")
	api.Use(middleware.Auth(authSvc))

	userHandler.NewUserHandler(userSvc).RegisterRoutes(api)
	referralHandler.NewReferralHandler(referralSvc).RegisterRoutes(api)
	transactionHandler.NewTransactionHandler(transactionSvc).RegisterRoutes(api)
	newsHandler.NewNewsHandler(newsSvc).RegisterRoutes(api)
	authHandler.NewAuthHandler(authSvc).RegisterRoutes(api)
	adminHandler.NewAdminHandler(userSvc, referralSvc).RegisterRoutes(api)

	registerProbes(router, postgresClient, redisClient)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

func runMigrations(cfg *config.Config) error {
	sqlDB, err := goose.OpenDBWithDriver("postgres", cfg.GetDSN())
	if err != nil {
		return err
	}
	defer func() { _ = sqlDB.Close() }()
	return goose.Up(sqlDB, "migrations")
}

func registerProbes(router *gin.Engine, postgresClient *db.Client, redisClient *redis.Client) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "loyalty-platform-backend",
		})
	})

	router.GET("/live", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if postgresClient != nil {
			if err := postgresClient.HealthCheck(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unready",
					"error":   "postgres unavailable",
					"details": err.Error(),
				})
				return
			}
		}

		if redisClient != nil {
			if err := redisClient.Ping(ctx).Err(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unready",
					"error":   "redis unavailable",
					"details": err.Error(),
				})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "ready",
			"timestamp": time.Now().UTC(),
			"service":   "loyalty-platform-backend",
		})
	})
}
