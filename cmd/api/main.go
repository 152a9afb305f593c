package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bsm/redislock"
	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"

	"github.com/sjperalta/clientpulse-api/internal/config"
	"github.com/sjperalta/clientpulse-api/internal/database"
	"github.com/sjperalta/clientpulse-api/internal/handlers"
	"github.com/sjperalta/clientpulse-api/internal/jobs"
	"github.com/sjperalta/clientpulse-api/internal/metrics"
	"github.com/sjperalta/clientpulse-api/internal/middleware"
	"github.com/sjperalta/clientpulse-api/internal/repository"
	"github.com/sjperalta/clientpulse-api/internal/services"
	"github.com/sjperalta/clientpulse-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Setup(cfg.Environment, cfg.LogLevel)

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, cfg.IsProduction())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	// Every metric is computed in the business's zone so days and weeks line up with the owner's calendar
	opts := []metrics.Option{metrics.WithClock(func() time.Time { return time.Now().In(cfg.Location) })}
	if cfg.StreakMode == config.StreakConsecutive {
		opts = append(opts, metrics.WithStreak(metrics.ConsecutiveDayStreak{}))
	}
	engine := metrics.NewEngine(opts...)

	cache, redisClient, err := openCache(cfg, engine)
	if err != nil {
		logger.Error("Failed to initialize metrics cache", "driver", cfg.CacheDriver, "error", err)
		os.Exit(1)
	}
	logger.Info("Initialized metrics cache", "driver", cfg.CacheDriver, "ttl", cfg.MetricsCacheTTL)

	repos := repository.NewRepositories(db, cache)

	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	svcs := services.NewServices(repos, worker, engine, cfg)
	if redisClient != nil {
		svcs.Analytics.WithLocker(redislock.New(redisClient))
	}

	scheduleJobs(worker, svcs, cfg)

	h := handlers.NewHandlers(svcs, cfg.Location)
	router := setupRouter(h, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	worker.Shutdown()
	logger.Info("Background worker stopped")

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Warn("Failed to close redis client", "error", err)
		}
	}

	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

// openCache builds the metrics cache tier selected by CACHE_DRIVER. The redis
// client is returned so the caller can share it with the refresh lock.
func openCache(cfg *config.Config, engine *metrics.Engine) (repository.AnalyticsCacheRepository, *redis.Client, error) {
	switch cfg.CacheDriver {
	case config.CacheDriverRedis:
		client, err := repository.ConnectRedis(context.Background(), cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewRedisCacheRepository(client), client, nil
	case config.CacheDriverMemory:
		return repository.NewMemoryCacheRepository(cfg.MetricsCacheTTL, engine.Now), nil, nil
	default:
		// nil lets NewRepositories fall back to the analytics_cache table
		return nil, nil, nil
	}
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", h.Health.Index)

		analytics := v1.Group("/analytics")
		{
			analytics.GET("/weekly", h.Analytics.Weekly)
			analytics.GET("/monthly", h.Analytics.Monthly)
			analytics.GET("/retention", h.Analytics.Retention)
			analytics.GET("/streak", h.Analytics.Streak)
			analytics.GET("/trend", h.Analytics.Trend)
			analytics.GET("/summary", h.Analytics.Summary)
			analytics.GET("/comparison", h.Analytics.Comparison)
			analytics.GET("/export", h.Analytics.Export)
		}

		v1.GET("/search/:entity", h.Search.Index)

		payments := v1.Group("/payments/:payment_id")
		{
			payments.POST("/confirm", h.Payment.Confirm)
			payments.POST("/fail", h.Payment.Fail)
			payments.POST("/retry", h.Payment.Retry)
		}

		v1.GET("/jobs/status", h.Job.Status)
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services, cfg *config.Config) {
	// Warm the cache on startup, then recompute before entries expire
	worker.ScheduleEveryImmediate("refresh_analytics", cfg.MetricsCacheTTL, svcs.Analytics.RefreshCache)

	worker.ScheduleEvery("clean_analytics_cache", time.Hour, svcs.Analytics.CleanExpiredCache)

	logger.Info("Scheduled recurring jobs")
}
