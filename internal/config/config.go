package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Cache drivers accepted by CACHE_DRIVER
const (
	CacheDriverDatabase = "database"
	CacheDriverRedis    = "redis"
	CacheDriverMemory   = "memory"
)

// Streak rules accepted by STREAK_MODE
const (
	StreakSameDay     = "same_day"
	StreakConsecutive = "consecutive"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port        string
	Environment string
	LogLevel    string

	// Database
	DatabaseURL string

	// Metrics cache
	CacheDriver     string
	RedisURL        string
	MetricsCacheTTL time.Duration

	// Analytics
	TrendDays      int
	StreakMode     string
	CurrencySymbol string
	Location       *time.Location

	// Background Workers
	WorkerCount int

	// CORS
	AllowedOrigins []string

	// Sentry
	SentryDSN string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		CacheDriver:     strings.ToLower(getEnv("CACHE_DRIVER", CacheDriverDatabase)),
		RedisURL:        getEnv("REDIS_URL", ""),
		MetricsCacheTTL: time.Duration(getEnvAsInt("METRICS_CACHE_TTL_MINUTES", 5)) * time.Minute,
		TrendDays:       getEnvAsInt("TREND_DAYS", 30),
		StreakMode:      strings.ToLower(getEnv("STREAK_MODE", StreakSameDay)),
		CurrencySymbol:  getEnv("CURRENCY_SYMBOL", "$"),
		WorkerCount:     getEnvAsInt("WORKER_COUNT", 5),
		AllowedOrigins:  getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		SentryDSN:       getEnv("SENTRY_DSN", ""),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	switch cfg.CacheDriver {
	case CacheDriverDatabase, CacheDriverMemory:
	case CacheDriverRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL is required when CACHE_DRIVER is redis")
		}
	default:
		return nil, fmt.Errorf("unknown CACHE_DRIVER %q", cfg.CacheDriver)
	}

	if cfg.StreakMode != StreakSameDay && cfg.StreakMode != StreakConsecutive {
		return nil, fmt.Errorf("unknown STREAK_MODE %q", cfg.StreakMode)
	}

	if cfg.MetricsCacheTTL <= 0 {
		cfg.MetricsCacheTTL = 5 * time.Minute
	}
	if cfg.TrendDays <= 0 {
		cfg.TrendDays = 30
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 1
	}

	loc, err := time.LoadLocation(getEnv("TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Location = loc

	return cfg, nil
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as integer
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsSlice reads an environment variable as comma-separated slice
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
