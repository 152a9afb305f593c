package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/clientpulse")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, CacheDriverDatabase, cfg.CacheDriver)
	assert.Equal(t, 5*time.Minute, cfg.MetricsCacheTTL)
	assert.Equal(t, 30, cfg.TrendDays)
	assert.Equal(t, StreakSameDay, cfg.StreakMode)
	assert.Equal(t, "$", cfg.CurrencySymbol)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/clientpulse")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("CACHE_DRIVER", "Memory")
	t.Setenv("METRICS_CACHE_TTL_MINUTES", "10")
	t.Setenv("TREND_DAYS", "-4")
	t.Setenv("STREAK_MODE", "Consecutive")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, CacheDriverMemory, cfg.CacheDriver)
	assert.Equal(t, 10*time.Minute, cfg.MetricsCacheTTL)
	assert.Equal(t, 30, cfg.TrendDays)
	assert.Equal(t, StreakConsecutive, cfg.StreakMode)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing database", map[string]string{"DATABASE_URL": ""}},
		{"redis without url", map[string]string{"CACHE_DRIVER": "redis", "REDIS_URL": ""}},
		{"unknown driver", map[string]string{"CACHE_DRIVER": "memcached"}},
		{"unknown streak mode", map[string]string{"STREAK_MODE": "weekly"}},
		{"bad timezone", map[string]string{"TIMEZONE": "Not/AZone"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("DATABASE_URL", "postgres://localhost/clientpulse")
			t.Setenv("TIMEZONE", "UTC")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
