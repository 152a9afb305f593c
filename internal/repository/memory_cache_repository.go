package repository

import (
	"context"
	"slices"
	"time"

	"github.com/sjperalta/clientpulse-api/internal/metrics"
	"github.com/sjperalta/clientpulse-api/internal/period"
)

type memoryCacheRepository struct {
	cache *metrics.Cache[[]byte]
}

// NewMemoryCacheRepository creates a process-local cache tier for single
// instance deployments and tests
func NewMemoryCacheRepository(ttl time.Duration, clock period.Clock) AnalyticsCacheRepository {
	return &memoryCacheRepository{cache: metrics.NewCache[[]byte](ttl, clock)}
}

func (r *memoryCacheRepository) GetCache(_ context.Context, key string) ([]byte, error) {
	data, ok := r.cache.Get(key)
	if !ok {
		return nil, ErrCacheMiss
	}
	return slices.Clone(data), nil
}

func (r *memoryCacheRepository) SetCache(_ context.Context, key string, data []byte, ttl time.Duration) error {
	r.cache.SetWithTTL(key, slices.Clone(data), ttl)
	return nil
}

func (r *memoryCacheRepository) InvalidateCache(_ context.Context, key string) error {
	r.cache.Invalidate(key)
	return nil
}

func (r *memoryCacheRepository) InvalidateAll(context.Context) error {
	r.cache.InvalidateAll()
	return nil
}

func (r *memoryCacheRepository) CleanExpiredCache(context.Context) (int64, error) {
	return int64(r.cache.Purge()), nil
}
