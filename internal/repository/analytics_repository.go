package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sjperalta/clientpulse-api/internal/models"
)

// ErrCacheMiss is returned when a key is absent or expired
var ErrCacheMiss = errors.New("cache miss")

// AnalyticsCacheRepository stores serialized metrics under a key with an expiry
type AnalyticsCacheRepository interface {
	GetCache(ctx context.Context, key string) ([]byte, error)
	SetCache(ctx context.Context, key string, data []byte, ttl time.Duration) error
	InvalidateCache(ctx context.Context, key string) error
	InvalidateAll(ctx context.Context) error
	// CleanExpiredCache removes expired entries and reports how many were dropped
	CleanExpiredCache(ctx context.Context) (int64, error)
}

type analyticsCacheRepository struct {
	db *gorm.DB
}

// NewAnalyticsCacheRepository creates the database-backed cache tier
func NewAnalyticsCacheRepository(db *gorm.DB) AnalyticsCacheRepository {
	return &analyticsCacheRepository{db: db}
}

func (r *analyticsCacheRepository) GetCache(ctx context.Context, key string) ([]byte, error) {
	var cache models.AnalyticsCache
	err := r.db.WithContext(ctx).
		Where("cache_key = ?", key).
		Where("expires_at > ?", time.Now()).
		First(&cache).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return cache.Data, nil
}

func (r *analyticsCacheRepository) SetCache(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	now := time.Now()
	cache := models.AnalyticsCache{
		CacheKey:  key,
		Data:      json.RawMessage(data),
		ExpiresAt: now.Add(ttl),
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"data", "expires_at", "updated_at"}),
	}).Create(&cache).Error
}

func (r *analyticsCacheRepository) InvalidateCache(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("cache_key = ?", key).Delete(&models.AnalyticsCache{}).Error
}

func (r *analyticsCacheRepository) InvalidateAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.AnalyticsCache{}).Error
}

func (r *analyticsCacheRepository) CleanExpiredCache(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at <= ?", time.Now()).Delete(&models.AnalyticsCache{})
	return res.RowsAffected, res.Error
}
