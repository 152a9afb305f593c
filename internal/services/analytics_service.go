package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/bsm/redislock"

	"github.com/sjperalta/clientpulse-api/internal/metrics"
	"github.com/sjperalta/clientpulse-api/internal/models"
	"github.com/sjperalta/clientpulse-api/internal/period"
	"github.com/sjperalta/clientpulse-api/internal/repository"
	"github.com/sjperalta/clientpulse-api/pkg/logger"
)

// refreshLockKey serializes cache refreshes across instances sharing a Redis
const refreshLockKey = "lock:clientpulse:analytics-refresh"

// AnalyticsConfig tunes caching and presentation of computed metrics
type AnalyticsConfig struct {
	CacheTTL       time.Duration
	TrendDays      int
	CurrencySymbol string
}

// AnalyticsReport bundles the metrics exported as a file
type AnalyticsReport struct {
	GeneratedAt    time.Time                     `json:"generated_at"`
	CurrencySymbol string                        `json:"currency_symbol"`
	Weekly         models.WeeklyMetrics          `json:"weekly"`
	Monthly        models.MonthlyMetrics         `json:"monthly"`
	Retention      models.ClientRetentionMetrics `json:"retention"`
	Trend          []models.TrendData            `json:"trend"`
}

type AnalyticsService struct {
	clientRepo  repository.ClientRepository
	paymentRepo repository.PaymentRepository
	visitRepo   repository.VisitRepository
	goalRepo    repository.GoalRepository
	cache       repository.AnalyticsCacheRepository
	engine      *metrics.Engine
	locker      *redislock.Client
	cfg         AnalyticsConfig
	log         *slog.Logger

	// generation advances on every invalidation. Values computed from a
	// snapshot loaded under an older generation are not stored.
	mu         sync.RWMutex
	generation uint64
}

func NewAnalyticsService(
	clientRepo repository.ClientRepository,
	paymentRepo repository.PaymentRepository,
	visitRepo repository.VisitRepository,
	goalRepo repository.GoalRepository,
	cache repository.AnalyticsCacheRepository,
	engine *metrics.Engine,
	cfg AnalyticsConfig,
) *AnalyticsService {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = metrics.DefaultCacheTTL
	}
	if cfg.TrendDays <= 0 {
		cfg.TrendDays = metrics.DefaultTrendDays
	}
	if cfg.CurrencySymbol == "" {
		cfg.CurrencySymbol = metrics.DefaultCurrencySymbol
	}
	return &AnalyticsService{
		clientRepo:  clientRepo,
		paymentRepo: paymentRepo,
		visitRepo:   visitRepo,
		goalRepo:    goalRepo,
		cache:       cache,
		engine:      engine,
		cfg:         cfg,
		log:         logger.With("analytics"),
	}
}

// WithLocker makes RefreshCache take a Redis lock so only one instance refreshes at a time
func (s *AnalyticsService) WithLocker(locker *redislock.Client) *AnalyticsService {
	s.locker = locker
	return s
}

// CurrencySymbol returns the symbol used when formatting amounts
func (s *AnalyticsService) CurrencySymbol() string {
	return s.cfg.CurrencySymbol
}

// LoadDataset fetches the record snapshot the metrics engine works on
func (s *AnalyticsService) LoadDataset(ctx context.Context) (models.Dataset, error) {
	var data models.Dataset
	var err error

	if data.Clients, err = s.clientRepo.FindAll(ctx); err != nil {
		return data, fmt.Errorf("failed to load clients: %w", err)
	}
	if data.Payments, err = s.paymentRepo.FindAll(ctx); err != nil {
		return data, fmt.Errorf("failed to load payments: %w", err)
	}
	if data.Visits, err = s.visitRepo.FindAll(ctx); err != nil {
		return data, fmt.Errorf("failed to load visits: %w", err)
	}
	if data.Goals, err = s.goalRepo.FindAll(ctx); err != nil {
		return data, fmt.Errorf("failed to load goals: %w", err)
	}
	return data, nil
}

// cached returns the value stored under key, computing and storing it on a miss.
// Cache failures are logged and never fail the request.
func cached[T any](ctx context.Context, s *AnalyticsService, key string, compute func(models.Dataset) T) (T, error) {
	var out T

	data, err := s.cache.GetCache(ctx, key)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, &out); err == nil {
			return out, nil
		}
		s.log.Warn("discarding unreadable cache entry", slog.String("key", key))
	case !errors.Is(err, repository.ErrCacheMiss):
		s.log.Warn("cache read failed", slog.String("key", key), slog.Any("error", err))
	}

	gen := s.currentGeneration()
	dataset, err := s.LoadDataset(ctx)
	if err != nil {
		return out, err
	}
	out = compute(dataset)
	s.store(ctx, gen, key, out)
	return out, nil
}

func (s *AnalyticsService) currentGeneration() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// store writes v under key unless the cache was invalidated after gen was read
func (s *AnalyticsService) store(ctx context.Context, gen uint64, key string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		s.log.Warn("cannot encode metrics for cache", slog.String("key", key), slog.Any("error", err))
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.generation != gen {
		s.log.Debug("skipping stale cache write", slog.String("key", key))
		return
	}
	if err := s.cache.SetCache(ctx, key, payload, s.cfg.CacheTTL); err != nil {
		s.log.Warn("cache write failed", slog.String("key", key), slog.Any("error", err))
	}
}

func windowKey(prefix string, w period.Window) string {
	return fmt.Sprintf("%s:%d:%d", prefix, w.Start.Unix(), w.End.Unix())
}

func (s *AnalyticsService) resolve(window *period.Window, current func(time.Time) period.Window) (period.Window, error) {
	if window == nil {
		return current(s.engine.Now()), nil
	}
	if !window.Valid() {
		return period.Window{}, ErrInvalidWindow
	}
	return *window, nil
}

// Weekly returns metrics for window, or the current week when window is nil
func (s *AnalyticsService) Weekly(ctx context.Context, window *period.Window) (models.WeeklyMetrics, error) {
	w, err := s.resolve(window, period.CurrentWeek)
	if err != nil {
		return models.WeeklyMetrics{}, err
	}
	return cached(ctx, s, windowKey("weekly", w), func(d models.Dataset) models.WeeklyMetrics {
		return s.engine.WeeklyMetrics(d, &w)
	})
}

// Monthly returns metrics and the weekly breakdown for window, or the current month when window is nil
func (s *AnalyticsService) Monthly(ctx context.Context, window *period.Window) (models.MonthlyMetrics, error) {
	w, err := s.resolve(window, period.CurrentMonth)
	if err != nil {
		return models.MonthlyMetrics{}, err
	}
	return cached(ctx, s, windowKey("monthly", w), func(d models.Dataset) models.MonthlyMetrics {
		return s.engine.MonthlyMetrics(d, &w)
	})
}

// Retention returns the client retention analysis
func (s *AnalyticsService) Retention(ctx context.Context) (models.ClientRetentionMetrics, error) {
	return cached(ctx, s, "retention", s.engine.Retention)
}

// Streak returns activity streak data as of today
func (s *AnalyticsService) Streak(ctx context.Context) (models.GoalStreakData, error) {
	key := "streak:" + s.engine.Now().Format(time.DateOnly)
	return cached(ctx, s, key, s.engine.Streak)
}

// Trend returns one entry per day for the last days days; days <= 0 uses the configured default
func (s *AnalyticsService) Trend(ctx context.Context, days int) ([]models.TrendData, error) {
	if days <= 0 {
		days = s.cfg.TrendDays
	}
	key := fmt.Sprintf("trend:%d:%s", days, s.engine.Now().Format(time.DateOnly))
	return cached(ctx, s, key, func(d models.Dataset) []models.TrendData {
		return s.engine.Trend(d, days)
	})
}

// Comparison returns the current period against the previous one
func (s *AnalyticsService) Comparison(ctx context.Context, kind period.Kind) (models.PeriodComparison, error) {
	key := windowKey("comparison:"+string(kind), period.Current(kind, s.engine.Now()))
	return cached(ctx, s, key, func(d models.Dataset) models.PeriodComparison {
		return s.engine.Compare(d, kind)
	})
}

// Summary renders the current week or month as shareable text
func (s *AnalyticsService) Summary(ctx context.Context, kind period.Kind) (string, error) {
	var m models.PeriodMetrics
	if kind == period.Month {
		monthly, err := s.Monthly(ctx, nil)
		if err != nil {
			return "", err
		}
		m = monthly.PeriodMetrics
	} else {
		weekly, err := s.Weekly(ctx, nil)
		if err != nil {
			return "", err
		}
		m = weekly.PeriodMetrics
	}
	return metrics.FormatSummary(m, s.cfg.CurrencySymbol), nil
}

// Report gathers current week, month, retention and trend for export
func (s *AnalyticsService) Report(ctx context.Context) (*AnalyticsReport, error) {
	weekly, err := s.Weekly(ctx, nil)
	if err != nil {
		return nil, err
	}
	monthly, err := s.Monthly(ctx, nil)
	if err != nil {
		return nil, err
	}
	retention, err := s.Retention(ctx)
	if err != nil {
		return nil, err
	}
	trend, err := s.Trend(ctx, 0)
	if err != nil {
		return nil, err
	}
	return &AnalyticsReport{
		GeneratedAt:    s.engine.Now(),
		CurrencySymbol: s.cfg.CurrencySymbol,
		Weekly:         weekly,
		Monthly:        monthly,
		Retention:      retention,
		Trend:          trend,
	}, nil
}

// RefreshCache recomputes the current-period metrics from one snapshot and
// stores them. When a locker is set and another instance holds the lock the
// refresh is skipped.
func (s *AnalyticsService) RefreshCache(ctx context.Context) error {
	if s.locker != nil {
		lock, err := s.locker.Obtain(ctx, refreshLockKey, s.cfg.CacheTTL, nil)
		switch {
		case errors.Is(err, redislock.ErrNotObtained):
			s.log.Debug("refresh already running elsewhere")
			return nil
		case err != nil:
			s.log.Warn("error obtaining refresh lock; proceeding without lock", slog.Any("error", err))
		default:
			defer func() {
				if err := lock.Release(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
					s.log.Warn("failed to release refresh lock", slog.Any("error", err))
				}
			}()
		}
	}

	gen := s.currentGeneration()
	dataset, err := s.LoadDataset(ctx)
	if err != nil {
		return err
	}

	now := s.engine.Now()
	week := period.CurrentWeek(now)
	month := period.CurrentMonth(now)
	today := now.Format(time.DateOnly)

	s.store(ctx, gen, windowKey("weekly", week), s.engine.WeeklyMetrics(dataset, &week))
	s.store(ctx, gen, windowKey("monthly", month), s.engine.MonthlyMetrics(dataset, &month))
	s.store(ctx, gen, "retention", s.engine.Retention(dataset))
	s.store(ctx, gen, "streak:"+today, s.engine.Streak(dataset))
	s.store(ctx, gen, fmt.Sprintf("trend:%d:%s", s.cfg.TrendDays, today), s.engine.Trend(dataset, s.cfg.TrendDays))
	for _, kind := range []period.Kind{period.Week, period.Month} {
		s.store(ctx, gen, windowKey("comparison:"+string(kind), period.Current(kind, now)), s.engine.Compare(dataset, kind))
	}

	s.log.Info("analytics cache refreshed",
		slog.Int("clients", len(dataset.Clients)),
		slog.Int("payments", len(dataset.Payments)),
		slog.Int("visits", len(dataset.Visits)),
	)
	return nil
}

// InvalidateCache drops every cached metric so the next read recomputes
func (s *AnalyticsService) InvalidateCache(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	if err := s.cache.InvalidateAll(ctx); err != nil {
		return fmt.Errorf("failed to invalidate analytics cache: %w", err)
	}
	return nil
}

// CleanExpiredCache removes expired cache entries
func (s *AnalyticsService) CleanExpiredCache(ctx context.Context) error {
	removed, err := s.cache.CleanExpiredCache(ctx)
	if err != nil {
		return fmt.Errorf("failed to clean analytics cache: %w", err)
	}
	if removed > 0 {
		s.log.Info("removed expired cache entries", slog.Int64("count", removed))
	}
	return nil
}
