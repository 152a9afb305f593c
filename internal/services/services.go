package services

import (
	"github.com/sjperalta/clientpulse-api/internal/config"
	"github.com/sjperalta/clientpulse-api/internal/jobs"
	"github.com/sjperalta/clientpulse-api/internal/metrics"
	"github.com/sjperalta/clientpulse-api/internal/repository"
)

// Services holds all service instances
type Services struct {
	Analytics *AnalyticsService
	Search    *SearchService
	Payment   *PaymentService
	Export    *ExportService
	Job       *JobService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, engine *metrics.Engine, cfg *config.Config) *Services {
	analyticsSvc := NewAnalyticsService(
		repos.Client, repos.Payment, repos.Visit, repos.Goal, repos.Cache,
		engine,
		AnalyticsConfig{
			CacheTTL:       cfg.MetricsCacheTTL,
			TrendDays:      cfg.TrendDays,
			CurrencySymbol: cfg.CurrencySymbol,
		},
	)

	return &Services{
		Analytics: analyticsSvc,
		Search:    NewSearchService(repos.Client, repos.Payment, repos.Visit, repos.Goal),
		Payment:   NewPaymentService(repos.Payment, analyticsSvc, worker),
		Export:    NewExportService(analyticsSvc),
		Job:       NewJobService(worker),
	}
}
