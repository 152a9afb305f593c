package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// AnalyticsCache represents a cached analytics result
type AnalyticsCache struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	CacheKey  string          `gorm:"not null;uniqueIndex" json:"cache_key"`
	Data      json.RawMessage `gorm:"type:jsonb;not null" json:"data"`
	ExpiresAt time.Time       `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TableName specifies the table name for AnalyticsCache
func (AnalyticsCache) TableName() string {
	return "analytics_cache"
}

// PaymentDetail is one itemized payment in a period summary
type PaymentDetail struct {
	ClientName string          `json:"client_name"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
}

// PeriodMetrics aggregates every record that falls within [Start, End]
type PeriodMetrics struct {
	Start            time.Time       `json:"start"`
	End              time.Time       `json:"end"`
	NewClients       int             `json:"new_clients"`
	ClientNames      []string        `json:"client_names"`
	BusinessVisits   int             `json:"business_visits"`
	VisitLocations   []string        `json:"visit_locations"`
	GoalsCompleted   int             `json:"goals_completed"`
	GoalTitles       []string        `json:"goal_titles"`
	PaymentsReceived int             `json:"payments_received"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	AveragePayment   decimal.Decimal `json:"average_payment"`
	PaymentDetails   []PaymentDetail `json:"payment_details"`
}

// WeeklyMetrics covers one Sunday-to-Saturday week (or a clipped part of one)
type WeeklyMetrics struct {
	PeriodMetrics
}

// MonthlyMetrics covers a calendar month plus its week-by-week breakdown
type MonthlyMetrics struct {
	PeriodMetrics
	WeeklyBreakdown []WeeklyMetrics `json:"weekly_breakdown"`
}

// PeriodComparison holds the current and previous period with percentage changes
type PeriodComparison struct {
	Period           string        `json:"period"`
	Current          PeriodMetrics `json:"current"`
	Previous         PeriodMetrics `json:"previous"`
	NewClientsChange float64       `json:"new_clients_change"`
	VisitsChange     float64       `json:"visits_change"`
	PaymentsChange   float64       `json:"payments_change"`
	RevenueChange    float64       `json:"revenue_change"`
}

// ClientVisitCount is the visit tally for a single client
type ClientVisitCount struct {
	ClientID   string    `json:"client_id"`
	Name       string    `json:"name"`
	VisitCount int       `json:"visit_count"`
	LastVisit  time.Time `json:"last_visit"`
}

// ReturningClient is an entry of the top returning clients ranking
type ReturningClient struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ClientRetentionMetrics describes how often clients come back
type ClientRetentionMetrics struct {
	TotalClients              int                `json:"total_clients"`
	ClientsWithMultipleVisits int                `json:"clients_with_multiple_visits"`
	RetentionRate             float64            `json:"retention_rate"`
	AverageDaysBetweenVisits  float64            `json:"average_days_between_visits"`
	ClientVisitCounts         []ClientVisitCount `json:"client_visit_counts"`
	TopReturningClients       []ReturningClient  `json:"top_returning_clients"`
}

// GoalStreakData describes consecutive days of activity
type GoalStreakData struct {
	CurrentStreak  int         `json:"current_streak"`
	LongestStreak  int         `json:"longest_streak"`
	LastActiveDate *time.Time  `json:"last_active_date"`
	StreakDates    []time.Time `json:"streak_dates"`
	IsActiveToday  bool        `json:"is_active_today"`
}

// TrendData is one day of the charting series
type TrendData struct {
	Date     time.Time       `json:"date"`
	Clients  int             `json:"clients"`
	Visits   int             `json:"visits"`
	Payments int             `json:"payments"`
	Revenue  decimal.Decimal `json:"revenue"`
}
