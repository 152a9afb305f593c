package metrics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sjperalta/clientpulse-api/internal/models"
	"github.com/sjperalta/clientpulse-api/internal/period"
)

// Trend returns exactly days entries (DefaultTrendDays when days <= 0), one per
// calendar day ending today, oldest first. Days without records are zero.
func (e *Engine) Trend(data models.Dataset, days int) []models.TrendData {
	if days <= 0 {
		days = DefaultTrendDays
	}
	now := e.clock()
	loc := now.Location()

	series := make([]models.TrendData, 0, days)
	index := make(map[string]int, days)
	for i, day := range period.LastDays(now, days) {
		series = append(series, models.TrendData{Date: day, Revenue: decimal.Zero})
		index[dayKey(day)] = i
	}

	bucket := func(t time.Time) (int, bool) {
		i, ok := index[dayKey(t.In(loc))]
		return i, ok
	}

	for _, c := range data.Clients {
		if i, ok := bucket(c.CreatedAt); ok {
			series[i].Clients++
		}
	}
	for _, v := range data.Visits {
		if i, ok := bucket(v.CreatedAt); ok {
			series[i].Visits++
		}
	}
	for _, p := range data.Payments {
		if !p.IsConfirmed() {
			continue
		}
		if i, ok := bucket(p.PaymentDate); ok {
			series[i].Payments++
			series[i].Revenue = series[i].Revenue.Add(p.Amount)
		}
	}

	return series
}
