package metrics

import (
	"math"

	"github.com/sjperalta/clientpulse-api/internal/models"
	"github.com/sjperalta/clientpulse-api/internal/period"
)

// PercentageChange computes the change from previous to current, rounded to one
// decimal place. A zero previous value yields 100 when current grew and 0 otherwise.
func PercentageChange(current, previous float64) float64 {
	if previous == 0 {
		if current > 0 {
			return 100.0
		}
		return 0.0
	}
	change := ((current - previous) / previous) * 100
	return math.Round(change*10) / 10
}

// Compare aggregates the current and previous period of the given kind and
// reports the percentage change of each headline figure.
func (e *Engine) Compare(data models.Dataset, kind period.Kind) models.PeriodComparison {
	now := e.clock()
	cur := e.Aggregate(data, period.Current(kind, now))
	prev := e.Aggregate(data, period.Previous(kind, now))

	return models.PeriodComparison{
		Period:           string(kind),
		Current:          cur,
		Previous:         prev,
		NewClientsChange: PercentageChange(float64(cur.NewClients), float64(prev.NewClients)),
		VisitsChange:     PercentageChange(float64(cur.BusinessVisits), float64(prev.BusinessVisits)),
		PaymentsChange:   PercentageChange(float64(cur.PaymentsReceived), float64(prev.PaymentsReceived)),
		RevenueChange:    PercentageChange(cur.TotalRevenue.InexactFloat64(), prev.TotalRevenue.InexactFloat64()),
	}
}
