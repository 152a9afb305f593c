package metrics

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/sjperalta/clientpulse-api/internal/models"
)

// topReturningLimit is the size of the top returning clients ranking
const topReturningLimit = 5

// Retention computes per-client visit counts, the share of clients with at
// least two visits and the mean gap in days between consecutive visits.
func (e *Engine) Retention(data models.Dataset) models.ClientRetentionMetrics {
	out := models.ClientRetentionMetrics{
		TotalClients:        len(data.Clients),
		ClientVisitCounts:   make([]models.ClientVisitCount, 0, len(data.Clients)),
		TopReturningClients: []models.ReturningClient{},
	}

	visits := make(map[uuid.UUID][]time.Time)
	for _, v := range data.Visits {
		if v.ClientID == nil {
			continue
		}
		visits[*v.ClientID] = append(visits[*v.ClientID], v.CreatedAt)
	}

	var totalDays float64
	var pairs int
	for _, c := range data.Clients {
		times := slices.Clone(visits[c.ID])
		slices.SortFunc(times, func(a, b time.Time) int { return a.Compare(b) })

		last := c.CreatedAt
		if len(times) > 0 {
			last = times[len(times)-1]
		}
		out.ClientVisitCounts = append(out.ClientVisitCounts, models.ClientVisitCount{
			ClientID:   c.ID.String(),
			Name:       c.Name,
			VisitCount: len(times),
			LastVisit:  last,
		})

		if len(times) >= 2 {
			out.ClientsWithMultipleVisits++
		}
		for i := 1; i < len(times); i++ {
			totalDays += times[i].Sub(times[i-1]).Hours() / 24
			pairs++
		}
	}

	if out.TotalClients > 0 {
		out.RetentionRate = float64(out.ClientsWithMultipleVisits) / float64(out.TotalClients) * 100
	}
	if pairs > 0 {
		out.AverageDaysBetweenVisits = totalDays / float64(pairs)
	}

	returning := make([]models.ClientVisitCount, 0, out.ClientsWithMultipleVisits)
	for _, cv := range out.ClientVisitCounts {
		if cv.VisitCount >= 2 {
			returning = append(returning, cv)
		}
	}
	slices.SortStableFunc(returning, func(a, b models.ClientVisitCount) int {
		return b.VisitCount - a.VisitCount
	})
	for i, cv := range returning {
		if i == topReturningLimit {
			break
		}
		out.TopReturningClients = append(out.TopReturningClients, models.ReturningClient{
			Name:  cv.Name,
			Count: cv.VisitCount,
		})
	}

	return out
}
