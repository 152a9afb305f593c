package metrics

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sjperalta/clientpulse-api/internal/models"
	"github.com/sjperalta/clientpulse-api/internal/period"
)

// UnknownClient labels payments whose client cannot be resolved
const UnknownClient = "Unknown client"

// WeeklyMetrics aggregates data over window, or over the current week when window is nil
func (e *Engine) WeeklyMetrics(data models.Dataset, window *period.Window) models.WeeklyMetrics {
	w := period.CurrentWeek(e.clock())
	if window != nil {
		w = normalize(*window)
	}
	return models.WeeklyMetrics{PeriodMetrics: e.Aggregate(data, w)}
}

// MonthlyMetrics aggregates data over window (default: current month) and
// breaks it down into 7-day sub-windows starting on the window's first day.
func (e *Engine) MonthlyMetrics(data models.Dataset, window *period.Window) models.MonthlyMetrics {
	w := period.CurrentMonth(e.clock())
	if window != nil {
		w = normalize(*window)
	}

	weeks := period.Weeks(w)
	breakdown := make([]models.WeeklyMetrics, 0, len(weeks))
	for _, wk := range weeks {
		breakdown = append(breakdown, models.WeeklyMetrics{PeriodMetrics: e.Aggregate(data, wk)})
	}

	return models.MonthlyMetrics{
		PeriodMetrics:   e.Aggregate(data, w),
		WeeklyBreakdown: breakdown,
	}
}

// Aggregate counts every record of data that falls within w. Clients and
// visits are bucketed by creation time, payments by payment date, and only
// confirmed payments count.
func (e *Engine) Aggregate(data models.Dataset, w period.Window) models.PeriodMetrics {
	m := models.PeriodMetrics{
		Start:          w.Start,
		End:            w.End,
		ClientNames:    []string{},
		VisitLocations: []string{},
		GoalTitles:     []string{},
		TotalRevenue:   decimal.Zero,
		AveragePayment: decimal.Zero,
		PaymentDetails: []models.PaymentDetail{},
	}

	for _, c := range data.Clients {
		if w.Contains(c.CreatedAt) {
			m.NewClients++
			m.ClientNames = append(m.ClientNames, c.Name)
		}
	}

	for _, v := range data.Visits {
		if !w.Contains(v.CreatedAt) {
			continue
		}
		m.BusinessVisits++
		if v.Location != "" {
			m.VisitLocations = append(m.VisitLocations, v.Location)
		}
	}

	for _, g := range e.goals.CompletedGoals(data, w) {
		m.GoalsCompleted++
		m.GoalTitles = append(m.GoalTitles, g.Title)
	}

	names := clientNames(data.Clients)
	for _, p := range data.Payments {
		if !p.IsConfirmed() || !w.Contains(p.PaymentDate) {
			continue
		}
		m.PaymentsReceived++
		m.TotalRevenue = m.TotalRevenue.Add(p.Amount)
		m.PaymentDetails = append(m.PaymentDetails, models.PaymentDetail{
			ClientName: paymentLabel(p, names),
			Amount:     p.Amount,
			Date:       p.PaymentDate,
		})
	}

	if m.PaymentsReceived > 0 {
		m.AveragePayment = m.TotalRevenue.Div(decimal.NewFromInt(int64(m.PaymentsReceived))).Round(2)
	}

	return m
}

func normalize(w period.Window) period.Window {
	if !w.Valid() {
		w.End = w.Start
	}
	return w
}

func clientNames(clients []models.Client) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.Name
	}
	return names
}

func paymentLabel(p models.Payment, names map[uuid.UUID]string) string {
	if p.Client != nil && p.Client.Name != "" {
		return p.Client.Name
	}
	if p.ClientID != nil {
		if name, ok := names[*p.ClientID]; ok && name != "" {
			return name
		}
	}
	return UnknownClient
}
