package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sjperalta/clientpulse-api/internal/metrics"
	"github.com/sjperalta/clientpulse-api/internal/models"
	"github.com/sjperalta/clientpulse-api/internal/repository"
)

// Wednesday; the week runs Oct 11 through Oct 17.
var testNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func testEngine() *metrics.Engine {
	return metrics.NewEngine(metrics.WithClock(func() time.Time { return testNow }))
}

type mockClientRepo struct {
	repository.ClientRepository
	clients []models.Client
	calls   int
}

func (m *mockClientRepo) FindAll(ctx context.Context) ([]models.Client, error) {
	m.calls++
	return m.clients, nil
}

type mockPaymentRepo struct {
	repository.PaymentRepository
	payments []models.Payment
	updated  []models.Payment
	mockErr  error
}

func (m *mockPaymentRepo) FindAll(ctx context.Context) ([]models.Payment, error) {
	return m.payments, m.mockErr
}

func (m *mockPaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	for _, p := range m.payments {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockPaymentRepo) Update(ctx context.Context, payment *models.Payment) error {
	m.updated = append(m.updated, *payment)
	return nil
}

type mockVisitRepo struct {
	repository.VisitRepository
	visits []models.BusinessVisit
}

func (m *mockVisitRepo) FindAll(ctx context.Context) ([]models.BusinessVisit, error) {
	return m.visits, nil
}

type mockGoalRepo struct {
	repository.GoalRepository
	goals []models.Goal
}

func (m *mockGoalRepo) FindAll(ctx context.Context) ([]models.Goal, error) {
	return m.goals, nil
}

type fixture struct {
	clients  *mockClientRepo
	payments *mockPaymentRepo
	visits   *mockVisitRepo
	goals    *mockGoalRepo
	cache    repository.AnalyticsCacheRepository
}

func newFixture() *fixture {
	email := "ana@example.com"
	ana := models.Client{ID: uuid.New(), Name: "Ana Lopez", Email: &email, Plan: models.ClientPlanPro, Status: models.ClientStatusActive, CreatedAt: testNow.Add(-time.Hour)}
	bruno := models.Client{ID: uuid.New(), Name: "Bruno Diaz", Plan: models.ClientPlanStarter, Status: models.ClientStatusPaused, CreatedAt: testNow.AddDate(0, -2, 0)}
	carla := models.Client{ID: uuid.New(), Name: "Carla Ruiz", Plan: models.ClientPlanStarter, Status: models.ClientStatusActive, CreatedAt: testNow.AddDate(0, 0, -10)}

	anaID, brunoID := ana.ID, bruno.ID
	return &fixture{
		clients: &mockClientRepo{clients: []models.Client{ana, bruno, carla}},
		payments: &mockPaymentRepo{payments: []models.Payment{
			{ID: uuid.New(), ClientID: &anaID, Amount: decimal.NewFromInt(120), Status: models.PaymentStatusConfirmed, PaymentDate: testNow.Add(-2 * time.Hour)},
			{ID: uuid.New(), ClientID: &brunoID, Amount: decimal.NewFromInt(80), Status: models.PaymentStatusPending, PaymentDate: testNow.Add(-3 * time.Hour)},
			{ID: uuid.New(), ClientID: &brunoID, Amount: decimal.NewFromInt(45), Status: models.PaymentStatusFailed, PaymentDate: testNow.AddDate(0, 0, -1)},
		}},
		visits: &mockVisitRepo{visits: []models.BusinessVisit{
			{ID: uuid.New(), ClientID: &brunoID, Location: "Barberia Central - Calle 5", CreatedAt: testNow.AddDate(0, 0, -10)},
			{ID: uuid.New(), ClientID: &brunoID, Location: "Barberia Central - Calle 5", CreatedAt: testNow.AddDate(0, 0, -1)},
		}},
		goals: &mockGoalRepo{goals: []models.Goal{{ID: uuid.New(), Title: "Sign two clients", Frequency: models.GoalFrequencyWeekly, Target: 2}}},
		cache: repository.NewMemoryCacheRepository(time.Minute, func() time.Time { return testNow }),
	}
}

func (f *fixture) analytics() *AnalyticsService {
	return NewAnalyticsService(f.clients, f.payments, f.visits, f.goals, f.cache, testEngine(), AnalyticsConfig{TrendDays: 7})
}
