package metrics

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sjperalta/clientpulse-api/internal/models"
)

// Wednesday; the surrounding week runs Sun Oct 11 through Sat Oct 17.
var testNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func day(month time.Month, d, hour int) time.Time {
	return time.Date(2026, month, d, hour, 0, 0, 0, time.UTC)
}

func newClient(name string, created time.Time) models.Client {
	return models.Client{ID: uuid.New(), Name: name, CreatedAt: created, Status: models.ClientStatusActive}
}

func newPayment(client *models.Client, amount int64, status string, paid time.Time) models.Payment {
	p := models.Payment{
		ID:          uuid.New(),
		Amount:      decimal.NewFromInt(amount),
		Status:      status,
		PaymentDate: paid,
	}
	if client != nil {
		id := client.ID
		p.ClientID = &id
	}
	return p
}

func newVisit(client *models.Client, location string, at time.Time) models.BusinessVisit {
	v := models.BusinessVisit{ID: uuid.New(), Location: location, CreatedAt: at}
	if client != nil {
		id := client.ID
		v.ClientID = &id
	}
	return v
}
