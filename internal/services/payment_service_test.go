package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjperalta/clientpulse-api/internal/models"
	"github.com/sjperalta/clientpulse-api/internal/period"
)

func TestPaymentService_Confirm(t *testing.T) {
	f := newFixture()
	analytics := f.analytics()
	svc := NewPaymentService(f.payments, analytics, nil)
	pending := f.payments.payments[1]

	before, err := analytics.Weekly(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "120", before.TotalRevenue.String())

	payment, err := svc.Confirm(context.Background(), pending.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusConfirmed, payment.Status)
	require.Len(t, f.payments.updated, 1)
	assert.Equal(t, models.PaymentStatusConfirmed, f.payments.updated[0].Status)

	// the repository mock does not persist, but the cache must have been dropped
	_, err = f.cache.GetCache(context.Background(), windowKey("weekly", period.CurrentWeek(testNow)))
	assert.Error(t, err)
}

func TestPaymentService_InvalidTransition(t *testing.T) {
	f := newFixture()
	svc := NewPaymentService(f.payments, nil, nil)
	confirmed := f.payments.payments[0]

	_, err := svc.Fail(context.Background(), confirmed.ID)
	assert.ErrorIs(t, err, ErrInvalidState)
	assert.Empty(t, f.payments.updated)
}

func TestPaymentService_Retry(t *testing.T) {
	f := newFixture()
	svc := NewPaymentService(f.payments, nil, nil)
	failed := f.payments.payments[2]

	payment, err := svc.Retry(context.Background(), failed.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)
	assert.WithinDuration(t, failed.PaymentDate, payment.PaymentDate, time.Second)
}

func TestPaymentService_NotFound(t *testing.T) {
	svc := NewPaymentService(newFixture().payments, nil, nil)

	_, err := svc.Confirm(context.Background(), uuid.New(), nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPaymentService_ConfirmWithDate(t *testing.T) {
	f := newFixture()
	svc := NewPaymentService(f.payments, nil, nil)
	paidAt := time.Date(2026, 10, 12, 15, 0, 0, 0, time.UTC)

	payment, err := svc.Confirm(context.Background(), f.payments.payments[1].ID, &paidAt)
	require.NoError(t, err)
	assert.Equal(t, paidAt, payment.PaymentDate)
}
