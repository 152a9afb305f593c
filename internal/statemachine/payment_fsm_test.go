package statemachine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjperalta/clientpulse-api/internal/models"
)

func TestPaymentFSMTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		event   string
		want    string
		wantErr bool
	}{
		{"confirm pending", models.PaymentStatusPending, EventConfirm, models.PaymentStatusConfirmed, false},
		{"fail pending", models.PaymentStatusPending, EventFail, models.PaymentStatusFailed, false},
		{"retry failed", models.PaymentStatusFailed, EventRetry, models.PaymentStatusPending, false},
		{"confirm confirmed", models.PaymentStatusConfirmed, EventConfirm, models.PaymentStatusConfirmed, true},
		{"fail confirmed", models.PaymentStatusConfirmed, EventFail, models.PaymentStatusConfirmed, true},
		{"retry pending", models.PaymentStatusPending, EventRetry, models.PaymentStatusPending, true},
		{"unknown event", models.PaymentStatusPending, "refund", models.PaymentStatusPending, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &models.Payment{Status: tt.from, PaymentDate: time.Now()}
			err := NewPaymentFSM(p).Fire(context.Background(), tt.event)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, p.Status)
		})
	}
}

func TestPaymentFSMConfirmStampsDate(t *testing.T) {
	p := &models.Payment{Status: models.PaymentStatusPending}
	m := NewPaymentFSM(p)
	stamp := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return stamp }

	require.NoError(t, m.Confirm(context.Background()))
	assert.Equal(t, stamp, p.PaymentDate)
	assert.False(t, m.Can(EventConfirm))
}

func TestPaymentFSMConfirmKeepsExistingDate(t *testing.T) {
	paid := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	p := &models.Payment{Status: models.PaymentStatusPending, PaymentDate: paid}

	require.NoError(t, NewPaymentFSM(p).Confirm(context.Background()))
	assert.Equal(t, paid, p.PaymentDate)
}
