package statemachine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/looplab/fsm"

	"github.com/sjperalta/clientpulse-api/internal/models"
)

// Payment lifecycle events
const (
	EventConfirm = "confirm"
	EventFail    = "fail"
	EventRetry   = "retry"
)

// ErrInvalidTransition is returned when an event is not allowed from the current status
var ErrInvalidTransition = errors.New("invalid payment transition")

// PaymentFSM wraps a payment with its state machine
type PaymentFSM struct {
	payment *models.Payment
	fsm     *fsm.FSM
	now     func() time.Time
}

// NewPaymentFSM creates a new payment state machine
func NewPaymentFSM(payment *models.Payment) *PaymentFSM {
	pfsm := &PaymentFSM{
		payment: payment,
		now:     time.Now,
	}

	pfsm.fsm = fsm.NewFSM(
		payment.Status,
		fsm.Events{
			// pending → confirmed (counts toward revenue)
			{Name: EventConfirm, Src: []string{models.PaymentStatusPending}, Dst: models.PaymentStatusConfirmed},

			// pending → failed
			{Name: EventFail, Src: []string{models.PaymentStatusPending}, Dst: models.PaymentStatusFailed},

			// failed → pending
			{Name: EventRetry, Src: []string{models.PaymentStatusFailed}, Dst: models.PaymentStatusPending},
		},
		fsm.Callbacks{
			"enter_" + models.PaymentStatusConfirmed: func(_ context.Context, _ *fsm.Event) {
				if pfsm.payment.PaymentDate.IsZero() {
					pfsm.payment.PaymentDate = pfsm.now()
				}
			},
		},
	)

	return pfsm
}

// Confirm transitions payment to confirmed. A payment without a date is stamped with the current time.
func (p *PaymentFSM) Confirm(ctx context.Context) error {
	return p.fire(ctx, EventConfirm, p.payment.MayConfirm())
}

// Fail transitions payment to failed
func (p *PaymentFSM) Fail(ctx context.Context) error {
	return p.fire(ctx, EventFail, p.payment.MayFail())
}

// Retry moves a failed payment back to pending
func (p *PaymentFSM) Retry(ctx context.Context) error {
	return p.fire(ctx, EventRetry, p.payment.MayRetry())
}

// Fire applies a named event
func (p *PaymentFSM) Fire(ctx context.Context, event string) error {
	switch event {
	case EventConfirm:
		return p.Confirm(ctx)
	case EventFail:
		return p.Fail(ctx)
	case EventRetry:
		return p.Retry(ctx)
	default:
		return fmt.Errorf("%w: unknown event %q", ErrInvalidTransition, event)
	}
}

func (p *PaymentFSM) fire(ctx context.Context, event string, allowed bool) error {
	if !allowed {
		return fmt.Errorf("%w: cannot %s payment in state %s", ErrInvalidTransition, event, p.payment.Status)
	}

	if err := p.fsm.Event(ctx, event); err != nil {
		return fmt.Errorf("failed to %s payment: %w", event, err)
	}

	p.payment.Status = p.fsm.Current()
	return nil
}

// Current returns the current state
func (p *PaymentFSM) Current() string {
	return p.fsm.Current()
}

// Can checks if a transition is possible
func (p *PaymentFSM) Can(event string) bool {
	return p.fsm.Can(event)
}
