package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sjperalta/clientpulse-api/internal/jobs"
	"github.com/sjperalta/clientpulse-api/internal/models"
	"github.com/sjperalta/clientpulse-api/internal/repository"
	"github.com/sjperalta/clientpulse-api/internal/statemachine"
	"github.com/sjperalta/clientpulse-api/pkg/logger"
)

type PaymentService struct {
	paymentRepo  repository.PaymentRepository
	analyticsSvc *AnalyticsService
	worker       *jobs.Worker
	log          *slog.Logger
}

func NewPaymentService(paymentRepo repository.PaymentRepository, analyticsSvc *AnalyticsService, worker *jobs.Worker) *PaymentService {
	return &PaymentService{
		paymentRepo:  paymentRepo,
		analyticsSvc: analyticsSvc,
		worker:       worker,
		log:          logger.With("payments"),
	}
}

// Confirm marks a pending payment as confirmed so it counts toward revenue.
// paidAt overrides the recorded payment date when set.
func (s *PaymentService) Confirm(ctx context.Context, id uuid.UUID, paidAt *time.Time) (*models.Payment, error) {
	return s.transition(ctx, id, statemachine.EventConfirm, func(p *models.Payment) {
		if paidAt != nil {
			p.PaymentDate = *paidAt
		}
	})
}

// Fail marks a pending payment as failed
func (s *PaymentService) Fail(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	return s.transition(ctx, id, statemachine.EventFail, nil)
}

// Retry moves a failed payment back to pending
func (s *PaymentService) Retry(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	return s.transition(ctx, id, statemachine.EventRetry, nil)
}

func (s *PaymentService) transition(ctx context.Context, id uuid.UUID, event string, prepare func(*models.Payment)) (*models.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	from := payment.Status
	if prepare != nil {
		prepare(payment)
	}
	if err := statemachine.NewPaymentFSM(payment).Fire(ctx, event); err != nil {
		if errors.Is(err, statemachine.ErrInvalidTransition) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
		}
		return nil, err
	}

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}

	s.log.Info("payment transitioned",
		slog.String("payment_id", payment.ID.String()),
		slog.String("from", from),
		slog.String("to", payment.Status),
	)

	// Revenue figures changed; drop stale metrics and warm them in the background.
	if s.analyticsSvc != nil {
		if err := s.analyticsSvc.InvalidateCache(ctx); err != nil {
			s.log.Warn("failed to invalidate analytics cache", slog.Any("error", err))
		}
		if s.worker != nil {
			s.worker.Enqueue("refresh_analytics", s.analyticsSvc.RefreshCache)
		}
	}

	return payment, nil
}
