package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/billpay/payment-service/internal/domain/errors"
	"github.com/billpay/payment-service/internal/domain/model"
	"github.com/billpay/payment-service/internal/domain/repository"
	"github.com/billpay/payment-service/internal/domain/service"
)

// RetryPaymentUseCase orchestrates a caller-driven retry of a failed payment:
// eligibility check, retry counter increment, re-processing and persistence.
type RetryPaymentUseCase struct {
	paymentRepo repository.PaymentRepository
	processor   service.PaymentProcessor
	maxRetries  int
	logger      *zap.Logger
}

// NewRetryPaymentUseCase creates a new RetryPaymentUseCase
func NewRetryPaymentUseCase(
	paymentRepo repository.PaymentRepository,
	processor service.PaymentProcessor,
	maxRetries int,
	logger *zap.Logger,
) *RetryPaymentUseCase {
	return &RetryPaymentUseCase{
		paymentRepo: paymentRepo,
		processor:   processor,
		maxRetries:  maxRetries,
		logger:      logger,
	}
}

// Execute retries the payment identified by id.
func (uc *RetryPaymentUseCase) Execute(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	uc.logger.Info("retrying payment", zap.String("payment_id", id.String()))

	payment, err := uc.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}
	if payment == nil {
		uc.logger.Warn("payment not found", zap.String("payment_id", id.String()))
		return nil, domainErrors.NewPaymentNotFoundError(id.String())
	}

	// Stored rows do not carry the configured budget.
	payment.MaxRetries = uc.maxRetries

	if !payment.CanRetry() {
		if payment.Status.CanRetry() {
			uc.logger.Warn("cannot retry, max retries exceeded",
				zap.String("payment_id", id.String()),
				zap.Int("retries", payment.Retries))
			return nil, domainErrors.NewMaxRetriesExceededError(id.String(), payment.RetryBudget())
		}
		uc.logger.Warn("cannot retry, invalid status",
			zap.String("payment_id", id.String()),
			zap.String("status", string(payment.Status)))
		return nil, domainErrors.NewCannotRetryError(id.String(), string(payment.Status))
	}

	if err := payment.IncrementRetries(); err != nil {
		return nil, err
	}

	outcome, err := uc.processor.ProcessRetry(ctx, payment)
	if err != nil {
		uc.logger.Error("retry processing faulted",
			zap.String("payment_id", id.String()),
			zap.Error(err))
		outcome = service.Outcome{Success: false, Message: err.Error()}
	}

	if err := payment.ApplyRetryOutcome(outcome.Success); err != nil {
		return nil, err
	}

	if err := uc.paymentRepo.Update(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}

	uc.logger.Info("payment retried",
		zap.String("payment_id", id.String()),
		zap.String("status", string(payment.Status)),
		zap.Int("retries", payment.Retries))

	return payment, nil
}
