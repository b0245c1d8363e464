package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	domainErrors "github.com/billpay/payment-service/internal/domain/errors"
	"github.com/billpay/payment-service/internal/domain/model"
	"github.com/billpay/payment-service/internal/domain/repository"
	"github.com/billpay/payment-service/internal/domain/service"
)

// CreatePaymentInput carries the payment intent plus its idempotency key.
type CreatePaymentInput struct {
	Reference      string
	Amount         decimal.Decimal
	Currency       string
	IdempotencyKey string
}

// CreatePaymentUseCase orchestrates payment creation: idempotent replay,
// lock acquisition, entity construction, a single processing attempt and
// persistence. At most one payment is ever created per idempotency key.
type CreatePaymentUseCase struct {
	paymentRepo repository.PaymentRepository
	processor   service.PaymentProcessor
	idempotency service.IdempotencyService
	resultTTL   time.Duration
	maxRetries  int
	logger      *zap.Logger
}

// NewCreatePaymentUseCase creates a new CreatePaymentUseCase
func NewCreatePaymentUseCase(
	paymentRepo repository.PaymentRepository,
	processor service.PaymentProcessor,
	idempotency service.IdempotencyService,
	resultTTL time.Duration,
	maxRetries int,
	logger *zap.Logger,
) *CreatePaymentUseCase {
	return &CreatePaymentUseCase{
		paymentRepo: paymentRepo,
		processor:   processor,
		idempotency: idempotency,
		resultTTL:   resultTTL,
		maxRetries:  maxRetries,
		logger:      logger,
	}
}

// Execute runs the create flow. The boolean result is true when a new payment
// was created and false when an existing one was replayed for the key.
func (uc *CreatePaymentUseCase) Execute(ctx context.Context, input CreatePaymentInput) (*model.Payment, bool, error) {
	uc.logger.Info("creating payment",
		zap.String("reference", input.Reference),
		zap.String("amount", input.Amount.String()),
		zap.String("currency", input.Currency),
		zap.String("idempotency_key", input.IdempotencyKey),
	)

	// Replay a previously completed creation for this key, if any.
	if existing, err := uc.findExisting(ctx, input.IdempotencyKey); err != nil {
		return nil, false, err
	} else if existing != nil {
		uc.logger.Info("idempotency key found, returning existing payment",
			zap.String("payment_id", existing.ID.String()))
		return existing, false, nil
	}

	acquired, err := uc.idempotency.AcquireLock(ctx, input.IdempotencyKey)
	if err != nil {
		return nil, false, fmt.Errorf("failed to acquire idempotency lock: %w", err)
	}
	if !acquired {
		// The holder may have finished between our lookup and the lock
		// attempt; replay its result if it is already recorded.
		if existing, err := uc.findExisting(ctx, input.IdempotencyKey); err != nil {
			return nil, false, err
		} else if existing != nil {
			return existing, false, nil
		}
		uc.logger.Warn("concurrent request in flight for idempotency key",
			zap.String("idempotency_key", input.IdempotencyKey))
		return nil, false, domainErrors.NewConflictInProgressError(input.IdempotencyKey)
	}
	defer func() {
		if err := uc.idempotency.ReleaseLock(ctx, input.IdempotencyKey); err != nil {
			uc.logger.Warn("failed to release idempotency lock",
				zap.String("idempotency_key", input.IdempotencyKey),
				zap.Error(err))
		}
	}()

	// Re-check under the lock: an earlier holder may have recorded its
	// result after our first lookup and before we acquired the lock.
	if existing, err := uc.findExisting(ctx, input.IdempotencyKey); err != nil {
		return nil, false, err
	} else if existing != nil {
		return existing, false, nil
	}

	payment, err := model.NewPayment(input.Reference, input.Amount, input.Currency, uc.maxRetries)
	if err != nil {
		return nil, false, err
	}

	if err := uc.paymentRepo.Save(ctx, payment); err != nil {
		return nil, false, fmt.Errorf("failed to save payment: %w", err)
	}

	outcome, err := uc.processor.Process(ctx, payment)
	if err != nil {
		// A faulted or timed-out processor call counts as a failed attempt;
		// the payment must never stay PENDING past this call.
		uc.logger.Error("payment processing faulted",
			zap.String("payment_id", payment.ID.String()),
			zap.Error(err))
		outcome = service.Outcome{Success: false, Message: err.Error()}
	}

	if outcome.Success {
		err = payment.MarkSuccess()
	} else {
		err = payment.MarkFailed()
	}
	if err != nil {
		return nil, false, err
	}

	if err := uc.paymentRepo.Update(ctx, payment); err != nil {
		return nil, false, fmt.Errorf("failed to update payment: %w", err)
	}

	if err := uc.idempotency.SaveResult(ctx, input.IdempotencyKey, payment.ID.String(), uc.resultTTL); err != nil {
		// The payment exists and is consistent; a lost idempotency record
		// only weakens dedup until the caller observes the response.
		uc.logger.Error("failed to record idempotency result",
			zap.String("idempotency_key", input.IdempotencyKey),
			zap.String("payment_id", payment.ID.String()),
			zap.Error(err))
	}

	uc.logger.Info("payment created",
		zap.String("payment_id", payment.ID.String()),
		zap.String("status", string(payment.Status)))

	return payment, true, nil
}

func (uc *CreatePaymentUseCase) findExisting(ctx context.Context, key string) (*model.Payment, error) {
	paymentID, ok, err := uc.idempotency.GetResult(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to check idempotency key: %w", err)
	}
	if !ok {
		return nil, nil
	}

	id, err := uuid.Parse(paymentID)
	if err != nil {
		return nil, fmt.Errorf("invalid payment id recorded for idempotency key %q: %w", key, err)
	}

	payment, err := uc.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing payment: %w", err)
	}
	return payment, nil
}
