package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domainErrors "github.com/billpay/payment-service/internal/domain/errors"
	"github.com/billpay/payment-service/internal/domain/model"
	"github.com/billpay/payment-service/internal/domain/repository"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// ListPaymentsInput carries pagination and the optional status filter.
type ListPaymentsInput struct {
	Status string
	Limit  int
	Offset int
}

// ListPaymentsOutput is a page of payments plus the total match count.
type ListPaymentsOutput struct {
	Payments []*model.Payment
	Total    int64
	Limit    int
	Offset   int
}

// PaymentQueryUseCase serves the read-only surface: get by id and filtered
// listing. Pure delegation to the repository.
type PaymentQueryUseCase struct {
	paymentRepo repository.PaymentRepository
	logger      *zap.Logger
}

// NewPaymentQueryUseCase creates a new PaymentQueryUseCase
func NewPaymentQueryUseCase(paymentRepo repository.PaymentRepository, logger *zap.Logger) *PaymentQueryUseCase {
	return &PaymentQueryUseCase{
		paymentRepo: paymentRepo,
		logger:      logger,
	}
}

// Get returns the payment identified by id.
func (uc *PaymentQueryUseCase) Get(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	payment, err := uc.paymentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}
	if payment == nil {
		return nil, domainErrors.NewPaymentNotFoundError(id.String())
	}
	return payment, nil
}

// List returns a page of payments, optionally filtered by status.
func (uc *PaymentQueryUseCase) List(ctx context.Context, input ListPaymentsInput) (*ListPaymentsOutput, error) {
	filter := repository.PaymentFilter{}
	if input.Status != "" {
		status := model.PaymentStatus(input.Status)
		if !status.IsValid() {
			return nil, domainErrors.NewValidationError("status",
				fmt.Sprintf("invalid status filter %q", input.Status))
		}
		filter.Status = &status
	}

	limit := input.Limit
	if limit < 1 {
		limit = defaultListLimit
	} else if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	payments, total, err := uc.paymentRepo.FindAll(ctx, filter, limit, offset)
	if err != nil {
		uc.logger.Error("failed to list payments", zap.Error(err))
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	return &ListPaymentsOutput{
		Payments: payments,
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}, nil
}
