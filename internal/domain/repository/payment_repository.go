package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/billpay/payment-service/internal/domain/model"
)

// PaymentFilter narrows list and count queries.
type PaymentFilter struct {
	Status *model.PaymentStatus
}

// PaymentRepository defines the persistence contract for payments. Payments
// are append-only audit records: there is no delete.
type PaymentRepository interface {
	// Save persists a new payment.
	Save(ctx context.Context, payment *model.Payment) error

	// FindByID returns the payment or (nil, nil) when it does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error)

	// Update persists changes to an existing payment.
	Update(ctx context.Context, payment *model.Payment) error

	// FindAll returns a page of payments matching the filter, newest first,
	// along with the total number of matches.
	FindAll(ctx context.Context, filter PaymentFilter, limit, offset int) ([]*model.Payment, int64, error)

	// Count returns the number of payments matching the filter.
	Count(ctx context.Context, filter PaymentFilter) (int64, error)
}
