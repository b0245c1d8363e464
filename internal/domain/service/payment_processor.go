package service

import (
	"context"

	"github.com/billpay/payment-service/internal/domain/model"
)

// Outcome is the settlement decision for one processing attempt.
type Outcome struct {
	Success bool
	Message string
}

// PaymentProcessor decides whether a settlement attempt succeeds. Process
// covers the first attempt for a payment, ProcessRetry every attempt after
// that; implementations may apply different policies to each.
type PaymentProcessor interface {
	Process(ctx context.Context, payment *model.Payment) (Outcome, error)
	ProcessRetry(ctx context.Context, payment *model.Payment) (Outcome, error)
}
