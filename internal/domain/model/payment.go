package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainErrors "github.com/billpay/payment-service/internal/domain/errors"
)

// DefaultMaxRetries is the retry budget applied when none is configured.
const DefaultMaxRetries = 3

// Payment is the core domain entity. All lifecycle rules live here; the
// orchestrators only sequence calls, they never mutate fields directly.
type Payment struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"payment_id"`
	Reference string          `gorm:"size:255;not null" json:"reference"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Currency  string          `gorm:"size:3;not null" json:"currency"`
	Status    PaymentStatus   `gorm:"size:20;not null;index" json:"status"`
	Retries   int             `gorm:"not null;default:0" json:"retries"`
	CreatedAt time.Time       `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time       `gorm:"default:now()" json:"updated_at"`

	// MaxRetries is runtime configuration, not persisted state. Entities
	// loaded from storage carry a zero here and fall back to the default.
	MaxRetries int `gorm:"-" json:"-"`
}

// TableName specifies the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment validates the input and returns a new payment in PENDING status.
// An invalid payment can never be constructed.
func NewPayment(reference string, amount decimal.Decimal, currency string, maxRetries int) (*Payment, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, domainErrors.NewValidationError("reference", "reference cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, domainErrors.NewValidationError("amount", "amount must be greater than zero")
	}
	if len(currency) != 3 {
		return nil, domainErrors.NewValidationError("currency", "currency must be exactly 3 characters")
	}
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}

	now := time.Now().UTC()
	return &Payment{
		ID:         uuid.New(),
		Reference:  reference,
		Amount:     amount,
		Currency:   strings.ToUpper(currency),
		Status:     StatusPending,
		Retries:    0,
		CreatedAt:  now,
		UpdatedAt:  now,
		MaxRetries: maxRetries,
	}, nil
}

// RetryBudget returns the effective retry limit for this payment.
func (p *Payment) RetryBudget() int {
	if p.MaxRetries > 0 {
		return p.MaxRetries
	}
	return DefaultMaxRetries
}

// CanRetry reports whether the payment is FAILED with retries remaining.
func (p *Payment) CanRetry() bool {
	return p.Status.CanRetry() && p.Retries < p.RetryBudget()
}

// MarkSuccess transitions the payment to SUCCESS.
func (p *Payment) MarkSuccess() error {
	if p.Status.IsFinal() {
		return domainErrors.NewInvalidTransitionError(p.ID.String(), string(p.Status), string(StatusSuccess))
	}
	p.Status = StatusSuccess
	p.touch()
	return nil
}

// MarkFailed transitions the payment to FAILED.
func (p *Payment) MarkFailed() error {
	if p.Status.IsFinal() {
		return domainErrors.NewInvalidTransitionError(p.ID.String(), string(p.Status), string(StatusFailed))
	}
	p.Status = StatusFailed
	p.touch()
	return nil
}

// MarkExhausted transitions the payment to EXHAUSTED. Only legal once the
// payment is FAILED and the whole retry budget has been spent.
func (p *Payment) MarkExhausted() error {
	if p.Status != StatusFailed || p.Retries < p.RetryBudget() {
		return domainErrors.NewInvalidTransitionError(p.ID.String(), string(p.Status), string(StatusExhausted))
	}
	p.Status = StatusExhausted
	p.touch()
	return nil
}

// IncrementRetries consumes one retry attempt. Callers check eligibility
// first; the guards here protect the invariants directly.
func (p *Payment) IncrementRetries() error {
	if !p.Status.CanRetry() {
		return domainErrors.NewCannotRetryError(p.ID.String(), string(p.Status))
	}
	if p.Retries >= p.RetryBudget() {
		return domainErrors.NewMaxRetriesExceededError(p.ID.String(), p.RetryBudget())
	}
	p.Retries++
	p.touch()
	return nil
}

// ApplyRetryOutcome settles the state after a retry attempt: SUCCESS on a
// successful attempt, EXHAUSTED when the last budgeted attempt failed,
// FAILED otherwise.
func (p *Payment) ApplyRetryOutcome(success bool) error {
	if success {
		return p.MarkSuccess()
	}
	if p.Retries >= p.RetryBudget() {
		return p.MarkExhausted()
	}
	return p.MarkFailed()
}

func (p *Payment) touch() {
	p.UpdatedAt = time.Now().UTC()
}
