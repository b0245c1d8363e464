package errors

import "fmt"

// ValidationError is returned when payment input fails a business rule.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}
	return e.Message
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// PaymentNotFoundError is returned when a payment lookup misses.
type PaymentNotFoundError struct {
	PaymentID string
}

func (e *PaymentNotFoundError) Error() string {
	return fmt.Sprintf("payment with id '%s' not found", e.PaymentID)
}

// NewPaymentNotFoundError creates a new PaymentNotFoundError
func NewPaymentNotFoundError(paymentID string) *PaymentNotFoundError {
	return &PaymentNotFoundError{PaymentID: paymentID}
}

// CannotRetryError is returned when a retry is requested for a payment whose
// status does not allow it. CurrentStatus lets callers distinguish an
// already-successful payment from an exhausted one.
type CannotRetryError struct {
	PaymentID     string
	CurrentStatus string
}

func (e *CannotRetryError) Error() string {
	return fmt.Sprintf("payment '%s' cannot be retried: current status is %s, only FAILED payments can be retried",
		e.PaymentID, e.CurrentStatus)
}

// NewCannotRetryError creates a new CannotRetryError
func NewCannotRetryError(paymentID, currentStatus string) *CannotRetryError {
	return &CannotRetryError{PaymentID: paymentID, CurrentStatus: currentStatus}
}

// MaxRetriesExceededError is returned when the retry budget is already spent.
type MaxRetriesExceededError struct {
	PaymentID  string
	MaxRetries int
}

func (e *MaxRetriesExceededError) Error() string {
	return fmt.Sprintf("payment '%s' has reached the maximum number of retries (%d)", e.PaymentID, e.MaxRetries)
}

// NewMaxRetriesExceededError creates a new MaxRetriesExceededError
func NewMaxRetriesExceededError(paymentID string, maxRetries int) *MaxRetriesExceededError {
	return &MaxRetriesExceededError{PaymentID: paymentID, MaxRetries: maxRetries}
}

// ConflictInProgressError is returned when a concurrent request holding the
// same idempotency key is still in flight. The condition is transient; the
// caller should re-read rather than resubmit.
type ConflictInProgressError struct {
	IdempotencyKey string
}

func (e *ConflictInProgressError) Error() string {
	return fmt.Sprintf("a request with idempotency key '%s' is already being processed", e.IdempotencyKey)
}

// NewConflictInProgressError creates a new ConflictInProgressError
func NewConflictInProgressError(idempotencyKey string) *ConflictInProgressError {
	return &ConflictInProgressError{IdempotencyKey: idempotencyKey}
}

// InvalidTransitionError is returned when a state transition is attempted
// from a status that does not allow it.
type InvalidTransitionError struct {
	PaymentID string
	From      string
	To        string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("payment '%s' cannot transition from %s to %s", e.PaymentID, e.From, e.To)
}

// NewInvalidTransitionError creates a new InvalidTransitionError
func NewInvalidTransitionError(paymentID, from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{PaymentID: paymentID, From: from, To: to}
}
