package model

// PaymentStatus represents the lifecycle state of a payment.
//
// Transitions:
//
//	PENDING -> SUCCESS   (initial processing succeeded)
//	PENDING -> FAILED    (initial processing failed)
//	FAILED  -> SUCCESS   (retry succeeded)
//	FAILED  -> FAILED    (retry failed, budget remaining)
//	FAILED  -> EXHAUSTED (retry failed, budget spent)
//
// SUCCESS and EXHAUSTED are final.
type PaymentStatus string

const (
	StatusPending   PaymentStatus = "PENDING"
	StatusSuccess   PaymentStatus = "SUCCESS"
	StatusFailed    PaymentStatus = "FAILED"
	StatusExhausted PaymentStatus = "EXHAUSTED"
)

// IsFinal reports whether no further transitions are allowed from this status.
func (s PaymentStatus) IsFinal() bool {
	return s == StatusSuccess || s == StatusExhausted
}

// CanRetry reports whether a payment in this status is eligible for retry.
func (s PaymentStatus) CanRetry() bool {
	return s == StatusFailed
}

// IsValid reports whether s is one of the known statuses.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusSuccess, StatusFailed, StatusExhausted:
		return true
	}
	return false
}
