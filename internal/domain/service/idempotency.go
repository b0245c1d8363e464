package service

import (
	"context"
	"time"
)

// IdempotencyService deduplicates payment creation by client-supplied key and
// serializes concurrent requests carrying the same key. Both concerns share
// one key space and must stay coherent, so they live behind one contract.
type IdempotencyService interface {
	// AcquireLock atomically claims exclusivity for the key. Returns true
	// iff this caller now holds the lock. The lock carries a bounded TTL as
	// a safety net against abandoned requests.
	AcquireLock(ctx context.Context, key string) (bool, error)

	// ReleaseLock releases a previously acquired lock. Mandatory on every
	// exit path; TTL expiry is only the fallback.
	ReleaseLock(ctx context.Context, key string) error

	// GetResult returns the payment id previously recorded for the key.
	// ok is false when no result has been recorded.
	GetResult(ctx context.Context, key string) (paymentID string, ok bool, err error)

	// SaveResult associates the key with the payment it produced so that
	// duplicate requests short-circuit to the same payment.
	SaveResult(ctx context.Context, key, paymentID string, ttl time.Duration) error
}
