package config

import "time"

// PaymentConfig holds the business rules consumed by the orchestrators.
type PaymentConfig struct {
	// MaxRetries is the retry budget per payment.
	MaxRetries int `yaml:"max_retries"`
	// AmountSuccessThreshold: first attempts succeed up to this amount.
	AmountSuccessThreshold float64 `yaml:"amount_success_threshold"`
	// RetrySuccessProbability applies to every attempt after the first.
	RetrySuccessProbability float64 `yaml:"retry_success_probability"`

	IdempotencyTTLSeconds int `yaml:"idempotency_ttl_seconds"`
	LockTTLSeconds        int `yaml:"lock_ttl_seconds"`
}

// IdempotencyTTL returns how long a recorded creation result is replayable.
func (c *PaymentConfig) IdempotencyTTL() time.Duration {
	return time.Duration(c.IdempotencyTTLSeconds) * time.Second
}

// LockTTL returns the expiry safety net for idempotency locks. Must exceed
// the worst-case processing latency.
func (c *PaymentConfig) LockTTL() time.Duration {
	return time.Duration(c.LockTTLSeconds) * time.Second
}

func (c *PaymentConfig) applyDefaults() {
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
	if c.AmountSuccessThreshold == 0 {
		c.AmountSuccessThreshold = 1000
	}
	if c.RetrySuccessProbability == 0 {
		c.RetrySuccessProbability = 0.5
	}
	if c.IdempotencyTTLSeconds == 0 {
		c.IdempotencyTTLSeconds = 86400
	}
	if c.LockTTLSeconds == 0 {
		c.LockTTLSeconds = 10
	}
}
