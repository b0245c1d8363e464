package processor

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/billpay/payment-service/internal/domain/model"
	"github.com/billpay/payment-service/internal/domain/service"
)

// Simulated is a stand-in for a real settlement network.
//
// Policy: the first attempt succeeds iff the amount is within the configured
// threshold; every retry succeeds with the configured probability regardless
// of amount.
type Simulated struct {
	threshold        decimal.Decimal
	retryProbability float64
	logger           *zap.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulated creates a simulated processor with the given threshold and
// retry success probability.
func NewSimulated(threshold decimal.Decimal, retryProbability float64, logger *zap.Logger) *Simulated {
	return &Simulated{
		threshold:        threshold,
		retryProbability: retryProbability,
		logger:           logger,
		rng:              rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewSimulatedWithSource is like NewSimulated with a caller-supplied random
// source, for deterministic tests.
func NewSimulatedWithSource(threshold decimal.Decimal, retryProbability float64, src rand.Source, logger *zap.Logger) *Simulated {
	p := NewSimulated(threshold, retryProbability, logger)
	p.rng = rand.New(src)
	return p
}

// Process decides the first settlement attempt by amount.
func (p *Simulated) Process(_ context.Context, payment *model.Payment) (service.Outcome, error) {
	if payment.Amount.LessThanOrEqual(p.threshold) {
		p.logger.Info("payment processed successfully",
			zap.String("payment_id", payment.ID.String()),
			zap.String("amount", payment.Amount.String()))
		return service.Outcome{
			Success: true,
			Message: "payment processed successfully",
		}, nil
	}

	p.logger.Info("payment processing failed",
		zap.String("payment_id", payment.ID.String()),
		zap.String("amount", payment.Amount.String()),
		zap.String("threshold", p.threshold.String()))
	return service.Outcome{
		Success: false,
		Message: fmt.Sprintf("payment failed: amount %s exceeds threshold %s", payment.Amount, p.threshold),
	}, nil
}

// ProcessRetry draws the retry outcome from the configured probability.
func (p *Simulated) ProcessRetry(_ context.Context, payment *model.Payment) (service.Outcome, error) {
	p.mu.Lock()
	success := p.rng.Float64() < p.retryProbability
	p.mu.Unlock()

	p.logger.Info("payment retry processed",
		zap.String("payment_id", payment.ID.String()),
		zap.Bool("success", success),
		zap.Float64("success_probability", p.retryProbability))

	if success {
		return service.Outcome{
			Success: true,
			Message: "payment retry processed successfully",
		}, nil
	}
	return service.Outcome{
		Success: false,
		Message: "payment retry failed: simulated temporary failure",
	}, nil
}
