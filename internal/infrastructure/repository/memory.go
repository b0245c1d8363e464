package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/billpay/payment-service/internal/domain/model"
	"github.com/billpay/payment-service/internal/domain/repository"
)

// MemoryPaymentRepository is an in-process PaymentRepository for tests and
// local runs. Stored payments are copied on the way in and out so callers
// never alias repository state.
type MemoryPaymentRepository struct {
	mu       sync.RWMutex
	payments map[uuid.UUID]model.Payment
}

// NewMemoryPaymentRepository creates a new in-memory payment repository
func NewMemoryPaymentRepository() *MemoryPaymentRepository {
	return &MemoryPaymentRepository{
		payments: make(map[uuid.UUID]model.Payment),
	}
}

func (r *MemoryPaymentRepository) Save(_ context.Context, payment *model.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.payments[payment.ID] = *payment
	return nil
}

func (r *MemoryPaymentRepository) FindByID(_ context.Context, id uuid.UUID) (*model.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payment, ok := r.payments[id]
	if !ok {
		return nil, nil
	}
	return &payment, nil
}

func (r *MemoryPaymentRepository) Update(_ context.Context, payment *model.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.payments[payment.ID] = *payment
	return nil
}

func (r *MemoryPaymentRepository) FindAll(_ context.Context, filter repository.PaymentFilter, limit, offset int) ([]*model.Payment, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := r.match(filter)
	total := int64(len(matches))

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})

	if offset >= len(matches) {
		return []*model.Payment{}, total, nil
	}
	end := offset + limit
	if end > len(matches) {
		end = len(matches)
	}

	page := make([]*model.Payment, 0, end-offset)
	for _, p := range matches[offset:end] {
		copied := p
		page = append(page, &copied)
	}
	return page, total, nil
}

func (r *MemoryPaymentRepository) Count(_ context.Context, filter repository.PaymentFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.match(filter))), nil
}

func (r *MemoryPaymentRepository) match(filter repository.PaymentFilter) []model.Payment {
	matches := make([]model.Payment, 0, len(r.payments))
	for _, p := range r.payments {
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		matches = append(matches, p)
	}
	return matches
}
