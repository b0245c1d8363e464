package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/billpay/payment-service/internal/domain/model"
	"github.com/billpay/payment-service/internal/domain/repository"
)

// paymentRepository implements the PaymentRepository interface on PostgreSQL
type paymentRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB, logger *zap.Logger) repository.PaymentRepository {
	return &paymentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *paymentRepository) Save(ctx context.Context, payment *model.Payment) error {
	if err := r.db.WithContext(ctx).Create(payment).Error; err != nil {
		r.logger.Error("failed to save payment",
			zap.String("payment_id", payment.ID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to save payment: %w", err)
	}
	return nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("failed to find payment",
			zap.String("payment_id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to find payment: %w", err)
	}
	return &payment, nil
}

func (r *paymentRepository) Update(ctx context.Context, payment *model.Payment) error {
	if err := r.db.WithContext(ctx).Save(payment).Error; err != nil {
		r.logger.Error("failed to update payment",
			zap.String("payment_id", payment.ID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to update payment: %w", err)
	}
	return nil
}

func (r *paymentRepository) FindAll(ctx context.Context, filter repository.PaymentFilter, limit, offset int) ([]*model.Payment, int64, error) {
	total, err := r.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	var payments []*model.Payment
	query := r.applyFilter(r.db.WithContext(ctx), filter).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset)

	if err := query.Find(&payments).Error; err != nil {
		r.logger.Error("failed to list payments", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list payments: %w", err)
	}

	return payments, total, nil
}

func (r *paymentRepository) Count(ctx context.Context, filter repository.PaymentFilter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&model.Payment{}), filter)
	if err := query.Count(&count).Error; err != nil {
		r.logger.Error("failed to count payments", zap.Error(err))
		return 0, fmt.Errorf("failed to count payments: %w", err)
	}
	return count, nil
}

func (r *paymentRepository) applyFilter(query *gorm.DB, filter repository.PaymentFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	return query
}
