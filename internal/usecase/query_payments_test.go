package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	domainErrors "github.com/billpay/payment-service/internal/domain/errors"
	"github.com/billpay/payment-service/internal/domain/model"
	"github.com/billpay/payment-service/internal/domain/repository"
	"github.com/billpay/payment-service/internal/usecase"
)

func TestPaymentQueryUseCase_Get(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("returns payment by id", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		uc := usecase.NewPaymentQueryUseCase(mockRepo, logger)

		p, err := model.NewPayment("BILL-001", decimal.NewFromInt(500), "USD", 3)
		require.NoError(t, err)
		mockRepo.On("FindByID", ctx, p.ID).Return(p, nil).Once()

		got, err := uc.Get(ctx, p.ID)

		require.NoError(t, err)
		assert.Equal(t, p.ID, got.ID)
	})

	t.Run("miss returns PaymentNotFound", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		uc := usecase.NewPaymentQueryUseCase(mockRepo, logger)

		id := uuid.New()
		mockRepo.On("FindByID", ctx, id).Return(nil, nil).Once()

		got, err := uc.Get(ctx, id)

		var notFound *domainErrors.PaymentNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Nil(t, got)
	})
}

func TestPaymentQueryUseCase_List(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("invalid status filter fails validation", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		uc := usecase.NewPaymentQueryUseCase(mockRepo, logger)

		out, err := uc.List(ctx, usecase.ListPaymentsInput{Status: "BOGUS"})

		var validationErr *domainErrors.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "status", validationErr.Field)
		assert.Nil(t, out)
		mockRepo.AssertNotCalled(t, "FindAll")
	})

	t.Run("status filter is forwarded to the repository", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		uc := usecase.NewPaymentQueryUseCase(mockRepo, logger)

		failed := model.StatusFailed
		mockRepo.On("FindAll", ctx, repository.PaymentFilter{Status: &failed}, 100, 0).
			Return([]*model.Payment{}, int64(0), nil).Once()

		out, err := uc.List(ctx, usecase.ListPaymentsInput{Status: "FAILED"})

		require.NoError(t, err)
		assert.Equal(t, int64(0), out.Total)
		mockRepo.AssertExpectations(t)
	})

	t.Run("limit is defaulted and clamped", func(t *testing.T) {
		tests := []struct {
			name      string
			limit     int
			wantLimit int
		}{
			{"zero limit uses default", 0, 100},
			{"negative limit uses default", -5, 100},
			{"oversized limit is clamped", 5000, 1000},
			{"valid limit is kept", 25, 25},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				mockRepo := new(MockPaymentRepository)
				uc := usecase.NewPaymentQueryUseCase(mockRepo, logger)

				mockRepo.On("FindAll", ctx, repository.PaymentFilter{}, tt.wantLimit, 0).
					Return([]*model.Payment{}, int64(0), nil).Once()

				out, err := uc.List(ctx, usecase.ListPaymentsInput{Limit: tt.limit})

				require.NoError(t, err)
				assert.Equal(t, tt.wantLimit, out.Limit)
				mockRepo.AssertExpectations(t)
			})
		}
	})

	t.Run("returns page and total", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		uc := usecase.NewPaymentQueryUseCase(mockRepo, logger)

		p, err := model.NewPayment("BILL-001", decimal.NewFromInt(500), "USD", 3)
		require.NoError(t, err)
		mockRepo.On("FindAll", ctx, repository.PaymentFilter{}, 1, 1).
			Return([]*model.Payment{p}, int64(5), nil).Once()

		out, err := uc.List(ctx, usecase.ListPaymentsInput{Limit: 1, Offset: 1})

		require.NoError(t, err)
		assert.Len(t, out.Payments, 1)
		assert.Equal(t, int64(5), out.Total)
		assert.Equal(t, 1, out.Offset)
	})
}
