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
	"github.com/billpay/payment-service/internal/domain/service"
	"github.com/billpay/payment-service/internal/usecase"
)

func failedPayment(t *testing.T, retries int) *model.Payment {
	t.Helper()
	p, err := model.NewPayment("BILL-001", decimal.NewFromInt(1500), "USD", 3)
	require.NoError(t, err)
	require.NoError(t, p.MarkFailed())
	p.Retries = retries
	return p
}

func TestRetryPaymentUseCase_Execute(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("unknown payment returns PaymentNotFound", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		mockProcessor := new(MockPaymentProcessor)
		uc := usecase.NewRetryPaymentUseCase(mockRepo, mockProcessor, 3, logger)

		id := uuid.New()
		mockRepo.On("FindByID", ctx, id).Return(nil, nil).Once()

		payment, err := uc.Execute(ctx, id)

		var notFound *domainErrors.PaymentNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, id.String(), notFound.PaymentID)
		assert.Nil(t, payment)
		mockProcessor.AssertNotCalled(t, "ProcessRetry")
	})

	t.Run("successful retry transitions to SUCCESS", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		mockProcessor := new(MockPaymentProcessor)
		uc := usecase.NewRetryPaymentUseCase(mockRepo, mockProcessor, 3, logger)

		p := failedPayment(t, 0)
		mockRepo.On("FindByID", ctx, p.ID).Return(p, nil).Once()
		mockProcessor.On("ProcessRetry", ctx, p).
			Return(service.Outcome{Success: true}, nil).Once()
		mockRepo.On("Update", ctx, p).Return(nil).Once()

		payment, err := uc.Execute(ctx, p.ID)

		require.NoError(t, err)
		assert.Equal(t, model.StatusSuccess, payment.Status)
		assert.Equal(t, 1, payment.Retries)
		mockRepo.AssertExpectations(t)
	})

	t.Run("failed retry with budget remaining stays FAILED", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		mockProcessor := new(MockPaymentProcessor)
		uc := usecase.NewRetryPaymentUseCase(mockRepo, mockProcessor, 3, logger)

		p := failedPayment(t, 0)
		mockRepo.On("FindByID", ctx, p.ID).Return(p, nil).Once()
		mockProcessor.On("ProcessRetry", ctx, p).
			Return(service.Outcome{Success: false}, nil).Once()
		mockRepo.On("Update", ctx, p).Return(nil).Once()

		payment, err := uc.Execute(ctx, p.ID)

		require.NoError(t, err)
		assert.Equal(t, model.StatusFailed, payment.Status)
		assert.Equal(t, 1, payment.Retries)
	})

	t.Run("failed retry on last attempt transitions to EXHAUSTED", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		mockProcessor := new(MockPaymentProcessor)
		uc := usecase.NewRetryPaymentUseCase(mockRepo, mockProcessor, 3, logger)

		p := failedPayment(t, 2)
		mockRepo.On("FindByID", ctx, p.ID).Return(p, nil).Once()
		mockProcessor.On("ProcessRetry", ctx, p).
			Return(service.Outcome{Success: false}, nil).Once()
		mockRepo.On("Update", ctx, p).Return(nil).Once()

		payment, err := uc.Execute(ctx, p.ID)

		require.NoError(t, err)
		assert.Equal(t, model.StatusExhausted, payment.Status)
		assert.Equal(t, 3, payment.Retries)
	})

	t.Run("terminal payment returns CannotRetry with current status", func(t *testing.T) {
		for _, status := range []model.PaymentStatus{model.StatusSuccess, model.StatusExhausted} {
			mockRepo := new(MockPaymentRepository)
			mockProcessor := new(MockPaymentProcessor)
			uc := usecase.NewRetryPaymentUseCase(mockRepo, mockProcessor, 3, logger)

			p := failedPayment(t, 0)
			p.Status = status
			mockRepo.On("FindByID", ctx, p.ID).Return(p, nil).Once()

			payment, err := uc.Execute(ctx, p.ID)

			var cannotRetry *domainErrors.CannotRetryError
			require.ErrorAs(t, err, &cannotRetry)
			assert.Equal(t, string(status), cannotRetry.CurrentStatus)
			assert.Nil(t, payment)
			mockProcessor.AssertNotCalled(t, "ProcessRetry")
			mockRepo.AssertNotCalled(t, "Update")
		}
	})

	t.Run("spent budget returns MaxRetriesExceeded", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		mockProcessor := new(MockPaymentProcessor)
		uc := usecase.NewRetryPaymentUseCase(mockRepo, mockProcessor, 3, logger)

		p := failedPayment(t, 3)
		mockRepo.On("FindByID", ctx, p.ID).Return(p, nil).Once()

		payment, err := uc.Execute(ctx, p.ID)

		var maxRetries *domainErrors.MaxRetriesExceededError
		require.ErrorAs(t, err, &maxRetries)
		assert.Equal(t, 3, maxRetries.MaxRetries)
		assert.Nil(t, payment)
	})

	t.Run("processor fault counts as a failed attempt", func(t *testing.T) {
		mockRepo := new(MockPaymentRepository)
		mockProcessor := new(MockPaymentProcessor)
		uc := usecase.NewRetryPaymentUseCase(mockRepo, mockProcessor, 3, logger)

		p := failedPayment(t, 0)
		mockRepo.On("FindByID", ctx, p.ID).Return(p, nil).Once()
		mockProcessor.On("ProcessRetry", ctx, p).
			Return(service.Outcome{}, assert.AnError).Once()
		mockRepo.On("Update", ctx, p).Return(nil).Once()

		payment, err := uc.Execute(ctx, p.ID)

		require.NoError(t, err)
		assert.Equal(t, model.StatusFailed, payment.Status)
		assert.Equal(t, 1, payment.Retries)
	})
}

// Full exhaustion scenario from a failed creation: three forced-failing
// retries walk FAILED(r=1) -> FAILED(r=2) -> EXHAUSTED(r=3), and a fourth
// call is rejected.
func TestRetryPaymentUseCase_ExhaustionSequence(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	mockRepo := new(MockPaymentRepository)
	mockProcessor := new(MockPaymentProcessor)
	uc := usecase.NewRetryPaymentUseCase(mockRepo, mockProcessor, 3, logger)

	p := failedPayment(t, 0)
	mockRepo.On("FindByID", ctx, p.ID).Return(p, nil)
	mockRepo.On("Update", ctx, p).Return(nil)
	mockProcessor.On("ProcessRetry", ctx, p).Return(service.Outcome{Success: false}, nil)

	expected := []struct {
		status  model.PaymentStatus
		retries int
	}{
		{model.StatusFailed, 1},
		{model.StatusFailed, 2},
		{model.StatusExhausted, 3},
	}
	for _, want := range expected {
		payment, err := uc.Execute(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, want.status, payment.Status)
		assert.Equal(t, want.retries, payment.Retries)
	}

	payment, err := uc.Execute(ctx, p.ID)
	var cannotRetry *domainErrors.CannotRetryError
	require.ErrorAs(t, err, &cannotRetry)
	assert.Equal(t, string(model.StatusExhausted), cannotRetry.CurrentStatus)
	assert.Nil(t, payment)
	mockProcessor.AssertNumberOfCalls(t, "ProcessRetry", 3)
}
