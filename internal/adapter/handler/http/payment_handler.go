package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/billpay/payment-service/internal/domain/dto"
	domainErrors "github.com/billpay/payment-service/internal/domain/errors"
	"github.com/billpay/payment-service/internal/usecase"
)

// HeaderIdempotencyKey is required on every create request.
const HeaderIdempotencyKey = "Idempotency-Key"

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type PaymentHandler struct {
	createUC *usecase.CreatePaymentUseCase
	retryUC  *usecase.RetryPaymentUseCase
	queryUC  *usecase.PaymentQueryUseCase
	logger   *zap.Logger
}

func NewPaymentHandler(
	createUC *usecase.CreatePaymentUseCase,
	retryUC *usecase.RetryPaymentUseCase,
	queryUC *usecase.PaymentQueryUseCase,
	logger *zap.Logger,
) *PaymentHandler {
	return &PaymentHandler{
		createUC: createUC,
		retryUC:  retryUC,
		queryUC:  queryUC,
		logger:   logger,
	}
}

// CreatePayment handles POST /payments. Replies 201 for a newly created
// payment and 200 when the idempotency key replays an earlier one.
func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	idempotencyKey := c.Request().Header.Get(HeaderIdempotencyKey)
	if idempotencyKey == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: errorBody{
			Code:    "VALIDATION_ERROR",
			Message: "Idempotency-Key header is required",
		}})
	}

	var req dto.CreatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: errorBody{
			Code:    "VALIDATION_ERROR",
			Message: "invalid request body",
		}})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: errorBody{
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		}})
	}

	payment, created, err := h.createUC.Execute(c.Request().Context(), usecase.CreatePaymentInput{
		Reference:      req.Reference,
		Amount:         req.Amount,
		Currency:       req.Currency,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		return h.handleError(c, err)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return c.JSON(status, dto.NewPaymentResponse(payment))
}

// GetPayment handles GET /payments/:id.
func (h *PaymentHandler) GetPayment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: errorBody{
			Code:    "VALIDATION_ERROR",
			Message: "payment id must be a valid UUID",
		}})
	}

	payment, err := h.queryUC.Get(c.Request().Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewPaymentResponse(payment))
}

// ListPayments handles GET /payments with optional status filter and
// pagination.
func (h *PaymentHandler) ListPayments(c echo.Context) error {
	input := usecase.ListPaymentsInput{
		Status: c.QueryParam("status"),
	}

	if limitStr := c.QueryParam("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: errorBody{
				Code:    "VALIDATION_ERROR",
				Message: "invalid limit parameter",
			}})
		}
		input.Limit = limit
	}
	if offsetStr := c.QueryParam("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: errorBody{
				Code:    "VALIDATION_ERROR",
				Message: "invalid offset parameter",
			}})
		}
		input.Offset = offset
	}

	output, err := h.queryUC.List(c.Request().Context(), input)
	if err != nil {
		return h.handleError(c, err)
	}

	payments := make([]dto.PaymentResponse, len(output.Payments))
	for i, p := range output.Payments {
		payments[i] = dto.NewPaymentResponse(p)
	}

	return c.JSON(http.StatusOK, dto.ListPaymentsResponse{
		Payments: payments,
		Pagination: dto.PaginationInfo{
			Total:   output.Total,
			Limit:   output.Limit,
			Offset:  output.Offset,
			HasMore: int64(output.Offset+output.Limit) < output.Total,
		},
	})
}

// RetryPayment handles POST /payments/:id/retry.
func (h *PaymentHandler) RetryPayment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: errorBody{
			Code:    "VALIDATION_ERROR",
			Message: "payment id must be a valid UUID",
		}})
	}

	payment, err := h.retryUC.Execute(c.Request().Context(), id)
	if err != nil {
		return h.handleError(c, err)
	}
	return c.JSON(http.StatusOK, dto.NewPaymentResponse(payment))
}

// handleError maps domain errors to HTTP responses. Infrastructure faults
// surface as opaque 500s.
func (h *PaymentHandler) handleError(c echo.Context, err error) error {
	var (
		validationErr *domainErrors.ValidationError
		notFoundErr   *domainErrors.PaymentNotFoundError
		cannotRetry   *domainErrors.CannotRetryError
		maxRetries    *domainErrors.MaxRetriesExceededError
		conflict      *domainErrors.ConflictInProgressError
	)

	switch {
	case errors.As(err, &validationErr):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: errorBody{
			Code:    "VALIDATION_ERROR",
			Message: validationErr.Error(),
		}})
	case errors.As(err, &notFoundErr):
		return c.JSON(http.StatusNotFound, errorResponse{Error: errorBody{
			Code:    "PAYMENT_NOT_FOUND",
			Message: notFoundErr.Error(),
		}})
	case errors.As(err, &cannotRetry):
		return c.JSON(http.StatusConflict, errorResponse{Error: errorBody{
			Code:    "CANNOT_RETRY_PAYMENT",
			Message: cannotRetry.Error(),
		}})
	case errors.As(err, &maxRetries):
		return c.JSON(http.StatusConflict, errorResponse{Error: errorBody{
			Code:    "MAX_RETRIES_EXCEEDED",
			Message: maxRetries.Error(),
		}})
	case errors.As(err, &conflict):
		return c.JSON(http.StatusConflict, errorResponse{Error: errorBody{
			Code:    "CONFLICT_IN_PROGRESS",
			Message: conflict.Error(),
		}})
	default:
		h.logger.Error("unhandled error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: errorBody{
			Code:    "INTERNAL_ERROR",
			Message: "an unexpected error occurred",
		}})
	}
}
