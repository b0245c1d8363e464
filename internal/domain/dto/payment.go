package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/billpay/payment-service/internal/domain/model"
)

// CreatePaymentRequest is the inbound payload for payment creation.
type CreatePaymentRequest struct {
	Reference string          `json:"reference" validate:"required"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Currency  string          `json:"currency" validate:"required,len=3"`
}

// PaymentResponse is the outbound representation of a payment.
type PaymentResponse struct {
	PaymentID string          `json:"payment_id"`
	Reference string          `json:"reference"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Status    string          `json:"status"`
	Retries   int             `json:"retries"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewPaymentResponse maps a payment entity to its API representation
func NewPaymentResponse(p *model.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID: p.ID.String(),
		Reference: p.Reference,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Status:    string(p.Status),
		Retries:   p.Retries,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// PaginationInfo describes the page returned by a list query.
type PaginationInfo struct {
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"has_more"`
}

// ListPaymentsResponse is the outbound payload for payment listing.
type ListPaymentsResponse struct {
	Payments   []PaymentResponse `json:"payments"`
	Pagination PaginationInfo    `json:"pagination"`
}
