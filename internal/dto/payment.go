package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/stayops/folio_ledger_app/internal/core/domain"
)

// CreatePaymentRequest is the payload for recording a payment against a folio.
// Status defaults to COMPLETED; only completed payments count toward balance.
type CreatePaymentRequest struct {
	Method    string          `json:"method" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Currency  string          `json:"currency" binding:"required,len=3"`
	Reference string          `json:"reference"`
	Status    string          `json:"status" binding:"omitempty,oneof=PENDING COMPLETED FAILED"`
}

// PaymentResponse is the API representation of a payment record.
type PaymentResponse struct {
	PaymentID string          `json:"paymentID"`
	Source    string          `json:"source"`
	SourceID  string          `json:"sourceID"`
	Method    string          `json:"method"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Reference string          `json:"reference,omitempty"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ToPaymentResponse converts a domain payment to its API representation.
func ToPaymentResponse(p *domain.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID: p.PaymentID,
		Source:    p.Source,
		SourceID:  p.SourceID,
		Method:    p.Method,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Reference: p.Reference,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt,
	}
}

// ToPaymentResponses converts a slice of domain payments.
func ToPaymentResponses(payments []domain.Payment) []PaymentResponse {
	resp := make([]PaymentResponse, len(payments))
	for i := range payments {
		resp[i] = ToPaymentResponse(&payments[i])
	}
	return resp
}
