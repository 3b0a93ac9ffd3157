package dto

import (
	"github.com/financeflow/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInstallmentRequest defines the structure for creating a plan. The
// initial paid count and active flag are whatever the caller declares.
type CreateInstallmentRequest struct {
	Description          string          `json:"description" binding:"required"`
	CardName             string          `json:"card_name" binding:"required"`
	AmountPerInstallment decimal.Decimal `json:"amount_per_installment" binding:"required"`
	TotalInstallments    int             `json:"total_installments" binding:"required,min=1"`
	InstallmentsPaid     *int            `json:"installments_paid" binding:"required,min=0"`
	StartDate            string          `json:"start_date" binding:"required"`
	IsActive             *bool           `json:"is_active"`
	Currency             string          `json:"currency" binding:"omitempty,oneof=ARS USD"`
}

// MarkPaidRequest defines the payment of one installment. A nil number means
// "next": installments_paid + 1.
type MarkPaidRequest struct {
	ExchangeRate      decimal.Decimal `json:"exchange_rate"`
	PaymentDate       string          `json:"payment_date"`
	InstallmentNumber *int            `json:"installment_number"`
}

// MarkPaidResult reports the outcome of a payment.
type MarkPaidResult struct {
	TransactionID int64 `json:"transaction_id"`
	PaymentNumber int   `json:"payment_number"`
	NewPaidCount  int   `json:"new_paid_count"`
	IsComplete    bool  `json:"is_complete"`
}

// UpdatePaidCountRequest is the manual paid-count override.
type UpdatePaidCountRequest struct {
	InstallmentsPaid *int `json:"installments_paid" binding:"required,min=0"`
}

// InstallmentResponse defines the data returned for a plan.
type InstallmentResponse struct {
	ID                   int64           `json:"id"`
	Description          string          `json:"description"`
	CardName             string          `json:"card_name"`
	AmountPerInstallment decimal.Decimal `json:"amount_per_installment"`
	TotalInstallments    int             `json:"total_installments"`
	InstallmentsPaid     int             `json:"installments_paid"`
	StartDate            string          `json:"start_date"`
	IsActive             bool            `json:"is_active"`
	Currency             string          `json:"currency"`
}

// PaymentResponse defines a payment journal row joined with its transaction's
// monetary fields.
type PaymentResponse struct {
	ID                int64           `json:"id"`
	InstallmentID     int64           `json:"installment_id"`
	TransactionID     int64           `json:"transaction_id"`
	InstallmentNumber int             `json:"installment_number"`
	PaymentDate       string          `json:"payment_date"`
	Amount            decimal.Decimal `json:"amount"`
	Currency          string          `json:"currency"`
	ExchangeRate      decimal.Decimal `json:"exchange_rate"`
}

// ToInstallmentResponse converts a domain.Installment to InstallmentResponse DTO.
func ToInstallmentResponse(plan *domain.Installment) InstallmentResponse {
	return InstallmentResponse{
		ID:                   plan.ID,
		Description:          plan.Description,
		CardName:             plan.CardName,
		AmountPerInstallment: plan.AmountPerInstallment,
		TotalInstallments:    plan.TotalInstallments,
		InstallmentsPaid:     plan.InstallmentsPaid,
		StartDate:            plan.StartDate.Format(DateLayout),
		IsActive:             plan.IsActive,
		Currency:             string(plan.Currency),
	}
}

// ToInstallmentResponses converts a slice of domain.Installment to []InstallmentResponse.
func ToInstallmentResponses(plans []domain.Installment) []InstallmentResponse {
	responses := make([]InstallmentResponse, len(plans))
	for i := range plans {
		responses[i] = ToInstallmentResponse(&plans[i])
	}
	return responses
}

// ToPaymentResponses converts payment details to []PaymentResponse.
func ToPaymentResponses(payments []domain.PaymentDetail) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		responses[i] = PaymentResponse{
			ID:                p.ID,
			InstallmentID:     p.InstallmentID,
			TransactionID:     p.TransactionID,
			InstallmentNumber: p.InstallmentNumber,
			PaymentDate:       p.PaymentDate.Format(DateLayout),
			Amount:            p.Amount,
			Currency:          string(p.Currency),
			ExchangeRate:      p.ExchangeRate,
		}
	}
	return responses
}
