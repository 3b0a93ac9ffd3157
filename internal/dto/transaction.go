package dto

import (
	"time"

	"github.com/financeflow/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of every date in the API (ISO-8601 date).
const DateLayout = "2006-01-02"

// CreateTransactionRequest defines the structure for creating a ledger entry.
type CreateTransactionRequest struct {
	Type         string          `json:"type" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Currency     string          `json:"currency" binding:"omitempty,oneof=ARS USD"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	Date         string          `json:"date" binding:"required"`
}

// UpdateFixedExpenseRequest defines the partial edit of a fixed expense. Nil
// fields are left unchanged.
type UpdateFixedExpenseRequest struct {
	Description  *string          `json:"description"`
	Amount       *decimal.Decimal `json:"amount"`
	Currency     *string          `json:"currency" binding:"omitempty,oneof=ARS USD"`
	Category     *string          `json:"category"`
	ExchangeRate *decimal.Decimal `json:"exchange_rate"`
}

// TransactionResponse defines the data returned for a ledger entry.
type TransactionResponse struct {
	ID           int64           `json:"id"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	Date         string          `json:"date"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           txn.ID,
		Type:         string(txn.Type),
		Amount:       txn.Amount,
		Currency:     string(txn.Currency),
		ExchangeRate: txn.ExchangeRate,
		Category:     txn.Category,
		Description:  txn.Description,
		Date:         txn.Date.Format(DateLayout),
		CreatedAt:    txn.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}
