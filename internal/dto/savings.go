package dto

import (
	"github.com/financeflow/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the structure for creating a savings account.
type CreateAccountRequest struct {
	Name     string `json:"name" binding:"required"`
	Type     string `json:"type" binding:"required"`
	Currency string `json:"currency" binding:"omitempty,oneof=ARS USD"`
	Icon     string `json:"icon"`
	Color    string `json:"color"`
}

// UpdateAccountRequest defines the partial edit of a savings account.
type UpdateAccountRequest struct {
	Name     *string `json:"name"`
	Type     *string `json:"type"`
	Currency *string `json:"currency" binding:"omitempty,oneof=ARS USD"`
	Icon     *string `json:"icon"`
	Color    *string `json:"color"`
}

// CreateMovementRequest defines a deposit or withdrawal. The paired ledger
// transaction is created atomically with the movement.
type CreateMovementRequest struct {
	AccountID    int64           `json:"account_id" binding:"required"`
	Type         string          `json:"type" binding:"required,oneof=DEPOSIT WITHDRAWAL"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Currency     string          `json:"currency" binding:"omitempty,oneof=ARS USD"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
	Description  string          `json:"description"`
	Date         string          `json:"date" binding:"required"`
}

// MovementCreated reports the ids of the movement/transaction pair.
type MovementCreated struct {
	ID            int64 `json:"id"`
	TransactionID int64 `json:"transaction_id"`
}

// AccountResponse defines the data returned for a savings account.
type AccountResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Currency string `json:"currency"`
	Icon     string `json:"icon"`
	Color    string `json:"color"`
	IsActive bool   `json:"is_active"`
}

// MovementResponse defines a movement joined with its account display fields.
type MovementResponse struct {
	ID           int64           `json:"id"`
	AccountID    int64           `json:"account_id"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
	Description  string          `json:"description"`
	Date         string          `json:"date"`
	AccountName  string          `json:"account_name"`
	AccountColor string          `json:"account_color"`
}

// ToAccountResponse converts a domain.SavingsAccount to AccountResponse DTO.
func ToAccountResponse(acc *domain.SavingsAccount) AccountResponse {
	return AccountResponse{
		ID:       acc.ID,
		Name:     acc.Name,
		Type:     acc.Type,
		Currency: string(acc.Currency),
		Icon:     acc.Icon,
		Color:    acc.Color,
		IsActive: acc.IsActive,
	}
}

// ToAccountResponses converts a slice of domain.SavingsAccount to []AccountResponse.
func ToAccountResponses(accounts []domain.SavingsAccount) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}

// ToMovementResponses converts movement details to []MovementResponse.
func ToMovementResponses(movements []domain.MovementDetail) []MovementResponse {
	responses := make([]MovementResponse, len(movements))
	for i, m := range movements {
		responses[i] = MovementResponse{
			ID:           m.ID,
			AccountID:    m.AccountID,
			Type:         string(m.Type),
			Amount:       m.Amount,
			Currency:     string(m.Currency),
			ExchangeRate: m.ExchangeRate,
			Description:  m.Description,
			Date:         m.Date.Format(DateLayout),
			AccountName:  m.AccountName,
			AccountColor: m.AccountColor,
		}
	}
	return responses
}
