package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// SavingsCategory is the ledger category assigned to savings movements.
const SavingsCategory = "Ahorro"

// MovementType is the direction of a savings movement.
type MovementType string

const (
	Deposit    MovementType = "DEPOSIT"
	Withdrawal MovementType = "WITHDRAWAL"
)

// IsValid reports whether t is a known movement type.
func (t MovementType) IsValid() bool {
	return t == Deposit || t == Withdrawal
}

// TransactionType maps the movement direction to its paired ledger entry type.
func (t MovementType) TransactionType() TransactionType {
	if t == Deposit {
		return TypeSavingDeposit
	}
	return TypeSavingWithdrawal
}

// SavingsAccount is a place money is parked (bank account, broker, cash box).
// Deletion is soft (IsActive=false) so balance history stays queryable.
type SavingsAccount struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Currency Currency `json:"currency"`
	Icon     string   `json:"icon"`
	Color    string   `json:"color"`
	IsActive bool     `json:"is_active"`
}

// AccountPatch carries the optional fields of an account edit.
type AccountPatch struct {
	Name     *string
	Type     *string
	Currency *Currency
	Icon     *string
	Color    *string
}

// IsEmpty reports whether the patch carries no changes.
func (p AccountPatch) IsEmpty() bool {
	return p.Name == nil && p.Type == nil && p.Currency == nil && p.Icon == nil && p.Color == nil
}

// SavingsMovement is a deposit into or withdrawal from a savings account. Each
// movement is paired 1:1 with a ledger transaction created atomically with it.
type SavingsMovement struct {
	ID           int64           `json:"id"`
	AccountID    int64           `json:"account_id"`
	Type         MovementType    `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     Currency        `json:"currency"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
	Description  string          `json:"description"`
	Date         time.Time       `json:"date"`
	CreatedAt    time.Time       `json:"created_at"`
}

// DefaultMovementDescription formats the ledger description of a movement when
// the user supplied none.
func DefaultMovementDescription(t MovementType, accountName string) string {
	if t == Deposit {
		return fmt.Sprintf("Ahorro → %s", accountName)
	}
	return fmt.Sprintf("Retiro ← %s", accountName)
}

// MovementDetail is a movement joined with its account's display fields.
type MovementDetail struct {
	SavingsMovement
	AccountName  string `json:"account_name"`
	AccountColor string `json:"account_color"`
}

// AccountBalance is an account with its running balance, in the account's own
// currency: sum of deposits minus sum of withdrawals.
type AccountBalance struct {
	SavingsAccount
	Balance decimal.Decimal `json:"balance"`
}
