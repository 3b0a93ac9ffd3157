package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a ledger entry. Sign/direction is carried by the
// type; amounts are always positive.
type TransactionType string

const (
	TypeIncome           TransactionType = "INCOME"
	TypeFixedExpense     TransactionType = "FIXED_EXPENSE"
	TypeExpense          TransactionType = "EXPENSE"
	TypeInstallment      TransactionType = "INSTALLMENT"
	TypeSavingDeposit    TransactionType = "SAVING_DEPOSIT"
	TypeSavingWithdrawal TransactionType = "SAVING_WITHDRAWAL"
)

// Legacy tags from the first schema version, where general expenses were split
// by a 15 USD threshold. Migration 000002 rewrites both to EXPENSE; runtime
// code never sees them.
const (
	LegacyMajorExpense TransactionType = "MAJOR_EXPENSE"
	LegacyMicroExpense TransactionType = "MICRO_EXPENSE"
)

// IsValid reports whether t is one of the current transaction types.
func (t TransactionType) IsValid() bool {
	switch t {
	case TypeIncome, TypeFixedExpense, TypeExpense, TypeInstallment, TypeSavingDeposit, TypeSavingWithdrawal:
		return true
	}
	return false
}

// Transaction is a single ledger entry. Entries are append-mostly: once
// created they are never updated, with the sole exception of explicit edits to
// fixed expenses.
type Transaction struct {
	ID           int64           `json:"id"`
	Type         TransactionType `json:"type"`
	Amount       decimal.Decimal `json:"amount"` // always > 0
	Currency     Currency        `json:"currency"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"` // secondary->reference rate captured at write time; zero means unknown
	Category     string          `json:"category"`
	Description  string          `json:"description"`
	Date         time.Time       `json:"date"`
	CreatedAt    time.Time       `json:"created_at"`
}

// DefaultCategory is assigned to transactions created without a category.
const DefaultCategory = "Otros"

// FixedExpensePatch carries the optional fields of a fixed-expense edit.
// Nil pointers mean "leave unchanged".
type FixedExpensePatch struct {
	Description  *string
	Amount       *decimal.Decimal
	Currency     *Currency
	Category     *string
	ExchangeRate *decimal.Decimal
}

// IsEmpty reports whether the patch carries no changes.
func (p FixedExpensePatch) IsEmpty() bool {
	return p.Description == nil && p.Amount == nil && p.Currency == nil && p.Category == nil && p.ExchangeRate == nil
}
