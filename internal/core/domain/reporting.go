package domain

import "github.com/shopspring/decimal"

// InstallmentsProjectionKey is the extra key carried by the raw type summary:
// a projection of ACTIVE plans' monthly amounts, not actual payments. The
// normalized summary instead sums real INSTALLMENT ledger rows under the
// regular type key.
const InstallmentsProjectionKey = "INSTALLMENTS"

// TypeSummary maps a transaction type (or the projection key) to a total.
type TypeSummary map[string]decimal.Decimal

// CategoryTotal is a per-category expense total, sorted descending by Total.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// Portfolio groups active account balances with a reference-currency total.
// Only accounts already denominated in the reference currency contribute to
// the total; there is no cross-account conversion.
type Portfolio struct {
	Accounts       []AccountBalance `json:"accounts"`
	TotalReference decimal.Decimal  `json:"totalUSD"`
}

// AvailableReport is the ledger-wide "available to save" derivation, all
// figures normalized to the reference currency.
type AvailableReport struct {
	Income     decimal.Decimal `json:"income"`
	Expenses   decimal.Decimal `json:"expenses"`
	NetBalance decimal.Decimal `json:"netBalance"`
	Allocated  decimal.Decimal `json:"allocated"`
	Available  decimal.Decimal `json:"available"`
}
