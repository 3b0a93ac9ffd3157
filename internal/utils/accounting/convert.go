package accounting

import (
	"github.com/financeflow/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ToReference converts an amount to the reference currency using the exchange
// rate captured when the amount was recorded. Rates are stored as secondary
// units per reference unit, so conversion divides.
//
// The second return value reports convertibility: amounts in the secondary
// currency with an unknown (zero or negative) rate convert to zero and are
// flagged false so aggregations can exclude them instead of corrupting a sum.
// Pure function, no I/O, never divides by zero.
func ToReference(amount decimal.Decimal, currency domain.Currency, rate decimal.Decimal) (decimal.Decimal, bool) {
	if currency == domain.ReferenceCurrency {
		return amount, true
	}
	if rate.IsPositive() {
		return amount.Div(rate), true
	}
	return decimal.Zero, false
}

// ToSecondary converts a reference-currency amount back to the secondary
// currency by applying the rate as a multiplier. Same zero-rate contract as
// ToReference.
func ToSecondary(amount decimal.Decimal, currency domain.Currency, rate decimal.Decimal) (decimal.Decimal, bool) {
	if currency != domain.ReferenceCurrency {
		return amount, true
	}
	if rate.IsPositive() {
		return amount.Mul(rate), true
	}
	return decimal.Zero, false
}
