package domain

// Currency identifies one of the two supported currencies.
type Currency string

const (
	// CurrencyARS is the primary (entry) currency.
	CurrencyARS Currency = "ARS"
	// CurrencyUSD is the reference currency all normalized aggregates are expressed in.
	CurrencyUSD Currency = "USD"
)

// ReferenceCurrency is the currency every normalized total is expressed in.
const ReferenceCurrency = CurrencyUSD

// IsValid reports whether c is one of the supported currencies.
func (c Currency) IsValid() bool {
	return c == CurrencyARS || c == CurrencyUSD
}
