package domain

// Currency is a supported declaration currency. The set is closed: customs
// values are always settled in GNF and the conversion table is static.
type Currency string

const (
	CurrencyGNF Currency = "GNF" // Guinean franc, the settlement currency
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// IsValid reports whether the currency is one of the supported codes.
func (c Currency) IsValid() bool {
	switch c {
	case CurrencyGNF, CurrencyUSD, CurrencyEUR:
		return true
	}
	return false
}
