package domain

import "github.com/shopspring/decimal"

// Currency identifies one of the two currencies the treasury operates in.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyPEN Currency = "PEN"
)

// Valid reports whether the currency is one of the supported codes.
func (c Currency) Valid() bool {
	return c == CurrencyUSD || c == CurrencyPEN
}

// Opposite returns the other supported currency.
func (c Currency) Opposite() Currency {
	if c == CurrencyUSD {
		return CurrencyPEN
	}
	return CurrencyUSD
}

// EquivalentAmounts computes the USD and PEN equivalents of an amount stated in
// the given currency at the given exchange rate (PEN per USD).
// USD amounts convert to PEN by multiplication, PEN amounts to USD by division.
func EquivalentAmounts(currency Currency, amount, rate decimal.Decimal) (amountUSD, amountPEN decimal.Decimal) {
	if currency == CurrencyUSD {
		return amount, amount.Mul(rate)
	}
	return amount.Div(rate), amount
}
