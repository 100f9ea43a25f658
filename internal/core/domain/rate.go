package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RatePair is the day's official reference exchange rate (PEN per USD) as
// published by the rate feed: the buy side applies when the business sells USD,
// the sell side when it buys USD.
type RatePair struct {
	Buy  decimal.Decimal `json:"buy"`
	Sell decimal.Decimal `json:"sell"`
	Date time.Time       `json:"date"`
}

// ReferenceFor picks the reference side for a conversion leg: a USD origin is
// priced against the sell rate, a PEN origin against the buy rate.
func (p RatePair) ReferenceFor(origin Currency) decimal.Decimal {
	if origin == CurrencyUSD {
		return p.Sell
	}
	return p.Buy
}
