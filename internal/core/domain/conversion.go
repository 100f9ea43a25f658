package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Conversion is a currency exchange event. It is immutable once registered; the
// account effects it causes are always expressed as ordinary movements so that
// every balance change stays visible in the movement ledger.
type Conversion struct {
	ConversionID          string          `json:"conversionID"` // Primary Key (UUID)
	Number                string          `json:"number"`       // Sequential display number, e.g. CNV-2026-0001
	OriginCurrency        Currency        `json:"originCurrency"`
	DestinationCurrency   Currency        `json:"destinationCurrency"`
	OriginAmount          decimal.Decimal `json:"originAmount"`
	DestinationAmount     decimal.Decimal `json:"destinationAmount"` // Derived, never entered
	AppliedRate           decimal.Decimal `json:"appliedRate"`
	ReferenceRate         decimal.Decimal `json:"referenceRate"` // Day's official rate for the leg
	SpreadPercent         decimal.Decimal `json:"spreadPercent"`
	DifferenceVsReference decimal.Decimal `json:"differenceVsReference"` // Monetary gain/loss vs reference
	SourceAccountID       string          `json:"sourceAccountID,omitempty"`
	DestinationAccountID  string          `json:"destinationAccountID,omitempty"`
	Entity                string          `json:"entity,omitempty"` // Counterparty name
	Motive                string          `json:"motive"`
	Notes                 string          `json:"notes,omitempty"`
	ConversionDate        time.Time       `json:"conversionDate"`
	AuditFields
}

// ConvertedAmount computes the destination amount for an origin amount at the
// given rate (PEN per USD): USD origins multiply, PEN origins divide.
func ConvertedAmount(origin Currency, amount, rate decimal.Decimal) decimal.Decimal {
	if origin == CurrencyUSD {
		return amount.Mul(rate)
	}
	return amount.Div(rate)
}

// SpreadPercent is the percentage deviation of the applied rate from the
// reference rate. Positive means the applied rate was above reference.
func SpreadPercent(applied, reference decimal.Decimal) decimal.Decimal {
	if reference.IsZero() {
		return decimal.Zero
	}
	hundred := decimal.NewFromInt(100)
	return applied.Sub(reference).Div(reference).Mul(hundred)
}

// DifferenceVsReference computes the monetary gain/loss of the conversion
// against the reference rate. For a USD origin the difference accrues on the
// origin amount; for a PEN origin it accrues on the destination (USD) amount.
func DifferenceVsReference(origin Currency, originAmount, destinationAmount, applied, reference decimal.Decimal) decimal.Decimal {
	if origin == CurrencyUSD {
		return applied.Sub(reference).Mul(originAmount)
	}
	return reference.Sub(applied).Mul(destinationAmount)
}
