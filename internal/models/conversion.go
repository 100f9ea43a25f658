package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Conversion represents a currency conversion row. The derived figures
// (destination amount, spread, difference vs reference) are stored, not
// recomputed on read.
type Conversion struct {
	ConversionID          string          `db:"conversion_id"`
	Number                string          `db:"number"`
	OriginCurrency        string          `db:"origin_currency"`
	DestinationCurrency   string          `db:"destination_currency"`
	OriginAmount          decimal.Decimal `db:"origin_amount"`
	DestinationAmount     decimal.Decimal `db:"destination_amount"`
	AppliedRate           decimal.Decimal `db:"applied_rate"`
	ReferenceRate         decimal.Decimal `db:"reference_rate"`
	SpreadPercent         decimal.Decimal `db:"spread_percent"`
	DifferenceVsReference decimal.Decimal `db:"difference_vs_reference"`
	SourceAccountID       string          `db:"source_account_id"`      // Nullable
	DestinationAccountID  string          `db:"destination_account_id"` // Nullable
	Entity                string          `db:"entity"`
	Motive                string          `db:"motive"`
	Notes                 string          `db:"notes"`
	ConversionDate        time.Time       `db:"conversion_date"`
	AuditFields
}
