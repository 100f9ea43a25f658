package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TreasurySnapshot is the singleton aggregation row (id is always 1). The
// per-month rollups live in JSONB columns; everything queried individually
// gets its own column.
type TreasurySnapshot struct {
	ID                 int             `db:"id"`
	TotalUSD           decimal.Decimal `db:"total_usd"`
	TotalPEN           decimal.Decimal `db:"total_pen"`
	TotalEquivalentPEN decimal.Decimal `db:"total_equivalent_pen"`
	ReferenceRate      decimal.Decimal `db:"reference_rate"`
	CurrentMonthKey    string          `db:"current_month_key"`
	CurrentMonth       []byte          `db:"current_month"` // JSONB PeriodRollup
	Months             []byte          `db:"months"`        // JSONB map[monthKey]PeriodRollup
	YearToDate         []byte          `db:"year_to_date"`  // JSONB PeriodRollup
	UpdatedAt          time.Time       `db:"updated_at"`
	UpdatedBy          string          `db:"updated_by"`
}
