package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LiveSummary is the on-demand fallback computed when no materialized snapshot
// exists. It covers only the current calendar month, so its accumulated
// difference figure is an approximation of the year-to-date value; Approximate
// marks that openly.
type LiveSummary struct {
	TotalUSD           decimal.Decimal `json:"totalUSD"`
	TotalPEN           decimal.Decimal `json:"totalPEN"`
	TotalEquivalentPEN decimal.Decimal `json:"totalEquivalentPEN"`
	ReferenceRate      decimal.Decimal `json:"referenceRate"`
	MonthKey           string          `json:"monthKey"`
	Month              PeriodRollup    `json:"month"`
	AverageRate        decimal.Decimal `json:"averageRate"`
	AverageSpread      decimal.Decimal `json:"averageSpread"`
	Approximate        bool            `json:"approximate"`
	ComputedAt         time.Time       `json:"computedAt"`
}

// MovementListFilter narrows a movement listing. Zero values mean "no filter".
// Account filtering matches the source side only.
type MovementListFilter struct {
	Kind            MovementKind
	Status          MovementStatus
	Currency        Currency
	SourceAccountID string
	From            *time.Time
	To              *time.Time
	Limit           int
}

// ConversionListFilter narrows a conversion listing.
type ConversionListFilter struct {
	OriginCurrency Currency
	Entity         string
	From           *time.Time
	To             *time.Time
	Limit          int
}
