package dto

import (
	"github.com/andeantrade/treasury_backend/internal/core/domain"
)

// TreasurySummaryResponse carries either the materialized snapshot or the live
// fallback summary, with Source naming which one was served.
type TreasurySummaryResponse struct {
	Source   string                   `json:"source"` // "snapshot" or "live"
	Snapshot *domain.TreasurySnapshot `json:"snapshot,omitempty"`
	Live     *domain.LiveSummary      `json:"live,omitempty"`
}
