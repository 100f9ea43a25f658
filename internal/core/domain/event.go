package domain

import (
	"time"
)

// LedgerEventType identifies what a ledger event records.
type LedgerEventType string

const (
	EventMovementRegistered   LedgerEventType = "MOVEMENT_REGISTERED"
	EventMovementVoided       LedgerEventType = "MOVEMENT_VOIDED"
	EventMovementAmended      LedgerEventType = "MOVEMENT_AMENDED" // Reversal of the pre-edit figures
	EventConversionRegistered LedgerEventType = "CONVERSION_REGISTERED"
)

// LedgerEvent is one outbox record appended in the same transaction as the
// ledger write it describes. The aggregation worker consumes events in order;
// a failed event stays unprocessed and is retried, so a cache update is never
// silently lost.
type LedgerEvent struct {
	EventID     string          `json:"eventID"` // Primary Key (UUID)
	Type        LedgerEventType `json:"type"`
	Movement    *Movement       `json:"movement,omitempty"`   // Snapshot of the record at event time
	Conversion  *Conversion     `json:"conversion,omitempty"` // Set for conversion events
	CreatedAt   time.Time       `json:"createdAt"`
	CreatedBy   string          `json:"createdBy"`
	ProcessedAt *time.Time      `json:"processedAt,omitempty"`
	Attempts    int             `json:"attempts"`
	LastError   string          `json:"lastError,omitempty"`
}

// IsReversal reports whether the event's movement deltas must be applied with
// inverted sign to the aggregation rollups.
func (e LedgerEvent) IsReversal() bool {
	return e.Type == EventMovementVoided || e.Type == EventMovementAmended
}
