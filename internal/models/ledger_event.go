package models

import (
	"time"
)

// LedgerEvent is an outbox row. Payload carries the movement or conversion as
// JSON so the aggregation worker replays exactly what the ledger committed.
type LedgerEvent struct {
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	Payload     []byte     `db:"payload"` // JSONB
	CreatedAt   time.Time  `db:"created_at"`
	CreatedBy   string     `db:"created_by"`
	ProcessedAt *time.Time `db:"processed_at"`
	Attempts    int        `db:"attempts"`
	LastError   string     `db:"last_error"`
}
