package repositories

import (
	"context"
	"time"

	"github.com/andeantrade/treasury_backend/internal/core/domain"
)

// LedgerEventRepository reads and settles outbox events. Events are appended by
// the movement/conversion writers inside the ledger transaction; this interface
// serves the aggregation worker.
type LedgerEventRepository interface {
	// ListPending returns unprocessed events in creation order, up to limit.
	ListPending(ctx context.Context, limit int) ([]domain.LedgerEvent, error)

	// MarkProcessed settles an event after its aggregation delta was applied.
	MarkProcessed(ctx context.Context, eventID string, at time.Time) error

	// MarkFailed records a processing failure, leaving the event pending for retry.
	MarkFailed(ctx context.Context, eventID string, lastError string) error
}
