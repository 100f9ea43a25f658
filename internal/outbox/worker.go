// Package outbox drains the ledger event table into the treasury aggregation.
// Events are appended in the same transaction as the ledger write they
// describe, so a crash between write and aggregation only delays the cache
// update instead of losing it.
package outbox

import (
	"context"
	"log/slog"
	"time"

	"github.com/andeantrade/treasury_backend/internal/core/domain"
	portsrepo "github.com/andeantrade/treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/andeantrade/treasury_backend/internal/core/ports/services"
	"github.com/andeantrade/treasury_backend/internal/middleware"
)

// Worker polls pending ledger events and applies their aggregation deltas in
// order. A failing event is recorded and retried on the next pass; later
// events still proceed, since each delta is independent of the others.
type Worker struct {
	events   portsrepo.LedgerEventRepository
	treasury portssvc.TreasurySvcFacade
	logger   *slog.Logger

	interval  time.Duration
	batchSize int
}

// NewWorker builds an aggregation worker polling at the given interval.
func NewWorker(events portsrepo.LedgerEventRepository, treasury portssvc.TreasurySvcFacade, logger *slog.Logger, interval time.Duration, batchSize int) *Worker {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Worker{
		events:    events,
		treasury:  treasury,
		logger:    logger,
		interval:  interval,
		batchSize: batchSize,
	}
}

// Run polls until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("Aggregation worker started", slog.Duration("interval", w.interval))
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Aggregation worker stopped")
			return
		case <-ticker.C:
			if _, err := w.ProcessOnce(ctx); err != nil {
				w.logger.Error("Aggregation pass failed", slog.String("error", err.Error()))
			}
		}
	}
}

// ProcessOnce drains one batch of pending events and reports how many were
// settled. Listing failures abort the pass; per-event failures do not.
func (w *Worker) ProcessOnce(ctx context.Context) (int, error) {
	pending, err := w.events.ListPending(ctx, w.batchSize)
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, event := range pending {
		if err := w.apply(ctx, event); err != nil {
			middleware.OutboxEventsFailed.Inc()
			w.logger.Error("Failed to apply ledger event",
				slog.String("event_id", event.EventID),
				slog.String("type", string(event.Type)),
				slog.Int("attempts", event.Attempts+1),
				slog.String("error", err.Error()))
			if markErr := w.events.MarkFailed(ctx, event.EventID, err.Error()); markErr != nil {
				w.logger.Error("Failed to record event failure",
					slog.String("event_id", event.EventID),
					slog.String("error", markErr.Error()))
			}
			continue
		}
		if err := w.events.MarkProcessed(ctx, event.EventID, time.Now().UTC()); err != nil {
			// The delta is applied but the event stays pending; the next pass
			// re-applies it. Deltas are not idempotent, so surface loudly.
			w.logger.Error("Applied event could not be marked processed",
				slog.String("event_id", event.EventID),
				slog.String("error", err.Error()))
			continue
		}
		middleware.OutboxEventsProcessed.Inc()
		processed++
	}
	return processed, nil
}

func (w *Worker) apply(ctx context.Context, event domain.LedgerEvent) error {
	switch event.Type {
	case domain.EventConversionRegistered:
		return w.treasury.ApplyConversionDelta(ctx, event)
	default:
		return w.treasury.ApplyMovementDelta(ctx, event)
	}
}
