package services

import (
	"context"

	"github.com/andeantrade/treasury_backend/internal/core/domain"
)

// TreasuryReaderSvc defines read operations over the aggregation state
type TreasuryReaderSvc interface {
	// ReadSnapshot returns the materialized snapshot, or ErrNotFound when the
	// aggregation document has never been initialized.
	ReadSnapshot(ctx context.Context) (*domain.TreasurySnapshot, error)

	// LiveSummary computes an approximate summary directly from accounts and
	// the current month's movements, for use when no snapshot exists.
	LiveSummary(ctx context.Context) (*domain.LiveSummary, error)
}

// TreasuryWriterSvc defines operations that build or rebuild the snapshot
type TreasuryWriterSvc interface {
	// InitializeSnapshot creates the aggregation document by replaying the
	// current year's ledger. It fails with ErrDuplicate if one already exists.
	InitializeSnapshot(ctx context.Context, actorID string) (*domain.TreasurySnapshot, error)

	// FullRecompute rebuilds the snapshot from scratch off the ledger.
	FullRecompute(ctx context.Context, actorID string) (*domain.TreasurySnapshot, error)
}

// TreasuryApplierSvc applies incremental ledger deltas to the snapshot. The
// outbox worker is its only caller; both methods are no-ops when no snapshot
// has been initialized yet.
type TreasuryApplierSvc interface {
	ApplyMovementDelta(ctx context.Context, event domain.LedgerEvent) error
	ApplyConversionDelta(ctx context.Context, event domain.LedgerEvent) error
}

// TreasurySvcFacade combines all treasury aggregation service interfaces
type TreasurySvcFacade interface {
	TreasuryReaderSvc
	TreasuryWriterSvc
	TreasuryApplierSvc
}
