package repositories

import (
	"context"

	"github.com/andeantrade/treasury_backend/internal/core/domain"
)

// SnapshotRepository persists the singleton treasury aggregation snapshot. It
// is injected into the aggregation service so tests can substitute an
// in-memory implementation and multiple ledger instances stay possible.
type SnapshotRepository interface {
	// FindSnapshot returns the snapshot, or apperrors.ErrNotFound when the
	// aggregation has never been initialized.
	FindSnapshot(ctx context.Context) (*domain.TreasurySnapshot, error)

	// SaveSnapshot overwrites the snapshot.
	SaveSnapshot(ctx context.Context, snapshot domain.TreasurySnapshot) error
}
