package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager exposes database transaction control for repositories that
// compose multi-statement units of work.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	Rollback(ctx context.Context, tx pgx.Tx) error
}

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	AccountRepo    AccountRepositoryFacade
	MovementRepo   MovementRepositoryFacade
	ConversionRepo ConversionRepositoryFacade
	SnapshotRepo   SnapshotRepository
	EventRepo      LedgerEventRepository
}
