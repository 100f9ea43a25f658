package pgsql

import (
	portsrepo "github.com/andeantrade/treasury_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	movementRepo := newPgxMovementRepository(dbPool, accountRepo)
	conversionRepo := newPgxConversionRepository(dbPool, accountRepo)
	snapshotRepo := newPgxSnapshotRepository(dbPool)
	eventRepo := newPgxLedgerEventRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo:    accountRepo,
		MovementRepo:   movementRepo,
		ConversionRepo: conversionRepo,
		SnapshotRepo:   snapshotRepo,
		EventRepo:      eventRepo,
	}
}
