package repositories

import (
	"context"
	"time"

	"github.com/andeantrade/treasury_backend/internal/core/domain"
)

// MovementReader defines read operations for movement data.
type MovementReader interface {
	// FindMovementByID retrieves a specific movement by its unique identifier.
	FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error)

	// ListMovements retrieves movements matching the filter, newest first.
	ListMovements(ctx context.Context, filter domain.MovementListFilter) ([]domain.Movement, error)

	// ListMovementsByAccount retrieves every movement referencing the account as
	// source or destination, regardless of status, oldest first. Used by the
	// balance recompute path.
	ListMovementsByAccount(ctx context.Context, accountID string) ([]domain.Movement, error)

	// ListExecutedMovementsInRange retrieves executed movements with an
	// effective date in [from, to), oldest first. Used by the full recompute.
	ListExecutedMovementsInRange(ctx context.Context, from, to time.Time) ([]domain.Movement, error)
}

// MovementWriter defines the transactional write operations for movements.
// Each call commits the record, its account balance deltas, the sequence
// counter increment and the outbox event(s) as one database transaction.
type MovementWriter interface {
	// SaveMovement persists a new movement, assigning its sequence number from
	// the atomic counter. The returned movement carries the assigned number.
	SaveMovement(ctx context.Context, movement domain.Movement, deltas []domain.BalanceDelta, event domain.LedgerEvent) (*domain.Movement, error)

	// UpdateMovement persists an amended movement together with the correcting
	// balance deltas and the amendment events.
	UpdateMovement(ctx context.Context, movement domain.Movement, deltas []domain.BalanceDelta, events []domain.LedgerEvent) error

	// VoidMovement transitions the movement to voided, applying the reversing
	// deltas and appending the void event.
	VoidMovement(ctx context.Context, movement domain.Movement, deltas []domain.BalanceDelta, event domain.LedgerEvent) error
}

// MovementRepositoryFacade combines all movement-related repository interfaces.
type MovementRepositoryFacade interface {
	MovementReader
	MovementWriter
}
