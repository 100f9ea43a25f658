package services

import (
	"context"

	"github.com/andeantrade/treasury_backend/internal/core/domain"
	"github.com/andeantrade/treasury_backend/internal/dto"
)

// MovementReaderSvc defines read operations for ledger movements
type MovementReaderSvc interface {
	// GetMovementByID retrieves a specific movement by its unique identifier.
	GetMovementByID(ctx context.Context, movementID string) (*domain.Movement, error)

	// ListMovements retrieves movements matching the filter, newest first.
	ListMovements(ctx context.Context, filter domain.MovementListFilter) ([]domain.Movement, error)
}

// MovementWriterSvc defines write operations for ledger movements
type MovementWriterSvc interface {
	// RegisterMovement validates and persists a new movement, applying its
	// balance deltas to the linked accounts in the same transaction.
	RegisterMovement(ctx context.Context, req dto.RegisterMovementRequest, actorID string) (*domain.Movement, error)

	// UpdateMovement amends an executed movement. When the monetary fields
	// change, the old deltas are reversed and the new ones applied.
	UpdateMovement(ctx context.Context, movementID string, req dto.UpdateMovementRequest, actorID string) (*domain.Movement, error)

	// VoidMovement marks a movement VOIDED and reverses its balance deltas.
	// Voiding an already voided movement fails with ErrConflict.
	VoidMovement(ctx context.Context, movementID string, actorID string) (*domain.Movement, error)
}

// MovementSvcFacade combines all movement-related service interfaces
type MovementSvcFacade interface {
	MovementReaderSvc
	MovementWriterSvc
}
