package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/andeantrade/treasury_backend/internal/apperrors"
	"github.com/andeantrade/treasury_backend/internal/core/domain"
	portsrepo "github.com/andeantrade/treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/andeantrade/treasury_backend/internal/core/ports/services"
	"github.com/andeantrade/treasury_backend/internal/dto"
	"github.com/andeantrade/treasury_backend/internal/middleware"
	"github.com/google/uuid"
)

// movementService implements the MovementSvcFacade interface
type movementService struct {
	BaseService
	movementRepo portsrepo.MovementRepositoryFacade
	accountRepo  portsrepo.AccountReader
}

// NewMovementService creates a new movement service.
func NewMovementService(movementRepo portsrepo.MovementRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.MovementSvcFacade {
	return &movementService{
		movementRepo: movementRepo,
		accountRepo:  accountRepo,
	}
}

var _ portssvc.MovementSvcFacade = (*movementService)(nil)

// validateLinkedAccounts checks that every referenced account exists, is
// active and accepts the movement's currency.
func (s *movementService) validateLinkedAccounts(ctx context.Context, m domain.Movement) error {
	var ids []string
	if m.SourceAccountID != "" {
		ids = append(ids, m.SourceAccountID)
	}
	if m.DestinationAccountID != "" {
		ids = append(ids, m.DestinationAccountID)
	}
	if len(ids) == 0 {
		return fmt.Errorf("%w: movement must reference at least one account", apperrors.ErrValidation)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		account, ok := accounts[id]
		if !ok {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
		}
		if !account.IsActive {
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
		if !account.AcceptsCurrency(m.CurrencyCode) {
			return fmt.Errorf("%w: account %s does not hold %s", apperrors.ErrValidation, id, m.CurrencyCode)
		}
	}
	return nil
}

func validateMovementFigures(m domain.Movement) error {
	if !domain.ValidMovementKind(m.Kind) {
		return fmt.Errorf("%w: unknown movement kind %q", apperrors.ErrValidation, m.Kind)
	}
	if m.Kind == domain.KindConversionLeg {
		if m.Direction != domain.LegInbound && m.Direction != domain.LegOutbound {
			return fmt.Errorf("%w: conversion leg requires an explicit direction", apperrors.ErrValidation)
		}
	} else if m.Direction != "" {
		return fmt.Errorf("%w: direction is only valid on conversion legs", apperrors.ErrValidation)
	}
	if !m.CurrencyCode.Valid() {
		return fmt.Errorf("%w: invalid currency code %q", apperrors.ErrValidation, m.CurrencyCode)
	}
	if !m.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	if !m.ExchangeRate.IsPositive() {
		return fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	return nil
}

// RegisterMovement validates and persists a new movement. The record, the
// account balance deltas and the outbox event commit as one transaction.
func (s *movementService) RegisterMovement(ctx context.Context, req dto.RegisterMovementRequest, actorID string) (*domain.Movement, error) {
	now := time.Now().UTC()
	movementDate := req.Date
	if movementDate.IsZero() {
		movementDate = now
	}

	movement := domain.Movement{
		MovementID:           uuid.NewString(),
		Kind:                 req.Kind,
		Direction:            req.Direction,
		Status:               domain.MovementExecuted,
		CurrencyCode:         req.CurrencyCode,
		Amount:               req.Amount,
		ExchangeRate:         req.ExchangeRate,
		SourceAccountID:      req.SourceAccountID,
		DestinationAccountID: req.DestinationAccountID,
		Method:               req.Method,
		Concept:              req.Concept,
		Reference:            req.Reference,
		Notes:                req.Notes,
		RelatedDocumentID:    req.RelatedDocumentID,
		RelatedDocumentType:  req.RelatedDocumentType,
		MovementDate:         movementDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := validateMovementFigures(movement); err != nil {
		return nil, err
	}
	if err := s.validateLinkedAccounts(ctx, movement); err != nil {
		return nil, err
	}

	movement.ComputeEquivalents()

	event := domain.LedgerEvent{
		EventID:   uuid.NewString(),
		Type:      domain.EventMovementRegistered,
		Movement:  &movement,
		CreatedAt: now,
		CreatedBy: actorID,
	}

	saved, err := s.movementRepo.SaveMovement(ctx, movement, movement.BalanceDeltas(false), event)
	if err != nil {
		s.LogError(ctx, err, "Failed to register movement", slog.String("movement_id", movement.MovementID))
		return nil, err
	}

	middleware.MovementsRegistered.Inc()
	s.LogInfo(ctx, "Movement registered",
		slog.String("movement_id", saved.MovementID),
		slog.String("number", saved.Number),
		slog.String("kind", string(saved.Kind)))
	return saved, nil
}

// GetMovementByID retrieves a specific movement.
func (s *movementService) GetMovementByID(ctx context.Context, movementID string) (*domain.Movement, error) {
	return s.movementRepo.FindMovementByID(ctx, movementID)
}

// ListMovements retrieves movements matching the filter.
func (s *movementService) ListMovements(ctx context.Context, filter domain.MovementListFilter) ([]domain.Movement, error) {
	return s.movementRepo.ListMovements(ctx, filter)
}

// UpdateMovement amends an executed movement. The old balance effect is
// reversed and the amended one applied in the same transaction, so the update
// is equivalent to a void followed by a fresh registration but keeps the
// movement's identity and number.
func (s *movementService) UpdateMovement(ctx context.Context, movementID string, req dto.UpdateMovementRequest, actorID string) (*domain.Movement, error) {
	movement, err := s.movementRepo.FindMovementByID(ctx, movementID)
	if err != nil {
		return nil, err
	}
	if movement.Status == domain.MovementVoided {
		return nil, fmt.Errorf("%w: movement %s is voided", apperrors.ErrConflict, movementID)
	}
	if movement.ConversionID != "" {
		return nil, fmt.Errorf("%w: conversion legs can only change through their conversion", apperrors.ErrConflict)
	}

	previous := *movement

	if req.Kind != nil {
		if *req.Kind == domain.KindConversionLeg {
			return nil, fmt.Errorf("%w: cannot turn a movement into a conversion leg", apperrors.ErrValidation)
		}
		movement.Kind = *req.Kind
	}
	if req.CurrencyCode != nil {
		movement.CurrencyCode = *req.CurrencyCode
	}
	if req.Amount != nil {
		movement.Amount = *req.Amount
	}
	if req.ExchangeRate != nil {
		movement.ExchangeRate = *req.ExchangeRate
	}
	if req.Method != nil {
		movement.Method = *req.Method
	}
	if req.Concept != nil {
		movement.Concept = *req.Concept
	}
	if req.Reference != nil {
		movement.Reference = *req.Reference
	}
	if req.Notes != nil {
		movement.Notes = *req.Notes
	}
	if req.Date != nil {
		movement.MovementDate = *req.Date
	}

	if err := validateMovementFigures(*movement); err != nil {
		return nil, err
	}
	if err := s.validateLinkedAccounts(ctx, *movement); err != nil {
		return nil, err
	}

	movement.ComputeEquivalents()

	now := time.Now().UTC()
	movement.LastUpdatedAt = now
	movement.LastUpdatedBy = actorID

	// Reverse the old figures, then apply the new ones. Balance-neutral edits
	// still produce an empty net delta, which the repository applies as a no-op.
	deltas := append(previous.BalanceDeltas(true), movement.BalanceDeltas(false)...)

	events := []domain.LedgerEvent{
		{
			EventID:   uuid.NewString(),
			Type:      domain.EventMovementAmended,
			Movement:  &previous,
			CreatedAt: now,
			CreatedBy: actorID,
		},
		{
			EventID:   uuid.NewString(),
			Type:      domain.EventMovementRegistered,
			Movement:  movement,
			CreatedAt: now,
			CreatedBy: actorID,
		},
	}

	if err := s.movementRepo.UpdateMovement(ctx, *movement, deltas, events); err != nil {
		s.LogError(ctx, err, "Failed to update movement", slog.String("movement_id", movementID))
		return nil, err
	}

	s.LogInfo(ctx, "Movement amended", slog.String("movement_id", movementID), slog.String("number", movement.Number))
	return movement, nil
}

// VoidMovement marks the movement voided and reverses its balance effect. The
// record itself stays in the ledger.
func (s *movementService) VoidMovement(ctx context.Context, movementID string, actorID string) (*domain.Movement, error) {
	movement, err := s.movementRepo.FindMovementByID(ctx, movementID)
	if err != nil {
		return nil, err
	}
	if movement.Status == domain.MovementVoided {
		return nil, fmt.Errorf("%w: movement %s is already voided", apperrors.ErrConflict, movementID)
	}
	if movement.ConversionID != "" {
		return nil, fmt.Errorf("%w: conversion legs can only change through their conversion", apperrors.ErrConflict)
	}

	now := time.Now().UTC()
	voided := *movement
	voided.Status = domain.MovementVoided
	voided.VoidedAt = &now
	voided.VoidedBy = actorID
	voided.LastUpdatedAt = now
	voided.LastUpdatedBy = actorID

	event := domain.LedgerEvent{
		EventID:   uuid.NewString(),
		Type:      domain.EventMovementVoided,
		Movement:  movement, // pre-void figures; the aggregation reverses them
		CreatedAt: now,
		CreatedBy: actorID,
	}

	if err := s.movementRepo.VoidMovement(ctx, voided, movement.BalanceDeltas(true), event); err != nil {
		s.LogError(ctx, err, "Failed to void movement", slog.String("movement_id", movementID))
		return nil, err
	}

	s.LogInfo(ctx, "Movement voided", slog.String("movement_id", movementID), slog.String("number", movement.Number))
	return &voided, nil
}
