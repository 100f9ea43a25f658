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

// conversionService implements the ConversionSvcFacade interface
type conversionService struct {
	BaseService
	conversionRepo portsrepo.ConversionRepositoryFacade
	accountRepo    portsrepo.AccountReader
	rateProvider   portssvc.RateProvider
}

// NewConversionService creates a new conversion service.
func NewConversionService(conversionRepo portsrepo.ConversionRepositoryFacade, accountRepo portsrepo.AccountReader, rateProvider portssvc.RateProvider) portssvc.ConversionSvcFacade {
	return &conversionService{
		conversionRepo: conversionRepo,
		accountRepo:    accountRepo,
		rateProvider:   rateProvider,
	}
}

var _ portssvc.ConversionSvcFacade = (*conversionService)(nil)

// RegisterConversion derives the destination amount, spread and difference
// against the day's reference rate, then persists the conversion together with
// the movement legs it spawns for each linked account. Everything commits as
// one transaction.
func (s *conversionService) RegisterConversion(ctx context.Context, req dto.RegisterConversionRequest, actorID string) (*domain.Conversion, []domain.Movement, error) {
	if !req.OriginCurrency.Valid() {
		return nil, nil, fmt.Errorf("%w: invalid origin currency %q", apperrors.ErrValidation, req.OriginCurrency)
	}
	if !req.OriginAmount.IsPositive() {
		return nil, nil, fmt.Errorf("%w: origin amount must be positive", apperrors.ErrValidation)
	}
	if !req.AppliedRate.IsPositive() {
		return nil, nil, fmt.Errorf("%w: applied rate must be positive", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	conversionDate := req.Date
	if conversionDate.IsZero() {
		conversionDate = now
	}

	destinationCurrency := req.OriginCurrency.Opposite()
	destinationAmount := domain.ConvertedAmount(req.OriginCurrency, req.OriginAmount, req.AppliedRate)

	// The reference rate is best-effort: when the feed is unavailable the
	// applied rate stands in, which zeroes the spread and difference rather
	// than blocking the registration.
	referenceRate := req.AppliedRate
	if pair, err := s.rateProvider.TodayRate(ctx); err != nil {
		s.LogWarn(ctx, "Rate feed unavailable, using applied rate as reference", slog.String("error", err.Error()))
	} else {
		referenceRate = pair.ReferenceFor(req.OriginCurrency)
	}

	conversion := domain.Conversion{
		ConversionID:          uuid.NewString(),
		OriginCurrency:        req.OriginCurrency,
		DestinationCurrency:   destinationCurrency,
		OriginAmount:          req.OriginAmount,
		DestinationAmount:     destinationAmount,
		AppliedRate:           req.AppliedRate,
		ReferenceRate:         referenceRate,
		SpreadPercent:         domain.SpreadPercent(req.AppliedRate, referenceRate),
		DifferenceVsReference: domain.DifferenceVsReference(req.OriginCurrency, req.OriginAmount, destinationAmount, req.AppliedRate, referenceRate),
		SourceAccountID:       req.SourceAccountID,
		DestinationAccountID:  req.DestinationAccountID,
		Entity:                req.Entity,
		Motive:                req.Motive,
		Notes:                 req.Notes,
		ConversionDate:        conversionDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	legs, err := s.buildLegs(ctx, conversion, actorID)
	if err != nil {
		return nil, nil, err
	}

	var deltas []domain.BalanceDelta
	events := []domain.LedgerEvent{{
		EventID:    uuid.NewString(),
		Type:       domain.EventConversionRegistered,
		Conversion: &conversion,
		CreatedAt:  now,
		CreatedBy:  actorID,
	}}
	for i := range legs {
		deltas = append(deltas, legs[i].BalanceDeltas(false)...)
		events = append(events, domain.LedgerEvent{
			EventID:   uuid.NewString(),
			Type:      domain.EventMovementRegistered,
			Movement:  &legs[i],
			CreatedAt: now,
			CreatedBy: actorID,
		})
	}

	savedConversion, savedLegs, err := s.conversionRepo.SaveConversion(ctx, conversion, legs, deltas, events)
	if err != nil {
		s.LogError(ctx, err, "Failed to register conversion", slog.String("conversion_id", conversion.ConversionID))
		return nil, nil, err
	}

	middleware.ConversionsRegistered.Inc()
	middleware.MovementsRegistered.Add(float64(len(savedLegs)))
	s.LogInfo(ctx, "Conversion registered",
		slog.String("conversion_id", savedConversion.ConversionID),
		slog.String("number", savedConversion.Number),
		slog.String("direction", fmt.Sprintf("%s->%s", savedConversion.OriginCurrency, savedConversion.DestinationCurrency)),
		slog.Int("legs", len(savedLegs)))
	return savedConversion, savedLegs, nil
}

// buildLegs spawns the outbound and inbound movement legs for the linked
// accounts, after checking each account holds the currency its leg moves.
func (s *conversionService) buildLegs(ctx context.Context, c domain.Conversion, actorID string) ([]domain.Movement, error) {
	var ids []string
	if c.SourceAccountID != "" {
		ids = append(ids, c.SourceAccountID)
	}
	if c.DestinationAccountID != "" {
		ids = append(ids, c.DestinationAccountID)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	var legs []domain.Movement

	if c.SourceAccountID != "" {
		account, ok := accounts[c.SourceAccountID]
		if !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, c.SourceAccountID)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, c.SourceAccountID)
		}
		if !account.AcceptsCurrency(c.OriginCurrency) {
			return nil, fmt.Errorf("%w: account %s does not hold %s", apperrors.ErrValidation, c.SourceAccountID, c.OriginCurrency)
		}
		leg := domain.Movement{
			MovementID:      uuid.NewString(),
			Kind:            domain.KindConversionLeg,
			Direction:       domain.LegOutbound,
			Status:          domain.MovementExecuted,
			CurrencyCode:    c.OriginCurrency,
			Amount:          c.OriginAmount,
			ExchangeRate:    c.AppliedRate,
			SourceAccountID: c.SourceAccountID,
			Concept:         c.Motive,
			ConversionID:    c.ConversionID,
			MovementDate:    c.ConversionDate,
			AuditFields:     c.AuditFields,
		}
		leg.ComputeEquivalents()
		legs = append(legs, leg)
	}

	if c.DestinationAccountID != "" {
		account, ok := accounts[c.DestinationAccountID]
		if !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, c.DestinationAccountID)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, c.DestinationAccountID)
		}
		if !account.AcceptsCurrency(c.DestinationCurrency) {
			return nil, fmt.Errorf("%w: account %s does not hold %s", apperrors.ErrValidation, c.DestinationAccountID, c.DestinationCurrency)
		}
		leg := domain.Movement{
			MovementID:           uuid.NewString(),
			Kind:                 domain.KindConversionLeg,
			Direction:            domain.LegInbound,
			Status:               domain.MovementExecuted,
			CurrencyCode:         c.DestinationCurrency,
			Amount:               c.DestinationAmount,
			ExchangeRate:         c.AppliedRate,
			DestinationAccountID: c.DestinationAccountID,
			Concept:              c.Motive,
			ConversionID:         c.ConversionID,
			MovementDate:         c.ConversionDate,
			AuditFields:          c.AuditFields,
		}
		leg.ComputeEquivalents()
		legs = append(legs, leg)
	}

	return legs, nil
}

// GetConversionByID retrieves a specific conversion.
func (s *conversionService) GetConversionByID(ctx context.Context, conversionID string) (*domain.Conversion, error) {
	return s.conversionRepo.FindConversionByID(ctx, conversionID)
}

// ListConversions retrieves conversions matching the filter.
func (s *conversionService) ListConversions(ctx context.Context, filter domain.ConversionListFilter) ([]domain.Conversion, error) {
	return s.conversionRepo.ListConversions(ctx, filter)
}
