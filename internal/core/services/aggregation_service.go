package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/andeantrade/treasury_backend/internal/apperrors"
	"github.com/andeantrade/treasury_backend/internal/core/domain"
	portsrepo "github.com/andeantrade/treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/andeantrade/treasury_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// aggregationService maintains the materialized treasury snapshot. It is the
// single writer of the snapshot: incremental deltas arrive through the outbox
// worker and full rebuilds replay the ledger.
type aggregationService struct {
	BaseService
	snapshotRepo   portsrepo.SnapshotRepository
	accountRepo    portsrepo.AccountReader
	movementRepo   portsrepo.MovementReader
	conversionRepo portsrepo.ConversionReader
	rateProvider   portssvc.RateProvider
	fallbackRate   decimal.Decimal
}

// NewAggregationService creates the treasury aggregation service. The fallback
// rate values USD holdings when the rate feed is unreachable.
func NewAggregationService(
	snapshotRepo portsrepo.SnapshotRepository,
	accountRepo portsrepo.AccountReader,
	movementRepo portsrepo.MovementReader,
	conversionRepo portsrepo.ConversionReader,
	rateProvider portssvc.RateProvider,
	fallbackRate decimal.Decimal,
) portssvc.TreasurySvcFacade {
	return &aggregationService{
		snapshotRepo:   snapshotRepo,
		accountRepo:    accountRepo,
		movementRepo:   movementRepo,
		conversionRepo: conversionRepo,
		rateProvider:   rateProvider,
		fallbackRate:   fallbackRate,
	}
}

var _ portssvc.TreasurySvcFacade = (*aggregationService)(nil)

// referenceRate returns the day's buy rate, or the configured fallback when
// the feed is unreachable. USD holdings are valued at the buy side because
// that is what selling them would fetch.
func (s *aggregationService) referenceRate(ctx context.Context) decimal.Decimal {
	pair, err := s.rateProvider.TodayRate(ctx)
	if err != nil {
		s.LogWarn(ctx, "Rate feed unavailable, using fallback reference rate",
			slog.String("error", err.Error()),
			slog.String("fallback", s.fallbackRate.String()))
		return s.fallbackRate
	}
	return pair.Buy
}

// refreshTotals recomputes the per-currency totals from the active accounts
// and re-derives the combined equivalent.
func (s *aggregationService) refreshTotals(ctx context.Context, snapshot *domain.TreasurySnapshot) error {
	accounts, err := s.accountRepo.ListAccounts(ctx, false)
	if err != nil {
		return fmt.Errorf("failed to list accounts for totals: %w", err)
	}
	totalUSD := decimal.Zero
	totalPEN := decimal.Zero
	for _, account := range accounts {
		totalUSD = totalUSD.Add(account.BalanceUSD)
		totalPEN = totalPEN.Add(account.BalancePEN)
	}
	snapshot.TotalUSD = totalUSD
	snapshot.TotalPEN = totalPEN
	snapshot.ReferenceRate = s.referenceRate(ctx)
	snapshot.RecomputeEquivalentTotal()
	return nil
}

// ReadSnapshot returns the materialized snapshot.
func (s *aggregationService) ReadSnapshot(ctx context.Context) (*domain.TreasurySnapshot, error) {
	return s.snapshotRepo.FindSnapshot(ctx)
}

// InitializeSnapshot writes a fresh aggregation document: per-currency totals
// recomputed from the active accounts, one empty current-month rollup and a
// zeroed year-to-date. Any existing snapshot is overwritten; FullRecompute is
// the path that also replays the ledger into the rollups.
func (s *aggregationService) InitializeSnapshot(ctx context.Context, actorID string) (*domain.TreasurySnapshot, error) {
	now := time.Now().UTC()
	snapshot := &domain.TreasurySnapshot{
		CurrentMonthKey: domain.MonthKey(now),
		Months:          map[string]domain.PeriodRollup{},
	}

	if err := s.refreshTotals(ctx, snapshot); err != nil {
		return nil, err
	}
	snapshot.UpdatedAt = now
	snapshot.UpdatedBy = actorID

	if err := s.snapshotRepo.SaveSnapshot(ctx, *snapshot); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Treasury snapshot initialized", slog.String("month", snapshot.CurrentMonthKey))
	return snapshot, nil
}

// FullRecompute rebuilds the snapshot from scratch off the ledger, replacing
// whatever accumulated state exists. This is the repair path when incremental
// updates are suspected to have drifted.
func (s *aggregationService) FullRecompute(ctx context.Context, actorID string) (*domain.TreasurySnapshot, error) {
	return s.rebuild(ctx, actorID)
}

// rebuild replays the current year's executed movements and conversions into a
// fresh snapshot and persists it.
func (s *aggregationService) rebuild(ctx context.Context, actorID string) (*domain.TreasurySnapshot, error) {
	now := time.Now().UTC()
	yearStart := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	nextYear := yearStart.AddDate(1, 0, 0)

	movements, err := s.movementRepo.ListExecutedMovementsInRange(ctx, yearStart, nextYear)
	if err != nil {
		return nil, fmt.Errorf("failed to load movements for rebuild: %w", err)
	}
	conversions, err := s.conversionRepo.ListConversionsInRange(ctx, yearStart, nextYear)
	if err != nil {
		return nil, fmt.Errorf("failed to load conversions for rebuild: %w", err)
	}

	snapshot := &domain.TreasurySnapshot{
		CurrentMonthKey: domain.MonthKey(now),
		Months:          map[string]domain.PeriodRollup{},
	}

	for _, m := range movements {
		movement := m
		snapshot.UpdateRollup(domain.MonthKey(movement.MovementDate), func(r *domain.PeriodRollup) {
			r.ApplyMovement(movement, false)
		})
		snapshot.YearToDate.ApplyMovement(movement, false)
	}
	for _, c := range conversions {
		conversion := c
		snapshot.UpdateRollup(domain.MonthKey(conversion.ConversionDate), func(r *domain.PeriodRollup) {
			r.ApplyConversion(conversion)
		})
		snapshot.YearToDate.ApplyConversion(conversion)
	}

	if err := s.refreshTotals(ctx, snapshot); err != nil {
		return nil, err
	}
	snapshot.UpdatedAt = now
	snapshot.UpdatedBy = actorID

	if err := s.snapshotRepo.SaveSnapshot(ctx, *snapshot); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Treasury snapshot rebuilt",
		slog.Int("movements", len(movements)),
		slog.Int("conversions", len(conversions)))
	return snapshot, nil
}

// ApplyMovementDelta folds one movement event into the snapshot. Before the
// snapshot is initialized this is a no-op; the first initialization replays
// the whole ledger anyway.
func (s *aggregationService) ApplyMovementDelta(ctx context.Context, event domain.LedgerEvent) error {
	if event.Movement == nil {
		return fmt.Errorf("%w: movement event %s has no movement payload", apperrors.ErrValidation, event.EventID)
	}

	snapshot, err := s.snapshotRepo.FindSnapshot(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Snapshot not initialized, skipping movement delta", slog.String("event_id", event.EventID))
			return nil
		}
		return err
	}

	movement := *event.Movement
	reversal := event.IsReversal()
	monthKey := domain.MonthKey(movement.MovementDate)

	snapshot.UpdateRollup(monthKey, func(r *domain.PeriodRollup) {
		r.ApplyMovement(movement, reversal)
	})
	if movement.MovementDate.UTC().Year() == time.Now().UTC().Year() {
		snapshot.YearToDate.ApplyMovement(movement, reversal)
	}

	if err := s.refreshTotals(ctx, snapshot); err != nil {
		return err
	}
	snapshot.UpdatedAt = time.Now().UTC()
	snapshot.UpdatedBy = event.CreatedBy

	return s.snapshotRepo.SaveSnapshot(ctx, *snapshot)
}

// ApplyConversionDelta folds one conversion event into the snapshot. No-op
// before initialization, like ApplyMovementDelta.
func (s *aggregationService) ApplyConversionDelta(ctx context.Context, event domain.LedgerEvent) error {
	if event.Conversion == nil {
		return fmt.Errorf("%w: conversion event %s has no conversion payload", apperrors.ErrValidation, event.EventID)
	}

	snapshot, err := s.snapshotRepo.FindSnapshot(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Snapshot not initialized, skipping conversion delta", slog.String("event_id", event.EventID))
			return nil
		}
		return err
	}

	conversion := *event.Conversion
	monthKey := domain.MonthKey(conversion.ConversionDate)

	snapshot.UpdateRollup(monthKey, func(r *domain.PeriodRollup) {
		r.ApplyConversion(conversion)
	})
	if conversion.ConversionDate.UTC().Year() == time.Now().UTC().Year() {
		snapshot.YearToDate.ApplyConversion(conversion)
	}

	if err := s.refreshTotals(ctx, snapshot); err != nil {
		return err
	}
	snapshot.UpdatedAt = time.Now().UTC()
	snapshot.UpdatedBy = event.CreatedBy

	return s.snapshotRepo.SaveSnapshot(ctx, *snapshot)
}

// LiveSummary computes an approximate summary straight from the accounts and
// the current month's ledger. It serves reads while no snapshot exists and is
// marked approximate because it covers only the running month.
func (s *aggregationService) LiveSummary(ctx context.Context) (*domain.LiveSummary, error) {
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	nextMonth := monthStart.AddDate(0, 1, 0)

	accounts, err := s.accountRepo.ListAccounts(ctx, false)
	if err != nil {
		return nil, err
	}
	movements, err := s.movementRepo.ListExecutedMovementsInRange(ctx, monthStart, nextMonth)
	if err != nil {
		return nil, err
	}
	conversions, err := s.conversionRepo.ListConversionsInRange(ctx, monthStart, nextMonth)
	if err != nil {
		return nil, err
	}

	summary := &domain.LiveSummary{
		MonthKey:    domain.MonthKey(now),
		Approximate: true,
		ComputedAt:  now,
	}

	totalUSD := decimal.Zero
	totalPEN := decimal.Zero
	for _, account := range accounts {
		totalUSD = totalUSD.Add(account.BalanceUSD)
		totalPEN = totalPEN.Add(account.BalancePEN)
	}
	summary.TotalUSD = totalUSD
	summary.TotalPEN = totalPEN
	summary.ReferenceRate = s.referenceRate(ctx)
	summary.TotalEquivalentPEN = totalPEN.Add(totalUSD.Mul(summary.ReferenceRate))

	for _, m := range movements {
		summary.Month.ApplyMovement(m, false)
	}
	for _, c := range conversions {
		summary.Month.ApplyConversion(c)
	}

	summary.AverageRate = summary.Month.AverageRate()
	if summary.Month.ConversionCount > 0 {
		summary.AverageSpread = summary.Month.SpreadAccum.Div(decimal.NewFromInt(int64(summary.Month.ConversionCount)))
	}

	return summary, nil
}
