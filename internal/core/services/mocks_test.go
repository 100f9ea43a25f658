package services_test

import (
	"context"
	"time"

	"github.com/andeantrade/treasury_backend/internal/core/domain"
	portsrepo "github.com/andeantrade/treasury_backend/internal/core/ports/repositories"
	portssvc "github.com/andeantrade/treasury_backend/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, actor string, now time.Time) error {
	args := m.Called(ctx, accountID, actor, now)
	return args.Error(0)
}

func (m *MockAccountRepository) SetAccountBalances(ctx context.Context, accountID string, balanceUSD, balancePEN decimal.Decimal, actor string, now time.Time) error {
	args := m.Called(ctx, accountID, balanceUSD, balancePEN, actor, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ApplyBalanceDeltasInTx(ctx context.Context, tx pgx.Tx, deltas []domain.BalanceDelta, actor string, now time.Time) error {
	args := m.Called(ctx, tx, deltas, actor, now)
	return args.Error(0)
}

// MockMovementRepository is a mock type for the MovementRepositoryFacade interface
type MockMovementRepository struct {
	mock.Mock
}

var _ portsrepo.MovementRepositoryFacade = (*MockMovementRepository)(nil)

func (m *MockMovementRepository) FindMovementByID(ctx context.Context, movementID string) (*domain.Movement, error) {
	args := m.Called(ctx, movementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movement), args.Error(1)
}

func (m *MockMovementRepository) ListMovements(ctx context.Context, filter domain.MovementListFilter) ([]domain.Movement, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Movement), args.Error(1)
}

func (m *MockMovementRepository) ListMovementsByAccount(ctx context.Context, accountID string) ([]domain.Movement, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Movement), args.Error(1)
}

func (m *MockMovementRepository) ListExecutedMovementsInRange(ctx context.Context, from, to time.Time) ([]domain.Movement, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Movement), args.Error(1)
}

func (m *MockMovementRepository) SaveMovement(ctx context.Context, movement domain.Movement, deltas []domain.BalanceDelta, event domain.LedgerEvent) (*domain.Movement, error) {
	args := m.Called(ctx, movement, deltas, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Movement), args.Error(1)
}

func (m *MockMovementRepository) UpdateMovement(ctx context.Context, movement domain.Movement, deltas []domain.BalanceDelta, events []domain.LedgerEvent) error {
	args := m.Called(ctx, movement, deltas, events)
	return args.Error(0)
}

func (m *MockMovementRepository) VoidMovement(ctx context.Context, movement domain.Movement, deltas []domain.BalanceDelta, event domain.LedgerEvent) error {
	args := m.Called(ctx, movement, deltas, event)
	return args.Error(0)
}

// MockConversionRepository is a mock type for the ConversionRepositoryFacade interface
type MockConversionRepository struct {
	mock.Mock
}

var _ portsrepo.ConversionRepositoryFacade = (*MockConversionRepository)(nil)

func (m *MockConversionRepository) FindConversionByID(ctx context.Context, conversionID string) (*domain.Conversion, error) {
	args := m.Called(ctx, conversionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversion), args.Error(1)
}

func (m *MockConversionRepository) ListConversions(ctx context.Context, filter domain.ConversionListFilter) ([]domain.Conversion, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Conversion), args.Error(1)
}

func (m *MockConversionRepository) ListConversionsInRange(ctx context.Context, from, to time.Time) ([]domain.Conversion, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Conversion), args.Error(1)
}

func (m *MockConversionRepository) SaveConversion(ctx context.Context, conversion domain.Conversion, legs []domain.Movement, deltas []domain.BalanceDelta, events []domain.LedgerEvent) (*domain.Conversion, []domain.Movement, error) {
	args := m.Called(ctx, conversion, legs, deltas, events)
	var savedConversion *domain.Conversion
	if args.Get(0) != nil {
		savedConversion = args.Get(0).(*domain.Conversion)
	}
	var savedLegs []domain.Movement
	if args.Get(1) != nil {
		savedLegs = args.Get(1).([]domain.Movement)
	}
	return savedConversion, savedLegs, args.Error(2)
}

// MockSnapshotRepository is a mock type for the SnapshotRepository interface
type MockSnapshotRepository struct {
	mock.Mock
}

var _ portsrepo.SnapshotRepository = (*MockSnapshotRepository)(nil)

func (m *MockSnapshotRepository) FindSnapshot(ctx context.Context) (*domain.TreasurySnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TreasurySnapshot), args.Error(1)
}

func (m *MockSnapshotRepository) SaveSnapshot(ctx context.Context, snapshot domain.TreasurySnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

// MockRateProvider is a mock type for the RateProvider interface
type MockRateProvider struct {
	mock.Mock
}

var _ portssvc.RateProvider = (*MockRateProvider)(nil)

func (m *MockRateProvider) TodayRate(ctx context.Context) (domain.RatePair, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.RatePair), args.Error(1)
}
