package services_test

import (
	"context"
	"testing"

	"github.com/andeantrade/treasury_backend/internal/apperrors"
	"github.com/andeantrade/treasury_backend/internal/core/domain"
	portssvc "github.com/andeantrade/treasury_backend/internal/core/ports/services"
	"github.com/andeantrade/treasury_backend/internal/core/services"
	"github.com/andeantrade/treasury_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MovementServiceTestSuite struct {
	suite.Suite
	mockMovementRepo *MockMovementRepository
	mockAccountRepo  *MockAccountRepository
	service          portssvc.MovementSvcFacade
}

func (suite *MovementServiceTestSuite) SetupTest() {
	suite.mockMovementRepo = new(MockMovementRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewMovementService(suite.mockMovementRepo, suite.mockAccountRepo)
}

func (suite *MovementServiceTestSuite) activeAccount(id string, currency domain.Currency) domain.Account {
	return domain.Account{
		AccountID:    id,
		CurrencyCode: currency,
		IsActive:     true,
	}
}

func (suite *MovementServiceTestSuite) TestRegisterMovement_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := dto.RegisterMovementRequest{
		Kind:                 domain.KindSaleIncome,
		CurrencyCode:         domain.CurrencyUSD,
		Amount:               decimal.NewFromInt(100),
		ExchangeRate:         decimal.RequireFromString("3.70"),
		Concept:              "Sale of imported goods",
		DestinationAccountID: accountID,
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{accountID}).
		Return(map[string]domain.Account{accountID: suite.activeAccount(accountID, domain.CurrencyUSD)}, nil).Once()

	suite.mockMovementRepo.On("SaveMovement", ctx,
		mock.MatchedBy(func(m domain.Movement) bool {
			return m.Status == domain.MovementExecuted &&
				m.AmountPEN.Equal(decimal.NewFromInt(370)) &&
				!m.MovementDate.IsZero()
		}),
		mock.MatchedBy(func(deltas []domain.BalanceDelta) bool {
			return len(deltas) == 1 && deltas[0].AccountID == accountID &&
				deltas[0].Amount.Equal(decimal.NewFromInt(100))
		}),
		mock.MatchedBy(func(e domain.LedgerEvent) bool {
			return e.Type == domain.EventMovementRegistered && e.Movement != nil
		}),
	).Return(&domain.Movement{MovementID: "mv-1", Number: "MOV-2026-0001"}, nil).Once()

	saved, err := suite.service.RegisterMovement(ctx, req, "actor-1")

	suite.Require().NoError(err)
	suite.Equal("MOV-2026-0001", saved.Number)
	suite.mockMovementRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *MovementServiceTestSuite) TestRegisterMovement_NoAccounts() {
	req := dto.RegisterMovementRequest{
		Kind:         domain.KindOperatingExpense,
		CurrencyCode: domain.CurrencyPEN,
		Amount:       decimal.NewFromInt(10),
		ExchangeRate: decimal.RequireFromString("3.70"),
		Concept:      "Office supplies",
	}

	_, err := suite.service.RegisterMovement(context.Background(), req, "actor-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockMovementRepo.AssertNotCalled(suite.T(), "SaveMovement")
}

func (suite *MovementServiceTestSuite) TestRegisterMovement_DirectionOnNonLeg() {
	req := dto.RegisterMovementRequest{
		Kind:            domain.KindSaleIncome,
		Direction:       domain.LegInbound,
		CurrencyCode:    domain.CurrencyUSD,
		Amount:          decimal.NewFromInt(10),
		ExchangeRate:    decimal.RequireFromString("3.70"),
		Concept:         "Sale",
		SourceAccountID: "acc-1",
	}

	_, err := suite.service.RegisterMovement(context.Background(), req, "actor-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *MovementServiceTestSuite) TestRegisterMovement_CurrencyMismatch() {
	ctx := context.Background()
	accountID := uuid.NewString()
	req := dto.RegisterMovementRequest{
		Kind:            domain.KindPurchasePayment,
		CurrencyCode:    domain.CurrencyUSD,
		Amount:          decimal.NewFromInt(10),
		ExchangeRate:    decimal.RequireFromString("3.70"),
		Concept:         "Supplier payment",
		SourceAccountID: accountID,
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{accountID}).
		Return(map[string]domain.Account{accountID: suite.activeAccount(accountID, domain.CurrencyPEN)}, nil).Once()

	_, err := suite.service.RegisterMovement(ctx, req, "actor-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockMovementRepo.AssertNotCalled(suite.T(), "SaveMovement")
}

func (suite *MovementServiceTestSuite) TestRegisterMovement_InactiveAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := suite.activeAccount(accountID, domain.CurrencyUSD)
	account.IsActive = false
	req := dto.RegisterMovementRequest{
		Kind:            domain.KindPurchasePayment,
		CurrencyCode:    domain.CurrencyUSD,
		Amount:          decimal.NewFromInt(10),
		ExchangeRate:    decimal.RequireFromString("3.70"),
		Concept:         "Supplier payment",
		SourceAccountID: accountID,
	}

	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{accountID}).
		Return(map[string]domain.Account{accountID: account}, nil).Once()

	_, err := suite.service.RegisterMovement(ctx, req, "actor-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *MovementServiceTestSuite) TestUpdateMovement_ReversesOldAndAppliesNew() {
	ctx := context.Background()
	movementID := uuid.NewString()
	accountID := uuid.NewString()
	existing := &domain.Movement{
		MovementID:           movementID,
		Number:               "MOV-2026-0007",
		Kind:                 domain.KindSaleIncome,
		Status:               domain.MovementExecuted,
		CurrencyCode:         domain.CurrencyUSD,
		Amount:               decimal.NewFromInt(100),
		ExchangeRate:         decimal.RequireFromString("3.70"),
		Concept:              "Sale",
		DestinationAccountID: accountID,
	}
	newAmount := decimal.NewFromInt(150)

	suite.mockMovementRepo.On("FindMovementByID", ctx, movementID).Return(existing, nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{accountID}).
		Return(map[string]domain.Account{accountID: suite.activeAccount(accountID, domain.CurrencyUSD)}, nil).Once()

	suite.mockMovementRepo.On("UpdateMovement", ctx,
		mock.MatchedBy(func(m domain.Movement) bool {
			return m.Amount.Equal(newAmount) && m.Number == "MOV-2026-0007"
		}),
		mock.MatchedBy(func(deltas []domain.BalanceDelta) bool {
			// -100 reversal then +150 application on the destination account
			return len(deltas) == 2 &&
				deltas[0].Amount.Equal(decimal.NewFromInt(-100)) &&
				deltas[1].Amount.Equal(decimal.NewFromInt(150))
		}),
		mock.MatchedBy(func(events []domain.LedgerEvent) bool {
			return len(events) == 2 &&
				events[0].Type == domain.EventMovementAmended &&
				events[0].Movement.Amount.Equal(decimal.NewFromInt(100)) &&
				events[1].Type == domain.EventMovementRegistered &&
				events[1].Movement.Amount.Equal(newAmount)
		}),
	).Return(nil).Once()

	updated, err := suite.service.UpdateMovement(ctx, movementID, dto.UpdateMovementRequest{Amount: &newAmount}, "actor-1")

	suite.Require().NoError(err)
	suite.True(updated.Amount.Equal(newAmount))
	suite.True(updated.AmountPEN.Equal(decimal.RequireFromString("555")))
	suite.mockMovementRepo.AssertExpectations(suite.T())
}

func (suite *MovementServiceTestSuite) TestUpdateMovement_VoidedRejected() {
	ctx := context.Background()
	movementID := uuid.NewString()
	existing := &domain.Movement{
		MovementID: movementID,
		Status:     domain.MovementVoided,
	}

	suite.mockMovementRepo.On("FindMovementByID", ctx, movementID).Return(existing, nil).Once()

	_, err := suite.service.UpdateMovement(ctx, movementID, dto.UpdateMovementRequest{}, "actor-1")

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockMovementRepo.AssertNotCalled(suite.T(), "UpdateMovement")
}

func (suite *MovementServiceTestSuite) TestUpdateMovement_ConversionLegRejected() {
	ctx := context.Background()
	movementID := uuid.NewString()
	existing := &domain.Movement{
		MovementID:   movementID,
		Status:       domain.MovementExecuted,
		ConversionID: uuid.NewString(),
	}

	suite.mockMovementRepo.On("FindMovementByID", ctx, movementID).Return(existing, nil).Once()

	_, err := suite.service.UpdateMovement(ctx, movementID, dto.UpdateMovementRequest{}, "actor-1")

	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *MovementServiceTestSuite) TestVoidMovement_Success() {
	ctx := context.Background()
	movementID := uuid.NewString()
	accountID := uuid.NewString()
	existing := &domain.Movement{
		MovementID:      movementID,
		Number:          "MOV-2026-0003",
		Kind:            domain.KindOperatingExpense,
		Status:          domain.MovementExecuted,
		CurrencyCode:    domain.CurrencyPEN,
		Amount:          decimal.NewFromInt(200),
		SourceAccountID: accountID,
	}

	suite.mockMovementRepo.On("FindMovementByID", ctx, movementID).Return(existing, nil).Once()
	suite.mockMovementRepo.On("VoidMovement", ctx,
		mock.MatchedBy(func(m domain.Movement) bool {
			return m.Status == domain.MovementVoided && m.VoidedAt != nil && m.VoidedBy == "actor-1"
		}),
		mock.MatchedBy(func(deltas []domain.BalanceDelta) bool {
			// Reversal credits the source account back
			return len(deltas) == 1 && deltas[0].Amount.Equal(decimal.NewFromInt(200))
		}),
		mock.MatchedBy(func(e domain.LedgerEvent) bool {
			return e.Type == domain.EventMovementVoided
		}),
	).Return(nil).Once()

	voided, err := suite.service.VoidMovement(ctx, movementID, "actor-1")

	suite.Require().NoError(err)
	suite.Equal(domain.MovementVoided, voided.Status)
	suite.mockMovementRepo.AssertExpectations(suite.T())
}

func (suite *MovementServiceTestSuite) TestVoidMovement_AlreadyVoided() {
	ctx := context.Background()
	movementID := uuid.NewString()
	existing := &domain.Movement{MovementID: movementID, Status: domain.MovementVoided}

	suite.mockMovementRepo.On("FindMovementByID", ctx, movementID).Return(existing, nil).Once()

	_, err := suite.service.VoidMovement(ctx, movementID, "actor-1")

	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockMovementRepo.AssertNotCalled(suite.T(), "VoidMovement")
}

func TestMovementServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MovementServiceTestSuite))
}
