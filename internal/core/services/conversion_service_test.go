package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/andeantrade/treasury_backend/internal/apperrors"
	"github.com/andeantrade/treasury_backend/internal/core/domain"
	portssvc "github.com/andeantrade/treasury_backend/internal/core/ports/services"
	"github.com/andeantrade/treasury_backend/internal/core/services"
	"github.com/andeantrade/treasury_backend/internal/dto"
	"github.com/andeantrade/treasury_backend/internal/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ConversionServiceTestSuite struct {
	suite.Suite
	mockConversionRepo *MockConversionRepository
	mockAccountRepo    *MockAccountRepository
	mockRateProvider   *MockRateProvider
	service            portssvc.ConversionSvcFacade
}

func (suite *ConversionServiceTestSuite) SetupTest() {
	suite.mockConversionRepo = new(MockConversionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockRateProvider = new(MockRateProvider)
	suite.service = services.NewConversionService(suite.mockConversionRepo, suite.mockAccountRepo, suite.mockRateProvider)
}

func (suite *ConversionServiceTestSuite) ratePair() domain.RatePair {
	return domain.RatePair{
		Buy:  decimal.RequireFromString("3.69"),
		Sell: decimal.RequireFromString("3.71"),
	}
}

func (suite *ConversionServiceTestSuite) TestRegisterConversion_WithBothAccounts() {
	ctx := context.Background()
	sourceID := uuid.NewString()
	destID := uuid.NewString()
	req := dto.RegisterConversionRequest{
		OriginCurrency:       domain.CurrencyUSD,
		OriginAmount:         decimal.NewFromInt(1000),
		AppliedRate:          decimal.RequireFromString("3.75"),
		Motive:               "Pay local suppliers",
		SourceAccountID:      sourceID,
		DestinationAccountID: destID,
		Entity:               "Casa de cambio Lima",
	}

	suite.mockRateProvider.On("TodayRate", ctx).Return(suite.ratePair(), nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{sourceID, destID}).
		Return(map[string]domain.Account{
			sourceID: {AccountID: sourceID, CurrencyCode: domain.CurrencyUSD, IsActive: true},
			destID:   {AccountID: destID, CurrencyCode: domain.CurrencyPEN, IsActive: true},
		}, nil).Once()

	suite.mockConversionRepo.On("SaveConversion", ctx,
		mock.MatchedBy(func(c domain.Conversion) bool {
			return c.DestinationCurrency == domain.CurrencyPEN &&
				c.DestinationAmount.Equal(decimal.NewFromInt(3750)) &&
				c.ReferenceRate.Equal(decimal.RequireFromString("3.71")) &&
				c.DifferenceVsReference.Equal(decimal.NewFromInt(40))
		}),
		mock.MatchedBy(func(legs []domain.Movement) bool {
			if len(legs) != 2 {
				return false
			}
			outbound, inbound := legs[0], legs[1]
			return outbound.Direction == domain.LegOutbound &&
				outbound.CurrencyCode == domain.CurrencyUSD &&
				outbound.Amount.Equal(decimal.NewFromInt(1000)) &&
				outbound.SourceAccountID == sourceID &&
				inbound.Direction == domain.LegInbound &&
				inbound.CurrencyCode == domain.CurrencyPEN &&
				inbound.Amount.Equal(decimal.NewFromInt(3750)) &&
				inbound.DestinationAccountID == destID &&
				outbound.ConversionID != "" && outbound.ConversionID == inbound.ConversionID
		}),
		mock.MatchedBy(func(deltas []domain.BalanceDelta) bool {
			return len(deltas) == 2 &&
				deltas[0].Amount.Equal(decimal.NewFromInt(-1000)) &&
				deltas[1].Amount.Equal(decimal.NewFromInt(3750))
		}),
		mock.MatchedBy(func(events []domain.LedgerEvent) bool {
			return len(events) == 3 &&
				events[0].Type == domain.EventConversionRegistered &&
				events[1].Type == domain.EventMovementRegistered &&
				events[2].Type == domain.EventMovementRegistered
		}),
	).Return(&domain.Conversion{ConversionID: "cnv-1", Number: "CNV-2026-0001", OriginCurrency: domain.CurrencyUSD, DestinationCurrency: domain.CurrencyPEN},
		[]domain.Movement{{Number: "MOV-2026-0010"}, {Number: "MOV-2026-0011"}}, nil).Once()

	conversion, legs, err := suite.service.RegisterConversion(ctx, req, "actor-1")

	suite.Require().NoError(err)
	suite.Equal("CNV-2026-0001", conversion.Number)
	suite.Len(legs, 2)
	suite.mockConversionRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *ConversionServiceTestSuite) TestRegisterConversion_DualCurrencyAccountBothSides() {
	ctx := context.Background()
	accID := uuid.NewString()
	req := dto.RegisterConversionRequest{
		OriginCurrency:       domain.CurrencyUSD,
		OriginAmount:         decimal.NewFromInt(200),
		AppliedRate:          decimal.RequireFromString("3.75"),
		Motive:               "Internal exchange",
		SourceAccountID:      accID,
		DestinationAccountID: accID,
	}
	account := domain.Account{
		AccountID:    accID,
		DualCurrency: true,
		IsActive:     true,
		BalanceUSD:   decimal.NewFromInt(500),
		BalancePEN:   decimal.Zero,
	}
	conversionsBefore := testutil.ToFloat64(middleware.ConversionsRegistered)
	movementsBefore := testutil.ToFloat64(middleware.MovementsRegistered)

	suite.mockRateProvider.On("TodayRate", ctx).Return(suite.ratePair(), nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{accID, accID}).
		Return(map[string]domain.Account{accID: account}, nil).Once()

	suite.mockConversionRepo.On("SaveConversion", ctx,
		mock.MatchedBy(func(c domain.Conversion) bool {
			return c.DestinationAmount.Equal(decimal.NewFromInt(750))
		}),
		mock.MatchedBy(func(legs []domain.Movement) bool {
			return len(legs) == 2 &&
				legs[0].SourceAccountID == accID &&
				legs[1].DestinationAccountID == accID
		}),
		// Both deltas hit the same account but distinct currency balances:
		// -200 on the USD side, +750 on the PEN side
		mock.MatchedBy(func(deltas []domain.BalanceDelta) bool {
			return len(deltas) == 2 &&
				deltas[0].AccountID == accID &&
				deltas[0].Currency == domain.CurrencyUSD &&
				deltas[0].Amount.Equal(decimal.NewFromInt(-200)) &&
				deltas[1].AccountID == accID &&
				deltas[1].Currency == domain.CurrencyPEN &&
				deltas[1].Amount.Equal(decimal.NewFromInt(750))
		}),
		mock.MatchedBy(func(events []domain.LedgerEvent) bool { return len(events) == 3 }),
	).Return(&domain.Conversion{Number: "CNV-2026-0005"},
		[]domain.Movement{{Number: "MOV-2026-0020"}, {Number: "MOV-2026-0021"}}, nil).Once()

	conversion, legs, err := suite.service.RegisterConversion(ctx, req, "actor-1")

	suite.Require().NoError(err)
	suite.Equal("CNV-2026-0005", conversion.Number)
	suite.Len(legs, 2)
	suite.Equal(conversionsBefore+1, testutil.ToFloat64(middleware.ConversionsRegistered))
	suite.Equal(movementsBefore+2, testutil.ToFloat64(middleware.MovementsRegistered))
	suite.mockConversionRepo.AssertExpectations(suite.T())
}

func (suite *ConversionServiceTestSuite) TestRegisterConversion_NoAccountsNoLegs() {
	ctx := context.Background()
	req := dto.RegisterConversionRequest{
		OriginCurrency: domain.CurrencyPEN,
		OriginAmount:   decimal.NewFromInt(3700),
		AppliedRate:    decimal.RequireFromString("3.70"),
		Motive:         "Informal exchange",
	}

	suite.mockRateProvider.On("TodayRate", ctx).Return(suite.ratePair(), nil).Once()
	suite.mockConversionRepo.On("SaveConversion", ctx,
		mock.MatchedBy(func(c domain.Conversion) bool {
			return c.DestinationCurrency == domain.CurrencyUSD &&
				c.DestinationAmount.Equal(decimal.NewFromInt(1000)) &&
				c.ReferenceRate.Equal(decimal.RequireFromString("3.69"))
		}),
		mock.MatchedBy(func(legs []domain.Movement) bool { return len(legs) == 0 }),
		mock.MatchedBy(func(deltas []domain.BalanceDelta) bool { return len(deltas) == 0 }),
		mock.MatchedBy(func(events []domain.LedgerEvent) bool { return len(events) == 1 }),
	).Return(&domain.Conversion{Number: "CNV-2026-0002"}, []domain.Movement{}, nil).Once()

	conversion, legs, err := suite.service.RegisterConversion(ctx, req, "actor-1")

	suite.Require().NoError(err)
	suite.Empty(legs)
	suite.Equal("CNV-2026-0002", conversion.Number)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDs")
}

func (suite *ConversionServiceTestSuite) TestRegisterConversion_FeedDownUsesAppliedRate() {
	ctx := context.Background()
	req := dto.RegisterConversionRequest{
		OriginCurrency: domain.CurrencyUSD,
		OriginAmount:   decimal.NewFromInt(500),
		AppliedRate:    decimal.RequireFromString("3.80"),
		Motive:         "Exchange",
	}

	suite.mockRateProvider.On("TodayRate", ctx).Return(domain.RatePair{}, errors.New("feed timeout")).Once()
	suite.mockConversionRepo.On("SaveConversion", ctx,
		mock.MatchedBy(func(c domain.Conversion) bool {
			// With the applied rate standing in, spread and difference are zero
			return c.ReferenceRate.Equal(req.AppliedRate) &&
				c.SpreadPercent.IsZero() &&
				c.DifferenceVsReference.IsZero()
		}),
		mock.Anything, mock.Anything, mock.Anything,
	).Return(&domain.Conversion{}, []domain.Movement{}, nil).Once()

	_, _, err := suite.service.RegisterConversion(ctx, req, "actor-1")

	suite.Require().NoError(err)
	suite.mockConversionRepo.AssertExpectations(suite.T())
}

func (suite *ConversionServiceTestSuite) TestRegisterConversion_InvalidAmount() {
	req := dto.RegisterConversionRequest{
		OriginCurrency: domain.CurrencyUSD,
		OriginAmount:   decimal.Zero,
		AppliedRate:    decimal.RequireFromString("3.70"),
		Motive:         "Nothing",
	}

	_, _, err := suite.service.RegisterConversion(context.Background(), req, "actor-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockConversionRepo.AssertNotCalled(suite.T(), "SaveConversion")
}

func (suite *ConversionServiceTestSuite) TestRegisterConversion_SourceCurrencyMismatch() {
	ctx := context.Background()
	sourceID := uuid.NewString()
	req := dto.RegisterConversionRequest{
		OriginCurrency:  domain.CurrencyUSD,
		OriginAmount:    decimal.NewFromInt(100),
		AppliedRate:     decimal.RequireFromString("3.70"),
		Motive:          "Exchange",
		SourceAccountID: sourceID,
	}

	suite.mockRateProvider.On("TodayRate", ctx).Return(suite.ratePair(), nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, []string{sourceID}).
		Return(map[string]domain.Account{
			sourceID: {AccountID: sourceID, CurrencyCode: domain.CurrencyPEN, IsActive: true},
		}, nil).Once()

	_, _, err := suite.service.RegisterConversion(ctx, req, "actor-1")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockConversionRepo.AssertNotCalled(suite.T(), "SaveConversion")
}

func TestConversionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ConversionServiceTestSuite))
}
