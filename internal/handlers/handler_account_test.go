package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andeantrade/treasury_backend/internal/apperrors"
	"github.com/andeantrade/treasury_backend/internal/core/domain"
	portssvc "github.com/andeantrade/treasury_backend/internal/core/ports/services"
	"github.com/andeantrade/treasury_backend/internal/dto"
	"github.com/andeantrade/treasury_backend/internal/handlers"
	"github.com/andeantrade/treasury_backend/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, includeInactive bool) ([]domain.Account, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actorID string) (*domain.Account, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, actorID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, accountID string, actorID string) error {
	args := m.Called(ctx, accountID, actorID)
	return args.Error(0)
}

func (m *MockAccountService) RecomputeBalance(ctx context.Context, accountID string, actorID string) (*domain.RecomputeResult, error) {
	args := m.Called(ctx, accountID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecomputeResult), args.Error(1)
}

func (m *MockAccountService) RecomputeAllBalances(ctx context.Context, actorID string) (*domain.RecomputeBatchResult, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecomputeBatchResult), args.Error(1)
}

// --- Test Suite Setup ---

type AccountHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockAccountService
	actorID     string
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockService = new(MockAccountService)
	suite.actorID = uuid.NewString()

	suite.router = gin.New()
	cfg := &config.Config{IsProduction: true}
	services := &portssvc.ServiceContainer{Account: suite.mockService}
	handlers.RegisterRoutes(suite.router, cfg, services, nil)
}

func (suite *AccountHandlerTestSuite) performRequest(method, path string, body interface{}, withActor bool) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if withActor {
		req.Header.Set("X-Actor-ID", suite.actorID)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	req := dto.CreateAccountRequest{
		Name:         "BCP Soles",
		HolderName:   "Carlos",
		Kind:         domain.AccountBank,
		CurrencyCode: domain.CurrencyPEN,
	}
	created := &domain.Account{
		AccountID:    uuid.NewString(),
		Name:         req.Name,
		HolderName:   req.HolderName,
		Kind:         req.Kind,
		CurrencyCode: req.CurrencyCode,
		IsActive:     true,
	}

	suite.mockService.On("CreateAccount", mock.Anything, mock.AnythingOfType("dto.CreateAccountRequest"), suite.actorID).
		Return(created, nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/accounts", req, true)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.AccountID, resp.AccountID)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_MissingActorHeader() {
	req := dto.CreateAccountRequest{
		Name:         "BCP Soles",
		HolderName:   "Carlos",
		Kind:         domain.AccountBank,
		CurrencyCode: domain.CurrencyPEN,
	}

	w := suite.performRequest(http.MethodPost, "/api/v1/accounts", req, false)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "CreateAccount")
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_ValidationError() {
	req := dto.CreateAccountRequest{
		Name: "No Holder",
		Kind: domain.AccountCash,
	}

	suite.mockService.On("CreateAccount", mock.Anything, mock.AnythingOfType("dto.CreateAccountRequest"), suite.actorID).
		Return(nil, apperrors.ErrValidation).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/accounts", req, true)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	accountID := uuid.NewString()
	suite.mockService.On("GetAccountByID", mock.Anything, accountID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/accounts/"+accountID, nil, false)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestListAccounts() {
	accounts := []domain.Account{
		{AccountID: uuid.NewString(), Name: "Caja", IsActive: true},
		{AccountID: uuid.NewString(), Name: "Banco", IsActive: true},
	}
	suite.mockService.On("ListAccounts", mock.Anything, false).Return(accounts, nil).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/accounts", nil, false)

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp, 2)
}

func (suite *AccountHandlerTestSuite) TestListAccounts_IncludeInactive() {
	suite.mockService.On("ListAccounts", mock.Anything, true).Return([]domain.Account{}, nil).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/accounts?includeInactive=true", nil, false)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestRecomputeBalance() {
	accountID := uuid.NewString()
	result := &domain.RecomputeResult{
		AccountID:     accountID,
		OldBalanceUSD: decimal.NewFromInt(10),
		NewBalanceUSD: decimal.NewFromInt(20),
		Changed:       true,
	}
	suite.mockService.On("RecomputeBalance", mock.Anything, accountID, suite.actorID).Return(result, nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/accounts/"+accountID+"/recompute", nil, true)

	suite.Equal(http.StatusOK, w.Code)
	var resp domain.RecomputeResult
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Changed)
}

func (suite *AccountHandlerTestSuite) TestDeactivateAccount() {
	accountID := uuid.NewString()
	suite.mockService.On("DeactivateAccount", mock.Anything, accountID, suite.actorID).Return(nil).Once()

	w := suite.performRequest(http.MethodDelete, "/api/v1/accounts/"+accountID, nil, true)

	suite.Equal(http.StatusNoContent, w.Code)
}

func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
