package handlers_test

import (
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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TreasuryService ---
type MockTreasuryService struct {
	mock.Mock
}

var _ portssvc.TreasurySvcFacade = (*MockTreasuryService)(nil)

func (m *MockTreasuryService) ReadSnapshot(ctx context.Context) (*domain.TreasurySnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TreasurySnapshot), args.Error(1)
}

func (m *MockTreasuryService) LiveSummary(ctx context.Context) (*domain.LiveSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LiveSummary), args.Error(1)
}

func (m *MockTreasuryService) InitializeSnapshot(ctx context.Context, actorID string) (*domain.TreasurySnapshot, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TreasurySnapshot), args.Error(1)
}

func (m *MockTreasuryService) FullRecompute(ctx context.Context, actorID string) (*domain.TreasurySnapshot, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TreasurySnapshot), args.Error(1)
}

func (m *MockTreasuryService) ApplyMovementDelta(ctx context.Context, event domain.LedgerEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockTreasuryService) ApplyConversionDelta(ctx context.Context, event domain.LedgerEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// --- Test Suite Setup ---

type TreasuryHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockTreasuryService
}

func (suite *TreasuryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockService = new(MockTreasuryService)

	suite.router = gin.New()
	cfg := &config.Config{IsProduction: true}
	services := &portssvc.ServiceContainer{Treasury: suite.mockService}
	handlers.RegisterRoutes(suite.router, cfg, services, nil)
}

func (suite *TreasuryHandlerTestSuite) performRequest(method, path string, withActor bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if withActor {
		req.Header.Set("X-Actor-ID", "actor-1")
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *TreasuryHandlerTestSuite) TestGetSummary_ServesSnapshot() {
	snapshot := &domain.TreasurySnapshot{
		TotalUSD:        decimal.NewFromInt(1000),
		TotalPEN:        decimal.NewFromInt(2000),
		CurrentMonthKey: "2026-08",
	}
	suite.mockService.On("ReadSnapshot", mock.Anything).Return(snapshot, nil).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/treasury/summary", false)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TreasurySummaryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("snapshot", resp.Source)
	suite.Require().NotNil(resp.Snapshot)
	suite.Nil(resp.Live)
	suite.True(resp.Snapshot.TotalUSD.Equal(decimal.NewFromInt(1000)))
	suite.mockService.AssertNotCalled(suite.T(), "LiveSummary")
}

func (suite *TreasuryHandlerTestSuite) TestGetSummary_FallsBackToLive() {
	live := &domain.LiveSummary{
		TotalUSD:    decimal.NewFromInt(500),
		MonthKey:    "2026-08",
		Approximate: true,
	}
	suite.mockService.On("ReadSnapshot", mock.Anything).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockService.On("LiveSummary", mock.Anything).Return(live, nil).Once()

	w := suite.performRequest(http.MethodGet, "/api/v1/treasury/summary", false)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.TreasurySummaryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("live", resp.Source)
	suite.Require().NotNil(resp.Live)
	suite.Nil(resp.Snapshot)
	suite.True(resp.Live.Approximate)
	suite.mockService.AssertExpectations(suite.T())
}

func (suite *TreasuryHandlerTestSuite) TestInitialize_MissingActorHeader() {
	w := suite.performRequest(http.MethodPost, "/api/v1/treasury/initialize", false)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "InitializeSnapshot")
}

func (suite *TreasuryHandlerTestSuite) TestInitialize_Success() {
	snapshot := &domain.TreasurySnapshot{CurrentMonthKey: "2026-08"}
	suite.mockService.On("InitializeSnapshot", mock.Anything, "actor-1").Return(snapshot, nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/treasury/initialize", true)

	suite.Equal(http.StatusCreated, w.Code)
}

func (suite *TreasuryHandlerTestSuite) TestRecompute_Success() {
	snapshot := &domain.TreasurySnapshot{CurrentMonthKey: "2026-08"}
	suite.mockService.On("FullRecompute", mock.Anything, "actor-1").Return(snapshot, nil).Once()

	w := suite.performRequest(http.MethodPost, "/api/v1/treasury/recompute", true)

	suite.Equal(http.StatusOK, w.Code)
}

func TestTreasuryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TreasuryHandlerTestSuite))
}
