package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	portssvc "github.com/financeflow/backend/internal/core/ports/services"
	"github.com/financeflow/backend/internal/handlers"
	"github.com/financeflow/backend/pkg/config"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock RateLookupSvc ---
type MockRateService struct {
	mock.Mock
}

func (m *MockRateService) GetRate(ctx context.Context, date string) decimal.Decimal {
	args := m.Called(ctx, date)
	return args.Get(0).(decimal.Decimal)
}

var _ portssvc.RateLookupSvc = (*MockRateService)(nil)

func testConfig() *config.Config {
	return &config.Config{Port: "8080", RateLimitRPS: 1000}
}

// Registering the full route table on a fresh engine must succeed exactly
// once; gin panics on any path registered twice.
func TestRegisterRoutes_RegistersEveryGroupOnce(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	assert.NotPanics(t, func() {
		handlers.RegisterRoutes(r, testConfig(), &portssvc.ServiceContainer{})
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

type RatesHandlerSuite struct {
	suite.Suite
	router  *gin.Engine
	service *MockRateService
}

func TestRatesHandler(t *testing.T) {
	suite.Run(t, new(RatesHandlerSuite))
}

func (s *RatesHandlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.service = new(MockRateService)

	s.router = gin.New()
	handlers.RegisterRoutes(s.router, testConfig(), &portssvc.ServiceContainer{Rates: s.service})
}

func (s *RatesHandlerSuite) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RatesHandlerSuite) TestGetRate_OK() {
	s.service.On("GetRate", mock.Anything, "2026-08-14").
		Return(decimal.NewFromInt(1325)).Once()

	w := s.get("/api/v1/rates/2026-08-14")

	s.Equal(http.StatusOK, w.Code)
	var payload struct {
		Date string          `json:"date"`
		Rate decimal.Decimal `json:"rate"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &payload))
	s.Equal("2026-08-14", payload.Date)
	s.True(decimal.NewFromInt(1325).Equal(payload.Rate))
	s.service.AssertExpectations(s.T())
}

func (s *RatesHandlerSuite) TestGetRate_InvalidDate() {
	w := s.get("/api/v1/rates/14-08-2026")

	s.Equal(http.StatusBadRequest, w.Code)
	s.service.AssertNotCalled(s.T(), "GetRate")
}

func (s *RatesHandlerSuite) TestGetRate_ConvertsAmount() {
	s.service.On("GetRate", mock.Anything, "2026-08-14").
		Return(decimal.NewFromInt(1000)).Once()

	w := s.get("/api/v1/rates/2026-08-14?amount=2.5")

	s.Equal(http.StatusOK, w.Code)
	var payload struct {
		Rate      decimal.Decimal  `json:"rate"`
		Converted *decimal.Decimal `json:"converted"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &payload))
	s.Require().NotNil(payload.Converted)
	s.True(decimal.NewFromInt(2500).Equal(*payload.Converted))
}

func (s *RatesHandlerSuite) TestGetRate_BadAmountRejected() {
	s.service.On("GetRate", mock.Anything, "2026-08-14").
		Return(decimal.NewFromInt(1000)).Once()

	w := s.get("/api/v1/rates/2026-08-14?amount=abc")

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RatesHandlerSuite) TestGetRate_ZeroRateOmitsConversion() {
	s.service.On("GetRate", mock.Anything, "2026-08-14").
		Return(decimal.Zero).Once()

	w := s.get("/api/v1/rates/2026-08-14?amount=2.5")

	s.Equal(http.StatusOK, w.Code)
	var payload map[string]json.RawMessage
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &payload))
	s.NotContains(payload, "converted")
}
