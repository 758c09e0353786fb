package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/sales-pulse/pkg/models/api"
	"github.com/de-tools/sales-pulse/pkg/models/domain"
	analysissvc "github.com/de-tools/sales-pulse/pkg/services/analysis"
	"github.com/de-tools/sales-pulse/pkg/store/salesdb/sales"
)

type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Analyze(ctx context.Context, q domain.ResolvedQuery) (domain.AnalysisOutcome, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.AnalysisOutcome), args.Error(1)
}

func (m *MockEngine) DrillDown(ctx context.Context, plan analysissvc.Plan) ([]domain.DriverRow, error) {
	args := m.Called(ctx, plan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DriverRow), args.Error(1)
}

func (m *MockEngine) DimensionValues(ctx context.Context, dim domain.Dimension) ([]string, error) {
	args := m.Called(ctx, dim)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type stubResolver struct {
	resolved domain.ResolvedQuery
}

func (s stubResolver) Resolve(raw string, ref time.Time) domain.ResolvedQuery {
	return s.resolved
}

var testRefTime = func() time.Time {
	return time.Date(2025, time.August, 31, 0, 0, 0, 0, time.UTC)
}

func newRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/api/v1/analysis", h.Analyze)
	r.Post("/api/v1/analysis/drilldown", h.DrillDown)
	r.Get("/api/v1/dimensions/{dimension}/values", h.ListDimensionValues)
	return r
}

func postJSON(t *testing.T, router http.Handler, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Analyze(t *testing.T) {
	resolved := domain.ResolvedQuery{
		Current:        domain.MonthWindow(2025, time.July),
		Comparison:     domain.MonthWindow(2025, time.June),
		PeriodLabel:    "2025年07月 vs 上月",
		Dimension:      domain.DimensionStaff,
		ExplicitPeriod: true,
	}

	t.Run("success - period analysis", func(t *testing.T) {
		// Given
		engine := &MockEngine{}
		engine.On("Analyze", mock.Anything, resolved).Return(&domain.AnalysisResult{
			CurrentTotal:    1500,
			ComparisonTotal: 1200,
			Delta:           300,
			PercentDelta:    25,
			Dimension:       domain.DimensionStaff,
			PeriodLabel:     "2025年07月 vs 上月",
			Drivers:         []domain.DriverRow{{Label: "王小明", Delta: 600}},
		}, nil)
		h := NewHandler(stubResolver{resolved: resolved}, engine, testRefTime)

		// When
		rec := postJSON(t, newRouter(h), "/api/v1/analysis", api.AnalyzeRequest{Query: "2025/07 業務員業績"})

		// Then
		require.Equal(t, http.StatusOK, rec.Code)
		var response api.AnalysisResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, api.KindAnalysis, response.Kind)
		require.NotNil(t, response.Analysis)
		assert.Nil(t, response.EntityLookup)
		require.NotNil(t, response.Analysis.PercentDelta)
		assert.InDelta(t, 25, *response.Analysis.PercentDelta, 0.001)
		assert.NotEmpty(t, response.Analysis.Summary)
		engine.AssertExpectations(t)
	})

	t.Run("success - entity lookup", func(t *testing.T) {
		// Given
		engine := &MockEngine{}
		engine.On("Analyze", mock.Anything, mock.Anything).Return(&domain.EntityLookupResult{
			Name:      "台塑",
			Dimension: domain.DimensionCustomer,
			Exists:    true,
			Rows:      []domain.EntityRow{{Name: "台塑", TotalAmount: 2100, TotalQuantity: 4}},
		}, nil)
		h := NewHandler(stubResolver{resolved: resolved}, engine, testRefTime)

		// When
		rec := postJSON(t, newRouter(h), "/api/v1/analysis", api.AnalyzeRequest{Query: "客戶台塑銷售額"})

		// Then
		require.Equal(t, http.StatusOK, rec.Code)
		var response api.AnalysisResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, api.KindEntityLookup, response.Kind)
		require.NotNil(t, response.EntityLookup)
		assert.True(t, response.EntityLookup.Exists)
	})

	t.Run("infinite percent is omitted from JSON", func(t *testing.T) {
		// Given
		engine := &MockEngine{}
		engine.On("Analyze", mock.Anything, mock.Anything).Return(&domain.AnalysisResult{
			CurrentTotal: 500,
			Delta:        500,
			PercentDelta: math.Inf(1),
			Dimension:    domain.DimensionStaff,
			PeriodLabel:  "2025年07月 vs 上月",
		}, nil)
		h := NewHandler(stubResolver{resolved: resolved}, engine, testRefTime)

		// When
		rec := postJSON(t, newRouter(h), "/api/v1/analysis", api.AnalyzeRequest{Query: "x"})

		// Then
		require.Equal(t, http.StatusOK, rec.Code)
		var response api.AnalysisResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		require.NotNil(t, response.Analysis)
		assert.Nil(t, response.Analysis.PercentDelta)
		assert.Equal(t, "+∞", response.Analysis.PercentDisplay)
	})

	t.Run("no data maps to 422", func(t *testing.T) {
		// Given
		engine := &MockEngine{}
		engine.On("Analyze", mock.Anything, mock.Anything).Return(nil, sales.ErrNoData)
		h := NewHandler(stubResolver{resolved: resolved}, engine, testRefTime)

		// When
		rec := postJSON(t, newRouter(h), "/api/v1/analysis", api.AnalyzeRequest{Query: "2020/01"})

		// Then
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("empty query is rejected", func(t *testing.T) {
		// Given
		engine := &MockEngine{}
		h := NewHandler(stubResolver{resolved: resolved}, engine, testRefTime)

		// When
		rec := postJSON(t, newRouter(h), "/api/v1/analysis", api.AnalyzeRequest{Query: "   "})

		// Then
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		engine.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
	})
}

func TestHandler_DrillDown(t *testing.T) {
	validRequest := api.DrillDownRequest{
		CurrentStart:    "2025-07-01",
		CurrentEnd:      "2025-07-31",
		ComparisonStart: "2025-06-01",
		ComparisonEnd:   "2025-06-30",
		Primary:         "staff",
		PrimaryValue:    "王小明",
		Secondary:       "product",
	}

	t.Run("success", func(t *testing.T) {
		// Given
		engine := &MockEngine{}
		expectedPlan := analysissvc.DrillDownPlan(
			domain.MonthWindow(2025, time.July),
			domain.MonthWindow(2025, time.June),
			domain.DimensionStaff, "王小明", domain.DimensionProduct)
		engine.On("DrillDown", mock.Anything, expectedPlan).
			Return([]domain.DriverRow{{Label: "筆記型電腦", CurrentSales: 1000, Delta: 1000}}, nil)
		h := NewHandler(stubResolver{}, engine, testRefTime)

		// When
		rec := postJSON(t, newRouter(h), "/api/v1/analysis/drilldown", validRequest)

		// Then
		require.Equal(t, http.StatusOK, rec.Code)
		var response api.DrillDownResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		require.Len(t, response.Rows, 1)
		assert.Equal(t, "筆記型電腦", response.Rows[0].Label)
		engine.AssertExpectations(t)
	})

	t.Run("unknown dimension is rejected", func(t *testing.T) {
		// Given
		engine := &MockEngine{}
		h := NewHandler(stubResolver{}, engine, testRefTime)
		bad := validRequest
		bad.Primary = "warehouse"

		// When
		rec := postJSON(t, newRouter(h), "/api/v1/analysis/drilldown", bad)

		// Then
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("same dimension twice is rejected", func(t *testing.T) {
		// Given
		h := NewHandler(stubResolver{}, &MockEngine{}, testRefTime)
		bad := validRequest
		bad.Secondary = "staff"

		// When
		rec := postJSON(t, newRouter(h), "/api/v1/analysis/drilldown", bad)

		// Then
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("reversed window is rejected", func(t *testing.T) {
		// Given
		h := NewHandler(stubResolver{}, &MockEngine{}, testRefTime)
		bad := validRequest
		bad.CurrentStart = "2025-08-01"

		// When
		rec := postJSON(t, newRouter(h), "/api/v1/analysis/drilldown", bad)

		// Then
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_ListDimensionValues(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		// Given
		engine := &MockEngine{}
		engine.On("DimensionValues", mock.Anything, domain.DimensionStaff).
			Return([]string{"王小明", "李大華"}, nil)
		h := NewHandler(stubResolver{}, engine, testRefTime)

		// When
		req := httptest.NewRequest(http.MethodGet, "/api/v1/dimensions/staff/values", nil)
		rec := httptest.NewRecorder()
		newRouter(h).ServeHTTP(rec, req)

		// Then
		require.Equal(t, http.StatusOK, rec.Code)
		var response api.DimensionValuesResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, "staff", response.Dimension)
		assert.Equal(t, []string{"王小明", "李大華"}, response.Values)
	})

	t.Run("unknown dimension is rejected", func(t *testing.T) {
		// Given
		h := NewHandler(stubResolver{}, &MockEngine{}, testRefTime)

		// When
		req := httptest.NewRequest(http.MethodGet, "/api/v1/dimensions/warehouse/values", nil)
		rec := httptest.NewRecorder()
		newRouter(h).ServeHTTP(rec, req)

		// Then
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
