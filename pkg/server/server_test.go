package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/sales-pulse/pkg/models/api"
	"github.com/de-tools/sales-pulse/pkg/models/domain"
	analysissvc "github.com/de-tools/sales-pulse/pkg/services/analysis"
	"github.com/de-tools/sales-pulse/pkg/services/resolver"
)

type mockEngine struct {
	mock.Mock
}

func (m *mockEngine) Analyze(ctx context.Context, q domain.ResolvedQuery) (domain.AnalysisOutcome, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.AnalysisOutcome), args.Error(1)
}

func (m *mockEngine) DrillDown(ctx context.Context, plan analysissvc.Plan) ([]domain.DriverRow, error) {
	args := m.Called(ctx, plan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DriverRow), args.Error(1)
}

func (m *mockEngine) DimensionValues(ctx context.Context, dim domain.Dimension) ([]string, error) {
	args := m.Called(ctx, dim)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	refTime := func() time.Time {
		return time.Date(2025, time.August, 31, 0, 0, 0, 0, time.UTC)
	}

	engine := new(mockEngine)
	config := Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Resolver: resolver.New(),
			Engine:   engine,
			RefTime:  refTime,
		},
	}
	webAPI := NewWebAPI(logger, config)
	testServer := httptest.NewServer(webAPI.Router())
	defer testServer.Close()

	t.Run("analysis resolves text before hitting the engine", func(t *testing.T) {
		expectedQuery := domain.ResolvedQuery{
			Current:        domain.MonthWindow(2025, time.July),
			Comparison:     domain.MonthWindow(2025, time.June),
			PeriodLabel:    "2025年07月 vs 上月",
			Dimension:      domain.DimensionStaff,
			ExplicitPeriod: true,
		}
		engine.On("Analyze", mock.Anything, expectedQuery).Return(&domain.AnalysisResult{
			CurrentTotal:    1500,
			ComparisonTotal: 1200,
			Delta:           300,
			PercentDelta:    25,
			Dimension:       domain.DimensionStaff,
			PeriodLabel:     "2025年07月 vs 上月",
		}, nil)

		body, _ := json.Marshal(api.AnalyzeRequest{Query: "2025/07 業務員業績"})
		resp, err := http.Post(testServer.URL+"/api/v1/analysis", "application/json", bytes.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var response api.AnalysisResponse
		require.NoError(t, json.Unmarshal(data, &response))
		assert.Equal(t, api.KindAnalysis, response.Kind)
		require.NotNil(t, response.Analysis)
		assert.Equal(t, "2025年07月 vs 上月", response.Analysis.PeriodLabel)
		engine.AssertExpectations(t)
	})

	t.Run("dimension values", func(t *testing.T) {
		engine.On("DimensionValues", mock.Anything, domain.DimensionRegion).
			Return([]string{"台北", "高雄"}, nil)

		resp, err := http.Get(testServer.URL + "/api/v1/dimensions/region/values")
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)

		var response api.DimensionValuesResponse
		require.NoError(t, json.Unmarshal(data, &response))
		assert.Equal(t, []string{"台北", "高雄"}, response.Values)
	})

	t.Run("unknown route", func(t *testing.T) {
		resp, err := http.Get(testServer.URL + "/api/v1/forecast")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
