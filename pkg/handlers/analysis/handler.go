package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/de-tools/sales-pulse/pkg/adapters"
	"github.com/de-tools/sales-pulse/pkg/models/api"
	"github.com/de-tools/sales-pulse/pkg/models/domain"
	analysissvc "github.com/de-tools/sales-pulse/pkg/services/analysis"
	"github.com/de-tools/sales-pulse/pkg/store/salesdb/sales"
)

const dateLayout = "2006-01-02"

type Resolver interface {
	Resolve(raw string, ref time.Time) domain.ResolvedQuery
}

type Engine interface {
	Analyze(ctx context.Context, q domain.ResolvedQuery) (domain.AnalysisOutcome, error)
	DrillDown(ctx context.Context, plan analysissvc.Plan) ([]domain.DriverRow, error)
	DimensionValues(ctx context.Context, dim domain.Dimension) ([]string, error)
}

type Handler struct {
	resolver Resolver
	engine   Engine
	refTime  func() time.Time
}

// NewHandler wires the HTTP surface. refTime supplies the reference date for
// relative period defaults; it is injected so requests stay reproducible.
func NewHandler(resolver Resolver, engine Engine, refTime func() time.Time) *Handler {
	return &Handler{
		resolver: resolver,
		engine:   engine,
		refTime:  refTime,
	}
}

func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	resolved := h.resolver.Resolve(req.Query, h.refTime())
	outcome, err := h.engine.Analyze(ctx, resolved)
	if err != nil {
		if errors.Is(err, sales.ErrNoData) {
			writeError(w, http.StatusUnprocessableEntity, "no sales data in the requested periods")
			return
		}
		logger.Error().Err(err).Str("query", req.Query).Msg("analysis failed")
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	var response api.AnalysisResponse
	switch result := outcome.(type) {
	case *domain.AnalysisResult:
		response = api.AnalysisResponse{
			Kind:     api.KindAnalysis,
			Analysis: adapters.MapDomainAnalysisToAPI(result, analysissvc.Summarize(result)),
		}
	case *domain.EntityLookupResult:
		response = api.AnalysisResponse{
			Kind:         api.KindEntityLookup,
			EntityLookup: adapters.MapDomainLookupToAPI(result, analysissvc.SummarizeLookup(result)),
		}
	default:
		logger.Error().Str("query", req.Query).Msg("unexpected analysis outcome type")
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	writeJSON(w, logger, response)
}

func (h *Handler) DrillDown(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.DrillDownRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	current, err := parseWindow(req.CurrentStart, req.CurrentEnd)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid current window: "+err.Error())
		return
	}
	comparison, err := parseWindow(req.ComparisonStart, req.ComparisonEnd)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid comparison window: "+err.Error())
		return
	}
	primary, err := domain.ParseDimension(req.Primary)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	secondary, err := domain.ParseDimension(req.Secondary)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if primary == secondary {
		writeError(w, http.StatusBadRequest, "primary and secondary dimensions must differ")
		return
	}
	if req.PrimaryValue == "" {
		writeError(w, http.StatusBadRequest, "primary_value is required")
		return
	}

	plan := analysissvc.DrillDownPlan(current, comparison, primary, req.PrimaryValue, secondary)
	rows, err := h.engine.DrillDown(ctx, plan)
	if err != nil {
		logger.Error().Err(err).
			Str("primary", req.Primary).
			Str("primary_value", req.PrimaryValue).
			Str("secondary", req.Secondary).
			Msg("drill down failed")
		writeError(w, http.StatusInternalServerError, "drill down failed")
		return
	}

	writeJSON(w, logger, api.DrillDownResponse{Rows: adapters.MapDomainDriverRowsToAPI(rows)})
}

func (h *Handler) ListDimensionValues(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	dim, err := domain.ParseDimension(chi.URLParam(r, "dimension"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	values, err := h.engine.DimensionValues(ctx, dim)
	if err != nil {
		logger.Error().Err(err).Str("dimension", dim.String()).Msg("failed to list dimension values")
		writeError(w, http.StatusInternalServerError, "failed to list dimension values")
		return
	}

	writeJSON(w, logger, api.DimensionValuesResponse{Dimension: dim.String(), Values: values})
}

func parseWindow(start, end string) (domain.TimeWindow, error) {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return domain.TimeWindow{}, err
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return domain.TimeWindow{}, err
	}
	if s.After(e) {
		return domain.TimeWindow{}, errors.New("start is after end")
	}
	return domain.NewTimeWindow(s, e), nil
}

func writeJSON(w http.ResponseWriter, logger *zerolog.Logger, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
