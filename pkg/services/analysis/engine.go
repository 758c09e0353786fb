package analysis

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/de-tools/sales-pulse/pkg/adapters"
	"github.com/de-tools/sales-pulse/pkg/models/domain"
	"github.com/de-tools/sales-pulse/pkg/store/salesdb/sales"
)

const digestTopN = 3

// Engine executes resolved queries against the sales store. It holds no
// mutable state; one Engine serves concurrent requests.
type Engine struct {
	store sales.Store
}

func NewEngine(store sales.Store) *Engine {
	return &Engine{store: store}
}

// Analyze executes a resolved query end to end. A query with a focus entity
// becomes an entity lookup; everything else becomes a full period-over-period
// analysis.
func (e *Engine) Analyze(ctx context.Context, q domain.ResolvedQuery) (domain.AnalysisOutcome, error) {
	if q.Focus != nil {
		return e.lookupEntity(ctx, q)
	}
	return e.comparePeriods(ctx, q)
}

// DrillDown restricts the comparison to one primary value and regroups the
// drivers by the plan's secondary dimension. An empty result is valid.
func (e *Engine) DrillDown(ctx context.Context, plan Plan) ([]domain.DriverRow, error) {
	if plan.Op != OpDrillDown {
		return nil, fmt.Errorf("expected %s plan, got %s", OpDrillDown, plan.Op)
	}
	records, err := e.store.DrillDownRows(ctx, plan.Current, plan.Comparison,
		plan.PrimaryDimension, plan.PrimaryValue, plan.Dimension)
	if err != nil {
		return nil, err
	}
	return sortDriverRows(adapters.MapStoreDriverRecordsToDomainRows(records)), nil
}

func (e *Engine) DimensionValues(ctx context.Context, dim domain.Dimension) ([]string, error) {
	return e.store.ListDimensionValues(ctx, dim)
}

// SecondaryDimensions lists the drill-down axes available next to a primary
// dimension, in fixed enum order.
func (e *Engine) SecondaryDimensions(primary domain.Dimension) []domain.Dimension {
	return primary.Others()
}

func (e *Engine) comparePeriods(ctx context.Context, q domain.ResolvedQuery) (*domain.AnalysisResult, error) {
	result := &domain.AnalysisResult{Dimension: q.Dimension, PeriodLabel: q.PeriodLabel}
	for _, plan := range Synthesize(q) {
		if err := e.run(ctx, plan, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (e *Engine) run(ctx context.Context, plan Plan, result *domain.AnalysisResult) error {
	switch plan.Op {
	case OpPeriodTotals:
		sums, err := e.store.PeriodTotals(ctx, plan.Current, plan.Comparison)
		if err != nil {
			return err
		}
		totals := adapters.MapStorePeriodSumsToDomainTotals(sums)
		result.CurrentTotal = totals.CurrentSales
		result.ComparisonTotal = totals.ComparisonSales
		result.Delta = totals.CurrentSales - totals.ComparisonSales
		result.PercentDelta = domain.PercentDelta(totals.ComparisonSales, result.Delta)
		return nil
	case OpDriverAnalysis:
		records, err := e.store.DriverRows(ctx, plan.Current, plan.Comparison, plan.Dimension)
		if err != nil {
			return err
		}
		result.Drivers = sortDriverRows(adapters.MapStoreDriverRecordsToDomainRows(records))
		return nil
	case OpMultiDimensionDigest:
		digest, err := e.digest(ctx, plan)
		if err != nil {
			return err
		}
		result.SecondaryDigest = digest
		return nil
	}
	return fmt.Errorf("unsupported plan op %s", plan.Op)
}

// digest fans the secondary driver queries out concurrently, then assembles
// the entries in fixed dimension order so output is deterministic under any
// completion order. A dimension without fact rows drops out of the digest;
// any other store failure fails the whole analysis.
func (e *Engine) digest(ctx context.Context, plan Plan) ([]domain.DigestEntry, error) {
	others := plan.Dimension.Others()
	rowsByDim := make([][]domain.DriverRow, len(others))

	g, groupCtx := errgroup.WithContext(ctx)
	for i, dim := range others {
		g.Go(func() error {
			records, err := e.store.DriverRows(groupCtx, plan.Current, plan.Comparison, dim)
			if errors.Is(err, sales.ErrNoData) {
				zerolog.Ctx(groupCtx).Debug().
					Str("dimension", dim.String()).
					Msg("digest dimension skipped")
				return nil
			}
			if err != nil {
				return err
			}
			rowsByDim[i] = sortDriverRows(adapters.MapStoreDriverRecordsToDomainRows(records))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries := make([]domain.DigestEntry, 0, len(others))
	for i, dim := range others {
		rows := rowsByDim[i]
		if len(rows) == 0 {
			continue
		}
		if len(rows) > digestTopN {
			rows = rows[:digestTopN]
		}
		entries = append(entries, domain.DigestEntry{Dimension: dim, Top: rows})
	}
	return entries, nil
}

func (e *Engine) lookupEntity(ctx context.Context, q domain.ResolvedQuery) (*domain.EntityLookupResult, error) {
	focus := q.Focus
	values, err := e.store.ListDimensionValues(ctx, focus.Dimension)
	if err != nil {
		return nil, err
	}

	result := &domain.EntityLookupResult{
		Name:      focus.Name,
		Dimension: focus.Dimension,
		Rows:      []domain.EntityRow{},
	}
	if !containsValue(values, focus.Name) {
		return result, nil
	}
	result.Exists = true

	// An explicitly stated period restricts the aggregate; the global month
	// fallback does not, so a bare entity query reports its full history.
	var window *domain.TimeWindow
	if q.ExplicitPeriod {
		w := q.Current
		window = &w
	}
	records, err := e.store.EntityTotals(ctx, focus.Dimension, focus.Name, window)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		result.Rows = append(result.Rows, adapters.MapStoreEntityRecordToDomainRow(rec))
	}
	return result, nil
}

func containsValue(values []string, name string) bool {
	for _, v := range values {
		if v == name {
			return true
		}
	}
	return false
}

// sortDriverRows re-asserts the canonical ordering in-process: |Delta|
// descending, ties by Label ascending.
func sortDriverRows(rows []domain.DriverRow) []domain.DriverRow {
	sort.SliceStable(rows, func(i, j int) bool {
		ai, aj := math.Abs(rows[i].Delta), math.Abs(rows[j].Delta)
		if ai != aj {
			return ai > aj
		}
		return rows[i].Label < rows[j].Label
	})
	return rows
}
