package analysis

import (
	"github.com/de-tools/sales-pulse/pkg/models/domain"
)

// Op enumerates the canonical read operations issued against the star schema.
type Op int

const (
	OpPeriodTotals Op = iota
	OpDriverAnalysis
	OpDrillDown
	OpMultiDimensionDigest
)

func (o Op) String() string {
	switch o {
	case OpPeriodTotals:
		return "period_totals"
	case OpDriverAnalysis:
		return "driver_analysis"
	case OpDrillDown:
		return "drill_down"
	case OpMultiDimensionDigest:
		return "multi_dimension_digest"
	}
	return "unknown"
}

// Plan is one aggregate-query descriptor. Dimension is the group-by axis for
// OpDriverAnalysis, the secondary axis for OpDrillDown and the excluded axis
// for OpMultiDimensionDigest.
type Plan struct {
	Op               Op
	Current          domain.TimeWindow
	Comparison       domain.TimeWindow
	Dimension        domain.Dimension
	PrimaryDimension domain.Dimension
	PrimaryValue     string
}

// Synthesize turns a resolved query into the ordered plans of one full
// period-over-period analysis.
func Synthesize(q domain.ResolvedQuery) []Plan {
	return []Plan{
		{Op: OpPeriodTotals, Current: q.Current, Comparison: q.Comparison},
		{Op: OpDriverAnalysis, Current: q.Current, Comparison: q.Comparison, Dimension: q.Dimension},
		{Op: OpMultiDimensionDigest, Current: q.Current, Comparison: q.Comparison, Dimension: q.Dimension},
	}
}

// DrillDownPlan describes one drill-down: the same comparison restricted to a
// single primary value, regrouped by a secondary dimension.
func DrillDownPlan(current, comparison domain.TimeWindow, primary domain.Dimension, primaryValue string, secondary domain.Dimension) Plan {
	return Plan{
		Op:               OpDrillDown,
		Current:          current,
		Comparison:       comparison,
		Dimension:        secondary,
		PrimaryDimension: primary,
		PrimaryValue:     primaryValue,
	}
}
