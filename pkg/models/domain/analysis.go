package domain

import "math"

// DriverRow is one dimension value's contribution to the period-over-period
// change. Lists of DriverRow are always filtered to Delta != 0 and ordered by
// |Delta| descending, ties broken by Label ascending.
type DriverRow struct {
	Label           string
	CurrentSales    float64
	ComparisonSales float64
	Delta           float64
}

type PeriodTotals struct {
	CurrentSales    float64
	ComparisonSales float64
}

// DigestEntry holds the top contributors of one secondary dimension. Digest
// slices are assembled in fixed dimension enum order.
type DigestEntry struct {
	Dimension Dimension
	Top       []DriverRow
}

type AnalysisResult struct {
	CurrentTotal    float64
	ComparisonTotal float64
	Delta           float64
	PercentDelta    float64
	Drivers         []DriverRow
	Dimension       Dimension
	PeriodLabel     string
	SecondaryDigest []DigestEntry
}

// EntityRow is one aggregate line of an entity lookup.
type EntityRow struct {
	Name          string
	TotalAmount   float64
	TotalQuantity int64
}

// EntityLookupResult reports a focus-entity lookup. Exists=false with empty
// Rows is a valid success value, never an error.
type EntityLookupResult struct {
	Name      string
	Dimension Dimension
	Exists    bool
	Rows      []EntityRow
}

// AnalysisOutcome is the tagged result of Analyze: either a full
// period-over-period analysis or an entity lookup.
type AnalysisOutcome interface {
	analysisOutcome()
}

func (*AnalysisResult) analysisOutcome()     {}
func (*EntityLookupResult) analysisOutcome() {}

// PercentDelta applies the three-way sentinel convention: 0 when both totals
// are zero, +/-Inf when only the comparison total is zero, otherwise the
// plain percentage change.
func PercentDelta(comparisonTotal, delta float64) float64 {
	if comparisonTotal == 0 {
		switch {
		case delta > 0:
			return math.Inf(1)
		case delta < 0:
			return math.Inf(-1)
		}
		return 0
	}
	return delta / comparisonTotal * 100
}
