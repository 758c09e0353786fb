package domain

import (
	"fmt"
	"time"
)

// Dimension is one of the four categorical axes of the sales star schema.
// The zero value is DimensionProduct, which is also the classifier default.
type Dimension int

const (
	DimensionProduct Dimension = iota
	DimensionStaff
	DimensionCustomer
	DimensionRegion
)

// AllDimensions returns the dimensions in their fixed enum order. Digest
// assembly and drill-down listings rely on this order being stable.
func AllDimensions() []Dimension {
	return []Dimension{DimensionProduct, DimensionStaff, DimensionCustomer, DimensionRegion}
}

func (d Dimension) String() string {
	switch d {
	case DimensionProduct:
		return "product"
	case DimensionStaff:
		return "staff"
	case DimensionCustomer:
		return "customer"
	case DimensionRegion:
		return "region"
	}
	panic(fmt.Sprintf("invalid dimension %d", int(d)))
}

// Label returns the Traditional-Chinese display name of the dimension.
func (d Dimension) Label() string {
	switch d {
	case DimensionProduct:
		return "產品"
	case DimensionStaff:
		return "業務員"
	case DimensionCustomer:
		return "客戶"
	case DimensionRegion:
		return "地區"
	}
	panic(fmt.Sprintf("invalid dimension %d", int(d)))
}

// Others returns every dimension except d, in fixed enum order. These are the
// secondary dimensions available for drill-down and the digest.
func (d Dimension) Others() []Dimension {
	others := make([]Dimension, 0, 3)
	for _, dim := range AllDimensions() {
		if dim != d {
			others = append(others, dim)
		}
	}
	return others
}

func ParseDimension(s string) (Dimension, error) {
	switch s {
	case "product":
		return DimensionProduct, nil
	case "staff":
		return DimensionStaff, nil
	case "customer":
		return DimensionCustomer, nil
	case "region":
		return DimensionRegion, nil
	}
	return 0, fmt.Errorf("unknown dimension %q", s)
}

// TimeWindow is an inclusive date range. Start <= End holds for every window
// produced by the resolver.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

func NewTimeWindow(start, end time.Time) TimeWindow {
	return TimeWindow{Start: start, End: end}
}

// MonthWindow covers one calendar month.
func MonthWindow(year int, month time.Month) TimeWindow {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return TimeWindow{Start: start, End: start.AddDate(0, 1, -1)}
}

// QuarterWindow covers one calendar quarter; quarter is 1..4.
func QuarterWindow(year, quarter int) TimeWindow {
	start := time.Date(year, time.Month(3*(quarter-1)+1), 1, 0, 0, 0, 0, time.UTC)
	return TimeWindow{Start: start, End: start.AddDate(0, 3, -1)}
}

// YearWindow covers one full calendar year.
func YearWindow(year int) TimeWindow {
	return TimeWindow{
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

// FocusEntity is a named value of one dimension extracted from the query
// text, e.g. ("customer", "台塑"). Membership against the store's known
// values is resolved during analysis, not here.
type FocusEntity struct {
	Dimension Dimension
	Name      string
}

// ResolvedQuery is the immutable outcome of resolving one raw text query.
// ExplicitPeriod is false only when no temporal token matched at all and the
// windows were defaulted from the reference date.
type ResolvedQuery struct {
	Current        TimeWindow
	Comparison     TimeWindow
	PeriodLabel    string
	Dimension      Dimension
	Focus          *FocusEntity
	ExplicitPeriod bool
}
