package store

// PeriodSums carries the two conditional sums of one period-comparison query.
type PeriodSums struct {
	CurrentSales    float64
	ComparisonSales float64
}

// DriverRecord is one grouped row of a driver or drill-down query, as scanned
// from the store.
type DriverRecord struct {
	Label           string
	CurrentSales    float64
	ComparisonSales float64
}

// EntityRecord is one aggregate row of an entity lookup query.
type EntityRecord struct {
	Label         string
	TotalAmount   float64
	TotalQuantity int64
}
