package api

type AnalyzeRequest struct {
	Query string `json:"query"`
}

type DriverRow struct {
	Label           string  `json:"label"`
	CurrentSales    float64 `json:"current_sales"`
	ComparisonSales float64 `json:"comparison_sales"`
	Delta           float64 `json:"delta"`
}

type DigestEntry struct {
	Dimension string      `json:"dimension"`
	Top       []DriverRow `json:"top"`
}

// PeriodAnalysis is the JSON shape of a full period-over-period analysis.
// PercentDelta is nil when the comparison total is zero, since JSON has no
// encoding for an infinite number; PercentDisplay always carries a readable
// form.
type PeriodAnalysis struct {
	PeriodLabel     string        `json:"period_label"`
	Dimension       string        `json:"dimension"`
	CurrentTotal    float64       `json:"current_total"`
	ComparisonTotal float64       `json:"comparison_total"`
	Delta           float64       `json:"delta"`
	PercentDelta    *float64      `json:"percent_delta"`
	PercentDisplay  string        `json:"percent_display"`
	Drivers         []DriverRow   `json:"drivers"`
	SecondaryDigest []DigestEntry `json:"secondary_digest"`
	Summary         string        `json:"summary"`
}

type EntityRow struct {
	Name          string  `json:"name"`
	TotalAmount   float64 `json:"total_amount"`
	TotalQuantity int64   `json:"total_quantity"`
}

type EntityLookup struct {
	Name      string      `json:"name"`
	Dimension string      `json:"dimension"`
	Exists    bool        `json:"exists"`
	Rows      []EntityRow `json:"rows"`
	Summary   string      `json:"summary"`
}

// AnalysisResponse is a tagged union: exactly one of Analysis and
// EntityLookup is set, named by Kind.
type AnalysisResponse struct {
	Kind         string          `json:"kind"`
	Analysis     *PeriodAnalysis `json:"analysis,omitempty"`
	EntityLookup *EntityLookup   `json:"entity_lookup,omitempty"`
}

const (
	KindAnalysis     = "analysis"
	KindEntityLookup = "entity_lookup"
)

// DrillDownRequest dates use the YYYY-MM-DD form; windows are inclusive.
type DrillDownRequest struct {
	CurrentStart    string `json:"current_start"`
	CurrentEnd      string `json:"current_end"`
	ComparisonStart string `json:"comparison_start"`
	ComparisonEnd   string `json:"comparison_end"`
	Primary         string `json:"primary"`
	PrimaryValue    string `json:"primary_value"`
	Secondary       string `json:"secondary"`
}

type DrillDownResponse struct {
	Rows []DriverRow `json:"rows"`
}

type DimensionValuesResponse struct {
	Dimension string   `json:"dimension"`
	Values    []string `json:"values"`
}
