package adapters

import (
	"fmt"
	"math"

	"github.com/de-tools/sales-pulse/pkg/models/api"
	"github.com/de-tools/sales-pulse/pkg/models/domain"
)

func MapDomainDriverRowToAPI(row domain.DriverRow) api.DriverRow {
	return api.DriverRow{
		Label:           row.Label,
		CurrentSales:    row.CurrentSales,
		ComparisonSales: row.ComparisonSales,
		Delta:           row.Delta,
	}
}

func MapDomainDriverRowsToAPI(rows []domain.DriverRow) []api.DriverRow {
	out := make([]api.DriverRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, MapDomainDriverRowToAPI(row))
	}
	return out
}

// MapDomainAnalysisToAPI flattens the infinite percent sentinel: the numeric
// field is dropped and only the display form survives, since JSON numbers
// cannot carry an infinity.
func MapDomainAnalysisToAPI(result *domain.AnalysisResult, summary string) *api.PeriodAnalysis {
	digest := make([]api.DigestEntry, 0, len(result.SecondaryDigest))
	for _, entry := range result.SecondaryDigest {
		digest = append(digest, api.DigestEntry{
			Dimension: entry.Dimension.String(),
			Top:       MapDomainDriverRowsToAPI(entry.Top),
		})
	}

	out := &api.PeriodAnalysis{
		PeriodLabel:     result.PeriodLabel,
		Dimension:       result.Dimension.String(),
		CurrentTotal:    result.CurrentTotal,
		ComparisonTotal: result.ComparisonTotal,
		Delta:           result.Delta,
		PercentDisplay:  percentDisplay(result.PercentDelta),
		Drivers:         MapDomainDriverRowsToAPI(result.Drivers),
		SecondaryDigest: digest,
		Summary:         summary,
	}
	if !math.IsInf(result.PercentDelta, 0) {
		pd := result.PercentDelta
		out.PercentDelta = &pd
	}
	return out
}

func MapDomainLookupToAPI(result *domain.EntityLookupResult, summary string) *api.EntityLookup {
	rows := make([]api.EntityRow, 0, len(result.Rows))
	for _, row := range result.Rows {
		rows = append(rows, api.EntityRow{
			Name:          row.Name,
			TotalAmount:   row.TotalAmount,
			TotalQuantity: row.TotalQuantity,
		})
	}
	return &api.EntityLookup{
		Name:      result.Name,
		Dimension: result.Dimension.String(),
		Exists:    result.Exists,
		Rows:      rows,
		Summary:   summary,
	}
}

func percentDisplay(percentDelta float64) string {
	switch {
	case math.IsInf(percentDelta, 1):
		return "+∞"
	case math.IsInf(percentDelta, -1):
		return "-∞"
	}
	return fmt.Sprintf("%.1f%%", percentDelta)
}
