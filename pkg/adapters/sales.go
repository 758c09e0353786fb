package adapters

import (
	"github.com/de-tools/sales-pulse/pkg/models/domain"
	"github.com/de-tools/sales-pulse/pkg/models/store"
)

func MapStorePeriodSumsToDomainTotals(sums *store.PeriodSums) domain.PeriodTotals {
	return domain.PeriodTotals{
		CurrentSales:    sums.CurrentSales,
		ComparisonSales: sums.ComparisonSales,
	}
}

func MapStoreDriverRecordToDomainRow(rec store.DriverRecord) domain.DriverRow {
	return domain.DriverRow{
		Label:           rec.Label,
		CurrentSales:    rec.CurrentSales,
		ComparisonSales: rec.ComparisonSales,
		Delta:           rec.CurrentSales - rec.ComparisonSales,
	}
}

func MapStoreDriverRecordsToDomainRows(recs []store.DriverRecord) []domain.DriverRow {
	rows := make([]domain.DriverRow, 0, len(recs))
	for _, rec := range recs {
		rows = append(rows, MapStoreDriverRecordToDomainRow(rec))
	}
	return rows
}

func MapStoreEntityRecordToDomainRow(rec store.EntityRecord) domain.EntityRow {
	return domain.EntityRow{
		Name:          rec.Label,
		TotalAmount:   rec.TotalAmount,
		TotalQuantity: rec.TotalQuantity,
	}
}
