package sales

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/sales-pulse/pkg/models/domain"
	"github.com/de-tools/sales-pulse/pkg/models/store"
)

// ErrNoData signals that neither window touches any fact rows. It is distinct
// from a query returning zero grouped rows after filtering.
var ErrNoData = errors.New("no sales data in the requested periods")

// Store exposes the read operations of the star schema. All windows are
// inclusive date ranges.
type Store interface {
	ListDimensionValues(ctx context.Context, dim domain.Dimension) ([]string, error)
	PeriodTotals(ctx context.Context, current, comparison domain.TimeWindow) (*store.PeriodSums, error)
	DriverRows(ctx context.Context, current, comparison domain.TimeWindow, dim domain.Dimension) ([]store.DriverRecord, error)
	DrillDownRows(ctx context.Context, current, comparison domain.TimeWindow, primary domain.Dimension, primaryValue string, secondary domain.Dimension) ([]store.DriverRecord, error)
	EntityTotals(ctx context.Context, dim domain.Dimension, name string, window *domain.TimeWindow) ([]store.EntityRecord, error)
}

type salesStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &salesStore{db: db}, nil
}

// dimensionMeta maps a dimension to its schema names. The enum is closed, so
// an unknown dimension is a programming error.
type dimensionMeta struct {
	table      string
	idColumn   string
	nameColumn string
}

var dimensionTables = map[domain.Dimension]dimensionMeta{
	domain.DimensionProduct:  {table: "dim_product", idColumn: "product_id", nameColumn: "product_name"},
	domain.DimensionStaff:    {table: "dim_staff", idColumn: "staff_id", nameColumn: "staff_name"},
	domain.DimensionCustomer: {table: "dim_customer", idColumn: "customer_id", nameColumn: "customer_name"},
	domain.DimensionRegion:   {table: "dim_region", idColumn: "region_id", nameColumn: "region_name"},
}

func metaFor(dim domain.Dimension) dimensionMeta {
	meta, ok := dimensionTables[dim]
	if !ok {
		panic(fmt.Sprintf("unknown dimension %d", dim))
	}
	return meta
}

func fmtDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func windowArgs(w domain.TimeWindow) []interface{} {
	return []interface{}{fmtDate(w.Start), fmtDate(w.End)}
}

func (s *salesStore) ListDimensionValues(ctx context.Context, dim domain.Dimension) ([]string, error) {
	meta := metaFor(dim)
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s`, meta.nameColumn, meta.table, meta.nameColumn)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list %s values: %w", dim, err)
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func (s *salesStore) PeriodTotals(ctx context.Context, current, comparison domain.TimeWindow) (*store.PeriodSums, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN t.date BETWEEN ? AND ? THEN f.amount ELSE 0 END), 0) AS current_sales,
			COALESCE(SUM(CASE WHEN t.date BETWEEN ? AND ? THEN f.amount ELSE 0 END), 0) AS comparison_sales,
			COUNT(CASE WHEN t.date BETWEEN ? AND ? OR t.date BETWEEN ? AND ? THEN 1 END) AS row_count
		FROM sales_fact f
		JOIN dim_time t ON f.time_id = t.time_id
	`
	args := append(windowArgs(current), windowArgs(comparison)...)
	args = append(args, windowArgs(current)...)
	args = append(args, windowArgs(comparison)...)

	var sums store.PeriodSums
	var rowCount int64
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&sums.CurrentSales, &sums.ComparisonSales, &rowCount)
	if err != nil {
		return nil, fmt.Errorf("query period totals: %w", err)
	}
	if rowCount == 0 {
		return nil, ErrNoData
	}
	return &sums, nil
}

func (s *salesStore) DriverRows(ctx context.Context, current, comparison domain.TimeWindow, dim domain.Dimension) ([]store.DriverRecord, error) {
	meta := metaFor(dim)
	query := fmt.Sprintf(`
		SELECT
			d.%s AS label,
			COALESCE(SUM(CASE WHEN t.date BETWEEN ? AND ? THEN f.amount ELSE 0 END), 0) AS current_sales,
			COALESCE(SUM(CASE WHEN t.date BETWEEN ? AND ? THEN f.amount ELSE 0 END), 0) AS comparison_sales
		FROM sales_fact f
		JOIN dim_time t ON f.time_id = t.time_id
		JOIN %s d ON f.%s = d.%s
		GROUP BY d.%s
		HAVING ABS(current_sales - comparison_sales) > 0
		ORDER BY ABS(current_sales - comparison_sales) DESC, label ASC
	`, meta.nameColumn, meta.table, meta.idColumn, meta.idColumn, meta.nameColumn)

	args := append(windowArgs(current), windowArgs(comparison)...)
	records, err := s.queryDriverRecords(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s drivers: %w", dim, err)
	}
	if len(records) == 0 {
		// Every delta being zero is a valid empty result; only the absence
		// of fact rows in both windows is ErrNoData.
		count, err := s.factCount(ctx, current, comparison)
		if err != nil {
			return nil, fmt.Errorf("query %s drivers: %w", dim, err)
		}
		if count == 0 {
			return nil, ErrNoData
		}
	}
	return records, nil
}

func (s *salesStore) factCount(ctx context.Context, current, comparison domain.TimeWindow) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM sales_fact f
		JOIN dim_time t ON f.time_id = t.time_id
		WHERE t.date BETWEEN ? AND ? OR t.date BETWEEN ? AND ?
	`
	args := append(windowArgs(current), windowArgs(comparison)...)

	var count int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *salesStore) DrillDownRows(ctx context.Context, current, comparison domain.TimeWindow, primary domain.Dimension, primaryValue string, secondary domain.Dimension) ([]store.DriverRecord, error) {
	if primary == secondary {
		return nil, fmt.Errorf("drill down requires two distinct dimensions, got %s twice", primary)
	}
	primaryMeta := metaFor(primary)
	secondaryMeta := metaFor(secondary)
	query := fmt.Sprintf(`
		SELECT
			d.%s AS label,
			COALESCE(SUM(CASE WHEN t.date BETWEEN ? AND ? THEN f.amount ELSE 0 END), 0) AS current_sales,
			COALESCE(SUM(CASE WHEN t.date BETWEEN ? AND ? THEN f.amount ELSE 0 END), 0) AS comparison_sales
		FROM sales_fact f
		JOIN dim_time t ON f.time_id = t.time_id
		JOIN %s d ON f.%s = d.%s
		JOIN %s p ON f.%s = p.%s
		WHERE p.%s = ?
		GROUP BY d.%s
		HAVING ABS(current_sales - comparison_sales) > 0
		ORDER BY ABS(current_sales - comparison_sales) DESC, label ASC
	`, secondaryMeta.nameColumn,
		secondaryMeta.table, secondaryMeta.idColumn, secondaryMeta.idColumn,
		primaryMeta.table, primaryMeta.idColumn, primaryMeta.idColumn,
		primaryMeta.nameColumn, secondaryMeta.nameColumn)

	args := append(windowArgs(current), windowArgs(comparison)...)
	args = append(args, primaryValue)
	records, err := s.queryDriverRecords(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s drill down by %s: %w", secondary, primary, err)
	}
	return records, nil
}

func (s *salesStore) EntityTotals(ctx context.Context, dim domain.Dimension, name string, window *domain.TimeWindow) ([]store.EntityRecord, error) {
	meta := metaFor(dim)
	query := fmt.Sprintf(`
		SELECT
			d.%s AS label,
			COALESCE(SUM(f.amount), 0) AS total_amount,
			COALESCE(SUM(f.quantity), 0) AS total_quantity
		FROM sales_fact f
		JOIN dim_time t ON f.time_id = t.time_id
		JOIN %s d ON f.%s = d.%s
		WHERE d.%s = ?
	`, meta.nameColumn, meta.table, meta.idColumn, meta.idColumn, meta.nameColumn)

	args := []interface{}{name}
	if window != nil {
		query += " AND t.date BETWEEN ? AND ?"
		args = append(args, windowArgs(*window)...)
	}
	query += fmt.Sprintf(" GROUP BY d.%s", meta.nameColumn)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s entity totals: %w", dim, err)
	}
	defer rows.Close()

	records := make([]store.EntityRecord, 0)
	for rows.Next() {
		var rec store.EntityRecord
		if err := rows.Scan(&rec.Label, &rec.TotalAmount, &rec.TotalQuantity); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *salesStore) queryDriverRecords(ctx context.Context, query string, args ...interface{}) ([]store.DriverRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]store.DriverRecord, 0)
	for rows.Next() {
		var rec store.DriverRecord
		if err := rows.Scan(&rec.Label, &rec.CurrentSales, &rec.ComparisonSales); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
