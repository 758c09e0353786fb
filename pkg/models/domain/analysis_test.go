package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPercentDelta(t *testing.T) {
	tests := []struct {
		name            string
		comparisonTotal float64
		delta           float64
		expected        float64
	}{
		{"both zero", 0, 0, 0},
		{"growth from zero", 0, 500, math.Inf(1)},
		{"drop to nothing from zero base", 0, -500, math.Inf(-1)},
		{"plain growth", 1200, 300, 25},
		{"plain drop", 1000, -600, -60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PercentDelta(tt.comparisonTotal, tt.delta))
		})
	}
}

func TestWindows(t *testing.T) {
	t.Run("month window spans the calendar month", func(t *testing.T) {
		w := MonthWindow(2024, time.February)

		assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), w.Start)
		assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), w.End)
	})

	t.Run("quarter window spans three months", func(t *testing.T) {
		w := QuarterWindow(2025, 4)

		assert.Equal(t, time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC), w.Start)
		assert.Equal(t, time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), w.End)
	})

	t.Run("year window spans the calendar year", func(t *testing.T) {
		w := YearWindow(2025)

		assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), w.Start)
		assert.Equal(t, time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), w.End)
	})
}

func TestDimension_Others(t *testing.T) {
	assert.Equal(t,
		[]Dimension{DimensionProduct, DimensionCustomer, DimensionRegion},
		DimensionStaff.Others())
}

func TestParseDimension(t *testing.T) {
	dim, err := ParseDimension("region")
	assert.NoError(t, err)
	assert.Equal(t, DimensionRegion, dim)

	_, err = ParseDimension("warehouse")
	assert.Error(t, err)
}
