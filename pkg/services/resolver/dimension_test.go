package resolver

import (
	"testing"

	"github.com/de-tools/sales-pulse/pkg/models/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassifyDimension(t *testing.T) {
	tests := []struct {
		text string
		want domain.Dimension
	}{
		{"2025年Q1 產品銷售額", domain.DimensionProduct},
		{"業務員業績比較", domain.DimensionStaff},
		{"客戶消費分析", domain.DimensionCustomer},
		{"北區 vs 南區 地區銷售", domain.DimensionRegion},
		{"staff performance 2025", domain.DimensionStaff},
		{"REGION breakdown", domain.DimensionRegion},
		// No keyword at all defaults to product.
		{"2025/07 vs 2025/06", domain.DimensionProduct},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyDimension(tt.text), "text: %s", tt.text)
	}
}

func TestClassifyDimension_PriorityOrder(t *testing.T) {
	// Product keywords win even when later dimensions also match.
	assert.Equal(t, domain.DimensionProduct, ClassifyDimension("產品與業務員與客戶與地區"))
	assert.Equal(t, domain.DimensionStaff, ClassifyDimension("業務員與客戶與地區"))
	assert.Equal(t, domain.DimensionCustomer, ClassifyDimension("客戶與地區"))
}
