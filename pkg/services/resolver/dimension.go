package resolver

import (
	"strings"

	"github.com/de-tools/sales-pulse/pkg/models/domain"
)

// dimensionKeywords are tested in priority order; the first dimension whose
// keyword set intersects the text wins.
var dimensionKeywords = []struct {
	dimension domain.Dimension
	keywords  []string
}{
	{domain.DimensionProduct, []string{"產品", "商品", "item", "product"}},
	{domain.DimensionStaff, []string{"業務員", "銷售員", "staff", "sales"}},
	{domain.DimensionCustomer, []string{"客戶", "customer", "client"}},
	{domain.DimensionRegion, []string{"地區", "區域", "region", "area"}},
}

// ClassifyDimension maps raw query text to an analysis dimension. It is a
// total function; text with no dimension keyword defaults to product.
func ClassifyDimension(text string) domain.Dimension {
	lowered := strings.ToLower(text)
	for _, entry := range dimensionKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lowered, kw) {
				return entry.dimension
			}
		}
	}
	return domain.DimensionProduct
}
