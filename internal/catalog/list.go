package catalog

import (
	"github.com/chronovahq/chronova-backend/pkg/enums"
	"github.com/chronovahq/chronova-backend/pkg/pagination"
)

// ListParams are the normalized storefront/back-office listing inputs.
// Price bounds are cents; zero means unbounded.
type ListParams struct {
	CategorySlug    string
	Search          string
	FeaturedOnly    bool
	InStockOnly     bool
	IncludeInactive bool
	MinPriceCents   int64
	MaxPriceCents   int64
	Sort            enums.ProductSort
	Limit           int
	Offset          int
}

// Normalize applies default sort and paging bounds.
func (p ListParams) Normalize() ListParams {
	if !p.Sort.IsValid() {
		p.Sort = enums.ProductSortNewest
	}
	if p.MinPriceCents < 0 {
		p.MinPriceCents = 0
	}
	if p.MaxPriceCents < 0 {
		p.MaxPriceCents = 0
	}
	p.Limit = pagination.NormalizeLimit(p.Limit)
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
