package enums

// ProductSort enumerates the storefront catalog sort orders.
type ProductSort string

const (
	ProductSortNewest    ProductSort = "newest"
	ProductSortPriceAsc  ProductSort = "price_asc"
	ProductSortPriceDesc ProductSort = "price_desc"
	ProductSortRating    ProductSort = "rating"
)

func (s ProductSort) IsValid() bool {
	switch s {
	case ProductSortNewest, ProductSortPriceAsc, ProductSortPriceDesc, ProductSortRating:
		return true
	}
	return false
}
