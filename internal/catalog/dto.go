package catalog

import (
	"time"

	"github.com/chronovahq/chronova-backend/pkg/db/models"
	"github.com/google/uuid"
)

// CategoryDTO is the public category shape.
type CategoryDTO struct {
	ID       uuid.UUID `json:"id"`
	Slug     string    `json:"slug"`
	Name     string    `json:"name"`
	Position int       `json:"position"`
}

// ProductSummaryDTO is the storefront listing card.
type ProductSummaryDTO struct {
	ID                  uuid.UUID    `json:"id"`
	Slug                string       `json:"slug"`
	Name                string       `json:"name"`
	Brand               *string      `json:"brand,omitempty"`
	Category            *CategoryDTO `json:"category,omitempty"`
	PriceCents          int64        `json:"price_cents"`
	CompareAtPriceCents *int64       `json:"compare_at_price_cents,omitempty"`
	Image               string       `json:"image"`
	InStock             bool         `json:"in_stock"`
	IsFeatured          bool         `json:"is_featured"`
	RatingAvg           float64      `json:"rating_avg"`
	RatingCount         int          `json:"rating_count"`
}

// ProductDetailDTO extends the summary with full detail fields.
type ProductDetailDTO struct {
	ProductSummaryDTO
	Description *string   `json:"description,omitempty"`
	Images      []string  `json:"images"`
	Stock       int       `json:"stock"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductListDTO is a page of products plus the unpaged total.
type ProductListDTO struct {
	Products []ProductSummaryDTO `json:"products"`
	Total    int64               `json:"total"`
	Limit    int                 `json:"limit"`
	Offset   int                 `json:"offset"`
}

func toCategoryDTO(category *models.Category) *CategoryDTO {
	if category == nil {
		return nil
	}
	return &CategoryDTO{
		ID:       category.ID,
		Slug:     category.Slug,
		Name:     category.Name,
		Position: category.Position,
	}
}

func toSummaryDTO(product models.Product) ProductSummaryDTO {
	return ProductSummaryDTO{
		ID:                  product.ID,
		Slug:                product.Slug,
		Name:                product.Name,
		Brand:               product.Brand,
		Category:            toCategoryDTO(product.Category),
		PriceCents:          product.PriceCents,
		CompareAtPriceCents: product.CompareAtPriceCents,
		Image:               product.FeaturedImage(),
		InStock:             product.Stock > 0,
		IsFeatured:          product.IsFeatured,
		RatingAvg:           product.RatingAvg,
		RatingCount:         product.RatingCount,
	}
}

func toDetailDTO(product *models.Product) *ProductDetailDTO {
	return &ProductDetailDTO{
		ProductSummaryDTO: toSummaryDTO(*product),
		Description:       product.Description,
		Images:            append([]string{}, product.Images...),
		Stock:             product.Stock,
		IsActive:          product.IsActive,
		CreatedAt:         product.CreatedAt,
	}
}
