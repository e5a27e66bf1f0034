package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Product is the canonical catalog listing. Prices are stored in cents;
// rating_avg/rating_count are maintained atomically by the reviews layer.
type Product struct {
	ID                  uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Slug                string         `gorm:"column:slug;not null;uniqueIndex"`
	Name                string         `gorm:"column:name;not null"`
	Brand               *string        `gorm:"column:brand"`
	Description         *string        `gorm:"column:description"`
	CategoryID          *uuid.UUID     `gorm:"column:category_id;type:uuid"`
	Category            *Category      `gorm:"foreignKey:CategoryID"`
	PriceCents          int64          `gorm:"column:price_cents;not null"`
	CompareAtPriceCents *int64         `gorm:"column:compare_at_price_cents"`
	Stock               int            `gorm:"column:stock;not null;default:0"`
	Images              pq.StringArray `gorm:"column:images;type:text[];not null;default:ARRAY[]::text[]"`
	IsActive            bool           `gorm:"column:is_active;not null;default:true"`
	IsFeatured          bool           `gorm:"column:is_featured;not null;default:false"`
	RatingAvg           float64        `gorm:"column:rating_avg;type:numeric(3,2);not null;default:0"`
	RatingCount         int            `gorm:"column:rating_count;not null;default:0"`
	CreatedAt           time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

// FeaturedImage returns the first product image, or empty when none exist.
func (p Product) FeaturedImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
