package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem is a per-product snapshot frozen at checkout.
type OrderItem struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID `gorm:"column:order_id;type:uuid;not null"`
	ProductID      uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	ProductName    string    `gorm:"column:product_name;not null"`
	ProductSlug    string    `gorm:"column:product_slug;not null"`
	UnitPriceCents int64     `gorm:"column:unit_price_cents;not null"`
	Quantity       int       `gorm:"column:quantity;not null"`
	Image          *string   `gorm:"column:image"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}
