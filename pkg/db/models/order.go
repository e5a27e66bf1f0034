package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/chronovahq/chronova-backend/pkg/enums"
)

// Order is the immutable checkout snapshot. Line items copy product
// name/price/image at submission time so later catalog edits never move
// historical totals. Only Status changes after creation.
type Order struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID    *uuid.UUID         `gorm:"column:customer_id;type:uuid"`
	CustomerName  string             `gorm:"column:customer_name;not null"`
	CustomerPhone string             `gorm:"column:customer_phone;not null"`
	CustomerEmail *string            `gorm:"column:customer_email"`
	Address       string             `gorm:"column:address;not null"`
	Notes         *string            `gorm:"column:notes"`
	Channel       enums.OrderChannel `gorm:"column:channel;not null"`
	Status        enums.OrderStatus  `gorm:"column:status;not null;default:'pending'"`
	SubtotalCents int64              `gorm:"column:subtotal_cents;not null"`
	ShippingCents int64              `gorm:"column:shipping_cents;not null"`
	DiscountCents int64              `gorm:"column:discount_cents;not null;default:0"`
	TotalCents    int64              `gorm:"column:total_cents;not null"`
	CouponCode    *string            `gorm:"column:coupon_code"`
	Items         []OrderItem        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
