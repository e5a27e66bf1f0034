package models

import (
	"time"

	"github.com/google/uuid"
)

// Coupon is a percentage discount code managed by the back office.
// Codes are stored uppercase; lookup normalizes before comparing.
type Coupon struct {
	ID              uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code            string    `gorm:"column:code;not null;uniqueIndex"`
	DiscountPercent int       `gorm:"column:discount_percent;not null"`
	Active          bool      `gorm:"column:active;not null;default:true"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
