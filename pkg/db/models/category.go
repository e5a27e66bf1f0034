package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products for storefront filtering.
type Category struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Slug      string    `gorm:"column:slug;not null;uniqueIndex"`
	Name      string    `gorm:"column:name;not null"`
	Position  int       `gorm:"column:position;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
