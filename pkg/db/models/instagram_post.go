package models

import (
	"time"

	"github.com/google/uuid"
)

// InstagramPost is a curated gallery entry shown on the storefront.
type InstagramPost struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ImageURL  string    `gorm:"column:image_url;not null"`
	Caption   *string   `gorm:"column:caption"`
	Permalink *string   `gorm:"column:permalink"`
	Position  int       `gorm:"column:position;not null;default:0"`
	Active    bool      `gorm:"column:active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
