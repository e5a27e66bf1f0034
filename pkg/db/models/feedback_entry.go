package models

import (
	"time"

	"github.com/google/uuid"
)

// FeedbackEntry is site-wide customer feedback; the storefront only shows
// approved entries.
type FeedbackEntry struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Author    string    `gorm:"column:author;not null"`
	Body      string    `gorm:"column:body;not null"`
	Rating    int       `gorm:"column:rating;not null"`
	Approved  bool      `gorm:"column:approved;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
