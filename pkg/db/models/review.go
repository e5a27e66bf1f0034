package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a customer product review. Inserts also bump the product's
// rating_count/rating_avg inside the same transaction.
type Review struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;index"`
	Author    string    `gorm:"column:author;not null"`
	Rating    int       `gorm:"column:rating;not null"`
	Body      *string   `gorm:"column:body"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
