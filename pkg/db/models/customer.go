package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is the back-office contact record, upserted per checkout with
// phone as the natural key.
type Customer struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Phone     string    `gorm:"column:phone;not null;uniqueIndex"`
	Email     *string   `gorm:"column:email"`
	Address   *string   `gorm:"column:address"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
