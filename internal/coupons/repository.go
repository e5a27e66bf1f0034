package coupons

import (
	"context"
	"strings"

	"github.com/chronovahq/chronova-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles coupon persistence. Codes are stored uppercase and
// looked up case-insensitively by normalizing first.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByCode looks up a coupon by its normalized code.
func (r *Repository) FindByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.WithContext(ctx).First(&coupon, "code = ?", NormalizeCode(code)).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

// FindByID loads a coupon by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.WithContext(ctx).First(&coupon, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &coupon, nil
}

// List returns all coupons ordered by creation time, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Coupon, error) {
	var coupons []models.Coupon
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}

// Create persists a new coupon.
func (r *Repository) Create(ctx context.Context, coupon *models.Coupon) (*models.Coupon, error) {
	if err := r.db.WithContext(ctx).Create(coupon).Error; err != nil {
		return nil, err
	}
	return coupon, nil
}

// Update saves the mutable coupon fields.
func (r *Repository) Update(ctx context.Context, coupon *models.Coupon) (*models.Coupon, error) {
	if err := r.db.WithContext(ctx).Model(coupon).
		Select("code", "discount_percent", "active").
		Updates(coupon).Error; err != nil {
		return nil, err
	}
	return coupon, nil
}

// Delete removes the coupon.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Coupon{}, "id = ?", id).Error
}

// NormalizeCode uppercases and trims a coupon code for storage and lookup.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
