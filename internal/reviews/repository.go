package reviews

import (
	"context"

	"github.com/chronovahq/chronova-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles review persistence. The rating aggregate on products
// is owned here: the bump happens in the same transaction as the insert
// and in a single UPDATE, so concurrent reviews never lose counts.
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

// CreateWithRatingBump inserts the review and folds its rating into the
// product aggregate atomically.
func (r *Repository) CreateWithRatingBump(ctx context.Context, review *models.Review) (*models.Review, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return err
		}
		return tx.Model(&models.Product{}).
			Where("id = ?", review.ProductID).
			Updates(map[string]any{
				"rating_avg":   gorm.Expr("(rating_avg * rating_count + ?) / (rating_count + 1)", review.Rating),
				"rating_count": gorm.Expr("rating_count + 1"),
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return review, nil
}

// ListByProduct returns the product's reviews newest first.
func (r *Repository) ListByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}
