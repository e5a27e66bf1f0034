package customers

import (
	"context"

	"github.com/chronovahq/chronova-backend/pkg/db/models"
	"github.com/chronovahq/chronova-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository handles the back-office customer book. Checkout upserts by
// phone inside its transaction.
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

// UpsertByPhone inserts the customer or refreshes contact fields when the
// phone already exists. Returns the stored row either way.
func (r *Repository) UpsertByPhone(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "phone"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "email", "address", "updated_at",
			}),
		}).
		Create(customer).Error; err != nil {
		return nil, err
	}

	var stored models.Customer
	if err := r.db.WithContext(ctx).
		First(&stored, "phone = ?", customer.Phone).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// FindByID loads a single customer.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

// List returns customers newest first with cursor paging.
func (r *Repository) List(ctx context.Context, params pagination.Params) ([]models.Customer, string, error) {
	limit := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit))

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}
	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var customers []models.Customer
	if err := query.Find(&customers).Error; err != nil {
		return nil, "", err
	}

	next := ""
	if len(customers) > limit {
		customers = customers[:limit]
		last := customers[len(customers)-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return customers, next, nil
}

// OrdersFor returns the customer's orders newest first.
func (r *Repository) OrdersFor(ctx context.Context, customerID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
