package checkout

import (
	"context"
	"fmt"

	"github.com/chronovahq/chronova-backend/internal/catalog"
	"github.com/chronovahq/chronova-backend/internal/customers"
	"github.com/chronovahq/chronova-backend/internal/orders"
	"github.com/chronovahq/chronova-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository is the persistence facade for checkout. Every write takes the
// transaction explicitly so the whole submission commits or rolls back as
// one unit.
type Repository struct {
	orders    *orders.Repository
	customers *customers.Repository
	catalog   *catalog.Repository
}

// NewRepository builds the checkout facade over the domain repositories.
func NewRepository(ordersRepo *orders.Repository, customersRepo *customers.Repository, catalogRepo *catalog.Repository) (*Repository, error) {
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if customersRepo == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	if catalogRepo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &Repository{
		orders:    ordersRepo,
		customers: customersRepo,
		catalog:   catalogRepo,
	}, nil
}

// CreateOrder persists the order snapshot inside the transaction.
func (r *Repository) CreateOrder(ctx context.Context, tx *gorm.DB, order *models.Order) (*models.Order, error) {
	return r.orders.WithTx(tx).Create(ctx, order)
}

// UpsertCustomer inserts or refreshes the customer record inside the transaction.
func (r *Repository) UpsertCustomer(ctx context.Context, tx *gorm.DB, customer *models.Customer) (*models.Customer, error) {
	return r.customers.WithTx(tx).UpsertByPhone(ctx, customer)
}

// DecrementStock reduces product stock inside the transaction, returning
// rows affected so callers can detect a sold-out race.
func (r *Repository) DecrementStock(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int) (int64, error) {
	return r.catalog.WithTx(tx).DecrementStock(ctx, productID, qty)
}
