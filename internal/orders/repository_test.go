package orders

import (
	"context"
	"testing"
	"time"

	"github.com/chronovahq/chronova-backend/pkg/db/models"
	"github.com/chronovahq/chronova-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ordersTable := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  customer_id TEXT,
  customer_name TEXT NOT NULL,
  customer_phone TEXT NOT NULL,
  customer_email TEXT,
  address TEXT NOT NULL,
  notes TEXT,
  channel TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  subtotal_cents INTEGER NOT NULL,
  shipping_cents INTEGER NOT NULL,
  discount_cents INTEGER NOT NULL DEFAULT 0,
  total_cents INTEGER NOT NULL,
  coupon_code TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	orderItems := `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  product_name TEXT NOT NULL,
  product_slug TEXT NOT NULL,
  unit_price_cents INTEGER NOT NULL,
  quantity INTEGER NOT NULL,
  image TEXT,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(ordersTable).Error)
	require.NoError(t, db.Exec(orderItems).Error)
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, status enums.OrderStatus, created time.Time) *models.Order {
	t.Helper()

	order := &models.Order{
		ID:            uuid.New(),
		CustomerName:  "Test Buyer",
		CustomerPhone: "15550001111",
		Address:       "1 Dial Street",
		Channel:       enums.OrderChannelStandard,
		Status:        status,
		SubtotalCents: 3000,
		ShippingCents: 500,
		TotalCents:    3500,
		CreatedAt:     created,
		UpdatedAt:     created,
	}
	require.NoError(t, db.Create(order).Error)

	item := &models.OrderItem{
		ID:             uuid.New(),
		OrderID:        order.ID,
		ProductID:      uuid.New(),
		ProductName:    "Field Chronograph",
		ProductSlug:    "field-chronograph",
		UnitPriceCents: 1500,
		Quantity:       2,
		CreatedAt:      created,
	}
	require.NoError(t, db.Create(item).Error)
	return order
}

func TestRepositoryList_cursorPagination(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	now := time.Now().UTC().Truncate(time.Millisecond)
	older := seedOrder(t, db, enums.OrderStatusPending, now.Add(-time.Hour))
	newer := seedOrder(t, db, enums.OrderStatusPending, now)

	first, next, err := repo.List(context.Background(), ListFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, newer.ID, first[0].ID)
	assert.NotEmpty(t, next)
	require.Len(t, first[0].Items, 1)
	assert.Equal(t, "field-chronograph", first[0].Items[0].ProductSlug)

	second, next, err := repo.List(context.Background(), ListFilter{Limit: 1, Cursor: next})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, older.ID, second[0].ID)
	assert.Empty(t, next)
}

func TestRepositoryList_statusFilter(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	now := time.Now().UTC()
	seedOrder(t, db, enums.OrderStatusPending, now.Add(-time.Minute))
	shipped := seedOrder(t, db, enums.OrderStatusShipped, now)

	list, next, err := repo.List(context.Background(), ListFilter{Status: enums.OrderStatusShipped, Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, shipped.ID, list[0].ID)
	assert.Empty(t, next)
}

func TestRepositoryUpdateStatus(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	order := seedOrder(t, db, enums.OrderStatusPending, time.Now().UTC())
	require.NoError(t, repo.UpdateStatus(context.Background(), order.ID, enums.OrderStatusConfirmed))

	reloaded, err := repo.FindByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusConfirmed, reloaded.Status)
}
