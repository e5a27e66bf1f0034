package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/chronovahq/chronova-backend/pkg/config"
	"github.com/chronovahq/chronova-backend/pkg/db/models"
	pkgerrors "github.com/chronovahq/chronova-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type productLoader interface {
	FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service exposes cart mutations. Every mutation reloads the product so
// quantity clamping always reflects current stock.
type Service interface {
	Get(ctx context.Context, token string) (*Cart, error)
	AddItem(ctx context.Context, token string, productID uuid.UUID, qty int) (*Cart, error)
	UpdateQuantity(ctx context.Context, token string, productID uuid.UUID, qty int) (*Cart, error)
	RemoveItem(ctx context.Context, token string, productID uuid.UUID) (*Cart, error)
	Clear(ctx context.Context, token string) error
}

type service struct {
	store    Store
	products productLoader
	maxQty   int
}

// NewService builds a cart service backed by the provided store and catalog.
func NewService(store Store, products productLoader, cfg config.CartConfig) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	maxQty := cfg.MaxQtyPerLine
	if maxQty <= 0 {
		maxQty = 99
	}
	return &service{
		store:    store,
		products: products,
		maxQty:   maxQty,
	}, nil
}

func (s *service) Get(ctx context.Context, token string) (*Cart, error) {
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}
	return s.store.Load(ctx, token)
}

// AddItem merges the quantity into an existing line or appends a new one.
// Adding a product already in the cart never duplicates the line.
func (s *service) AddItem(ctx context.Context, token string, productID uuid.UUID, qty int) (*Cart, error) {
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if qty < 1 {
		qty = 1
	}

	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Stock < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product is out of stock")
	}

	cart, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, err
	}

	if line := cart.findLine(productID); line != nil {
		line.Quantity = s.clamp(line.Quantity+qty, product.Stock)
		s.refreshLine(line, product)
	} else {
		line := Line{
			ProductID: product.ID,
			Quantity:  s.clamp(qty, product.Stock),
		}
		s.refreshLine(&line, product)
		cart.Lines = append(cart.Lines, line)
	}

	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateQuantity sets the line quantity, clamped to stock. A missing line
// leaves the cart untouched, and so does a quantity below one since
// deletions go through RemoveItem.
func (s *service) UpdateQuantity(ctx context.Context, token string, productID uuid.UUID, qty int) (*Cart, error) {
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}

	cart, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, err
	}

	line := cart.findLine(productID)
	if line == nil || qty < 1 {
		return cart, nil
	}

	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Stock < 1 {
		cart.removeLine(productID)
	} else {
		line.Quantity = s.clamp(qty, product.Stock)
		s.refreshLine(line, product)
	}

	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem drops the line. Removing a product that is not in the cart is
// a no-op, not an error.
func (s *service) RemoveItem(ctx context.Context, token string, productID uuid.UUID) (*Cart, error) {
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}

	cart, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, err
	}

	if !cart.removeLine(productID) {
		return cart, nil
	}

	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *service) Clear(ctx context.Context, token string) error {
	if token == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}
	return s.store.Delete(ctx, token)
}

// clamp bounds a quantity to [1, min(maxQty, stock)].
func (s *service) clamp(qty, stock int) int {
	limit := s.maxQty
	if stock < limit {
		limit = stock
	}
	if qty > limit {
		return limit
	}
	if qty < 1 {
		return 1
	}
	return qty
}

func (s *service) refreshLine(line *Line, product *models.Product) {
	line.Slug = product.Slug
	line.Name = product.Name
	line.UnitPriceCents = product.PriceCents
	if image := product.FeaturedImage(); image != "" {
		line.Image = &image
	} else {
		line.Image = nil
	}
}

func (s *service) loadProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.products.FindActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}
