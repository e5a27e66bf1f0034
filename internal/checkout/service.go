package checkout

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/chronovahq/chronova-backend/internal/cart"
	"github.com/chronovahq/chronova-backend/internal/coupons"
	"github.com/chronovahq/chronova-backend/internal/pricing"
	"github.com/chronovahq/chronova-backend/pkg/config"
	"github.com/chronovahq/chronova-backend/pkg/db/models"
	"github.com/chronovahq/chronova-backend/pkg/enums"
	pkgerrors "github.com/chronovahq/chronova-backend/pkg/errors"
	"github.com/chronovahq/chronova-backend/pkg/logger"
	"github.com/chronovahq/chronova-backend/pkg/money"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cartAccess interface {
	Get(ctx context.Context, token string) (*cart.Cart, error)
	Clear(ctx context.Context, token string) error
}

type couponValidator interface {
	Validate(ctx context.Context, code string) (*coupons.ValidationResult, error)
}

type productLoader interface {
	FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type checkoutStore interface {
	CreateOrder(ctx context.Context, tx *gorm.DB, order *models.Order) (*models.Order, error)
	UpsertCustomer(ctx context.Context, tx *gorm.DB, customer *models.Customer) (*models.Customer, error)
	DecrementStock(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int) (int64, error)
}

// SubmitOrderInput is the storefront checkout payload.
type SubmitOrderInput struct {
	Name       string
	Phone      string
	Email      *string
	Address    string
	Notes      *string
	Channel    enums.OrderChannel
	CouponCode string
}

// OrderConfirmation is returned once the order has committed.
type OrderConfirmation struct {
	OrderID       uuid.UUID         `json:"order_id"`
	Status        enums.OrderStatus `json:"status"`
	SubtotalCents int64             `json:"subtotal_cents"`
	ShippingCents int64             `json:"shipping_cents"`
	DiscountCents int64             `json:"discount_cents"`
	TotalCents    int64             `json:"total_cents"`
	CouponCode    *string           `json:"coupon_code,omitempty"`
	WhatsAppLink  *string           `json:"whatsapp_link,omitempty"`
}

// Service executes order submission.
type Service interface {
	Submit(ctx context.Context, token string, input SubmitOrderInput) (*OrderConfirmation, error)
}

type service struct {
	tx       txRunner
	carts    cartAccess
	coupons  couponValidator
	products productLoader
	store    checkoutStore
	shipping config.ShippingConfig
	whatsapp config.WhatsAppConfig
	logg     *logger.Logger
}

// NewService builds the checkout service.
func NewService(
	tx txRunner,
	carts cartAccess,
	couponSvc couponValidator,
	products productLoader,
	store checkoutStore,
	shipping config.ShippingConfig,
	whatsapp config.WhatsAppConfig,
	logg *logger.Logger,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart access required")
	}
	if couponSvc == nil {
		return nil, fmt.Errorf("coupon validator required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if store == nil {
		return nil, fmt.Errorf("checkout store required")
	}
	return &service{
		tx:       tx,
		carts:    carts,
		coupons:  couponSvc,
		products: products,
		store:    store,
		shipping: shipping,
		whatsapp: whatsapp,
		logg:     logg,
	}, nil
}

// Submit snapshots the cart into an order. The cart is cleared only after
// the transaction has committed; a failed submission leaves it intact.
func (s *service) Submit(ctx context.Context, token string, input SubmitOrderInput) (*OrderConfirmation, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	shopperCart, err := s.carts.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if shopperCart.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	var discount *pricing.CouponDiscount
	if strings.TrimSpace(input.CouponCode) != "" {
		result, err := s.coupons.Validate(ctx, input.CouponCode)
		if err != nil {
			return nil, err
		}
		if !result.Valid {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon "+result.Reason)
		}
		discount = result.Discount
	}

	items, subtotal, err := s.snapshotLines(ctx, shopperCart)
	if err != nil {
		return nil, err
	}

	policy := pricing.PolicyFor(s.shipping, input.Channel)
	totals, err := pricing.ComputeTotals(subtotal, policy, discount)
	if err != nil {
		return nil, err
	}

	order := buildOrder(input, items, totals, discount)

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		customer, err := s.store.UpsertCustomer(ctx, tx, &models.Customer{
			Name:    order.CustomerName,
			Phone:   order.CustomerPhone,
			Email:   order.CustomerEmail,
			Address: &order.Address,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert customer")
		}
		order.CustomerID = &customer.ID

		for _, item := range order.Items {
			affected, err := s.store.DecrementStock(ctx, tx, item.ProductID, item.Quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement stock")
			}
			if affected == 0 {
				return pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock").
					WithDetails(map[string]any{"product_id": item.ProductID})
			}
		}

		if _, err := s.store.CreateOrder(ctx, tx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The order is committed; a cart that fails to clear is an annoyance,
	// not a reason to report failure.
	if err := s.carts.Clear(ctx, token); err != nil && s.logg != nil {
		logCtx := s.logg.WithOrderID(ctx, order.ID.String())
		logCtx = s.logg.WithFields(logCtx, map[string]any{"error": err.Error()})
		s.logg.Warn(logCtx, "checkout.cart_clear_failed")
	}

	if s.logg != nil {
		logCtx := s.logg.WithOrderID(ctx, order.ID.String())
		logCtx = s.logg.WithFields(logCtx, map[string]any{
			"channel":     order.Channel.String(),
			"total_cents": order.TotalCents,
		})
		s.logg.Info(logCtx, "checkout.order_created")
	}

	confirmation := &OrderConfirmation{
		OrderID:       order.ID,
		Status:        order.Status,
		SubtotalCents: order.SubtotalCents,
		ShippingCents: order.ShippingCents,
		DiscountCents: order.DiscountCents,
		TotalCents:    order.TotalCents,
		CouponCode:    order.CouponCode,
	}
	if order.Channel == enums.OrderChannelWhatsApp {
		if link := s.whatsAppLink(order); link != "" {
			confirmation.WhatsAppLink = &link
		}
	}
	return confirmation, nil
}

// snapshotLines revalidates each cart line against the live catalog and
// freezes current name and price into order items.
func (s *service) snapshotLines(ctx context.Context, shopperCart *cart.Cart) ([]models.OrderItem, int64, error) {
	items := make([]models.OrderItem, 0, len(shopperCart.Lines))
	var subtotal int64

	for _, line := range shopperCart.Lines {
		product, err := s.products.FindActiveByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, pkgerrors.New(pkgerrors.CodeConflict, "product no longer available").
					WithDetails(map[string]any{"product_id": line.ProductID})
			}
			return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}
		if product.Stock < line.Quantity {
			return nil, 0, pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock").
				WithDetails(map[string]any{"product_id": line.ProductID, "available": product.Stock})
		}

		item := models.OrderItem{
			ProductID:      product.ID,
			ProductName:    product.Name,
			ProductSlug:    product.Slug,
			UnitPriceCents: product.PriceCents,
			Quantity:       line.Quantity,
		}
		if image := product.FeaturedImage(); image != "" {
			item.Image = &image
		}
		items = append(items, item)
		subtotal += product.PriceCents * int64(line.Quantity)
	}
	return items, subtotal, nil
}

func (s *service) whatsAppLink(order *models.Order) string {
	number := strings.TrimLeft(strings.TrimSpace(s.whatsapp.BusinessNumber), "+")
	if number == "" {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Order %s\n", order.ID)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "%dx %s - $%s\n", item.Quantity, item.ProductName, money.FromCents(item.UnitPriceCents*int64(item.Quantity)).StringFixed(2))
	}
	fmt.Fprintf(&b, "Total: $%s", money.FromCents(order.TotalCents).StringFixed(2))

	return fmt.Sprintf("https://wa.me/%s?text=%s", number, url.QueryEscape(b.String()))
}

func buildOrder(input SubmitOrderInput, items []models.OrderItem, totals pricing.Totals, discount *pricing.CouponDiscount) *models.Order {
	order := &models.Order{
		ID:            uuid.New(),
		CustomerName:  strings.TrimSpace(input.Name),
		CustomerPhone: strings.TrimSpace(input.Phone),
		CustomerEmail: input.Email,
		Address:       strings.TrimSpace(input.Address),
		Notes:         input.Notes,
		Channel:       input.Channel,
		Status:        enums.OrderStatusPending,
		SubtotalCents: totals.SubtotalCents,
		ShippingCents: totals.ShippingCents,
		DiscountCents: totals.DiscountCents,
		TotalCents:    totals.TotalCents,
		Items:         items,
	}
	if discount != nil {
		code := discount.Code
		order.CouponCode = &code
	}
	return order
}

func validateInput(input SubmitOrderInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	if strings.TrimSpace(input.Phone) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer phone is required")
	}
	if strings.TrimSpace(input.Address) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "delivery address is required")
	}
	if !input.Channel.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid order channel")
	}
	return nil
}
