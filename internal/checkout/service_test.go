package checkout

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/chronovahq/chronova-backend/internal/cart"
	"github.com/chronovahq/chronova-backend/internal/coupons"
	"github.com/chronovahq/chronova-backend/internal/pricing"
	"github.com/chronovahq/chronova-backend/pkg/config"
	"github.com/chronovahq/chronova-backend/pkg/db/models"
	"github.com/chronovahq/chronova-backend/pkg/enums"
	pkgerrors "github.com/chronovahq/chronova-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type stubTxRunner struct {
	err error
}

func (s stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s.err != nil {
		return s.err
	}
	return fn(nil)
}

type stubCartAccess struct {
	carts   map[string]*cart.Cart
	cleared []string
}

func (s *stubCartAccess) Get(ctx context.Context, token string) (*cart.Cart, error) {
	if c, ok := s.carts[token]; ok {
		return c, nil
	}
	return cart.NewCart(token), nil
}

func (s *stubCartAccess) Clear(ctx context.Context, token string) error {
	s.cleared = append(s.cleared, token)
	delete(s.carts, token)
	return nil
}

type stubCoupons struct {
	results map[string]*coupons.ValidationResult
}

func (s stubCoupons) Validate(ctx context.Context, code string) (*coupons.ValidationResult, error) {
	normalized := coupons.NormalizeCode(code)
	if result, ok := s.results[normalized]; ok {
		return result, nil
	}
	return &coupons.ValidationResult{Valid: false, Reason: coupons.ReasonNotFound}, nil
}

type stubCheckoutProducts struct {
	products map[uuid.UUID]*models.Product
}

func (s stubCheckoutProducts) FindActiveByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if product, ok := s.products[id]; ok {
		return product, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type stubCheckoutStore struct {
	orders      []*models.Order
	createErr   error
	decremented map[uuid.UUID]int
	stockFail   map[uuid.UUID]bool
}

func newStubCheckoutStore() *stubCheckoutStore {
	return &stubCheckoutStore{
		decremented: map[uuid.UUID]int{},
		stockFail:   map[uuid.UUID]bool{},
	}
}

func (s *stubCheckoutStore) CreateOrder(ctx context.Context, tx *gorm.DB, order *models.Order) (*models.Order, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.orders = append(s.orders, order)
	return order, nil
}

func (s *stubCheckoutStore) UpsertCustomer(ctx context.Context, tx *gorm.DB, customer *models.Customer) (*models.Customer, error) {
	customer.ID = uuid.New()
	return customer, nil
}

func (s *stubCheckoutStore) DecrementStock(ctx context.Context, tx *gorm.DB, productID uuid.UUID, qty int) (int64, error) {
	if s.stockFail[productID] {
		return 0, nil
	}
	s.decremented[productID] += qty
	return 1, nil
}

func testShipping() config.ShippingConfig {
	return config.ShippingConfig{
		FreeThresholdCents:   5000,
		FlatFeeCents:         500,
		WhatsAppFlatFeeCents: 400,
	}
}

func cartWith(token string, product *models.Product, qty int) *cart.Cart {
	c := cart.NewCart(token)
	c.Lines = append(c.Lines, cart.Line{
		ProductID:      product.ID,
		Slug:           product.Slug,
		Name:           product.Name,
		UnitPriceCents: product.PriceCents,
		Quantity:       qty,
	})
	return c
}

func chronographProduct() *models.Product {
	return &models.Product{
		ID:         uuid.New(),
		Slug:       "field-chronograph",
		Name:       "Field Chronograph",
		PriceCents: 1500,
		Stock:      10,
		IsActive:   true,
	}
}

func validInput() SubmitOrderInput {
	return SubmitOrderInput{
		Name:    "Jordan Vega",
		Phone:   "+15551234567",
		Address: "1 Harbor Way",
		Channel: enums.OrderChannelStandard,
	}
}

func newCheckoutService(t *testing.T, tx txRunner, carts cartAccess, couponSvc couponValidator, products productLoader, store checkoutStore, whatsapp config.WhatsAppConfig) Service {
	t.Helper()
	svc, err := NewService(tx, carts, couponSvc, products, store, testShipping(), whatsapp, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestSubmitCreatesOrderAndClearsCart(t *testing.T) {
	product := chronographProduct()
	token := uuid.NewString()
	carts := &stubCartAccess{carts: map[string]*cart.Cart{token: cartWith(token, product, 2)}}
	store := newStubCheckoutStore()
	svc := newCheckoutService(t, stubTxRunner{}, carts, stubCoupons{}, stubCheckoutProducts{products: map[uuid.UUID]*models.Product{product.ID: product}}, store, config.WhatsAppConfig{})

	confirmation, err := svc.Submit(context.Background(), token, validInput())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if confirmation.Status != enums.OrderStatusPending {
		t.Fatalf("expected pending got %s", confirmation.Status)
	}
	if confirmation.SubtotalCents != 3000 {
		t.Fatalf("expected subtotal 3000 got %d", confirmation.SubtotalCents)
	}
	if confirmation.ShippingCents != 500 {
		t.Fatalf("expected shipping 500 got %d", confirmation.ShippingCents)
	}
	if confirmation.TotalCents != 3500 {
		t.Fatalf("expected total 3500 got %d", confirmation.TotalCents)
	}

	if len(store.orders) != 1 {
		t.Fatalf("expected one order got %d", len(store.orders))
	}
	order := store.orders[0]
	if len(order.Items) != 1 || order.Items[0].Quantity != 2 || order.Items[0].ProductName != "Field Chronograph" {
		t.Fatalf("unexpected snapshot %+v", order.Items)
	}
	if store.decremented[product.ID] != 2 {
		t.Fatalf("expected stock decrement 2 got %d", store.decremented[product.ID])
	}

	if len(carts.cleared) != 1 || carts.cleared[0] != token {
		t.Fatalf("expected cart cleared got %v", carts.cleared)
	}
}

func TestSubmitAppliesCouponAndWhatsAppFee(t *testing.T) {
	product := chronographProduct()
	token := uuid.NewString()
	carts := &stubCartAccess{carts: map[string]*cart.Cart{token: cartWith(token, product, 2)}}
	couponSvc := stubCoupons{results: map[string]*coupons.ValidationResult{
		"SAVE20": {Valid: true, Discount: &pricing.CouponDiscount{Code: "SAVE20", Percent: 20}},
	}}
	svc := newCheckoutService(t, stubTxRunner{}, carts, couponSvc, stubCheckoutProducts{products: map[uuid.UUID]*models.Product{product.ID: product}}, newStubCheckoutStore(), config.WhatsAppConfig{BusinessNumber: "+15550001111"})

	input := validInput()
	input.Channel = enums.OrderChannelWhatsApp
	input.CouponCode = "save20"

	confirmation, err := svc.Submit(context.Background(), token, input)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	// $30.00 subtotal, $4.00 WhatsApp fee, 20% off merchandise.
	if confirmation.ShippingCents != 400 {
		t.Fatalf("expected shipping 400 got %d", confirmation.ShippingCents)
	}
	if confirmation.DiscountCents != 600 {
		t.Fatalf("expected discount 600 got %d", confirmation.DiscountCents)
	}
	if confirmation.TotalCents != 2800 {
		t.Fatalf("expected total 2800 got %d", confirmation.TotalCents)
	}
	if confirmation.CouponCode == nil || *confirmation.CouponCode != "SAVE20" {
		t.Fatalf("expected coupon code SAVE20 got %v", confirmation.CouponCode)
	}
	if confirmation.WhatsAppLink == nil || !strings.HasPrefix(*confirmation.WhatsAppLink, "https://wa.me/15550001111?text=") {
		t.Fatalf("unexpected whatsapp link %v", confirmation.WhatsAppLink)
	}
}

func TestSubmitRejectsInvalidCoupon(t *testing.T) {
	product := chronographProduct()
	token := uuid.NewString()
	carts := &stubCartAccess{carts: map[string]*cart.Cart{token: cartWith(token, product, 1)}}
	svc := newCheckoutService(t, stubTxRunner{}, carts, stubCoupons{}, stubCheckoutProducts{products: map[uuid.UUID]*models.Product{product.ID: product}}, newStubCheckoutStore(), config.WhatsAppConfig{})

	input := validInput()
	input.CouponCode = "UNKNOWN"

	_, err := svc.Submit(context.Background(), token, input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error got %v", err)
	}
	if !strings.Contains(typed.Message(), coupons.ReasonNotFound) {
		t.Fatalf("expected reason in message got %q", typed.Message())
	}
	if len(carts.cleared) != 0 {
		t.Fatal("cart must stay intact on failed submission")
	}
}

func TestSubmitRejectsEmptyCart(t *testing.T) {
	carts := &stubCartAccess{carts: map[string]*cart.Cart{}}
	svc := newCheckoutService(t, stubTxRunner{}, carts, stubCoupons{}, stubCheckoutProducts{}, newStubCheckoutStore(), config.WhatsAppConfig{})

	_, err := svc.Submit(context.Background(), uuid.NewString(), validInput())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error got %v", err)
	}
}

func TestSubmitKeepsCartWhenPersistenceFails(t *testing.T) {
	product := chronographProduct()
	token := uuid.NewString()
	carts := &stubCartAccess{carts: map[string]*cart.Cart{token: cartWith(token, product, 1)}}
	store := newStubCheckoutStore()
	store.createErr = errors.New("connection reset")
	svc := newCheckoutService(t, stubTxRunner{}, carts, stubCoupons{}, stubCheckoutProducts{products: map[uuid.UUID]*models.Product{product.ID: product}}, store, config.WhatsAppConfig{})

	_, err := svc.Submit(context.Background(), token, validInput())
	if err == nil {
		t.Fatal("expected submission failure")
	}
	if len(carts.cleared) != 0 {
		t.Fatal("cart must not clear when the order did not commit")
	}
	if _, ok := carts.carts[token]; !ok {
		t.Fatal("cart should still exist")
	}
}

func TestSubmitDetectsStockRace(t *testing.T) {
	product := chronographProduct()
	token := uuid.NewString()
	carts := &stubCartAccess{carts: map[string]*cart.Cart{token: cartWith(token, product, 3)}}
	store := newStubCheckoutStore()
	store.stockFail[product.ID] = true
	svc := newCheckoutService(t, stubTxRunner{}, carts, stubCoupons{}, stubCheckoutProducts{products: map[uuid.UUID]*models.Product{product.ID: product}}, store, config.WhatsAppConfig{})

	_, err := svc.Submit(context.Background(), token, validInput())
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict got %v", err)
	}
	if len(carts.cleared) != 0 {
		t.Fatal("cart must stay intact on stock race")
	}
}

func TestSubmitValidatesContactFields(t *testing.T) {
	svc := newCheckoutService(t, stubTxRunner{}, &stubCartAccess{carts: map[string]*cart.Cart{}}, stubCoupons{}, stubCheckoutProducts{}, newStubCheckoutStore(), config.WhatsAppConfig{})

	cases := []SubmitOrderInput{
		{Phone: "+1555", Address: "A", Channel: enums.OrderChannelStandard},
		{Name: "A", Address: "A", Channel: enums.OrderChannelStandard},
		{Name: "A", Phone: "+1555", Channel: enums.OrderChannelStandard},
		{Name: "A", Phone: "+1555", Address: "A", Channel: "carrier-pigeon"},
	}
	for _, input := range cases {
		_, err := svc.Submit(context.Background(), uuid.NewString(), input)
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error for %+v got %v", input, err)
		}
	}
}
