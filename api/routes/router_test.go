package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	authsvc "github.com/chronovahq/chronova-backend/internal/auth"
	cartsvc "github.com/chronovahq/chronova-backend/internal/cart"
	catalogsvc "github.com/chronovahq/chronova-backend/internal/catalog"
	checkoutsvc "github.com/chronovahq/chronova-backend/internal/checkout"
	contentsvc "github.com/chronovahq/chronova-backend/internal/content"
	couponsvc "github.com/chronovahq/chronova-backend/internal/coupons"
	customersvc "github.com/chronovahq/chronova-backend/internal/customers"
	ordersvc "github.com/chronovahq/chronova-backend/internal/orders"
	reviewsvc "github.com/chronovahq/chronova-backend/internal/reviews"
	pkgauth "github.com/chronovahq/chronova-backend/pkg/auth"
	"github.com/chronovahq/chronova-backend/pkg/config"
	"github.com/chronovahq/chronova-backend/pkg/db/models"
	"github.com/chronovahq/chronova-backend/pkg/enums"
	"github.com/chronovahq/chronova-backend/pkg/logger"
	"github.com/chronovahq/chronova-backend/pkg/pagination"
	"github.com/google/uuid"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, email, password string) (*authsvc.TokenPair, error) {
	return &authsvc.TokenPair{}, nil
}

func (stubAuthService) Refresh(ctx context.Context, accessToken, refreshToken string) (*authsvc.TokenPair, error) {
	return &authsvc.TokenPair{}, nil
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error {
	return nil
}

type stubCartService struct{}

func (stubCartService) Get(ctx context.Context, token string) (*cartsvc.Cart, error) {
	return cartsvc.NewCart(token), nil
}

func (stubCartService) AddItem(ctx context.Context, token string, productID uuid.UUID, qty int) (*cartsvc.Cart, error) {
	return cartsvc.NewCart(token), nil
}

func (stubCartService) UpdateQuantity(ctx context.Context, token string, productID uuid.UUID, qty int) (*cartsvc.Cart, error) {
	return cartsvc.NewCart(token), nil
}

func (stubCartService) RemoveItem(ctx context.Context, token string, productID uuid.UUID) (*cartsvc.Cart, error) {
	return cartsvc.NewCart(token), nil
}

func (stubCartService) Clear(ctx context.Context, token string) error {
	return nil
}

type stubCatalogService struct{}

func (stubCatalogService) ListProducts(ctx context.Context, params catalogsvc.ListParams) (*catalogsvc.ProductListDTO, error) {
	return &catalogsvc.ProductListDTO{Products: []catalogsvc.ProductSummaryDTO{}}, nil
}

func (stubCatalogService) GetProductBySlug(ctx context.Context, slug string) (*catalogsvc.ProductDetailDTO, error) {
	return &catalogsvc.ProductDetailDTO{}, nil
}

func (stubCatalogService) ListCategories(ctx context.Context) ([]catalogsvc.CategoryDTO, error) {
	return []catalogsvc.CategoryDTO{}, nil
}

func (stubCatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*catalogsvc.ProductDetailDTO, error) {
	return &catalogsvc.ProductDetailDTO{}, nil
}

func (stubCatalogService) CreateProduct(ctx context.Context, input catalogsvc.UpsertProductInput) (*catalogsvc.ProductDetailDTO, error) {
	panic("unimplemented")
}

func (stubCatalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input catalogsvc.UpsertProductInput) (*catalogsvc.ProductDetailDTO, error) {
	panic("unimplemented")
}

func (stubCatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

func (stubCatalogService) CreateCategory(ctx context.Context, input catalogsvc.UpsertCategoryInput) (*catalogsvc.CategoryDTO, error) {
	panic("unimplemented")
}

func (stubCatalogService) UpdateCategory(ctx context.Context, id uuid.UUID, input catalogsvc.UpsertCategoryInput) (*catalogsvc.CategoryDTO, error) {
	panic("unimplemented")
}

func (stubCatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

type stubCheckoutService struct{}

func (stubCheckoutService) Submit(ctx context.Context, token string, input checkoutsvc.SubmitOrderInput) (*checkoutsvc.OrderConfirmation, error) {
	return &checkoutsvc.OrderConfirmation{OrderID: uuid.New(), Status: enums.OrderStatusPending}, nil
}

type stubContentService struct{}

func (stubContentService) ListGallery(ctx context.Context, limit int) ([]models.InstagramPost, error) {
	return []models.InstagramPost{}, nil
}

func (stubContentService) ListFeedback(ctx context.Context, limit int) ([]models.FeedbackEntry, error) {
	return []models.FeedbackEntry{}, nil
}

func (stubContentService) SubmitFeedback(ctx context.Context, input contentsvc.SubmitFeedbackInput) (*models.FeedbackEntry, error) {
	panic("unimplemented")
}

func (stubContentService) ListAllPosts(ctx context.Context) ([]models.InstagramPost, error) {
	return []models.InstagramPost{}, nil
}

func (stubContentService) CreatePost(ctx context.Context, input contentsvc.UpsertPostInput) (*models.InstagramPost, error) {
	panic("unimplemented")
}

func (stubContentService) UpdatePost(ctx context.Context, id uuid.UUID, input contentsvc.UpsertPostInput) (*models.InstagramPost, error) {
	panic("unimplemented")
}

func (stubContentService) DeletePost(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

func (stubContentService) ListAllFeedback(ctx context.Context) ([]models.FeedbackEntry, error) {
	return []models.FeedbackEntry{}, nil
}

func (stubContentService) SetFeedbackApproval(ctx context.Context, id uuid.UUID, approved bool) error {
	panic("unimplemented")
}

func (stubContentService) DeleteFeedback(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

type stubCouponService struct{}

func (stubCouponService) Validate(ctx context.Context, code string) (*couponsvc.ValidationResult, error) {
	return &couponsvc.ValidationResult{Valid: false, Reason: couponsvc.ReasonNotFound}, nil
}

func (stubCouponService) List(ctx context.Context) ([]models.Coupon, error) {
	return []models.Coupon{}, nil
}

func (stubCouponService) Create(ctx context.Context, input couponsvc.UpsertCouponInput) (*models.Coupon, error) {
	panic("unimplemented")
}

func (stubCouponService) Update(ctx context.Context, id uuid.UUID, input couponsvc.UpsertCouponInput) (*models.Coupon, error) {
	panic("unimplemented")
}

func (stubCouponService) Delete(ctx context.Context, id uuid.UUID) error {
	panic("unimplemented")
}

type stubCustomerService struct{}

func (stubCustomerService) List(ctx context.Context, params pagination.Params) ([]models.Customer, string, error) {
	return []models.Customer{}, "", nil
}

func (stubCustomerService) Get(ctx context.Context, id uuid.UUID) (*customersvc.CustomerDetail, error) {
	panic("unimplemented")
}

type stubOrderService struct{}

func (stubOrderService) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	panic("unimplemented")
}

func (stubOrderService) List(ctx context.Context, filter ordersvc.ListFilter) ([]models.Order, string, error) {
	return []models.Order{}, "", nil
}

func (stubOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*models.Order, error) {
	panic("unimplemented")
}

type stubReviewService struct{}

func (stubReviewService) Submit(ctx context.Context, input reviewsvc.SubmitReviewInput) (*models.Review, error) {
	panic("unimplemented")
}

func (stubReviewService) ListByProduct(ctx context.Context, productID uuid.UUID, limit int) ([]models.Review, error) {
	return []models.Review{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "8080"},
		JWT: config.JWTConfig{
			Secret:            "router-test-secret",
			Issuer:            "chronova-test",
			ExpirationMinutes: 15,
		},
		Cart: config.CartConfig{
			TTL:             time.Hour,
			MaxQtyPerLine:   99,
			TokenCookie:     "chronova_cart",
			CookieMaxAgeSec: 3600,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(Deps{
		Config:    cfg,
		Logger:    logg,
		DB:        stubPinger{},
		Sessions:  stubSessionChecker{},
		Auth:      stubAuthService{},
		Cart:      stubCartService{},
		Catalog:   stubCatalogService{},
		Checkout:  stubCheckoutService{},
		Content:   stubContentService{},
		Coupons:   stubCouponService{},
		Customers: stubCustomerService{},
		Orders:    stubOrderService{},
		Reviews:   stubReviewService{},
	})
}

func buildAdminToken(t *testing.T, cfg *config.Config) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		AdminID: uuid.New(),
		Email:   "ops@chronova.shop",
		JTI:     uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestStorefrontCatalogIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestCartRouteMintsSessionCookie(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if resp.Header().Get("X-Cart-Token") == "" {
		t.Fatal("expected cart token header")
	}

	var found bool
	for _, cookie := range resp.Result().Cookies() {
		if cookie.Name == "chronova_cart" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected cart cookie to be set")
	}
}

func TestAdminGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestAdminGroupAcceptsValidJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/orders/", nil)
	req.Header.Set("Authorization", "Bearer "+buildAdminToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with token got %d", resp.Code)
	}
}

func TestCouponValidateIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/coupons/validate", nil)
	req.Body = http.NoBody
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	// No body fails validation, but the route itself is reachable without auth.
	if resp.Code == http.StatusUnauthorized || resp.Code == http.StatusNotFound {
		t.Fatalf("coupon validation must be public, got %d", resp.Code)
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
