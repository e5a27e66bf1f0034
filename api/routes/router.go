package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chronovahq/chronova-backend/api/controllers"
	"github.com/chronovahq/chronova-backend/api/middleware"
	authsvc "github.com/chronovahq/chronova-backend/internal/auth"
	cartsvc "github.com/chronovahq/chronova-backend/internal/cart"
	catalogsvc "github.com/chronovahq/chronova-backend/internal/catalog"
	checkoutsvc "github.com/chronovahq/chronova-backend/internal/checkout"
	contentsvc "github.com/chronovahq/chronova-backend/internal/content"
	couponsvc "github.com/chronovahq/chronova-backend/internal/coupons"
	customersvc "github.com/chronovahq/chronova-backend/internal/customers"
	ordersvc "github.com/chronovahq/chronova-backend/internal/orders"
	reviewsvc "github.com/chronovahq/chronova-backend/internal/reviews"
	"github.com/chronovahq/chronova-backend/pkg/auth/session"
	"github.com/chronovahq/chronova-backend/pkg/config"
	"github.com/chronovahq/chronova-backend/pkg/db"
	"github.com/chronovahq/chronova-backend/pkg/logger"
	"github.com/chronovahq/chronova-backend/pkg/metrics"
	"github.com/chronovahq/chronova-backend/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       db.Pinger
	Redis    *redis.Client
	Sessions session.AccessSessionChecker
	Metrics  *metrics.HTTPMetrics
	Registry *prometheus.Registry

	Auth      authsvc.Service
	Cart      cartsvc.Service
	Catalog   catalogsvc.Service
	Checkout  checkoutsvc.Service
	Content   contentsvc.Service
	Coupons   couponsvc.Service
	Customers customersvc.Service
	Orders    ordersvc.Service
	Reviews   reviewsvc.Service
}

// NewRouter assembles the storefront and back-office HTTP surfaces.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", controllers.ProductList(deps.Catalog, logg))
		r.Get("/products/{slug}", controllers.ProductBySlug(deps.Catalog, logg))
		r.Get("/categories", controllers.CategoryList(deps.Catalog, logg))

		r.Get("/products/{productID}/reviews", controllers.ReviewList(deps.Reviews, logg))
		r.Post("/products/{productID}/reviews", controllers.ReviewSubmit(deps.Reviews, logg))

		r.Get("/gallery", controllers.GalleryList(deps.Content, logg))
		r.Get("/feedback", controllers.FeedbackList(deps.Content, logg))
		r.Post("/feedback", controllers.FeedbackSubmit(deps.Content, logg))

		r.Post("/coupons/validate", controllers.CouponValidate(deps.Coupons, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.CartSession(cfg.Cart, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartGet(deps.Cart, logg))
				r.Post("/items", controllers.CartAddItem(deps.Cart, logg))
				r.Patch("/items/{productID}", controllers.CartUpdateItem(deps.Cart, logg))
				r.Delete("/items/{productID}", controllers.CartRemoveItem(deps.Cart, logg))
				r.Delete("/", controllers.CartClear(deps.Cart, logg))
			})

			r.Post("/checkout", controllers.CheckoutSubmit(deps.Checkout, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
				Post("/login", controllers.AdminLogin(deps.Auth, logg))
			r.Post("/refresh", controllers.AdminRefresh(deps.Auth, logg))
			r.With(middleware.AdminAuth(cfg.JWT, deps.Sessions, logg)).
				Post("/logout", controllers.AdminLogout(deps.Auth, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(cfg.JWT, deps.Sessions, logg))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", controllers.AdminProductList(deps.Catalog, logg))
				r.Post("/", controllers.AdminProductCreate(deps.Catalog, logg))
				r.Get("/{productID}", controllers.AdminProductGet(deps.Catalog, logg))
				r.Put("/{productID}", controllers.AdminProductUpdate(deps.Catalog, logg))
				r.Delete("/{productID}", controllers.AdminProductDelete(deps.Catalog, logg))
			})

			r.Route("/categories", func(r chi.Router) {
				r.Post("/", controllers.AdminCategoryCreate(deps.Catalog, logg))
				r.Put("/{categoryID}", controllers.AdminCategoryUpdate(deps.Catalog, logg))
				r.Delete("/{categoryID}", controllers.AdminCategoryDelete(deps.Catalog, logg))
			})

			r.Route("/coupons", func(r chi.Router) {
				r.Get("/", controllers.AdminCouponList(deps.Coupons, logg))
				r.Post("/", controllers.AdminCouponCreate(deps.Coupons, logg))
				r.Put("/{couponID}", controllers.AdminCouponUpdate(deps.Coupons, logg))
				r.Delete("/{couponID}", controllers.AdminCouponDelete(deps.Coupons, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminOrderList(deps.Orders, logg))
				r.Get("/{orderID}", controllers.AdminOrderGet(deps.Orders, logg))
				r.Patch("/{orderID}/status", controllers.AdminOrderUpdateStatus(deps.Orders, logg))
			})

			r.Route("/customers", func(r chi.Router) {
				r.Get("/", controllers.AdminCustomerList(deps.Customers, logg))
				r.Get("/{customerID}", controllers.AdminCustomerGet(deps.Customers, logg))
			})

			r.Route("/gallery", func(r chi.Router) {
				r.Get("/", controllers.AdminPostList(deps.Content, logg))
				r.Post("/", controllers.AdminPostCreate(deps.Content, logg))
				r.Put("/{postID}", controllers.AdminPostUpdate(deps.Content, logg))
				r.Delete("/{postID}", controllers.AdminPostDelete(deps.Content, logg))
			})

			r.Route("/feedback", func(r chi.Router) {
				r.Get("/", controllers.AdminFeedbackList(deps.Content, logg))
				r.Patch("/{feedbackID}", controllers.AdminFeedbackApprove(deps.Content, logg))
				r.Delete("/{feedbackID}", controllers.AdminFeedbackDelete(deps.Content, logg))
			})
		})
	})

	return r
}
