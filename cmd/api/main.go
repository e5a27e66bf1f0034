package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/chronovahq/chronova-backend/api/routes"
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
	"github.com/chronovahq/chronova-backend/pkg/migrate"
	"github.com/chronovahq/chronova-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	catalogRepo := catalogsvc.NewRepository(dbClient.DB())
	ordersRepo := ordersvc.NewRepository(dbClient.DB())
	customersRepo := customersvc.NewRepository(dbClient.DB())

	catalogService, err := catalogsvc.NewService(catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartStore, err := cartsvc.NewRedisStore(redisClient, cfg.Cart)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}

	cartService, err := cartsvc.NewService(cartStore, catalogRepo, cfg.Cart)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	couponService, err := couponsvc.NewService(couponsvc.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create coupon service", err)
		os.Exit(1)
	}

	checkoutRepo, err := checkoutsvc.NewRepository(ordersRepo, customersRepo, catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout repository", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(
		dbClient,
		cartService,
		couponService,
		catalogRepo,
		checkoutRepo,
		cfg.Shipping,
		cfg.WhatsApp,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	orderService, err := ordersvc.NewService(ordersRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	customerService, err := customersvc.NewService(customersRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create customer service", err)
		os.Exit(1)
	}

	reviewService, err := reviewsvc.NewService(reviewsvc.NewRepository(dbClient.DB()), catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create review service", err)
		os.Exit(1)
	}

	contentService, err := contentsvc.NewService(contentsvc.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create content service", err)
		os.Exit(1)
	}

	authService, err := authsvc.NewService(authsvc.NewRepository(dbClient.DB()), sessionManager, cfg.JWT, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:    cfg,
			Logger:    logg,
			DB:        dbClient,
			Redis:     redisClient,
			Sessions:  sessionManager,
			Metrics:   httpMetrics,
			Registry:  registry,
			Auth:      authService,
			Cart:      cartService,
			Catalog:   catalogService,
			Checkout:  checkoutService,
			Content:   contentService,
			Coupons:   couponService,
			Customers: customerService,
			Orders:    orderService,
			Reviews:   reviewService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
