package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hanamura/noodlehouse-backend/api/controllers"
	"github.com/hanamura/noodlehouse-backend/api/routes"
	cartsvc "github.com/hanamura/noodlehouse-backend/internal/cart"
	"github.com/hanamura/noodlehouse-backend/internal/catalog"
	checkoutsvc "github.com/hanamura/noodlehouse-backend/internal/checkout"
	"github.com/hanamura/noodlehouse-backend/internal/coupons"
	"github.com/hanamura/noodlehouse-backend/internal/orders"
	"github.com/hanamura/noodlehouse-backend/internal/pricing"
	"github.com/hanamura/noodlehouse-backend/pkg/config"
	"github.com/hanamura/noodlehouse-backend/pkg/db"
	"github.com/hanamura/noodlehouse-backend/pkg/logger"
	"github.com/hanamura/noodlehouse-backend/pkg/metrics"
	"github.com/hanamura/noodlehouse-backend/pkg/migrate"
	"github.com/hanamura/noodlehouse-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

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

	catalogRepo := catalog.NewRepository(dbClient.DB())
	couponsRepo := coupons.NewRepository(dbClient.DB())
	ordersRepo := orders.NewRepository(dbClient.DB())

	if cfg.FeatureFlags.SeedFixtures {
		if seeded, err := catalog.NewSeeder(catalogRepo).Run(context.Background()); err != nil {
			logg.Error(context.Background(), "failed to seed catalog fixtures", err)
			os.Exit(1)
		} else if seeded {
			logg.Info(context.Background(), "seeded catalog fixtures")
		}
		if seeded, err := coupons.NewSeeder(couponsRepo).Run(context.Background()); err != nil {
			logg.Error(context.Background(), "failed to seed coupon fixtures", err)
			os.Exit(1)
		} else if seeded {
			logg.Info(context.Background(), "seeded coupon fixtures")
		}
	}

	pricingCfg := pricing.Config{
		FreeDeliveryThreshold: cfg.Pricing.FreeDeliveryThreshold,
		FlatDeliveryFee:       cfg.Pricing.FlatDeliveryFee,
	}

	catalogService, err := catalog.NewService(catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	couponsService, err := coupons.NewService(couponsRepo, nil)
	if err != nil {
		logg.Error(context.Background(), "failed to create coupons service", err)
		os.Exit(1)
	}

	cartStore, err := cartsvc.NewStore(redisClient, cfg.Cart.TTL, cfg.Cart.PendingProductTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}

	cartService, err := cartsvc.NewService(cartStore, catalogService, couponsService, pricingCfg, nil)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(cartStore, couponsRepo, ordersRepo, dbClient, redisClient, pricingCfg, cfg.Checkout.CurrentOrderTTL, nil)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(ordersRepo, redisClient, nil)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)
	readyChecks := []controllers.ReadyCheck{
		{Name: "postgres", Ping: dbClient.Ping},
		{Name: "redis", Ping: redisClient.Ping},
	}

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
		Handler: routes.NewRouter(
			cfg,
			logg,
			httpMetrics,
			readyChecks,
			catalogService,
			couponsService,
			cartService,
			checkoutService,
			ordersService,
		),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
