package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hanamura/noodlehouse-backend/api/controllers"
	"github.com/hanamura/noodlehouse-backend/api/middleware"
	cartsvc "github.com/hanamura/noodlehouse-backend/internal/cart"
	"github.com/hanamura/noodlehouse-backend/internal/catalog"
	checkoutsvc "github.com/hanamura/noodlehouse-backend/internal/checkout"
	"github.com/hanamura/noodlehouse-backend/internal/coupons"
	"github.com/hanamura/noodlehouse-backend/internal/orders"
	"github.com/hanamura/noodlehouse-backend/pkg/config"
	"github.com/hanamura/noodlehouse-backend/pkg/logger"
	"github.com/hanamura/noodlehouse-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	httpMetrics *metrics.HTTPMetrics,
	readyChecks []controllers.ReadyCheck,
	catalogService catalog.Service,
	couponsService coupons.Service,
	cartService cartsvc.Service,
	checkoutService checkoutsvc.Service,
	ordersService orders.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(httpMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readyChecks...))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(
			middleware.Session(logg),
			middleware.Language(),
		)

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/products", controllers.CatalogProducts(catalogService, logg))
			r.Get("/products/{productId}", controllers.CatalogProduct(catalogService, logg))
			r.Get("/side-items", controllers.CatalogSideItems(catalogService, logg))
		})

		r.Get("/coupons", controllers.CouponsAvailable(couponsService, logg))

		r.Route("/cart/{orderType}", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Post("/items", controllers.CartAddItem(cartService, logg))
			r.Patch("/items/{lineId}", controllers.CartUpdateItem(cartService, logg))
			r.Delete("/items/{lineId}", controllers.CartRemoveItem(cartService, logg))
			r.Delete("/items", controllers.CartClear(cartService, logg))
			r.Post("/select-all", controllers.CartToggleAll(cartService, logg))
			r.Post("/coupon", controllers.CartApplyCoupon(cartService, logg))
			r.Delete("/coupon", controllers.CartRemoveCoupon(cartService, logg))
			r.Post("/pending", controllers.CartStashPending(cartService, logg))
		})

		r.Post("/checkout/{orderType}", controllers.CheckoutPlaceOrder(checkoutService, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(ordersService, logg))
			r.Get("/current", controllers.OrdersCurrent(ordersService, logg))
		})
	})

	return r
}
