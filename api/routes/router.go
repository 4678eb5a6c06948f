package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lunarcart/storefront-backend/api/controllers"
	"github.com/lunarcart/storefront-backend/api/middleware"
	"github.com/lunarcart/storefront-backend/internal/sales"
	"github.com/lunarcart/storefront-backend/internal/variants"
	"github.com/lunarcart/storefront-backend/pkg/config"
	"github.com/lunarcart/storefront-backend/pkg/logger"
	pkgredis "github.com/lunarcart/storefront-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbPinger controllers.Pinger,
	redisPinger controllers.Pinger,
	idempotencyStore pkgredis.IdempotencyStore,
	salesService sales.Service,
	variantsService variants.Service,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbPinger, redisPinger))
	})

	if gatherer != nil {
		r.Get("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}).ServeHTTP)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(idempotencyStore, logg))

		r.Route("/sales", func(r chi.Router) {
			r.Post("/apply", controllers.SalesApply(salesService, logg))
			r.Post("/reset", controllers.SalesReset(salesService, logg))
		})

		r.Get("/price-lists", controllers.PriceListsList(salesService, logg))

		r.Route("/variants/{variantId}/prices", func(r chi.Router) {
			r.Get("/", controllers.VariantPricesList(variantsService, logg))
			r.Post("/", controllers.VariantPricesUpdate(variantsService, logg))
		})
	})

	return r
}
