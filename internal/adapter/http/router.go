package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/rotavend/fechamento/internal/adapter/http/handler"
	"github.com/rotavend/fechamento/internal/adapter/http/middleware"
	"github.com/rotavend/fechamento/internal/infrastructure/metrics"
	"github.com/rotavend/fechamento/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	ClosingHandler     *handler.ClosingHandler
	ReadingHandler     *handler.ReadingHandler
	ExpenseHandler     *handler.ExpenseHandler
	AdvanceHandler     *handler.AdvanceHandler
	ShareholderHandler *handler.ShareholderHandler
	SummaryHandler     *handler.SummaryHandler
	AuditHandler       *handler.AuditHandler
	HealthHandler      *handler.HealthHandler

	Logger           zerolog.Logger
	Metrics          *metrics.Metrics
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimitRPS     float64
	RateLimitBurst   int
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)

	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}

	if cfg.RateLimitRPS > 0 {
		r.Use(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.Metrics).Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		r.Route("/locations/{locationID}", func(r chi.Router) {
			// Closings
			r.Route("/closings", func(r chi.Router) {
				r.Post("/", cfg.ClosingHandler.Close)
				r.Get("/", cfg.ClosingHandler.List)
				r.Get("/status", cfg.ClosingHandler.Status)
				r.Get("/{month}/{year}", cfg.ClosingHandler.GetForPeriod)
			})

			// Summary
			r.Get("/summary", cfg.SummaryHandler.Get)

			// Meter readings
			r.Route("/readings", func(r chi.Router) {
				r.Post("/", cfg.ReadingHandler.Create)
				r.Get("/", cfg.ReadingHandler.List)
				r.Put("/{id}", cfg.ReadingHandler.Update)
				r.Delete("/{id}", cfg.ReadingHandler.Delete)
			})

			// Expenses
			r.Route("/expenses", func(r chi.Router) {
				r.Post("/", cfg.ExpenseHandler.Create)
				r.Get("/", cfg.ExpenseHandler.List)
				r.Put("/{id}", cfg.ExpenseHandler.Update)
				r.Delete("/{id}", cfg.ExpenseHandler.Delete)
			})

			// Advances
			r.Route("/advances", func(r chi.Router) {
				r.Post("/", cfg.AdvanceHandler.Create)
				r.Get("/", cfg.AdvanceHandler.List)
			})

			// Shareholders
			r.Route("/shareholders", func(r chi.Router) {
				r.Post("/", cfg.ShareholderHandler.Create)
				r.Get("/", cfg.ShareholderHandler.List)
			})
		})

		r.Get("/shareholders/{id}", cfg.ShareholderHandler.Get)
		r.Get("/audit-logs", cfg.AuditHandler.List)
	})

	return r
}
