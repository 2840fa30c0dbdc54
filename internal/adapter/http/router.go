package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/pennybank/pennybank/internal/adapter/http/handler"
	"github.com/pennybank/pennybank/internal/adapter/http/middleware"
	"github.com/pennybank/pennybank/internal/infrastructure/auth"
	"github.com/pennybank/pennybank/internal/infrastructure/metrics"
	"github.com/pennybank/pennybank/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	UserHandler      *handler.UserHandler
	LedgerHandler    *handler.LedgerHandler
	TransferHandler  *handler.TransferHandler
	ExpenseHandler   *handler.ExpenseHandler
	HealthHandler    *handler.HealthHandler
	JWTManager       *auth.JWTManager
	IdempotencyStore usecase.IdempotencyStore
	RateLimiter      *middleware.RateLimiter
	Metrics          *metrics.Metrics
	Logger           zerolog.Logger
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
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth endpoints
		r.Post("/auth/register", cfg.UserHandler.Register)
		r.Post("/auth/login", cfg.UserHandler.Login)

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))

			if cfg.IdempotencyStore != nil {
				idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
				r.Use(idempotencyMiddleware.Wrap)
			}

			// Profile
			r.Route("/me", func(r chi.Router) {
				r.Get("/", cfg.UserHandler.Profile)
				r.Patch("/name", cfg.UserHandler.UpdateName)
				r.Patch("/email", cfg.UserHandler.UpdateEmail)
				r.Patch("/password", cfg.UserHandler.UpdatePassword)
				r.Patch("/contact-number", cfg.UserHandler.UpdateContactNumber)
			})

			// Accounts
			r.Route("/accounts", func(r chi.Router) {
				r.Post("/deposit", cfg.LedgerHandler.Deposit)
				r.Post("/withdraw", cfg.LedgerHandler.Withdraw)
				r.Post("/transfer", cfg.LedgerHandler.InternalTransfer)
			})

			r.Get("/transactions", cfg.LedgerHandler.History)

			// Send money
			r.Route("/transfers", func(r chi.Router) {
				r.Post("/", cfg.TransferHandler.Send)
				r.Get("/pending", cfg.TransferHandler.ListPending)
				r.Post("/{id}/accept", cfg.TransferHandler.Accept)
				r.Post("/{id}/decline", cfg.TransferHandler.Decline)
			})

			// Expenses
			r.Route("/expenses", func(r chi.Router) {
				r.Post("/", cfg.ExpenseHandler.Create)
				r.Get("/", cfg.ExpenseHandler.List)
				r.Delete("/{id}", cfg.ExpenseHandler.Delete)
			})
		})
	})

	return r
}
