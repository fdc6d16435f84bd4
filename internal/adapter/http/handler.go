package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"engage-escrow/internal/core/port"
	"engage-escrow/internal/observability"
)

// Options carries the optional collaborators of a Handler.
type Options struct {
	// Auth resolves the caller wallet of mutating routes. Required.
	Auth *Authenticator
	// OracleLimiter throttles metric reports per client. Nil disables it.
	OracleLimiter *RateLimiter
	// Metrics instruments every route and serves /metrics. Nil disables it.
	Metrics *observability.Metrics
	// TokenDecimals scales base units in display amounts.
	TokenDecimals int32
}

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP that translates requests into EscrowUseCase calls. Routes are
// registered on a chi.Router.
type Handler struct {
	svc      port.EscrowUseCase
	logger   *slog.Logger
	router   chi.Router
	decimals int32
}

// NewHandler creates a handler with all routes configured.
func NewHandler(svc port.EscrowUseCase, logger *slog.Logger, opts Options) *Handler {
	h := &Handler{svc: svc, logger: logger, decimals: opts.TokenDecimals}
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer)
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/campaigns", func(r chi.Router) {
			r.Get("/", h.handleListCampaigns)
			r.Get("/{address}", h.handleGetCampaign)
			r.Get("/{address}/events", h.handleListEvents)

			metrics := r.With()
			if opts.OracleLimiter != nil {
				metrics = r.With(opts.OracleLimiter.Middleware)
			}
			metrics.Post("/{address}/metrics", h.handleUpdateMetrics)

			r.Group(func(r chi.Router) {
				r.Use(opts.Auth.Middleware)
				r.Post("/", h.handleCreateCampaign)
				r.Post("/{address}/fund", h.handleFundCampaign)
				r.Post("/{address}/reclaim", h.handleReclaimExpired)
				r.Post("/{address}/cancel", h.handleCancelCampaign)
			})
		})
		r.Get("/accounts/{address}", h.handleGetAccount)
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
