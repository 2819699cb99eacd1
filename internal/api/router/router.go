package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pratik-mahalle/userdata/internal/api/handlers"
	"github.com/pratik-mahalle/userdata/internal/api/middleware"
	"github.com/pratik-mahalle/userdata/internal/config"
	"github.com/pratik-mahalle/userdata/internal/pkg/logger"
	"github.com/pratik-mahalle/userdata/internal/pkg/metrics"
)

// Handlers groups the endpoint handlers the router mounts
type Handlers struct {
	Health *handlers.HealthHandler
	User   *handlers.UserHandler
}

// New builds the mock users API
func New(cfg config.ServerConfig, log *logger.Logger, m *metrics.Metrics, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(chimiddleware.StripSlashes)
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(m.Middleware)

	r.Get("/healthz", h.Health.Healthz)
	r.Handle("/metrics", m.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimit, cfg.Burst))

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.User.List)
			r.Get("/{id}", h.User.Get)
		})
	})

	return r
}
