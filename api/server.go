/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. RealIP:     Client IP from proxy headers (rate limiting key)
  3. Logger:     One zerolog event per request (logging.go)
  4. Recoverer:  Panic recovery (500 instead of crash)
  5. CORS:       Cross-origin requests from the website
  6. RateLimit:  Per-IP token bucket on /api (optional)

ROUTE GROUPS:
  /healthz                Liveness, never rate limited
  /api/tools/*            Calculator catalog
  /api/coast-fire         Coast FIRE
  /api/debt-snowball/*    Debt snowball
  /api/fasting/*          Fasting
  /api/scenarios/*        Preset scenarios
  /api/cache              Cache administration

SECURITY NOTE:
  No authentication. Every endpoint is a stateless calculation except
  DELETE /api/cache, which only costs latency.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterConfig holds the optional parts of the middleware stack.
type RouterConfig struct {
	CORSOrigins []string
	RateLimiter *RateLimiter // nil disables rate limiting
}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{cacheHeader, "Retry-After"},
		MaxAge:         300,
	}))

	r.Get("/healthz", h.Health)

	// API routes
	r.Route("/api", func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.Middleware)
		}

		r.Route("/tools", func(r chi.Router) {
			r.Get("/", h.ListTools)
			r.Get("/{slug}", h.GetTool)
		})

		r.Post("/coast-fire", h.CoastFire)

		r.Route("/debt-snowball", func(r chi.Router) {
			r.Post("/", h.DebtSnowball)
			r.Post("/compare", h.CompareStrategies)
		})

		r.Route("/fasting", func(r chi.Router) {
			r.Get("/plans", h.FastingPlans)
			r.Post("/window", h.FastingWindow)
			r.Post("/weight-loss", h.WeightLoss)
		})

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Post("/{id}/run", h.RunScenario)
		})

		r.Delete("/cache", h.PurgeCache)
	})

	return r
}
