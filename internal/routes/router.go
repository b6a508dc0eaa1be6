package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"userhub/backend/internal/api"
	"userhub/backend/internal/logging"
	"userhub/backend/internal/middleware"
)

func RegisterRoutes(deps *api.Dependencies) http.Handler {
	cfg := deps.Config

	// initialize Chi router
	r := chi.NewRouter()

	// global middleware, outermost first
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.Logging)
	r.Use(middleware.MetricsMiddleware(deps.Metrics))
	r.Use(middleware.Recoverer(cfg.IsDevelopment()))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	handlers := api.NewHandlers(deps)

	r.NotFound(api.NotFoundHandler())
	r.MethodNotAllowed(api.NotFoundHandler())

	RegisterHealthRoutes(r, handlers)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, deps.Metrics)
	RegisterAPIRoutes(r, handlers, limiter)

	logging.Info("Router initialized", "frontend_url", cfg.FrontendURL)
	return r
}
