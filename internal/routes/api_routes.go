package routes

import (
	"github.com/go-chi/chi/v5"

	"userhub/backend/internal/api"
	"userhub/backend/internal/middleware"
)

// RegisterHealthRoutes mounts the probes. They are not rate limited so
// orchestrators can poll freely.
func RegisterHealthRoutes(r chi.Router, handlers *api.Handlers) {
	r.Route("/api/health", func(h chi.Router) {
		h.Get("/", handlers.HealthCheck())
		h.Get("/live", handlers.Liveness())
		h.Get("/ready", handlers.Readiness())
	})
}

// RegisterAPIRoutes registers the user resource routes
func RegisterAPIRoutes(r chi.Router, handlers *api.Handlers, limiter *middleware.RateLimiter) {
	r.Route("/api/users", func(users chi.Router) {
		users.Use(limiter.Middleware)

		users.Get("/", handlers.ListUsers())
		users.Post("/", handlers.CreateUser())
		users.Get("/{id}", handlers.GetUser())
		users.Put("/{id}", handlers.UpdateUser())
		users.Delete("/{id}", handlers.DeleteUser())
	})
}
