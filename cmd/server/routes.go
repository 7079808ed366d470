package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerRoutes registers all HTTP routes
func registerRoutes(app *fiber.App, deps *Dependencies) {
	h := deps.Handlers

	// Health check routes (no auth required)
	h.Health.RegisterRoutes(app)

	// Prometheus metrics (no auth required)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Rate limit everything under /v1 by client IP
	if deps.Config.RateLimit.Enabled {
		app.Use("/v1", deps.RateLimitMiddleware.Handler())
	}

	// Login (no auth required)
	h.Auth.RegisterRoutes(app)

	// Authenticated API routes
	auth := deps.AuthMiddleware
	h.Companies.RegisterRoutes(app, auth)
	h.Users.RegisterRoutes(app, auth)
	h.Products.RegisterRoutes(app, auth)
	h.Orders.RegisterRoutes(app, auth)
	h.Inventory.RegisterRoutes(app, auth)
	h.Exports.RegisterRoutes(app, auth)
	h.Audit.RegisterRoutes(app, auth)
}
