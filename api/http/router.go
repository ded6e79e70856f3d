package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/capoo/capoo/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, auth *handlers.AuthHandler, profile *handlers.ProfileHandler, health *handlers.HealthHandler, authMW fiber.Handler) {
	// Health and readiness endpoints for probes/monitoring
	app.Get("/health", health.Health)
	app.Get("/ready", health.Ready)

	users := app.Group("/users")
	users.Post("/register", auth.Register)
	users.Post("/login", auth.Login)
	users.Post("/refresh", auth.Refresh)

	users.Get("/me", authMW, profile.Me)
	users.Patch("/me", authMW, profile.UpdateMe)
}
