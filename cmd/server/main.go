// @title         capoo auth API
// @version       1.0
// @description   Authentication and profile service for the capoo project-management dashboard.
// @schemes       http
// @host          localhost:8080
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Authorization token. Supported formats: "Bearer <JWT>" or "<JWT>".
package main

import (
	"context"
	"log"
	"time"

	_ "github.com/capoo/capoo/docs"
	"github.com/gofiber/fiber/v2"
	swagger "github.com/gofiber/swagger"

	// internal imports
	httpapi "github.com/capoo/capoo/api/http"
	"github.com/capoo/capoo/api/http/handlers"
	"github.com/capoo/capoo/pkg/auth"
	"github.com/capoo/capoo/pkg/config"
	"github.com/capoo/capoo/pkg/health"
	healthpg "github.com/capoo/capoo/pkg/health/checkers"
	memrepo "github.com/capoo/capoo/pkg/repository/memory"
	pgrepo "github.com/capoo/capoo/pkg/repository/postgres"
	"github.com/capoo/capoo/pkg/security/guard"
	"github.com/capoo/capoo/pkg/security/jwt"
	"github.com/capoo/capoo/pkg/storage/postgres"
)

func main() {
	app := fiber.New()

	// Load configuration from env/.env
	cfg := config.Load()

	var (
		users    auth.UserRepository
		refresh  auth.RefreshTokenRepository
		checkers []health.Checker
	)
	if cfg.DatabaseURL != "" {
		ctx := context.Background()
		if err := postgres.Migrate(ctx, cfg.DatabaseURL); err != nil {
			log.Fatalf("migrate: %v", err)
		}
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("postgres connect: %v", err)
		}
		defer pool.Close()
		users = pgrepo.NewUserRepository(pool)
		refresh = pgrepo.NewRefreshTokenRepository(pool)
		checkers = append(checkers, healthpg.NewPostgresChecker(pool))
	} else {
		log.Println("DATABASE_URL not set, using in-memory store (state resets on restart)")
		users = memrepo.NewUserRepository()
		refresh = memrepo.NewRefreshTokenRepository()
	}

	// Token generator and verifier share the configured secret material.
	tokens := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTIssuer, time.Duration(cfg.JWTTTLMinutes)*time.Minute)
	verifier := jwt.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer)

	authUC := auth.NewService(users, refresh, tokens, time.Duration(cfg.RefreshTTLHours)*time.Hour)
	authHandler := handlers.NewAuthHandler(authUC)
	profileHandler := handlers.NewProfileHandler(authUC)

	// Health service: compose checkers
	healthHandler := handlers.NewHealthHandler(health.NewService(checkers...))

	// JWT auth middleware for protected API routes
	authMW := jwt.NewAuthMiddleware(verifier)

	// Navigation guard for the dashboard pages served in front of this API.
	// Tokens that fail signature or expiry checks count as absent.
	app.Use(guard.New(guard.Config{
		Protected:   []string{"/", "/profile", "/projects", "/settings"},
		PublicOnly:  []string{"/login", "/register"},
		LoginPath:   "/login",
		LandingPath: "/profile",
		Validate: func(token string) bool {
			_, err := verifier.Verify(token)
			return err == nil
		},
	}))

	// Register routes
	httpapi.Register(app, authHandler, profileHandler, healthHandler, authMW)

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Start server
	log.Printf("HTTP server listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
