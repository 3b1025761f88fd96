package routes

import (
	"donation-desk/internal/adapters/http/handlers"
	"donation-desk/internal/adapters/http/middleware"
	"donation-desk/internal/config"
	"donation-desk/internal/core/services"
	"donation-desk/internal/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// Dependencies are the services the routes dispatch to
type Dependencies struct {
	Config    *config.Config
	Donations services.DonationManager
	Auth      services.SessionGate
	Metrics   *metrics.Metrics
	Log       *zap.Logger
}

// Setup configures all routes for the application
func Setup(app *fiber.App, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler(deps.Donations, deps.Config.AppMode)
	donationHandler := handlers.NewDonationHandler(deps.Donations)
	authHandler := handlers.NewAuthHandler(deps.Auth, deps.Config.Cookie, deps.Log)

	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/metrics", deps.Metrics.Handler())
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")
	adminOnly := middleware.AdminAuth(deps.Auth, deps.Config.Cookie.Name)

	donationRoutes := api.Group("/donations")
	donationRoutes.Post("/", donationHandler.Create)
	donationRoutes.Get("/", adminOnly, donationHandler.List)
	donationRoutes.Delete("/", adminOnly, donationHandler.Delete)
	donationRoutes.Delete("/:id", adminOnly, donationHandler.Delete)

	authRoutes := api.Group("/auth")
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Get("/check", authHandler.Check)
}
