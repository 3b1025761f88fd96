package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"donation-desk/internal/adapters/http/middleware"
	"donation-desk/internal/adapters/http/routes"
	"donation-desk/internal/config"
	"donation-desk/internal/core/services"
	"donation-desk/internal/pkg/logger"
	"donation-desk/internal/pkg/metrics"
	"donation-desk/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	_ "donation-desk/docs" // Swagger docs
)

// @title donation-desk API
// @version 1.0
// @description Donation submissions and admin review.

// @BasePath /api

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name adminToken

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx := context.Background()
	fsys := afero.NewOsFs()

	stores, err := config.OpenStores(ctx, cfg, fsys, log)
	if err != nil {
		return err
	}
	defer stores.Close()

	if err := config.NewSeeder(stores.Admins, log).Run(ctx, cfg.Admin); err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	validator, err := validation.NewDonationValidator(cfg.Donation.RequiredFields)
	if err != nil {
		return err
	}

	m := metrics.New()
	donationService := services.NewDonationService(stores.Donations, validator, m, log)
	authService := services.NewAuthService(stores.Admins, stores.Revocations, cfg.JWT, m, log)

	if cfg.Backup.Schedule != "" {
		backupService := services.NewBackupService(stores.Donations, fsys, cfg.Backup.Dir, log)
		if err := backupService.Start(cfg.Backup.Schedule); err != nil {
			return err
		}
		defer backupService.Stop()
	}

	app := fiber.New(fiber.Config{
		AppName:      "donation-desk",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	middleware.Setup(app, cfg, log)

	routes.Setup(app, routes.Dependencies{
		Config:    cfg,
		Donations: donationService,
		Auth:      authService,
		Metrics:   m,
		Log:       log,
	})

	go gracefulShutdown(app, log)

	log.Info("server starting",
		zap.String("port", cfg.Port),
		zap.String("mode", cfg.AppMode),
		zap.String("storage", cfg.Storage.Driver),
		zap.Strings("requiredFields", validator.Required()),
	)
	return app.Listen(":" + cfg.Port)
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App, log *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Error("error during shutdown", zap.Error(err))
	}
	log.Info("server stopped gracefully")
}
