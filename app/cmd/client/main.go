package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"marketplace-core/app/config"
	"marketplace-core/app/di"
	"marketplace-core/app/domain"
	"marketplace-core/app/utils/logger"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Could not load .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	appLogger, err := logger.New(cfg.LogLevel)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}

	appLogger.Info("Starting marketplace core",
		"version", getVersion(),
		"store_backend", cfg.StoreBackend,
		"log_level", cfg.LogLevel)

	container, err := di.NewContainer(cfg, appLogger)
	if err != nil {
		appLogger.Error("Failed to initialize dependency container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	// Log every session transition for the embedding front end to observe
	unsubscribe := container.Sessions.Subscribe(func(session domain.Session) {
		appLogger.Info("session state",
			"bootstrapping", session.Bootstrapping,
			"authenticated", session.Authenticated,
			"identity_id", session.IdentityID(),
			"role", session.Role)
	})
	defer unsubscribe()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := container.Sessions.Bootstrap(ctx); err != nil {
		appLogger.Error("Session bootstrap failed", "error", err)
	}
	cancel()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down")
}

// getVersion returns the application version
func getVersion() string {
	if version := os.Getenv("VERSION"); version != "" {
		return version
	}
	return "dev"
}
