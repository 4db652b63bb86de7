package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/tabed/tabed/internal/config"
	"github.com/tabed/tabed/internal/logging"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	dotenvLoaded := godotenv.Overload() == nil

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	if dotenvLoaded {
		slog.Info("loaded .env file (overwriting existing env vars)")
	} else {
		slog.Debug("no .env file found, using environment variables")
	}
	slog.Debug("configuration loaded", "config", cfg.String())

	Execute(cfg)
}
