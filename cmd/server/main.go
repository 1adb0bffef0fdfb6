// Package main is the entry point for the gocamp web server.
//
// main stays minimal: read configuration, create the logger, ensure the data
// directory exists, and hand off to internal/server. All actual logic lives
// in the imported packages.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/gocamp/internal/config"
	"github.com/sakif/gocamp/internal/server"
)

// devSessionSecret is used only when SESSION_SECRET is unset. Fine for local
// development; a real deployment must set its own:
//
//	SESSION_SECRET=$(openssl rand -hex 32)
const devSessionSecret = "dev-only-secret-change-me"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.LogLevel == "debug" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))

	secret := cfg.SessionSecret
	if secret == "" {
		logger.Warn("SESSION_SECRET not set — using an insecure development secret")
		secret = devSessionSecret
	}

	// Ensure the data directory exists (like `mkdir -p`).
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", dbDir),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	srv, err := server.New(server.Config{
		Port:          cfg.Port,
		TemplateDir:   cfg.TemplateDir,
		StaticDir:     cfg.StaticDir,
		DBPath:        cfg.DBPath,
		SessionSecret: secret,
	}, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start blocks until shutdown (Ctrl+C or SIGTERM).
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
