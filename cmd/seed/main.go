// Package main seeds the database with sample campgrounds.
//
// Usage:
//
//	go run ./cmd/seed
//
// Points at the same DB_PATH as the server. Destructive: every existing
// campground is replaced.
package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sakif/gocamp/internal/auth"
	"github.com/sakif/gocamp/internal/config"
	"github.com/sakif/gocamp/internal/repository/sqlite"
	"github.com/sakif/gocamp/internal/seed"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		logger.Error("failed to create database directory", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	if err := seed.Run(context.Background(), db, db, auth.NewPasswordService(), logger); err != nil {
		logger.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
