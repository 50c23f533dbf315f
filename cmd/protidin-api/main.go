// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command protidin-api runs the reference REST backend of the news portal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/olegiv/protidin-go/internal/config"
	"github.com/olegiv/protidin-go/internal/handler"
	"github.com/olegiv/protidin-go/internal/handler/api"
	"github.com/olegiv/protidin-go/internal/logging"
	"github.com/olegiv/protidin-go/internal/store"
	"github.com/olegiv/protidin-go/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "protidin-api - reference REST backend for the Protidin news portal\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PROTIDIN_API_PORT            Listen port (default: 3000)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PROTIDIN_API_DB_DRIVER       sqlite or mysql (default: sqlite)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PROTIDIN_API_DB_DSN          Database path or MySQL DSN\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PROTIDIN_API_CORS_ORIGINS    Comma-separated allowed origins\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PROTIDIN_API_ADMIN_PASSWORD  Password of the seeded admin account\n")
	}
	flag.Parse()

	if *showVersion {
		_, _ = fmt.Printf("protidin-api %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.LoadAPI()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, logCloser := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	defer func() { _ = logCloser.Close() }()
	slog.SetDefault(logger)

	versionInfo := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}

	db, err := store.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := store.Migrate(db, cfg.DBDriver); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	st := store.New(db)
	seedOpts := store.SeedOptions{AdminUsername: cfg.AdminUsername, AdminPassword: cfg.AdminPassword}
	if err := store.Seed(context.Background(), st, seedOpts, logger); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	health := handler.NewHealthHandlerWithProbes(map[string]handler.Probe{
		"database": db.PingContext,
	}, versionInfo)

	router := api.NewRouter(api.NewHandler(st, logger), api.RouterConfig{
		CORSOrigins: cfg.CORSOrigins,
		Health:      health,
		LogRequests: cfg.IsDevelopment(),
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting api server", "addr", cfg.ServerAddr(), "env", cfg.Env, "driver", cfg.DBDriver, "version", versionInfo.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down api server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("api server stopped")
	return nil
}
