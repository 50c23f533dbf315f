// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command protidin runs the news portal: the public site and the admin
// console, both rendered from the REST backend.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/protidin-go/internal/admin"
	"github.com/olegiv/protidin-go/internal/apiclient"
	"github.com/olegiv/protidin-go/internal/auth"
	"github.com/olegiv/protidin-go/internal/cache"
	"github.com/olegiv/protidin-go/internal/circuitbreaker"
	"github.com/olegiv/protidin-go/internal/config"
	"github.com/olegiv/protidin-go/internal/handler"
	"github.com/olegiv/protidin-go/internal/i18n"
	"github.com/olegiv/protidin-go/internal/logging"
	"github.com/olegiv/protidin-go/internal/metrics"
	"github.com/olegiv/protidin-go/internal/middleware"
	"github.com/olegiv/protidin-go/internal/render"
	"github.com/olegiv/protidin-go/internal/scheduler"
	"github.com/olegiv/protidin-go/internal/service"
	"github.com/olegiv/protidin-go/internal/session"
	"github.com/olegiv/protidin-go/internal/version"
	"github.com/olegiv/protidin-go/web"
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
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Protidin - bilingual regional news portal\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PROTIDIN_SESSION_SECRET       Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PROTIDIN_API_URL              REST backend base URL (default: http://localhost:3000)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PROTIDIN_SERVER_PORT          Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PROTIDIN_ENV                  Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PROTIDIN_DEFAULT_LANG         Language of a first visit: bn|en (default: bn)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PROTIDIN_CACHE_TTL            Backend response cache in seconds (default: 0, off)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PROTIDIN_REDIS_URL            Redis URL for a shared cache (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("protidin %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	versionInfo := version.Info{Version: appVersion, GitCommit: appGitCommit, BuildTime: appBuildTime}

	logger, logCloser := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	defer func() { _ = logCloser.Close() }()
	slog.SetDefault(logger)

	if err := i18n.Init(logger); err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}
	slog.Info("i18n system initialized", "languages", i18n.SupportedLanguages, "default", cfg.DefaultLang)

	// Sessions live in a local SQLite file; all content lives in the backend.
	if err := os.MkdirAll(filepath.Dir(cfg.SessionDBPath), 0o750); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	sessionDB, err := session.OpenDB(cfg.SessionDBPath)
	if err != nil {
		return fmt.Errorf("opening session database: %w", err)
	}
	defer func() {
		if err := sessionDB.Close(); err != nil {
			slog.Error("error closing session database", "error", err)
		}
	}()
	if err := session.Migrate(sessionDB); err != nil {
		return fmt.Errorf("migrating session database: %w", err)
	}
	sessionManager := session.New(sessionDB, cfg.IsDevelopment())
	authStore := auth.NewStore(sessionManager)

	apiOpts := apiclient.Options{
		BaseURL: cfg.APIURL,
		Timeout: cfg.APITimeout,
		Logger:  logger,
	}
	if cfg.BreakerEnabled {
		apiOpts.Breaker = circuitbreaker.New(circuitbreaker.BackendConfig(), logger)
	}
	if cfg.CacheEnabled() {
		c, backend, err := cache.New(cache.Config{
			RedisURL:   cfg.RedisURL,
			Prefix:     cfg.CachePrefix,
			DefaultTTL: cfg.CacheDuration(),
			MaxSize:    10000,
		})
		if err != nil {
			return fmt.Errorf("initializing cache: %w", err)
		}
		defer func() { _ = c.Close() }()
		apiOpts.Cache = c
		apiOpts.CacheTTL = cfg.CacheDuration()
		slog.Info("backend response cache enabled", "backend", backend, "ttl", cfg.CacheDuration())
	}
	api := apiclient.New(apiOpts)

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates filesystem: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}

	schema, err := admin.Load()
	if err != nil {
		return fmt.Errorf("loading admin schema: %w", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	go loginProtection.Run(ctx, 5*time.Minute)
	slog.Info("login protection initialized",
		"ip_rate_limit", "0.5 req/s",
		"max_failed_attempts", 5,
		"lockout_duration", "15m",
	)

	sched := scheduler.New(logger)
	if cfg.CacheEnabled() && cfg.CacheWarmSchedule != "" {
		warmer := service.NewWarmer(api, logger)
		if err := sched.AddJob(cfg.CacheWarmSchedule, "cache warm-up", warmer.Warm); err != nil {
			return fmt.Errorf("scheduling cache warm-up: %w", err)
		}
	}
	sched.Start()
	defer sched.Stop()

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	if cfg.MetricsEnabled {
		r.Use(metrics.Middleware)
	}
	r.Use(chimw.Compress(5))                    // Gzip compression with level 5
	r.Use(chimw.GetHead)                        // Handle HEAD requests for uptime monitoring
	r.Use(middleware.Timeout(30 * time.Second)) // 30 second request timeout
	r.Use(middleware.StripTrailingSlash)        // Redirect /path/ to /path (301)

	securityConfig := middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())
	r.Use(middleware.SecurityHeaders(securityConfig))
	r.Use(middleware.RequestPath)

	staticFS, err := fs.Sub(web.Static, "static/dist")
	if err != nil {
		return fmt.Errorf("getting static filesystem: %w", err)
	}
	// Static assets: cache for 1 year (31536000 seconds)
	r.Handle("/static/*", middleware.StaticCache(31536000)(http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))))

	if cfg.MetricsEnabled {
		r.Handle("/metrics", metrics.Handler())
	}

	csrfConfig := middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment(), cfg.ServerAddr())
	slog.Info("CSRF protection initialized", "secure", !cfg.IsDevelopment())

	r.Group(func(r chi.Router) {
		r.Use(sessionManager.LoadAndSave)
		r.Use(middleware.Language(sessionManager, cfg.DefaultLang))
		r.Use(middleware.LoadAuth(authStore))
		r.Use(middleware.CSRF(csrfConfig))

		handler.Mount(r, handler.Config{
			Deps: handler.Deps{
				API:      api,
				Renderer: renderer,
				Content:  service.NewContent(api, logger),
				Logger:   logger,
			},
			Sessions:        sessionManager,
			Auth:            authStore,
			Schema:          schema,
			LoginProtection: loginProtection,
			Health:          handler.NewHealthHandler(sessionDB, api, versionInfo),
			SiteURL:         cfg.SiteURL,
		})
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env, "backend", cfg.APIURL, "version", versionInfo.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
