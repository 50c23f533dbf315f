// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/olegiv/protidin-go/internal/handler"
	"github.com/olegiv/protidin-go/internal/metrics"
	"github.com/olegiv/protidin-go/internal/middleware"
)

// RouterConfig configures the backend router.
type RouterConfig struct {
	CORSOrigins []string
	Health      *handler.HealthHandler // Optional
	LogRequests bool
}

// Routes mounts every backend endpoint on r.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/news", h.newsRoutes)
	r.Route("/categories", h.categoryRoutes)
	r.Route("/photos", h.photoRoutes)
	r.Route("/videos", h.videoRoutes)
	r.Route("/ads", h.adRoutes)
	r.Route("/menus", h.menuRoutes)
	r.Route("/districts", h.districtRoutes)
	r.Route("/roles", h.roleRoutes)
	r.Route("/users", h.userRoutes)
	r.Get("/permissions", h.ListPermissions)

	r.Get("/settings", h.GetSettings)
	r.Put("/settings", h.UpdateSettings)

	r.Post("/admin/login", h.Login)
	r.Post("/admin/register", h.Register)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "Cannot "+r.Method+" "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Cannot "+r.Method+" "+r.URL.Path)
	})
}

// NewRouter builds the backend's HTTP handler: the chi middleware stack,
// health endpoints, every API route and CORS for the configured origins.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if cfg.LogRequests {
		r.Use(chimw.Logger)
	}
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.StripTrailingSlash)

	if cfg.Health != nil {
		r.Get("/health", cfg.Health.Health)
		r.Get("/health/live", cfg.Health.Liveness)
	}
	h.Routes(r)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
	})
	return c.Handler(r)
}
