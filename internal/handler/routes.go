// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/olegiv/protidin-go/internal/admin"
	"github.com/olegiv/protidin-go/internal/auth"
	"github.com/olegiv/protidin-go/internal/middleware"
	"github.com/olegiv/protidin-go/internal/model"
)

// Config holds what Mount needs beyond the shared Deps.
type Config struct {
	Deps
	Sessions        *scs.SessionManager
	Auth            *auth.Store
	Schema          *admin.Schema
	LoginProtection *middleware.LoginProtection // Optional
	Health          *HealthHandler              // Optional
	SiteURL         string                      // Absolute URL in sitemap.xml; derived from the request when empty
}

// Mount registers the portal's pages on r. The caller installs the session,
// language and login-state middleware first.
func Mount(r chi.Router, cfg Config) {
	public := NewPublicHandler(cfg.Deps)
	authHandler := NewAuthHandler(cfg.Deps, cfg.Auth, cfg.LoginProtection)
	languageHandler := NewLanguageHandler(cfg.Sessions)
	adminHandler := NewAdminHandler(cfg.Deps, cfg.Schema)
	seoHandler := NewSEOHandler(cfg.Deps, cfg.SiteURL)
	api := cfg.API

	if cfg.Health != nil {
		r.Get("/health", cfg.Health.Health)
		r.Get("/health/live", cfg.Health.Liveness)
		r.Get("/health/ready", cfg.Health.Readiness)
	}

	r.Get(RouteRoot, public.Home)
	r.Get("/category/{slug}", public.Category)
	r.Get("/news/{id}", public.Article)
	r.Get("/photos", public.Photos)
	r.Get("/videos", public.Videos)
	r.Post(RouteLanguage, languageHandler.SetLanguage)
	r.Get("/robots.txt", seoHandler.Robots)
	r.Get("/sitemap.xml", seoHandler.Sitemap)

	r.Group(func(r chi.Router) {
		if cfg.LoginProtection != nil {
			r.Use(cfg.LoginProtection.Middleware())
		}
		r.Get(RouteLogin, authHandler.LoginForm)
		r.Post(RouteLogin, authHandler.Login)
	})
	r.Post(RouteLogout, authHandler.Logout)

	r.Route(RouteAdmin, func(r chi.Router) {
		r.Use(middleware.RequireAuth, middleware.NoStore)

		r.Get("/", adminHandler.Dashboard)
		r.Get("/settings", adminHandler.SettingsForm)
		r.Post("/settings", adminHandler.UpdateSettings)

		r.Route("/news", NewCRUD[model.Article, model.ArticleInput](adminHandler, "news", api.News).Routes)
		r.Route("/categories", NewCRUD[model.Category, model.CategoryInput](adminHandler, "categories", api.Categories).Routes)
		r.Route("/photos", NewCRUD[model.Photo, model.PhotoInput](adminHandler, "photos", api.Photos).Routes)
		r.Route("/videos", NewCRUD[model.Video, model.VideoInput](adminHandler, "videos", api.Videos).Routes)
		r.Route("/ads", NewCRUD[model.Ad, model.AdInput](adminHandler, "ads", api.Ads).Routes)
		r.Route("/menus", NewCRUD[model.MenuItem, model.MenuItemInput](adminHandler, "menus", api.Menus).Routes)
		r.Route("/users", NewCRUD[model.User, model.UserInput](adminHandler, "users", api.Users).Routes)
		r.Route("/districts", NewCRUD[model.District, model.DistrictInput](adminHandler, "districts", api.Districts).Routes)
		r.Route("/roles", NewCRUD[model.Role, model.RoleInput](adminHandler, "roles", api.Roles).
			OnSave(func(ctx context.Context, id int64, in model.RoleInput, created bool) error {
				// An update always syncs the set, including the empty set.
				if created && len(in.PermissionIDs) == 0 {
					return nil
				}
				return api.Roles.SetPermissions(ctx, id, in.PermissionIDs)
			}).Routes)
	})

	r.NotFound(public.NotFound)
}
