// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler implements the portal's HTTP handlers: the public pages,
// the login flow and the admin console.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/protidin-go/internal/apiclient"
	"github.com/olegiv/protidin-go/internal/auth"
	"github.com/olegiv/protidin-go/internal/middleware"
	"github.com/olegiv/protidin-go/internal/render"
	"github.com/olegiv/protidin-go/internal/service"
	"github.com/olegiv/protidin-go/internal/uikit"
)

// Route paths.
const (
	RouteRoot     = "/"
	RouteLogin    = "/login"
	RouteLogout   = "/logout"
	RouteLanguage = "/language"
	RouteAdmin    = "/admin"
	RouteSettings = "/admin/settings"
)

// Deps are the collaborators shared by every handler.
type Deps struct {
	API      *apiclient.Client
	Renderer *render.Renderer
	Content  *service.Content
	Logger   *slog.Logger
}

// pageData builds the template data common to every page of the request.
func pageData(r *http.Request, title string, chrome uikit.Chrome, data any) render.TemplateData {
	return render.TemplateData{
		Lang:   middleware.GetLanguage(r),
		Title:  title,
		Chrome: chrome,
		Auth:   auth.FromContext(r.Context()),
		Data:   data,
	}
}

// renderPage renders a template and logs rendering failures.
func renderPage(w http.ResponseWriter, r *http.Request, renderer *render.Renderer, status int, name string, data render.TemplateData) {
	if err := renderer.RenderStatus(w, r, status, name, data); err != nil {
		logAndInternalError(w, r, "failed to render template", "template", name, "error", err)
	}
}
