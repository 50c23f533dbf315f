// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/protidin-go/internal/admin"
	"github.com/olegiv/protidin-go/internal/apiclient"
	"github.com/olegiv/protidin-go/internal/i18n"
	"github.com/olegiv/protidin-go/internal/middleware"
	"github.com/olegiv/protidin-go/internal/model"
	"github.com/olegiv/protidin-go/internal/render"
	"github.com/olegiv/protidin-go/internal/service"
	"github.com/olegiv/protidin-go/internal/uikit"
)

// adminFallbackName completes admin page titles when settings are unavailable.
const adminFallbackName = "Admin"

// AdminHandler serves the admin dashboard and settings, and holds what the
// generic CRUD screens share.
type AdminHandler struct {
	api       *apiclient.Client
	renderer  *render.Renderer
	schema    *admin.Schema
	dashboard *service.Dashboard
	loaders   map[string]optionLoader
	logger    *slog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(d Deps, schema *admin.Schema) *AdminHandler {
	return &AdminHandler{
		api:       d.API,
		renderer:  d.Renderer,
		schema:    schema,
		dashboard: service.NewDashboard(d.API, d.Logger),
		loaders:   optionLoaders(d.API),
		logger:    d.Logger,
	}
}

// FormView is the data behind an admin edit form.
type FormView struct {
	Resource *admin.Resource
	Form     *admin.Form
	Sections []admin.Section
	Options  map[string][]admin.Option
	Groups   map[string][]admin.OptionGroup
	Action   string
	Editing  bool
	Submit   string // i18n key of the submit button
	Banner   string // i18n key of the failure banner, empty when none
	Cancel   string
}

// DashboardData is the data behind the admin dashboard.
type DashboardData struct {
	Stats []service.DashboardStat
}

// page builds admin template data. Titles read "{page} - {site name}".
func (h *AdminHandler) page(r *http.Request, title string, crumbs []uikit.Breadcrumb, data any) render.TemplateData {
	lang := middleware.GetLanguage(r)

	chrome := uikit.Chrome{SiteName: adminFallbackName}
	if settings, err := h.api.Settings.Get(r.Context()); err == nil {
		chrome = service.BuildChrome(service.Frame{Settings: settings, HasSettings: true}, lang)
	} else {
		h.logger.DebugContext(r.Context(), "settings unavailable for admin chrome", "error", err)
	}

	td := pageData(r, title+" - "+chrome.SiteName, chrome, data)
	td.Breadcrumbs = append([]uikit.Breadcrumb{{Label: i18n.T(lang, "admin.dashboard"), URL: RouteAdmin}}, crumbs...)
	if len(crumbs) == 0 {
		td.Breadcrumbs[0].Active = true
	}
	return td
}

// Dashboard handles GET /admin.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	data := DashboardData{Stats: h.dashboard.Stats(r.Context())}

	renderPage(w, r, h.renderer, http.StatusOK, "admin/dashboard", h.page(r, i18n.T(lang, "admin.dashboard"), nil, data))
}

func (h *AdminHandler) settingsResource() *admin.Resource {
	res, ok := h.schema.Resource("settings")
	if !ok {
		panic("admin schema has no settings resource")
	}
	return res
}

// SettingsForm handles GET /admin/settings.
func (h *AdminHandler) SettingsForm(w http.ResponseWriter, r *http.Request) {
	res := h.settingsResource()
	view := FormView{Resource: res, Form: res.NewForm()}

	settings, err := h.api.Settings.Get(r.Context())
	if err != nil {
		h.logger.WarnContext(r.Context(), "failed to load settings", "error", err)
		view.Banner = "settings.load_failed"
	} else if form, err := res.Prefill(settings.Input()); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to prefill settings form", "error", err)
		view.Banner = "settings.load_failed"
	} else {
		view.Form = form
	}

	h.renderSettings(w, r, http.StatusOK, view)
}

// UpdateSettings handles POST /admin/settings.
func (h *AdminHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	res := h.settingsResource()

	if err := r.ParseForm(); err != nil {
		flashError(w, r, h.renderer, RouteSettings, i18n.T(lang, "settings.failed"))
		return
	}

	form, doc := res.Submitted(r.PostForm, false)
	view := FormView{Resource: res, Form: form}
	in, ok := admin.Bind[model.SettingsInput](form, doc)
	if !ok {
		view.Banner = "settings.failed"
		h.renderSettings(w, r, http.StatusUnprocessableEntity, view)
		return
	}

	if err := h.api.Settings.Update(r.Context(), in); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to update settings", "error", err)
		view.Banner = "settings.failed"
		h.renderSettings(w, r, http.StatusBadGateway, view)
		return
	}

	h.logger.InfoContext(r.Context(), "settings updated")
	flashSuccess(w, r, h.renderer, RouteSettings, i18n.T(lang, "settings.saved"))
}

func (h *AdminHandler) renderSettings(w http.ResponseWriter, r *http.Request, status int, view FormView) {
	lang := middleware.GetLanguage(r)
	view.Sections = view.Resource.Sections()
	view.Action = RouteSettings
	view.Editing = true
	view.Submit = "btn.save_settings"

	title := i18n.T(lang, view.Resource.Title)
	crumbs := []uikit.Breadcrumb{{Label: title, URL: RouteSettings, Active: true}}
	renderPage(w, r, h.renderer, status, "admin/form", h.page(r, title, crumbs, view))
}
