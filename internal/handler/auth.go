// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/olegiv/protidin-go/internal/apiclient"
	"github.com/olegiv/protidin-go/internal/auth"
	"github.com/olegiv/protidin-go/internal/i18n"
	"github.com/olegiv/protidin-go/internal/middleware"
	"github.com/olegiv/protidin-go/internal/model"
	"github.com/olegiv/protidin-go/internal/render"
	"github.com/olegiv/protidin-go/internal/service"
)

// InvalidCredentials is shown when a login fails without a backend message.
const InvalidCredentials = "Invalid username or password"

// AuthHandler handles the login flow.
type AuthHandler struct {
	api             *apiclient.Client
	renderer        *render.Renderer
	content         *service.Content
	store           *auth.Store
	loginProtection *middleware.LoginProtection
	logger          *slog.Logger
}

// NewAuthHandler creates a new AuthHandler. lp may be nil.
func NewAuthHandler(d Deps, store *auth.Store, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		api:             d.API,
		renderer:        d.Renderer,
		content:         d.Content,
		store:           store,
		loginProtection: lp,
		logger:          d.Logger,
	}
}

// LoginData is the data behind the login page.
type LoginData struct {
	Username string
	Error    string
}

// LoginForm handles GET /login. Authenticated visitors go to the dashboard.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if auth.FromContext(r.Context()).Authenticated {
		http.Redirect(w, r, RouteAdmin, http.StatusSeeOther)
		return
	}
	h.render(w, r, http.StatusOK, LoginData{})
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)

	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, LoginData{Error: InvalidCredentials})
		return
	}

	req := model.LoginRequest{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
	data := LoginData{Username: req.Username}

	if req.Username == "" || req.Password == "" {
		data.Error = InvalidCredentials
		h.render(w, r, http.StatusUnprocessableEntity, data)
		return
	}

	if h.loginProtection != nil {
		if locked, _ := h.loginProtection.IsLocked(req.Username); locked {
			h.logger.WarnContext(r.Context(), "login attempt on locked account", "username", req.Username)
			data.Error = i18n.T(lang, "login.too_many")
			h.render(w, r, http.StatusTooManyRequests, data)
			return
		}
	}

	resp, err := h.api.Admin.Login(r.Context(), req)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "login request failed", "username", req.Username, "error", err)
		data.Error = InvalidCredentials
		h.render(w, r, http.StatusBadGateway, data)
		return
	}

	if !resp.Success {
		h.logger.InfoContext(r.Context(), "login rejected", "username", req.Username)
		data.Error = InvalidCredentials
		if resp.Message != "" {
			data.Error = resp.Message
		}
		if h.loginProtection != nil {
			if locked, _ := h.loginProtection.RecordFailedAttempt(req.Username); locked {
				data.Error = i18n.T(lang, "login.too_many")
			}
		}
		h.render(w, r, http.StatusUnauthorized, data)
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(req.Username)
	}
	if err := h.store.Login(r.Context(), *resp.Admin); err != nil {
		logAndInternalError(w, r, "failed to store login state", "error", err)
		return
	}

	h.logger.InfoContext(r.Context(), "admin logged in", "admin_id", resp.Admin.ID, "username", resp.Admin.Username)
	http.Redirect(w, r, RouteAdmin, http.StatusSeeOther)
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	st := auth.FromContext(r.Context())
	if err := h.store.Logout(r.Context()); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to clear login state", "error", err)
	}
	if st.Admin != nil {
		h.logger.InfoContext(r.Context(), "admin logged out", "admin_id", st.Admin.ID)
	}

	lang := middleware.GetLanguage(r)
	flashAndRedirect(w, r, h.renderer, RouteLogin, i18n.T(lang, "msg.logged_out"), render.FlashInfo)
}

func (h *AuthHandler) render(w http.ResponseWriter, r *http.Request, status int, data LoginData) {
	lang := middleware.GetLanguage(r)
	chrome := service.BuildChrome(h.content.Frame(r.Context()), lang)
	title := chrome.PageTitle(i18n.T(lang, "login.title"))
	renderPage(w, r, h.renderer, status, "auth/login", pageData(r, title, chrome, data))
}
