// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/protidin-go/internal/i18n"
	"github.com/olegiv/protidin-go/internal/middleware"
)

// LanguageHandler switches the UI language.
type LanguageHandler struct {
	sessionManager *scs.SessionManager
}

// NewLanguageHandler creates a LanguageHandler.
func NewLanguageHandler(sm *scs.SessionManager) *LanguageHandler {
	return &LanguageHandler{sessionManager: sm}
}

// SetLanguage handles POST /language. A supported "lang" value selects that
// language, anything else toggles the current one. The choice is kept in a
// cookie and in the session, then the visitor is sent back where they came
// from.
func (h *LanguageHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	lang := strings.ToLower(r.FormValue("lang"))
	if !i18n.IsSupported(lang) {
		lang = i18n.Toggle(middleware.GetLanguage(r))
	}

	middleware.SetLanguageCookie(w, lang)
	h.sessionManager.Put(r.Context(), middleware.SessionKeyAdminLang, lang)

	http.Redirect(w, r, backTo(r, RouteRoot), http.StatusSeeOther)
}

// backTo returns the local path of the Referer, or fallback when the
// referer is missing or points elsewhere.
func backTo(r *http.Request, fallback string) string {
	if next := r.FormValue("next"); isLocalPath(next) {
		return next
	}
	ref, err := url.Parse(r.Header.Get("Referer"))
	if err != nil || ref.Path == "" || (ref.Host != "" && ref.Host != r.Host) {
		return fallback
	}
	out := ref.EscapedPath()
	query := ref.Query()
	query.Del("lang")
	if len(query) > 0 {
		out += "?" + query.Encode()
	}
	if !isLocalPath(out) {
		return fallback
	}
	return out
}

func isLocalPath(p string) bool {
	return strings.HasPrefix(p, "/") && !strings.HasPrefix(p, "//") && !strings.HasPrefix(p, "/\\")
}
