// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/protidin-go/internal/i18n"
)

// LanguageCookieName is the cookie name for language preference.
const LanguageCookieName = "protidin_lang"

// SessionKeyAdminLang is the session key of the admin console language.
const SessionKeyAdminLang = "admin_lang"

type languageKey struct{}

// Language creates middleware that detects and sets the current UI language.
// Priority order:
// 1. Query parameter ?lang=XX (explicit switch, updates cookie and session)
// 2. Admin session preference
// 3. Language cookie
// 4. Accept-Language header, only when fallback is empty
// 5. fallback, or the i18n default
func Language(sm *scs.SessionManager, fallback string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lang := ""

			if q := strings.ToLower(r.URL.Query().Get("lang")); q != "" && i18n.IsSupported(q) {
				lang = q
				SetLanguageCookie(w, lang)
				if sm != nil {
					sm.Put(r.Context(), SessionKeyAdminLang, lang)
				}
			}

			if lang == "" && sm != nil {
				if s := sm.GetString(r.Context(), SessionKeyAdminLang); i18n.IsSupported(s) {
					lang = s
				}
			}

			if lang == "" {
				if cookie, err := r.Cookie(LanguageCookieName); err == nil && i18n.IsSupported(cookie.Value) {
					lang = strings.ToLower(cookie.Value)
				}
			}

			if lang == "" {
				if fallback != "" {
					lang = i18n.Normalize(fallback)
				} else {
					lang = i18n.MatchLanguage(r.Header.Get("Accept-Language"))
				}
			}

			next.ServeHTTP(w, r.WithContext(WithLanguage(r.Context(), lang)))
		})
	}
}

// WithLanguage returns a context carrying lang.
func WithLanguage(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, languageKey{}, lang)
}

// GetLanguage returns the request's UI language, or the i18n default.
func GetLanguage(r *http.Request) string {
	if lang, ok := r.Context().Value(languageKey{}).(string); ok && lang != "" {
		return lang
	}
	return i18n.Default
}

// SetLanguageCookie sets the language preference cookie.
func SetLanguageCookie(w http.ResponseWriter, langCode string) {
	http.SetCookie(w, &http.Cookie{
		Name:     LanguageCookieName,
		Value:    langCode,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60, // 1 year
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
