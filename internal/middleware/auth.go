// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for the portal: login state,
// language selection and request hardening.
package middleware

import (
	"net/http"

	"github.com/olegiv/protidin-go/internal/auth"
	"github.com/olegiv/protidin-go/internal/logging"
)

// LoginPath is where unauthenticated admin requests are sent.
const LoginPath = "/login"

// LoadAuth rehydrates the login state from the session and injects it into
// the request context. It must run inside the session manager's LoadAndSave.
func LoadAuth(store *auth.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := auth.WithState(r.Context(), store.Load(r.Context()))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth redirects to the login page unless the injected state is
// authenticated.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !auth.FromContext(r.Context()).Authenticated {
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequestPath stores the request path in the context.
// This is used by the logging handler to include the URL in error logs.
func RequestPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(logging.WithPath(r.Context(), r.URL.Path)))
	})
}
