// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSecurityHeaders(t *testing.T) {
	tests := []struct {
		name     string
		isDev    bool
		path     string
		wantHSTS bool
		wantCSP  bool
	}{
		{"production", false, "/", true, true},
		{"development", true, "/", false, true},
		{"excluded path", false, "/metrics", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := SecurityHeaders(DefaultSecurityHeadersConfig(tt.isDev))(okHandler())
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if got := rec.Header().Get("Strict-Transport-Security") != ""; got != tt.wantHSTS {
				t.Errorf("HSTS present = %v, want %v", got, tt.wantHSTS)
			}
			csp := rec.Header().Get("Content-Security-Policy")
			if (csp != "") != tt.wantCSP {
				t.Errorf("CSP = %q, want present=%v", csp, tt.wantCSP)
			}
			if tt.wantCSP {
				if !strings.Contains(csp, "script-src 'self'") {
					t.Errorf("CSP missing script-src: %q", csp)
				}
				if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
					t.Error("missing X-Content-Type-Options")
				}
				if rec.Header().Get("X-Frame-Options") != "SAMEORIGIN" {
					t.Error("missing X-Frame-Options")
				}
			}
		})
	}
}

func TestStaticCacheAndNoStore(t *testing.T) {
	rec := httptest.NewRecorder()
	StaticCache(3600)(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/site.css", nil))
	if got := rec.Header().Get("Cache-Control"); got != "public, max-age=3600" {
		t.Errorf("Cache-Control = %q", got)
	}

	rec = httptest.NewRecorder()
	NoStore(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control = %q", got)
	}
}
