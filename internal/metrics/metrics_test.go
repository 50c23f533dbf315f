// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/news/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/news/{id}", "404"))

	for _, id := range []string{"1", "2", "flood"} {
		req := httptest.NewRequest(http.MethodGet, "/news/"+id, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/news/{id}", "404"))
	if after-before != 3 {
		t.Errorf("counter delta = %v, want 3", after-before)
	}
}

func TestObserveBackend(t *testing.T) {
	before := testutil.ToFloat64(BackendRequestsTotal.WithLabelValues("news", "GET", "200"))
	ObserveBackend("news", "GET", "200", 15*time.Millisecond)
	after := testutil.ToFloat64(BackendRequestsTotal.WithLabelValues("news", "GET", "200"))

	if after-before != 1 {
		t.Errorf("counter delta = %v, want 1", after-before)
	}
}

func TestObserveCache(t *testing.T) {
	hits := testutil.ToFloat64(CacheLookupsTotal.WithLabelValues("hit"))
	misses := testutil.ToFloat64(CacheLookupsTotal.WithLabelValues("miss"))

	ObserveCache(true)
	ObserveCache(false)
	ObserveCache(false)

	if d := testutil.ToFloat64(CacheLookupsTotal.WithLabelValues("hit")) - hits; d != 1 {
		t.Errorf("hit delta = %v, want 1", d)
	}
	if d := testutil.ToFloat64(CacheLookupsTotal.WithLabelValues("miss")) - misses; d != 2 {
		t.Errorf("miss delta = %v, want 2", d)
	}
}

func TestHandler(t *testing.T) {
	ObserveCache(true)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "protidin_cache_lookups_total") {
		t.Error("scrape output missing cache metric")
	}
}
