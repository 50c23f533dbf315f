// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/olegiv/protidin-go/internal/apiclient"
	"github.com/olegiv/protidin-go/internal/i18n"
)

func TestMain(m *testing.M) {
	if err := i18n.Init(nil); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeBackend serves canned JSON per request URI. Paths listed in fail
// answer 500, unknown paths answer 404.
type fakeBackend struct {
	mu      sync.Mutex
	routes  map[string]any
	fail    map[string]bool
	handled []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{routes: map[string]any{}, fail: map[string]bool{}}
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.handled = append(b.handled, r.URL.RequestURI())
	body, ok := b.routes[r.URL.RequestURI()]
	failed := b.fail[r.URL.RequestURI()]
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case failed:
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"statusCode":500,"message":"boom"}`))
	case !ok:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"statusCode":404,"message":"Not found"}`))
	default:
		_ = json.NewEncoder(w).Encode(body)
	}
}

func (b *fakeBackend) requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.handled...)
}

func newTestAPI(t *testing.T, h http.Handler) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return apiclient.New(apiclient.Options{BaseURL: srv.URL, Logger: testLogger()})
}

func downAPI(t *testing.T) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	return apiclient.New(apiclient.Options{BaseURL: url, Logger: testLogger()})
}
