// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/protidin-go/internal/cache"
	"github.com/olegiv/protidin-go/internal/circuitbreaker"
	"github.com/olegiv/protidin-go/internal/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, h http.Handler, opts Options) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	opts.BaseURL = srv.URL
	opts.Logger = testLogger()
	return New(opts)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestList_DropsInvalidItems(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ads", r.URL.Path)
		assert.Equal(t, "sidebar", r.URL.Query().Get("position"))
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": 1, "title": "A", "image_url": "/a.png", "position": "sidebar", "is_active": true},
			{"id": 2, "title": "B", "image_url": "/b.png", "position": "popup"},
			{"id": 0, "title": "C", "image_url": "/c.png", "position": "sidebar"},
			{"id": "x"},
		})
	})
	c := newTestClient(t, h, Options{})

	ads, err := c.Ads.ByPosition(context.Background(), model.AdSidebar)
	require.NoError(t, err)
	require.Len(t, ads, 1)
	assert.Equal(t, int64(1), ads[0].ID)
}

func TestGet_InvalidSingleRecordIsError(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"id": 0, "title_en": "broken"})
	})
	c := newTestClient(t, h, Options{})

	_, err := c.News.Get(context.Background(), "5")
	assert.Error(t, err)
}

func TestErrorBody(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    any
		wantMsg string
	}{
		{"string message", http.StatusNotFound, map[string]any{"statusCode": 404, "message": "News not found"}, "News not found"},
		{"list message", http.StatusBadRequest, map[string]any{"statusCode": 400, "message": []string{"title_en required", "slug taken"}}, "title_en required; slug taken"},
		{"no body", http.StatusInternalServerError, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if tt.body == nil {
					w.WriteHeader(tt.status)
					return
				}
				writeJSON(w, tt.status, tt.body)
			})
			c := newTestClient(t, h, Options{})

			_, err := c.Categories.Get(context.Background(), "9")
			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.wantMsg, apiErr.Message)
			assert.Equal(t, tt.wantMsg, Message(err))
			assert.Equal(t, tt.status == http.StatusNotFound, IsNotFound(err))
		})
	}
}

func TestMutations_SendPayloadAndRequestID(t *testing.T) {
	type seen struct {
		method, path, requestID string
		body                    map[string]any
	}
	var got seen

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = seen{method: r.Method, path: r.URL.Path, requestID: r.Header.Get("X-Request-ID")}
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&got.body)
		}
		switch r.Method {
		case http.MethodPost:
			writeJSON(w, http.StatusCreated, map[string]any{"id": 11, "name": "editor", "display_name": "Editor"})
		default:
			writeJSON(w, http.StatusOK, map[string]any{"success": true})
		}
	})
	c := newTestClient(t, h, Options{})
	ctx := context.Background()

	role, err := c.Roles.Create(ctx, model.RoleInput{Name: "editor", DisplayName: "Editor", PermissionIDs: []int64{1}})
	require.NoError(t, err)
	assert.Equal(t, int64(11), role.ID)
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/roles", got.path)
	assert.NotEmpty(t, got.requestID)

	require.NoError(t, c.Roles.SetPermissions(ctx, 11, []int64{1, 2}))
	assert.Equal(t, "/roles/11/permissions", got.path)
	assert.Equal(t, []any{float64(1), float64(2)}, got.body["permissionIds"])

	require.NoError(t, c.Users.Update(ctx, 3, model.UserInput{Username: "u", Email: "u@x.io", FullName: "U"}))
	assert.Equal(t, http.MethodPut, got.method)
	assert.Equal(t, "/users/3", got.path)
	_, hasPassword := got.body["password"]
	assert.False(t, hasPassword, "blank password must be omitted")

	require.NoError(t, c.Photos.Delete(ctx, 4))
	assert.Equal(t, http.MethodDelete, got.method)
	assert.Equal(t, "/photos/4", got.path)
}

func TestCache_HitAndInvalidate(t *testing.T) {
	var gets atomic.Int32
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			gets.Add(1)
			writeJSON(w, http.StatusOK, []map[string]any{{"id": 1, "name_en": "Sports", "name_bn": "খেলা", "slug": "sports"}})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{})
	})
	mem := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	defer func() { _ = mem.Close() }()
	c := newTestClient(t, h, Options{Cache: mem, CacheTTL: time.Minute})
	ctx := context.Background()

	for range 3 {
		list, err := c.Categories.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 1)
	}
	assert.Equal(t, int32(1), gets.Load(), "repeat reads should be served from cache")

	require.NoError(t, c.Categories.Update(ctx, 1, model.CategoryInput{NameEn: "Sport", NameBn: "খেলা", Slug: "sports"}))

	_, err := c.Categories.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), gets.Load(), "mutation should invalidate cached reads")
}

func TestCache_KeyIncludesQuery(t *testing.T) {
	var gets atomic.Int32
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gets.Add(1)
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": 1, "title": "x", "image_url": "/x.png", "position": r.URL.Query().Get("position")},
		})
	})
	mem := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	defer func() { _ = mem.Close() }()
	c := newTestClient(t, h, Options{Cache: mem})
	ctx := context.Background()

	header, err := c.Ads.ByPosition(ctx, model.AdHeader)
	require.NoError(t, err)
	footer, err := c.Ads.ByPosition(ctx, model.AdFooter)
	require.NoError(t, err)

	assert.Equal(t, model.AdHeader, header[0].Position)
	assert.Equal(t, model.AdFooter, footer[0].Position)
	assert.Equal(t, int32(2), gets.Load())
}

func TestBreaker_FailsFastWhenOpen(t *testing.T) {
	var calls atomic.Int32
	h := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	})
	cb := circuitbreaker.New(circuitbreaker.Config{
		Name:             "test",
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 0.5,
		MinRequests:      2,
	}, testLogger())
	c := newTestClient(t, h, Options{Breaker: cb})
	ctx := context.Background()

	for range 2 {
		_, err := c.Photos.List(ctx)
		require.Error(t, err)
	}
	_, err := c.Photos.List(ctx)
	assert.True(t, errors.Is(err, gobreaker.ErrOpenState), "err = %v", err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestBreaker_IgnoresClientErrors(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"statusCode": 404, "message": "missing"})
	})
	cb := circuitbreaker.New(circuitbreaker.Config{
		Name: "test", MaxRequests: 1, Interval: time.Minute, Timeout: time.Minute,
		FailureThreshold: 0.5, MinRequests: 2,
	}, testLogger())
	c := newTestClient(t, h, Options{Breaker: cb})

	for range 5 {
		_, err := c.News.Get(context.Background(), "missing")
		assert.True(t, IsNotFound(err))
	}
	assert.False(t, cb.IsOpen())
}

func TestTimeout(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
		writeJSON(w, http.StatusOK, []any{})
	})
	c := newTestClient(t, h, Options{Timeout: 50 * time.Millisecond})

	start := time.Now()
	_, err := c.Videos.List(context.Background())
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 900*time.Millisecond)
}

func TestLogin(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req model.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Password == "secret" {
			writeJSON(w, http.StatusOK, map[string]any{
				"success": true,
				"admin":   map[string]any{"id": 1, "username": req.Username},
			})
			return
		}
		writeJSON(w, http.StatusUnauthorized, map[string]any{"statusCode": 401, "message": "Invalid credentials"})
	})
	c := newTestClient(t, h, Options{})
	ctx := context.Background()

	resp, err := c.Admin.Login(ctx, model.LoginRequest{Username: "admin", Password: "secret"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Admin)
	assert.Equal(t, "admin", resp.Admin.Username)

	resp, err = c.Admin.Login(ctx, model.LoginRequest{Username: "admin", Password: "wrong"})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid credentials", resp.Message)
}

func TestResourceOf(t *testing.T) {
	assert.Equal(t, "news", resourceOf("/news/breaking"))
	assert.Equal(t, "settings", resourceOf("/settings"))
	assert.Equal(t, "admin", resourceOf("/admin/login"))
}
