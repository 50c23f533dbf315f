// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package apiclient is the typed REST client for the news backend.
// Every resource group shares one Client: one HTTP client, one base URL,
// an optional circuit breaker and an optional response cache.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/olegiv/protidin-go/internal/cache"
	"github.com/olegiv/protidin-go/internal/circuitbreaker"
	"github.com/olegiv/protidin-go/internal/metrics"
	"github.com/olegiv/protidin-go/internal/model"
)

// maxResponseSize caps backend response bodies.
const maxResponseSize = 10 << 20

// Error is a non-2xx response from the backend.
type Error struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Message returns the backend message carried by err, if any.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// errorBody is the backend error shape: {"statusCode": n, "message": "..."}.
// message may be a string or a list of strings.
type errorBody struct {
	StatusCode int             `json:"statusCode"`
	Message    json.RawMessage `json:"message"`
}

func (b errorBody) text() string {
	if len(b.Message) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(b.Message, &s); err == nil {
		return s
	}
	var list []string
	if err := json.Unmarshal(b.Message, &list); err == nil {
		return strings.Join(list, "; ")
	}
	return ""
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client                   // Optional; built from Timeout when nil
	Breaker    *circuitbreaker.CircuitBreaker // Optional
	Cache      cache.Cache                    // Optional; GET responses are cached when set
	CacheTTL   time.Duration
	Logger     *slog.Logger
}

// Client talks to the news backend.
type Client struct {
	baseURL  string
	http     *http.Client
	breaker  *circuitbreaker.CircuitBreaker
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *slog.Logger

	News        *NewsAPI
	Categories  *CategoryAPI
	Photos      *Resource[model.Photo, model.PhotoInput]
	Videos      *Resource[model.Video, model.VideoInput]
	Ads         *AdAPI
	Menus       *MenuAPI
	Districts   *DistrictAPI
	Roles       *RoleAPI
	Users       *Resource[model.User, model.UserInput]
	Settings    *SettingsAPI
	Permissions *PermissionAPI
	Admin       *AdminAPI
}

// New creates a Client for the backend at opts.BaseURL.
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		http:     httpClient,
		breaker:  opts.Breaker,
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
		logger:   logger,
	}

	c.News = &NewsAPI{Resource: newResource[model.Article, model.ArticleInput](c, "news")}
	c.Categories = &CategoryAPI{Resource: newResource[model.Category, model.CategoryInput](c, "categories", "news")}
	c.Photos = newResource[model.Photo, model.PhotoInput](c, "photos")
	c.Videos = newResource[model.Video, model.VideoInput](c, "videos")
	c.Ads = &AdAPI{Resource: newResource[model.Ad, model.AdInput](c, "ads")}
	c.Menus = &MenuAPI{Resource: newResource[model.MenuItem, model.MenuItemInput](c, "menus")}
	c.Districts = &DistrictAPI{Resource: newResource[model.District, model.DistrictInput](c, "districts", "users")}
	c.Roles = &RoleAPI{Resource: newResource[model.Role, model.RoleInput](c, "roles", "users")}
	c.Users = newResource[model.User, model.UserInput](c, "users")
	c.Settings = &SettingsAPI{c: c}
	c.Permissions = &PermissionAPI{c: c}
	c.Admin = &AdminAPI{c: c}

	return c
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type rawResponse struct {
	status int
	body   []byte
}

// do sends one request. Transport failures and 5xx responses count as
// breaker failures; 4xx responses are returned as *Error without tripping it.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding %s %s: %w", method, path, err)
		}
	}

	send := func() (any, error) {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, target, reader)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("X-Request-ID", requestID(ctx))

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer func() { _ = resp.Body.Close() }()

		data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		if err != nil {
			return nil, err
		}
		raw := &rawResponse{status: resp.StatusCode, body: data}
		if resp.StatusCode >= http.StatusInternalServerError {
			return raw, c.newError(method, path, raw)
		}
		return raw, nil
	}

	resource := resourceOf(path)
	start := time.Now()

	var result any
	var err error
	if c.breaker != nil {
		result, err = c.breaker.Execute(send)
	} else {
		result, err = send()
	}

	raw, _ := result.(*rawResponse)
	status := "error"
	if raw != nil {
		status = strconv.Itoa(raw.status)
	}
	metrics.ObserveBackend(resource, method, status, time.Since(start))

	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) {
			return nil, apiErr
		}
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if raw.status >= http.StatusBadRequest {
		return nil, c.newError(method, path, raw)
	}
	return raw.body, nil
}

func (c *Client) newError(method, path string, raw *rawResponse) *Error {
	apiErr := &Error{Method: method, Path: path, Status: raw.status}
	var eb errorBody
	if json.Unmarshal(raw.body, &eb) == nil {
		apiErr.Message = eb.text()
	}
	return apiErr
}

// get performs a GET, serving from and filling the response cache when enabled.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if c.cache == nil {
		return c.do(ctx, http.MethodGet, path, query, nil)
	}

	key := cacheKey(path, query)
	if data, err := c.cache.Get(ctx, key); err == nil {
		metrics.ObserveCache(true)
		return data, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		c.logger.WarnContext(ctx, "cache lookup failed", "key", key, "error", err)
	}
	metrics.ObserveCache(false)

	data, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, key, data, c.cacheTTL); err != nil {
		c.logger.WarnContext(ctx, "cache store failed", "key", key, "error", err)
	}
	return data, nil
}

// mutate sends a write request and invalidates cached reads of the
// affected resources.
func (c *Client) mutate(ctx context.Context, method, path string, body any, resources ...string) ([]byte, error) {
	data, err := c.do(ctx, method, path, nil, body)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, resources...)
	return data, nil
}

func (c *Client) invalidate(ctx context.Context, resources ...string) {
	if c.cache == nil {
		return
	}
	for _, res := range resources {
		if err := c.cache.DeleteByPrefix(ctx, "GET /"+res); err != nil {
			c.logger.WarnContext(ctx, "cache invalidation failed", "resource", res, "error", err)
		}
	}
}

// cacheKey identifies a GET by method, path and canonical query.
func cacheKey(path string, query url.Values) string {
	if len(query) == 0 {
		return "GET " + path
	}
	return "GET " + path + "?" + query.Encode()
}

// resourceOf returns the first path segment, used as a metrics label.
func resourceOf(path string) string {
	p := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		return p[:i]
	}
	return p
}

func requestID(ctx context.Context) string {
	if id := chimw.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

// Ping checks that the backend answers, bypassing the response cache.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/settings", nil, nil)
	return err
}
