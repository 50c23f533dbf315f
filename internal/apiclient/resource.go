// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/olegiv/protidin-go/internal/model"
)

// Resource is the generic CRUD group for one backend collection.
type Resource[T model.Record[In], In any] struct {
	c       *Client
	name    string
	related []string // Other collections whose cached reads embed this one
}

func newResource[T model.Record[In], In any](c *Client, name string, related ...string) *Resource[T, In] {
	return &Resource[T, In]{c: c, name: name, related: related}
}

// Name returns the collection name, e.g. "news".
func (r *Resource[T, In]) Name() string {
	return r.name
}

func (r *Resource[T, In]) path(parts ...string) string {
	p := "/" + r.name
	for _, part := range parts {
		p += "/" + url.PathEscape(part)
	}
	return p
}

func (r *Resource[T, In]) invalidates() []string {
	return append([]string{r.name}, r.related...)
}

// List fetches the whole collection.
func (r *Resource[T, In]) List(ctx context.Context) ([]T, error) {
	return listAt[T](ctx, r.c, r.path(), nil)
}

// Get fetches one record by id (or slug where the backend accepts one).
func (r *Resource[T, In]) Get(ctx context.Context, id string) (T, error) {
	return oneAt[T](ctx, r.c, r.path(id), nil)
}

// Create posts a new record and returns the stored version.
func (r *Resource[T, In]) Create(ctx context.Context, in In) (T, error) {
	var zero T
	data, err := r.c.mutate(ctx, http.MethodPost, r.path(), in, r.invalidates()...)
	if err != nil {
		return zero, err
	}
	return decodeOne[T](data, http.MethodPost, r.path())
}

// Update replaces the record with the given id.
func (r *Resource[T, In]) Update(ctx context.Context, id int64, in In) error {
	_, err := r.c.mutate(ctx, http.MethodPut, r.path(strconv.FormatInt(id, 10)), in, r.invalidates()...)
	return err
}

// Delete removes the record with the given id.
func (r *Resource[T, In]) Delete(ctx context.Context, id int64) error {
	_, err := r.c.mutate(ctx, http.MethodDelete, r.path(strconv.FormatInt(id, 10)), nil, r.invalidates()...)
	return err
}

// listAt fetches a JSON array. Items failing validation are dropped and logged.
func listAt[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	data, err := c.get(ctx, path, query)
	if err != nil {
		return nil, err
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding GET %s: %w", path, err)
	}

	items := make([]T, 0, len(raw))
	for i, msg := range raw {
		var item T
		if err := json.Unmarshal(msg, &item); err != nil {
			c.logger.WarnContext(ctx, "dropping undecodable item", "path", path, "index", i, "error", err)
			continue
		}
		if err := model.Validate(item); err != nil {
			c.logger.WarnContext(ctx, "dropping invalid item", "path", path, "index", i, "error", err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// oneAt fetches and validates a single JSON object.
func oneAt[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	data, err := c.get(ctx, path, query)
	if err != nil {
		var zero T
		return zero, err
	}
	return decodeOne[T](data, http.MethodGet, path)
}

func decodeOne[T any](data []byte, method, path string) (T, error) {
	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return item, fmt.Errorf("decoding %s %s: %w", method, path, err)
	}
	if err := model.Validate(item); err != nil {
		return item, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return item, nil
}
