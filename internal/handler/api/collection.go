// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
)

// collection serves the plain CRUD endpoints of one record type.
type collection[T any, In any] struct {
	h      *Handler
	entity string // singular, used in messages

	list   func(ctx context.Context, query url.Values) ([]T, error)
	get    func(ctx context.Context, id int64) (T, error)
	create func(ctx context.Context, in In) (T, error)
	update func(ctx context.Context, id int64, in In) error
	remove func(ctx context.Context, id int64) error
}

// routes mounts GET / and the write endpoints. GET /{id} is mounted when
// the collection has a getter.
func (c *collection[T, In]) routes(r chi.Router) {
	r.Get("/", c.List)
	r.Post("/", c.Create)
	if c.get != nil {
		r.Get("/{id}", c.Get)
	}
	r.Put("/{id}", c.Update)
	r.Delete("/{id}", c.Delete)
}

// List handles GET /. The query string is passed to the lister.
func (c *collection[T, In]) List(w http.ResponseWriter, r *http.Request) {
	items, err := c.list(r.Context(), r.URL.Query())
	if err != nil {
		c.h.writeStoreError(w, r, c.entity, err)
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

// Get handles GET /{id}.
func (c *collection[T, In]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, c.entity)
	if !ok {
		return
	}
	item, err := c.get(r.Context(), id)
	if err != nil {
		c.h.writeStoreError(w, r, c.entity, err)
		return
	}
	WriteJSON(w, http.StatusOK, item)
}

// Create handles POST /. The stored record is returned with 201.
func (c *collection[T, In]) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeInput[In](w, r)
	if !ok {
		return
	}
	item, err := c.create(r.Context(), in)
	if err != nil {
		c.h.writeStoreError(w, r, c.entity, err)
		return
	}
	WriteJSON(w, http.StatusCreated, item)
}

// Update handles PUT /{id}. The stored record is returned when the
// collection has a getter.
func (c *collection[T, In]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, c.entity)
	if !ok {
		return
	}
	in, ok := decodeInput[In](w, r)
	if !ok {
		return
	}
	if err := c.update(r.Context(), id, in); err != nil {
		c.h.writeStoreError(w, r, c.entity, err)
		return
	}
	if c.get == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	item, err := c.get(r.Context(), id)
	if err != nil {
		c.h.writeStoreError(w, r, c.entity, err)
		return
	}
	WriteJSON(w, http.StatusOK, item)
}

// Delete handles DELETE /{id}.
func (c *collection[T, In]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, c.entity)
	if !ok {
		return
	}
	if err := c.remove(r.Context(), id); err != nil {
		c.h.writeStoreError(w, r, c.entity, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
