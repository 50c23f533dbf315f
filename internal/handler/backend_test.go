// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
)

// memBackend is an in-memory stand-in for the news backend. Every
// collection accepts list, get, create, update and delete; records are
// the posted JSON plus an id.
type memBackend struct {
	mu          sync.Mutex
	collections map[string][]map[string]any
	nextID      int64
	failWrites  bool
	assigned    map[string][]int64
	site        map[string]any
	router      chi.Router
}

func newMemBackend() *memBackend {
	b := &memBackend{
		collections: map[string][]map[string]any{},
		assigned:    map[string][]int64{},
		site:        map[string]any{"site_name_en": "Test News", "site_name_bn": "টেস্ট নিউজ"},
	}

	r := chi.NewRouter()
	r.Get("/settings", b.settings)
	r.Put("/settings", b.updateSettings)
	r.Post("/admin/login", b.login)
	r.Post("/roles/{id}/permissions", b.assign)
	r.Get("/{collection}", b.list)
	r.Post("/{collection}", b.create)
	r.Get("/{collection}/{id}", b.get)
	r.Put("/{collection}/{id}", b.update)
	r.Delete("/{collection}/{id}", b.remove)
	b.router = r
	return b
}

func (b *memBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.router.ServeHTTP(w, r)
}

func (b *memBackend) seed(collection string, rec map[string]any) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	rec["id"] = b.nextID
	b.collections[collection] = append(b.collections[collection], rec)
	return b.nextID
}

func (b *memBackend) records(collection string) []map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]map[string]any(nil), b.collections[collection]...)
}

func (b *memBackend) setFailWrites(fail bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failWrites = fail
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"statusCode": status, "message": msg})
}

func (b *memBackend) settings(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.site)
}

func (b *memBackend) updateSettings(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	rec, ok := b.decode(w, r)
	if !ok {
		return
	}
	b.site = rec
	writeJSON(w, http.StatusOK, rec)
}

func (b *memBackend) siteSettings() map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.site
}

func (b *memBackend) permissionsOf(roleID int64) []int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.assigned[strconv.FormatInt(roleID, 10)]
}

func (b *memBackend) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Username != "admin" || req.Password != "secret" {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"admin":   map[string]any{"id": 1, "username": "admin", "full_name": "Site Admin"},
	})
}

func (b *memBackend) assign(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PermissionIDs []int64 `json:"permissionIds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad body")
		return
	}
	b.mu.Lock()
	b.assigned[chi.URLParam(r, "id")] = body.PermissionIDs
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (b *memBackend) list(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, b.records(chi.URLParam(r, "collection")))
}

func (b *memBackend) find(collection, id string) (int, bool) {
	for i, rec := range b.collections[collection] {
		if strconv.FormatInt(rec["id"].(int64), 10) == id || rec["slug"] == id {
			return i, true
		}
	}
	return 0, false
}

func (b *memBackend) get(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i, ok := b.find(chi.URLParam(r, "collection"), chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	writeJSON(w, http.StatusOK, b.collections[chi.URLParam(r, "collection")][i])
}

func (b *memBackend) decode(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	if b.failWrites {
		writeError(w, http.StatusInternalServerError, "database unavailable")
		return nil, false
	}
	var rec map[string]any
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "bad body")
		return nil, false
	}
	return rec, true
}

func (b *memBackend) create(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	rec, ok := b.decode(w, r)
	if !ok {
		return
	}
	collection := chi.URLParam(r, "collection")
	b.nextID++
	rec["id"] = b.nextID
	rec["created_at"] = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	b.collections[collection] = append(b.collections[collection], rec)
	writeJSON(w, http.StatusCreated, rec)
}

func (b *memBackend) update(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	collection := chi.URLParam(r, "collection")
	i, found := b.find(collection, chi.URLParam(r, "id"))
	if !found {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	rec, ok := b.decode(w, r)
	if !ok {
		return
	}
	rec["id"] = b.collections[collection][i]["id"]
	b.collections[collection][i] = rec
	writeJSON(w, http.StatusOK, rec)
}

func (b *memBackend) remove(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	collection := chi.URLParam(r, "collection")
	i, ok := b.find(collection, chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	b.collections[collection] = append(b.collections[collection][:i], b.collections[collection][i+1:]...)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
