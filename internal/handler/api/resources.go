// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/protidin-go/internal/model"
	"github.com/olegiv/protidin-go/internal/store"
)

func (h *Handler) categoryRoutes(r chi.Router) {
	r.Get("/slug/{slug}", h.CategoryBySlug)
	(&collection[model.Category, model.CategoryInput]{
		h:      h,
		entity: "category",
		list: func(ctx context.Context, _ url.Values) ([]model.Category, error) {
			return h.store.ListCategories(ctx)
		},
		get:    h.store.GetCategory,
		create: h.store.CreateCategory,
		update: h.store.UpdateCategory,
		remove: h.store.DeleteCategory,
	}).routes(r)
}

// CategoryBySlug handles GET /categories/slug/{slug}.
func (h *Handler) CategoryBySlug(w http.ResponseWriter, r *http.Request) {
	cat, err := h.store.GetCategoryBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.writeStoreError(w, r, "category", err)
		return
	}
	WriteJSON(w, http.StatusOK, cat)
}

func (h *Handler) photoRoutes(r chi.Router) {
	(&collection[model.Photo, model.PhotoInput]{
		h:      h,
		entity: "photo",
		list: func(ctx context.Context, _ url.Values) ([]model.Photo, error) {
			return h.store.ListPhotos(ctx)
		},
		get:    h.store.GetPhoto,
		create: h.store.CreatePhoto,
		update: h.store.UpdatePhoto,
		remove: h.store.DeletePhoto,
	}).routes(r)
}

func (h *Handler) videoRoutes(r chi.Router) {
	(&collection[model.Video, model.VideoInput]{
		h:      h,
		entity: "video",
		list: func(ctx context.Context, _ url.Values) ([]model.Video, error) {
			return h.store.ListVideos(ctx)
		},
		get:    h.store.GetVideo,
		create: h.store.CreateVideo,
		update: h.store.UpdateVideo,
		remove: h.store.DeleteVideo,
	}).routes(r)
}

// adRoutes serves /ads. ?position= selects the active ads of one position.
func (h *Handler) adRoutes(r chi.Router) {
	(&collection[model.Ad, model.AdInput]{
		h:      h,
		entity: "ad",
		list: func(ctx context.Context, q url.Values) ([]model.Ad, error) {
			return h.store.ListAds(ctx, q.Get("position"))
		},
		get:    h.store.GetAd,
		create: h.store.CreateAd,
		update: h.store.UpdateAd,
		remove: h.store.DeleteAd,
	}).routes(r)
}

// menuRoutes serves /menus. ?location= selects the items of one location
// together with those shown in both.
func (h *Handler) menuRoutes(r chi.Router) {
	(&collection[model.MenuItem, model.MenuItemInput]{
		h:      h,
		entity: "menu item",
		list: func(ctx context.Context, q url.Values) ([]model.MenuItem, error) {
			return h.store.ListMenus(ctx, q.Get("location"))
		},
		get:    h.store.GetMenuItem,
		create: h.store.CreateMenuItem,
		update: h.store.UpdateMenuItem,
		remove: h.store.DeleteMenuItem,
	}).routes(r)
}

func (h *Handler) districtRoutes(r chi.Router) {
	r.Get("/active", func(w http.ResponseWriter, r *http.Request) {
		districts, err := h.store.ListDistricts(r.Context(), true)
		if err != nil {
			h.writeStoreError(w, r, "district", err)
			return
		}
		WriteJSON(w, http.StatusOK, districts)
	})
	(&collection[model.District, model.DistrictInput]{
		h:      h,
		entity: "district",
		list: func(ctx context.Context, _ url.Values) ([]model.District, error) {
			return h.store.ListDistricts(ctx, false)
		},
		get:    h.store.GetDistrict,
		create: h.store.CreateDistrict,
		update: h.store.UpdateDistrict,
		remove: h.store.DeleteDistrict,
	}).routes(r)
}

// roleRoutes serves /roles. Permission ids in a role payload are ignored;
// they are assigned with POST /roles/{id}/permissions.
func (h *Handler) roleRoutes(r chi.Router) {
	(&collection[model.Role, model.RoleInput]{
		h:      h,
		entity: "role",
		list: func(ctx context.Context, _ url.Values) ([]model.Role, error) {
			return h.store.ListRoles(ctx)
		},
		get:    h.store.GetRole,
		create: h.store.CreateRole,
		update: h.store.UpdateRole,
		remove: h.store.DeleteRole,
	}).routes(r)
	r.Post("/{id}/permissions", h.AssignPermissions)
}

// AssignPermissions handles POST /roles/{id}/permissions.
func (h *Handler) AssignPermissions(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "role")
	if !ok {
		return
	}
	in, ok := decodeInput[model.PermissionAssignment](w, r)
	if !ok {
		return
	}
	if err := h.store.SetRolePermissions(r.Context(), id, in.PermissionIDs); err != nil {
		h.writeStoreError(w, r, "role", err)
		return
	}
	role, err := h.store.GetRole(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, r, "role", err)
		return
	}
	WriteJSON(w, http.StatusOK, role)
}

// ListPermissions handles GET /permissions.
func (h *Handler) ListPermissions(w http.ResponseWriter, r *http.Request) {
	perms, err := h.store.ListPermissions(r.Context())
	if err != nil {
		h.writeStoreError(w, r, "permission", err)
		return
	}
	WriteJSON(w, http.StatusOK, perms)
}

func (h *Handler) userRoutes(r chi.Router) {
	(&collection[model.User, model.UserInput]{
		h:      h,
		entity: "user",
		list: func(ctx context.Context, _ url.Values) ([]model.User, error) {
			return h.store.ListUsers(ctx)
		},
		get:    h.store.GetUser,
		create: h.store.CreateUser,
		update: h.store.UpdateUser,
		remove: h.store.DeleteUser,
	}).routes(r)
}

// GetSettings handles GET /settings. Defaults are returned until the
// settings are first saved.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.store.GetSettings(r.Context())
	if errors.Is(err, store.ErrNotFound) {
		settings = model.Settings{SiteNameEn: model.DefaultSiteNameEn, SiteNameBn: model.DefaultSiteNameBn}
	} else if err != nil {
		h.writeStoreError(w, r, "settings", err)
		return
	}
	WriteJSON(w, http.StatusOK, settings)
}

// UpdateSettings handles PUT /settings.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeInput[model.SettingsInput](w, r)
	if !ok {
		return
	}
	if err := h.store.UpdateSettings(r.Context(), in); err != nil {
		h.writeStoreError(w, r, "settings", err)
		return
	}
	h.logger.InfoContext(r.Context(), "settings updated")
	WriteJSON(w, http.StatusOK, model.Settings(in))
}
