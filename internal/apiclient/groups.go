// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/olegiv/protidin-go/internal/model"
)

// NewsAPI groups article endpoints.
type NewsAPI struct {
	*Resource[model.Article, model.ArticleInput]
}

// Breaking returns the backend's breaking-news selection.
func (a *NewsAPI) Breaking(ctx context.Context) ([]model.Article, error) {
	return listAt[model.Article](ctx, a.c, "/news/breaking", nil)
}

// Featured returns the backend's featured selection.
func (a *NewsAPI) Featured(ctx context.Context) ([]model.Article, error) {
	return listAt[model.Article](ctx, a.c, "/news/featured", nil)
}

// Trending returns the backend's trending selection.
func (a *NewsAPI) Trending(ctx context.Context) ([]model.Article, error) {
	return listAt[model.Article](ctx, a.c, "/news/trending", nil)
}

// ByCategory returns the articles of one category.
func (a *NewsAPI) ByCategory(ctx context.Context, categoryID int64) ([]model.Article, error) {
	return listAt[model.Article](ctx, a.c, "/news/category/"+strconv.FormatInt(categoryID, 10), nil)
}

// CategoryAPI groups category endpoints.
type CategoryAPI struct {
	*Resource[model.Category, model.CategoryInput]
}

// BySlug returns the category with the given slug.
func (a *CategoryAPI) BySlug(ctx context.Context, slug string) (model.Category, error) {
	return oneAt[model.Category](ctx, a.c, "/categories/slug/"+url.PathEscape(slug), nil)
}

// AdAPI groups ad endpoints.
type AdAPI struct {
	*Resource[model.Ad, model.AdInput]
}

// ByPosition returns the active ads placed at position.
func (a *AdAPI) ByPosition(ctx context.Context, position string) ([]model.Ad, error) {
	return listAt[model.Ad](ctx, a.c, "/ads", url.Values{"position": {position}})
}

// MenuAPI groups navigation menu endpoints.
type MenuAPI struct {
	*Resource[model.MenuItem, model.MenuItemInput]
}

// ByLocation returns the menu items shown at location.
func (a *MenuAPI) ByLocation(ctx context.Context, location string) ([]model.MenuItem, error) {
	return listAt[model.MenuItem](ctx, a.c, "/menus", url.Values{"location": {location}})
}

// DistrictAPI groups district endpoints.
type DistrictAPI struct {
	*Resource[model.District, model.DistrictInput]
}

// Active returns only active districts.
func (a *DistrictAPI) Active(ctx context.Context) ([]model.District, error) {
	return listAt[model.District](ctx, a.c, "/districts/active", nil)
}

// RoleAPI groups role endpoints.
type RoleAPI struct {
	*Resource[model.Role, model.RoleInput]
}

// SetPermissions associates permissions with a role.
func (a *RoleAPI) SetPermissions(ctx context.Context, roleID int64, permissionIDs []int64) error {
	path := "/roles/" + strconv.FormatInt(roleID, 10) + "/permissions"
	_, err := a.c.mutate(ctx, http.MethodPost, path, model.PermissionAssignment{PermissionIDs: permissionIDs}, a.invalidates()...)
	return err
}

// PermissionAPI lists permissions.
type PermissionAPI struct {
	c *Client
}

// List returns every permission.
func (a *PermissionAPI) List(ctx context.Context) ([]model.Permission, error) {
	return listAt[model.Permission](ctx, a.c, "/permissions", nil)
}

// SettingsAPI reads and updates the site settings singleton.
type SettingsAPI struct {
	c *Client
}

// Get returns the site settings.
func (a *SettingsAPI) Get(ctx context.Context) (model.Settings, error) {
	return oneAt[model.Settings](ctx, a.c, "/settings", nil)
}

// Update replaces the site settings.
func (a *SettingsAPI) Update(ctx context.Context, in model.SettingsInput) error {
	_, err := a.c.mutate(ctx, http.MethodPut, "/settings", in, "settings")
	return err
}

// AdminAPI covers admin authentication.
type AdminAPI struct {
	c *Client
}

// Login checks credentials. A rejected login is returned as a response with
// Success false and the backend message, not as an error.
func (a *AdminAPI) Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error) {
	data, err := a.c.do(ctx, http.MethodPost, "/admin/login", nil, req)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
			return model.LoginResponse{Success: false, Message: apiErr.Message}, nil
		}
		return model.LoginResponse{}, err
	}

	var resp model.LoginResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return model.LoginResponse{}, fmt.Errorf("decoding POST /admin/login: %w", err)
	}
	if resp.Success {
		if resp.Admin == nil {
			return model.LoginResponse{}, fmt.Errorf("POST /admin/login: success without admin profile")
		}
		if err := model.Validate(*resp.Admin); err != nil {
			return model.LoginResponse{}, fmt.Errorf("POST /admin/login: %w", err)
		}
	}
	return resp, nil
}

// Register creates an admin account.
func (a *AdminAPI) Register(ctx context.Context, req model.RegisterRequest) (model.AdminProfile, error) {
	data, err := a.c.mutate(ctx, http.MethodPost, "/admin/register", req, "users")
	if err != nil {
		return model.AdminProfile{}, err
	}
	return decodeOne[model.AdminProfile](data, http.MethodPost, "/admin/register")
}
