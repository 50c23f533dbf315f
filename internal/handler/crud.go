// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/protidin-go/internal/admin"
	"github.com/olegiv/protidin-go/internal/i18n"
	"github.com/olegiv/protidin-go/internal/middleware"
	"github.com/olegiv/protidin-go/internal/model"
	"github.com/olegiv/protidin-go/internal/uikit"
)

// Backend is the REST surface of one collection driven by a CRUD screen.
type Backend[T model.Record[In], In any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, in In) (T, error)
	Update(ctx context.Context, id int64, in In) error
	Delete(ctx context.Context, id int64) error
}

// AfterSave runs once a record has been created or updated. created is
// false on update.
type AfterSave[In any] func(ctx context.Context, id int64, in In, created bool) error

// CRUD is the admin screen set of one resource: a list table with inline
// delete confirmation and a create/edit form.
type CRUD[T model.Record[In], In any] struct {
	*AdminHandler
	resource  *admin.Resource
	backend   Backend[T, In]
	afterSave AfterSave[In]
}

// ListView is the data behind an admin list table.
type ListView struct {
	Resource  *admin.Resource
	Rows      []admin.Row
	ConfirmID int64
}

// NewCRUD creates the screens of the schema resource called name.
func NewCRUD[T model.Record[In], In any](h *AdminHandler, name string, backend Backend[T, In]) *CRUD[T, In] {
	res, ok := h.schema.Resource(name)
	if !ok {
		panic("admin schema has no resource " + name)
	}
	return &CRUD[T, In]{AdminHandler: h, resource: res, backend: backend}
}

// OnSave sets a hook run after every successful create or update.
func (c *CRUD[T, In]) OnSave(fn AfterSave[In]) *CRUD[T, In] {
	c.afterSave = fn
	return c
}

// Routes mounts the screens on r, relative to the resource path.
func (c *CRUD[T, In]) Routes(r chi.Router) {
	r.Get("/", c.List)
	r.Post("/", c.Create)
	r.Get("/new", c.New)
	r.Get("/{id}", c.Edit)
	r.Post("/{id}", c.Update)
	r.Post("/{id}/delete", c.Delete)
}

func (c *CRUD[T, In]) path() string {
	return c.resource.Path()
}

func (c *CRUD[T, In]) title(lang string) string {
	return i18n.T(lang, c.resource.Title)
}

// List handles GET /admin/{resource}. ?confirm={id} opens the delete
// confirmation of that row.
func (c *CRUD[T, In]) List(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)

	records, err := c.backend.List(r.Context())
	if err != nil {
		c.logger.WarnContext(r.Context(), "backend fetch failed, using empty result", "what", c.resource.Name, "error", err)
	}

	rows, err := admin.Rows(c.resource, records, lang)
	if err != nil {
		logAndInternalError(w, r, "failed to build table", "resource", c.resource.Name, "error", err)
		return
	}

	view := ListView{Resource: c.resource, Rows: rows}
	if id, err := strconv.ParseInt(r.URL.Query().Get("confirm"), 10, 64); err == nil {
		view.ConfirmID = id
	}

	title := c.title(lang)
	crumbs := []uikit.Breadcrumb{{Label: title, URL: c.path(), Active: true}}
	renderPage(w, r, c.renderer, http.StatusOK, "admin/list", c.page(r, title, crumbs, view))
}

// New handles GET /admin/{resource}/new.
func (c *CRUD[T, In]) New(w http.ResponseWriter, r *http.Request) {
	c.renderForm(w, r, http.StatusOK, 0, c.resource.NewForm(), "")
}

// Create handles POST /admin/{resource}.
func (c *CRUD[T, In]) Create(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)

	in, form, ok := c.bind(r, true)
	if !ok {
		c.renderForm(w, r, http.StatusUnprocessableEntity, 0, form, "msg.failed")
		return
	}

	created, err := c.backend.Create(r.Context(), in)
	if err != nil {
		c.logger.ErrorContext(r.Context(), "failed to create record", "resource", c.resource.Name, "error", err)
		c.renderForm(w, r, http.StatusBadGateway, 0, form, "msg.failed")
		return
	}
	if !c.runAfterSave(r.Context(), created.GetID(), in, true) {
		flashError(w, r, c.renderer, c.path(), i18n.T(lang, "msg.failed"))
		return
	}

	c.logger.InfoContext(r.Context(), "record created", "resource", c.resource.Name, "id", created.GetID())
	flashSuccess(w, r, c.renderer, c.path(), i18n.T(lang, "msg.created"))
}

// Edit handles GET /admin/{resource}/{id}. The form is prefilled from a
// fresh list fetch.
func (c *CRUD[T, In]) Edit(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)

	id, ok := idParam(r)
	if !ok {
		flashError(w, r, c.renderer, c.path(), i18n.T(lang, "msg.not_found"))
		return
	}
	record, ok := c.find(r.Context(), id)
	if !ok {
		flashError(w, r, c.renderer, c.path(), i18n.T(lang, "msg.not_found"))
		return
	}

	form, err := c.resource.Prefill(record.Input())
	if err != nil {
		logAndInternalError(w, r, "failed to prefill form", "resource", c.resource.Name, "id", id, "error", err)
		return
	}
	c.renderForm(w, r, http.StatusOK, id, form, "")
}

// Update handles POST /admin/{resource}/{id}.
func (c *CRUD[T, In]) Update(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)

	id, ok := idParam(r)
	if !ok {
		flashError(w, r, c.renderer, c.path(), i18n.T(lang, "msg.not_found"))
		return
	}

	in, form, ok := c.bind(r, false)
	if !ok {
		c.renderForm(w, r, http.StatusUnprocessableEntity, id, form, "msg.failed")
		return
	}

	if err := c.backend.Update(r.Context(), id, in); err != nil {
		c.logger.ErrorContext(r.Context(), "failed to update record", "resource", c.resource.Name, "id", id, "error", err)
		c.renderForm(w, r, http.StatusBadGateway, id, form, "msg.failed")
		return
	}
	if !c.runAfterSave(r.Context(), id, in, false) {
		flashError(w, r, c.renderer, c.path(), i18n.T(lang, "msg.failed"))
		return
	}

	c.logger.InfoContext(r.Context(), "record updated", "resource", c.resource.Name, "id", id)
	flashSuccess(w, r, c.renderer, c.path(), i18n.T(lang, "msg.updated"))
}

// Delete handles POST /admin/{resource}/{id}/delete.
func (c *CRUD[T, In]) Delete(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)

	id, ok := idParam(r)
	if !ok {
		flashError(w, r, c.renderer, c.path(), i18n.T(lang, "msg.not_found"))
		return
	}

	if err := c.backend.Delete(r.Context(), id); err != nil {
		c.logger.ErrorContext(r.Context(), "failed to delete record", "resource", c.resource.Name, "id", id, "error", err)
		flashError(w, r, c.renderer, c.path(), i18n.T(lang, "msg.failed"))
		return
	}

	c.logger.InfoContext(r.Context(), "record deleted", "resource", c.resource.Name, "id", id)
	flashSuccess(w, r, c.renderer, c.path(), i18n.T(lang, "msg.deleted"))
}

// bind decodes the posted form into the typed write payload.
func (c *CRUD[T, In]) bind(r *http.Request, creating bool) (In, *admin.Form, bool) {
	var zero In
	if err := r.ParseForm(); err != nil {
		form := c.resource.NewForm()
		form.Errors[""] = admin.ErrInvalid
		return zero, form, false
	}

	form, doc := c.resource.Submitted(r.PostForm, creating)
	in, ok := admin.Bind[In](form, doc)
	return in, form, ok
}

func (c *CRUD[T, In]) find(ctx context.Context, id int64) (T, bool) {
	var zero T
	records, err := c.backend.List(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "backend fetch failed", "what", c.resource.Name, "error", err)
		return zero, false
	}
	for _, rec := range records {
		if rec.GetID() == id {
			return rec, true
		}
	}
	return zero, false
}

func (c *CRUD[T, In]) runAfterSave(ctx context.Context, id int64, in In, created bool) bool {
	if c.afterSave == nil {
		return true
	}
	if err := c.afterSave(ctx, id, in, created); err != nil {
		c.logger.ErrorContext(ctx, "post-save step failed", "resource", c.resource.Name, "id", id, "error", err)
		return false
	}
	return true
}

func (c *CRUD[T, In]) renderForm(w http.ResponseWriter, r *http.Request, status int, id int64, form *admin.Form, banner string) {
	lang := middleware.GetLanguage(r)
	opts, groups := c.loadOptions(r.Context(), lang, c.resource, id)

	view := FormView{
		Resource: c.resource,
		Form:     form,
		Sections: c.resource.Sections(),
		Options:  opts,
		Groups:   groups,
		Action:   c.path(),
		Submit:   "btn.save",
		Banner:   banner,
		Cancel:   c.path(),
	}
	action := i18n.T(lang, "btn.add_new")
	if id > 0 {
		view.Action = c.path() + "/" + strconv.FormatInt(id, 10)
		view.Editing = true
		action = i18n.T(lang, "btn.edit")
	}

	title := c.title(lang)
	crumbs := []uikit.Breadcrumb{
		{Label: title, URL: c.path()},
		{Label: action, URL: r.URL.Path, Active: true},
	}
	renderPage(w, r, c.renderer, status, "admin/form", c.page(r, action+": "+title, crumbs, view))
}
