// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/protidin-go/internal/i18n"
	"github.com/olegiv/protidin-go/internal/middleware"
	"github.com/olegiv/protidin-go/internal/render"
	"github.com/olegiv/protidin-go/internal/service"
)

// NewsNotFound is the body of the article page when the article is missing.
const NewsNotFound = "News not found"

// PublicHandler serves the public site.
type PublicHandler struct {
	renderer *render.Renderer
	content  *service.Content
}

// NewPublicHandler creates a PublicHandler.
func NewPublicHandler(d Deps) *PublicHandler {
	return &PublicHandler{renderer: d.Renderer, content: d.Content}
}

// Home handles GET /.
func (h *PublicHandler) Home(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	page := h.content.Home(r.Context())
	chrome := service.BuildChrome(page.Frame, lang)

	renderPage(w, r, h.renderer, http.StatusOK, "public/home", pageData(r, chrome.SiteName, chrome, page))
}

// Category handles GET /category/{slug}. An unknown slug renders the page
// without a title and with the empty state.
func (h *PublicHandler) Category(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	page := h.content.Category(r.Context(), chi.URLParam(r, "slug"))
	chrome := service.BuildChrome(page.Frame, lang)

	title := chrome.SiteName
	if page.Category != nil {
		title = chrome.PageTitle(page.Category.Name(lang))
	}
	renderPage(w, r, h.renderer, http.StatusOK, "public/category", pageData(r, title, chrome, page))
}

// Article handles GET /news/{id}, where id may also be a slug.
func (h *PublicHandler) Article(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	page := h.content.Article(r.Context(), chi.URLParam(r, "id"))
	chrome := service.BuildChrome(page.Frame, lang)

	if page.Article == nil {
		renderPage(w, r, h.renderer, http.StatusNotFound, "public/article", pageData(r, chrome.PageTitle(NewsNotFound), chrome, page))
		return
	}
	title := chrome.PageTitle(page.Article.Title(lang))
	renderPage(w, r, h.renderer, http.StatusOK, "public/article", pageData(r, title, chrome, page))
}

// Photos handles GET /photos.
func (h *PublicHandler) Photos(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	page := h.content.Photos(r.Context())
	chrome := service.BuildChrome(page.Frame, lang)

	title := chrome.PageTitle(i18n.T(lang, "home.photo_gallery"))
	renderPage(w, r, h.renderer, http.StatusOK, "public/photos", pageData(r, title, chrome, page))
}

// Videos handles GET /videos.
func (h *PublicHandler) Videos(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	page := h.content.Videos(r.Context())
	chrome := service.BuildChrome(page.Frame, lang)

	title := chrome.PageTitle(i18n.T(lang, "home.video_gallery"))
	renderPage(w, r, h.renderer, http.StatusOK, "public/videos", pageData(r, title, chrome, page))
}

// NotFound renders the public 404 page.
func (h *PublicHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	lang := middleware.GetLanguage(r)
	frame := h.content.Frame(r.Context())
	chrome := service.BuildChrome(frame, lang)

	title := chrome.PageTitle(i18n.T(lang, "error.not_found"))
	renderPage(w, r, h.renderer, http.StatusNotFound, "public/404", pageData(r, title, chrome, frame))
}
