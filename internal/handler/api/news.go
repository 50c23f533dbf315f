// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/mileusna/useragent"

	"github.com/olegiv/protidin-go/internal/model"
	"github.com/olegiv/protidin-go/internal/store"
)

// newsLimit caps the home page sections.
const newsLimit = 20

func (h *Handler) newsRoutes(r chi.Router) {
	c := &collection[model.Article, model.ArticleInput]{
		h:      h,
		entity: "news",
		list: func(ctx context.Context, _ url.Values) ([]model.Article, error) {
			return h.store.ListNews(ctx, store.NewsFilter{})
		},
		create: h.store.CreateNews,
		update: h.store.UpdateNews,
		remove: h.store.DeleteNews,
	}
	c.routes(r)

	r.Get("/breaking", h.listNews(store.NewsFilter{Breaking: true, Limit: newsLimit}))
	r.Get("/featured", h.listNews(store.NewsFilter{Featured: true, Limit: newsLimit}))
	r.Get("/trending", h.listNews(store.NewsFilter{Trending: true, Limit: newsLimit}))
	r.Get("/category/{id}", h.NewsByCategory)
	r.Get("/{id}", h.GetNews)
}

func (h *Handler) listNews(f store.NewsFilter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		news, err := h.store.ListNews(r.Context(), f)
		if err != nil {
			h.writeStoreError(w, r, "news", err)
			return
		}
		WriteJSON(w, http.StatusOK, news)
	}
}

// NewsByCategory handles GET /news/category/{id}.
func (h *Handler) NewsByCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "category")
	if !ok {
		return
	}
	h.listNews(store.NewsFilter{CategoryID: id})(w, r)
}

// GetNews handles GET /news/{id}, where id may also be a slug. Each
// non-bot read counts as a view.
func (h *Handler) GetNews(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	article, err := h.store.GetNews(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.writeStoreError(w, r, "news", err)
		return
	}

	if ua := useragent.Parse(r.UserAgent()); !ua.Bot {
		if err := h.store.IncrementViews(ctx, article.ID); err != nil {
			h.logger.WarnContext(ctx, "failed to count view", "news_id", article.ID, "error", err)
		} else {
			article.Views++
		}
	}
	WriteJSON(w, http.StatusOK, article)
}
