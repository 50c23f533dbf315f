// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/olegiv/protidin-go/internal/apiclient"
	"github.com/olegiv/protidin-go/internal/model"
	"github.com/olegiv/protidin-go/internal/seo"
)

// SEOHandler serves robots.txt and sitemap.xml.
type SEOHandler struct {
	api     *apiclient.Client
	siteURL string
	logger  *slog.Logger
}

// NewSEOHandler creates an SEOHandler. An empty siteURL is derived from
// each request.
func NewSEOHandler(d Deps, siteURL string) *SEOHandler {
	return &SEOHandler{api: d.API, siteURL: siteURL, logger: d.Logger}
}

func (h *SEOHandler) baseURL(r *http.Request) string {
	if h.siteURL != "" {
		return h.siteURL
	}
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

// Robots handles GET /robots.txt.
func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write([]byte(seo.GenerateRobots(seo.RobotsConfig{SiteURL: h.baseURL(r)})))
}

// Sitemap handles GET /sitemap.xml. A failed fetch leaves its section out.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var (
		g          errgroup.Group
		categories []model.Category
		news       []model.Article
	)
	g.Go(func() error {
		var err error
		if categories, err = h.api.Categories.List(ctx); err != nil {
			h.logger.WarnContext(ctx, "backend fetch failed, using empty result", "what", "categories", "error", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if news, err = h.api.News.List(ctx); err != nil {
			h.logger.WarnContext(ctx, "backend fetch failed, using empty result", "what", "news", "error", err)
		}
		return nil
	})
	_ = g.Wait()

	out, err := seo.GenerateSitemap(h.baseURL(r), categories, news)
	if err != nil {
		logAndInternalError(w, r, "failed to build sitemap", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(out)
}
