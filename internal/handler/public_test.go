// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublic_Article(t *testing.T) {
	app := newTestApp(t)
	app.backend.seed("news", map[string]any{
		"slug":     "river-festival",
		"title_en": "River festival opens",
		"title_bn": "নদী উৎসব শুরু",
	})

	resp, body := app.get("/news/river-festival")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<h1>নদী উৎসব শুরু</h1>")
	assert.Contains(t, body, "<title>নদী উৎসব শুরু | টেস্ট নিউজ</title>")
}

func TestPublic_ArticleNotFound(t *testing.T) {
	app := newTestApp(t)

	resp, body := app.get("/news/999")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "<p>"+NewsNotFound+"</p>")
}

func TestPublic_UnknownRoute(t *testing.T) {
	app := newTestApp(t)

	resp, body := app.get("/no/such/page")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "not found")
}

func TestPublic_GalleriesRenderWithoutContent(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/", "/photos", "/videos"} {
		t.Run(path, func(t *testing.T) {
			resp, _ := app.get(path)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}

func TestSEO_Robots(t *testing.T) {
	app := newTestApp(t)

	resp, body := app.get("/robots.txt")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/plain; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, body, "Disallow: /admin\n")
	assert.Contains(t, body, "Sitemap: "+app.server.URL+"/sitemap.xml")
}

func TestSEO_Sitemap(t *testing.T) {
	app := newTestApp(t)
	app.backend.seed("categories", map[string]any{"slug": "sports", "name_en": "Sports"})
	app.backend.seed("news", map[string]any{"slug": "river-festival", "title_en": "River festival"})

	resp, body := app.get("/sitemap.xml")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/xml; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, body, "<loc>"+app.server.URL+"/category/sports</loc>")
	assert.Contains(t, body, "<loc>"+app.server.URL+"/news/river-festival</loc>")
}
