// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package render_test

import (
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/protidin-go/internal/i18n"
	"github.com/olegiv/protidin-go/internal/model"
	"github.com/olegiv/protidin-go/internal/render"
	"github.com/olegiv/protidin-go/internal/service"
	"github.com/olegiv/protidin-go/internal/uikit"
	"github.com/olegiv/protidin-go/web"
)

func embeddedRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	require.NoError(t, i18n.Init(nil))
	templatesFS, err := fs.Sub(web.Templates, "templates")
	require.NoError(t, err)
	r, err := render.New(render.Config{TemplatesFS: templatesFS})
	require.NoError(t, err)
	return r
}

func TestEmbeddedTemplates_Parse(t *testing.T) {
	r := embeddedRenderer(t)

	for _, name := range []string{
		"public/home", "public/category", "public/article", "public/photos", "public/videos", "public/404",
		"admin/dashboard", "admin/list", "admin/form",
		"auth/login",
	} {
		assert.True(t, r.Has(name), name)
	}
}

func TestEmbeddedTemplates_PublicPages(t *testing.T) {
	r := embeddedRenderer(t)
	chrome := uikit.Chrome{SiteName: "Satkhira Daily", ThemeColor: "#dc2626"}
	article := model.Article{
		ID:        7,
		Slug:      "river-festival",
		TitleEn:   "River festival",
		TitleBn:   "নদী উৎসব",
		ContentEn: "<p>Boats <script>x()</script></p>",
		Category:  &model.CategoryRef{ID: 1, NameEn: "Local", Slug: "local"},
		Views:     12,
		CreatedAt: time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name  string
		data  any
		want  []string
		deny  []string
		match string
	}{
		{
			name: "public/home",
			data: service.HomePage{
				Frame:    service.Frame{Categories: []model.Category{{ID: 1, NameEn: "Local", Slug: "local"}}},
				Breaking: []model.Article{article},
				Trending: []model.Article{article},
				News:     service.HomeGrid{Lead: &article},
				Cards:    service.CategoryCardsOf([]model.Category{{ID: 1, NameEn: "Local", Slug: "local"}}),
				Ads:      map[string][]model.Ad{model.AdSidebar: {{ID: 3, Title: "Shop", ImageURL: "/a.png"}}},
			},
			want:  []string{"River festival", "/news/river-festival", "/category/local", "ad-sidebar", "12 views"},
			match: `(?s)<aside class="home-sidebar">.*data-clock.*class="category-list">\s*<li><a href="/category/local">Local</a></li>`,
		},
		{
			name: "public/home",
			data: service.HomePage{},
			want: []string{"No news found"},
		},
		{
			name: "public/article",
			data: service.ArticlePage{Article: &article},
			want: []string{"<h1>River festival</h1>", "<p>Boats </p>", "October 19, 2026"},
			deny: []string{"<script>"},
		},
		{
			name:  "public/article",
			data:  service.ArticlePage{},
			want:  []string{"News not found"},
			match: `<div class="not-found">\s*<p>News not found</p>\s*</div>`,
		},
		{
			name: "public/category",
			data: service.CategoryPage{Category: &model.Category{NameEn: "Local"}},
			want: []string{"Local", "No news found"},
		},
		{
			name: "public/photos",
			data: service.PhotosPage{Photos: []model.Photo{{ID: 1, TitleEn: "Sunset", ImageURL: "/s.jpg"}}},
			want: []string{"Sunset", "/s.jpg"},
		},
		{
			name: "public/videos",
			data: service.VideosPage{},
			want: []string{"No data found"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			err := r.Render(rec, req, tt.name, render.TemplateData{Lang: model.LangEnglish, Title: "T", Chrome: chrome, Data: tt.data})
			require.NoError(t, err)

			body := rec.Body.String()
			for _, s := range tt.want {
				assert.Contains(t, body, s)
			}
			for _, s := range tt.deny {
				assert.NotContains(t, body, s)
			}
			if tt.match != "" {
				assert.Regexp(t, tt.match, body)
			}
			assert.Contains(t, body, "--theme: #dc2626")
		})
	}
}

func TestEmbeddedTemplates_LoginBengali(t *testing.T) {
	r := embeddedRenderer(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	data := render.TemplateData{Lang: model.LangBengali, Data: map[string]string{"Username": "admin", "Error": "Invalid username or password"}}
	require.NoError(t, r.Render(rec, req, "auth/login", data))

	body := rec.Body.String()
	assert.Contains(t, body, `value="admin"`)
	assert.Contains(t, body, "Invalid username or password")
	assert.Contains(t, body, `lang="bn"`)
}
