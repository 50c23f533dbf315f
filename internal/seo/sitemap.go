// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package seo builds the portal's robots.txt and sitemap.xml.
package seo

import (
	"encoding/xml"
	"strings"
	"time"

	"github.com/olegiv/protidin-go/internal/model"
)

// XMLNamespace is the sitemap XML namespace.
const XMLNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq represents the change frequency of a URL.
type ChangeFreq string

// Change frequencies used by the portal.
const (
	ChangeFreqHourly ChangeFreq = "hourly"
	ChangeFreqDaily  ChangeFreq = "daily"
	ChangeFreqWeekly ChangeFreq = "weekly"
)

// SitemapURL represents a single URL entry in the sitemap.
type SitemapURL struct {
	Loc        string     `xml:"loc"`
	LastMod    string     `xml:"lastmod,omitempty"`
	ChangeFreq ChangeFreq `xml:"changefreq,omitempty"`
	Priority   string     `xml:"priority,omitempty"`
}

// Sitemap represents the complete sitemap document.
type Sitemap struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapBuilder collects portal URLs.
type SitemapBuilder struct {
	siteURL string
	urls    []SitemapURL
}

// NewSitemapBuilder creates a builder for the site at siteURL.
func NewSitemapBuilder(siteURL string) *SitemapBuilder {
	return &SitemapBuilder{siteURL: strings.TrimSuffix(siteURL, "/")}
}

func (b *SitemapBuilder) add(path string, freq ChangeFreq, priority string, lastMod time.Time) {
	u := SitemapURL{Loc: b.siteURL + path, ChangeFreq: freq, Priority: priority}
	if !lastMod.IsZero() {
		u.LastMod = lastMod.UTC().Format(time.RFC3339)
	}
	b.urls = append(b.urls, u)
}

// AddHomepage adds the home page and the two gallery pages.
func (b *SitemapBuilder) AddHomepage() {
	b.add("/", ChangeFreqHourly, "1.0", time.Time{})
	b.add("/photos", ChangeFreqDaily, "0.5", time.Time{})
	b.add("/videos", ChangeFreqDaily, "0.5", time.Time{})
}

// AddCategories adds one archive page per category.
func (b *SitemapBuilder) AddCategories(categories []model.Category) {
	for _, c := range categories {
		if c.Slug == "" {
			continue
		}
		b.add(c.Link(), ChangeFreqDaily, "0.7", time.Time{})
	}
}

// AddNews adds one detail page per article, addressed by slug when it has one.
func (b *SitemapBuilder) AddNews(news []model.Article) {
	for _, a := range news {
		lastMod := a.UpdatedAt
		if lastMod.IsZero() {
			lastMod = a.CreatedAt
		}
		b.add(a.Link(), ChangeFreqWeekly, "0.8", lastMod)
	}
}

// Len returns the number of collected URLs.
func (b *SitemapBuilder) Len() int {
	return len(b.urls)
}

// Build generates the sitemap XML.
func (b *SitemapBuilder) Build() ([]byte, error) {
	sitemap := Sitemap{
		XMLNS: XMLNamespace,
		URLs:  b.urls,
	}

	output := []byte(xml.Header)
	xmlBytes, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return nil, err
	}

	return append(output, xmlBytes...), nil
}

// GenerateSitemap builds the sitemap of the home page, categories and news.
func GenerateSitemap(siteURL string, categories []model.Category, news []model.Article) ([]byte, error) {
	builder := NewSitemapBuilder(siteURL)
	builder.AddHomepage()
	builder.AddCategories(categories)
	builder.AddNews(news)
	return builder.Build()
}
