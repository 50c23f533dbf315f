// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/protidin-go/internal/model"
)

func TestParseFooterLinks(t *testing.T) {
	defaults := DefaultFooterLinks()

	tests := []struct {
		name string
		raw  string
		want FooterLinks
	}{
		{name: "empty", raw: "", want: defaults},
		{name: "invalid json", raw: "{quickLinks:", want: defaults},
		{name: "unrelated keys", raw: `{"other": 1}`, want: defaults},
		{
			name: "override",
			raw:  `{"quickLinks":[{"label_en":"Archive","label_bn":"আর্কাইভ","url":"/archive"}]}`,
			want: FooterLinks{QuickLinks: []QuickLink{{LabelEn: "Archive", LabelBn: "আর্কাইভ", URL: "/archive"}}},
		},
		{name: "explicitly empty", raw: `{"quickLinks":[]}`, want: FooterLinks{QuickLinks: []QuickLink{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFooterLinks(tt.raw))
		})
	}
}

func TestBuildChrome_Fallbacks(t *testing.T) {
	c := BuildChrome(Frame{}, model.LangBengali)

	assert.Equal(t, model.DefaultSiteNameBn, c.SiteName)
	assert.Equal(t, "সাতক্ষীরা এবং এর আশেপাশের খবর এবং তথ্যের জন্য আপনার বিশ্বস্ত উৎস।", c.About)
	assert.Empty(t, c.Social)
	assert.Empty(t, c.FooterCategories)
	require.Len(t, c.QuickLinks, 4)
	assert.Equal(t, "/about", c.QuickLinks[0].URL)

	labels := make([]string, 0, len(c.HeaderNav))
	for _, l := range c.HeaderNav {
		labels = append(labels, l.URL)
	}
	assert.Equal(t, []string{"/", "/photos", "/videos"}, labels)
}

func TestBuildChrome_FromSettings(t *testing.T) {
	hidden := false
	f := Frame{
		HasSettings: true,
		Settings: model.Settings{
			SiteNameEn:    "Satkhira Daily",
			DescriptionEn: "Local news",
			FacebookURL:   "https://facebook.com/x",
			YoutubeURL:    "https://youtube.com/x",
			FooterLinks:   `{"quickLinks":[{"label_en":"Ads","label_bn":"বিজ্ঞাপন","url":"https://ads.example.com"}]}`,
		},
		Categories: []model.Category{
			{ID: 1, NameEn: "Sports", Slug: "sports"},
			{ID: 2, NameEn: "Hidden", Slug: "hidden", ShowInMenu: &hidden},
			{ID: 3, NameEn: "A", Slug: "a"},
			{ID: 4, NameEn: "B", Slug: "b"},
			{ID: 5, NameEn: "C", Slug: "c"},
			{ID: 6, NameEn: "D", Slug: "d"},
			{ID: 7, NameEn: "E", Slug: "e"},
		},
	}

	c := BuildChrome(f, model.LangEnglish)

	assert.Equal(t, "Satkhira Daily", c.SiteName)
	assert.Equal(t, "Local news", c.About, "description is the second fallback")
	assert.Len(t, c.FooterCategories, FooterCategoryLimit)
	require.Len(t, c.QuickLinks, 1)
	assert.True(t, c.QuickLinks[0].External)

	require.Len(t, c.Social, 2)
	assert.Equal(t, "_blank", c.Social[0].Target())
	assert.Equal(t, "https://youtube.com/x", c.Social[1].URL)

	var navURLs []string
	for _, l := range c.HeaderNav {
		navURLs = append(navURLs, l.URL)
	}
	assert.Contains(t, navURLs, "/category/sports")
	assert.NotContains(t, navURLs, "/category/hidden")
}

func TestBuildChrome_HeaderMenus(t *testing.T) {
	f := Frame{
		Categories: []model.Category{{ID: 1, NameEn: "Sports", Slug: "sports"}},
		HeaderMenus: []model.MenuItem{
			{ID: 1, TitleEn: "Home", TitleBn: "প্রচ্ছদ", URL: "/", Location: model.MenuHeader, IsActive: true},
			{ID: 2, TitleEn: "Draft", URL: "/draft", Location: model.MenuHeader},
			{ID: 3, TitleEn: "Partner", URL: "https://partner.example.com", Location: model.MenuBoth, IsActive: true, OpenNewTab: true},
		},
	}

	nav := BuildChrome(f, model.LangBengali).HeaderNav

	require.Len(t, nav, 2)
	assert.Equal(t, "প্রচ্ছদ", nav[0].Label)
	assert.Equal(t, "", nav[0].Target())
	assert.True(t, nav[1].External)
	assert.Equal(t, "_blank", nav[1].Target())
}
