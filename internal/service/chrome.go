// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"encoding/json"
	"strings"

	"github.com/olegiv/protidin-go/internal/i18n"
	"github.com/olegiv/protidin-go/internal/model"
	"github.com/olegiv/protidin-go/internal/uikit"
)

// FooterCategoryLimit is the number of categories listed in the footer.
const FooterCategoryLimit = 6

// QuickLink is one footer quick link as stored in settings.footer_links.
type QuickLink struct {
	LabelEn string `json:"label_en"`
	LabelBn string `json:"label_bn"`
	URL     string `json:"url"`
}

// FooterLinks is the document stored in settings.footer_links.
type FooterLinks struct {
	QuickLinks []QuickLink `json:"quickLinks"`
}

// DefaultFooterLinks returns the quick links used when settings carry none.
func DefaultFooterLinks() FooterLinks {
	return FooterLinks{QuickLinks: []QuickLink{
		{LabelEn: "About Us", LabelBn: "আমাদের সম্পর্কে", URL: "/about"},
		{LabelEn: "Contact", LabelBn: "যোগাযোগ", URL: "/contact"},
		{LabelEn: "Privacy Policy", LabelBn: "গোপনীয়তা নীতি", URL: "/privacy"},
		{LabelEn: "Terms & Conditions", LabelBn: "শর্তাবলী", URL: "/terms"},
	}}
}

// ParseFooterLinks overlays the keys present in raw onto the defaults.
// Invalid JSON yields the defaults.
func ParseFooterLinks(raw string) FooterLinks {
	links := DefaultFooterLinks()
	if strings.TrimSpace(raw) == "" {
		return links
	}
	var parsed struct {
		QuickLinks *[]QuickLink `json:"quickLinks"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return links
	}
	if parsed.QuickLinks != nil {
		links.QuickLinks = *parsed.QuickLinks
	}
	return links
}

// BuildChrome resolves the header and footer for lang.
func BuildChrome(f Frame, lang string) uikit.Chrome {
	s := f.Settings
	c := uikit.Chrome{
		SiteName:    s.SiteName(lang),
		Description: s.Description(lang),
		LogoURL:     s.LogoURL,
		FaviconURL:  s.FaviconURL,
		ThemeColor:  s.ThemeColor,
		Address:     s.Address(lang),
		Phone:       s.ContactPhone,
		Email:       s.ContactEmail,
		About:       footerAbout(s, lang),
		HeaderNav:   headerNav(f, lang),
	}

	for _, l := range ParseFooterLinks(s.FooterLinks).QuickLinks {
		c.QuickLinks = append(c.QuickLinks, uikit.NavLink{
			Label:    model.Localize(lang, l.LabelEn, l.LabelBn),
			URL:      l.URL,
			External: isExternal(l.URL),
		})
	}
	for _, cat := range capped(f.Categories, FooterCategoryLimit) {
		c.FooterCategories = append(c.FooterCategories, uikit.NavLink{Label: cat.Name(lang), URL: cat.Link()})
	}

	social := []struct{ key, url, icon string }{
		{"social.facebook", s.FacebookURL, "📘"},
		{"social.twitter", s.TwitterURL, "🐦"},
		{"social.youtube", s.YoutubeURL, "📺"},
		{"social.instagram", s.InstagramURL, "📷"},
	}
	for _, sl := range social {
		if sl.url == "" {
			continue
		}
		c.Social = append(c.Social, uikit.NavLink{
			Label:    i18n.T(lang, sl.key),
			URL:      sl.url,
			Icon:     sl.icon,
			NewTab:   true,
			External: true,
		})
	}
	return c
}

// headerNav returns the active header menu, or Home, the categories shown
// in the menu, Photos and Videos when no menu is configured.
func headerNav(f Frame, lang string) []uikit.NavLink {
	var nav []uikit.NavLink
	for _, m := range f.HeaderMenus {
		if !m.IsActive {
			continue
		}
		nav = append(nav, uikit.NavLink{
			Label:    m.Title(lang),
			URL:      m.URL,
			Icon:     m.Icon,
			NewTab:   m.OpenNewTab,
			External: isExternal(m.URL),
		})
	}
	if len(nav) > 0 {
		return nav
	}

	nav = append(nav, uikit.NavLink{Label: i18n.T(lang, "nav.home"), URL: "/"})
	for _, cat := range f.Categories {
		if cat.InMenu() {
			nav = append(nav, uikit.NavLink{Label: cat.Name(lang), URL: cat.Link()})
		}
	}
	return append(nav,
		uikit.NavLink{Label: i18n.T(lang, "nav.photos"), URL: "/photos"},
		uikit.NavLink{Label: i18n.T(lang, "nav.videos"), URL: "/videos"},
	)
}

// footerAbout falls back from the footer text to the site description,
// then to a fixed sentence.
func footerAbout(s model.Settings, lang string) string {
	if about := model.Localize(lang, s.FooterAboutEn, s.FooterAboutBn); about != "" {
		return about
	}
	if desc := s.Description(lang); desc != "" {
		return desc
	}
	return i18n.T(lang, "footer.about_default")
}

func isExternal(u string) bool {
	return strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://")
}
