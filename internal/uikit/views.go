// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package uikit

// Breadcrumb represents a single breadcrumb item.
type Breadcrumb struct {
	Label  string
	URL    string
	Active bool
}

// NavLink is a resolved navigation entry in the header or footer.
type NavLink struct {
	Label    string
	URL      string
	Icon     string
	NewTab   bool
	External bool
}

// Target returns the anchor target attribute value.
func (l NavLink) Target() string {
	if l.NewTab {
		return "_blank"
	}
	return ""
}

// Chrome is the header and footer shared by every public page.
type Chrome struct {
	SiteName    string
	Description string
	LogoURL     string
	FaviconURL  string
	ThemeColor  string

	HeaderNav []NavLink

	About            string
	Address          string
	Phone            string
	Email            string
	QuickLinks       []NavLink
	FooterCategories []NavLink
	Social           []NavLink
}

// PageTitle joins a page title with the site name, e.g. "Sports | Daily News".
func (c Chrome) PageTitle(title string) string {
	if title == "" {
		return c.SiteName
	}
	if c.SiteName == "" {
		return title
	}
	return title + " | " + c.SiteName
}
