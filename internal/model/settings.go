// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Default site names used when settings cannot be fetched.
const (
	DefaultSiteNameBn = "প্রতিদিনের সংবাদ"
	DefaultSiteNameEn = "Daily News"
)

// Settings is the singleton site configuration.
type Settings struct {
	SiteNameEn    string `json:"site_name_en"`
	SiteNameBn    string `json:"site_name_bn"`
	LogoURL       string `json:"logo_url"`
	FaviconURL    string `json:"favicon_url"`
	DescriptionEn string `json:"description_en"`
	DescriptionBn string `json:"description_bn"`
	ContactEmail  string `json:"contact_email"`
	ContactPhone  string `json:"contact_phone"`
	AddressEn     string `json:"address_en"`
	AddressBn     string `json:"address_bn"`
	FacebookURL   string `json:"facebook_url"`
	TwitterURL    string `json:"twitter_url"`
	YoutubeURL    string `json:"youtube_url"`
	InstagramURL  string `json:"instagram_url"`
	ThemeColor    string `json:"theme_color" validate:"omitempty,hexcolor"`
	FooterLinks   string `json:"footer_links"` // JSON object of quick links
	FooterAboutEn string `json:"footer_about_en"`
	FooterAboutBn string `json:"footer_about_bn"`
}

// SiteName returns the localized site name, falling back to the defaults.
func (s Settings) SiteName(lang string) string {
	if name := Localize(lang, s.SiteNameEn, s.SiteNameBn); name != "" {
		return name
	}
	return Localize(lang, DefaultSiteNameEn, DefaultSiteNameBn)
}

// Description returns the localized site description.
func (s Settings) Description(lang string) string {
	return Localize(lang, s.DescriptionEn, s.DescriptionBn)
}

// Address returns the localized postal address.
func (s Settings) Address(lang string) string {
	return Localize(lang, s.AddressEn, s.AddressBn)
}

// Input converts the settings to the update payload.
func (s Settings) Input() SettingsInput {
	return SettingsInput(s)
}

// SettingsInput is the update payload for site settings.
type SettingsInput struct {
	SiteNameEn    string `json:"site_name_en" validate:"required"`
	SiteNameBn    string `json:"site_name_bn" validate:"required"`
	LogoURL       string `json:"logo_url" validate:"omitempty,uri"`
	FaviconURL    string `json:"favicon_url" validate:"omitempty,uri"`
	DescriptionEn string `json:"description_en"`
	DescriptionBn string `json:"description_bn"`
	ContactEmail  string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone  string `json:"contact_phone"`
	AddressEn     string `json:"address_en"`
	AddressBn     string `json:"address_bn"`
	FacebookURL   string `json:"facebook_url" validate:"omitempty,uri"`
	TwitterURL    string `json:"twitter_url" validate:"omitempty,uri"`
	YoutubeURL    string `json:"youtube_url" validate:"omitempty,uri"`
	InstagramURL  string `json:"instagram_url" validate:"omitempty,uri"`
	ThemeColor    string `json:"theme_color" validate:"omitempty,hexcolor"`
	FooterLinks   string `json:"footer_links" validate:"omitempty,json"`
	FooterAboutEn string `json:"footer_about_en"`
	FooterAboutBn string `json:"footer_about_bn"`
}
