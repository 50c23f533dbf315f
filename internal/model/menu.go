// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Menu locations.
const (
	MenuHeader = "header"
	MenuFooter = "footer"
	MenuBoth   = "both"
)

// MenuItem is a navigation entry managed in the admin console.
type MenuItem struct {
	ID         int64  `json:"id" validate:"gt=0"`
	TitleEn    string `json:"title_en"`
	TitleBn    string `json:"title_bn"`
	URL        string `json:"url"`
	Location   string `json:"location" validate:"oneof=header footer both"`
	Order      int    `json:"order"`
	Icon       string `json:"icon,omitempty"`
	ParentID   *int64 `json:"parent_id"`
	IsActive   bool   `json:"is_active"`
	OpenNewTab bool   `json:"open_new_tab"`
}

// GetID implements Identified.
func (m MenuItem) GetID() int64 { return m.ID }

// Title returns the localized title.
func (m MenuItem) Title(lang string) string { return Localize(lang, m.TitleEn, m.TitleBn) }

// Input converts the menu item to its write payload.
func (m MenuItem) Input() MenuItemInput {
	return MenuItemInput{
		TitleEn:    m.TitleEn,
		TitleBn:    m.TitleBn,
		URL:        m.URL,
		Location:   m.Location,
		Order:      m.Order,
		Icon:       m.Icon,
		ParentID:   m.ParentID,
		IsActive:   m.IsActive,
		OpenNewTab: m.OpenNewTab,
	}
}

// MenuItemInput is the create/update payload for a menu item.
type MenuItemInput struct {
	TitleEn    string `json:"title_en" validate:"required"`
	TitleBn    string `json:"title_bn" validate:"required"`
	URL        string `json:"url" validate:"required"`
	Location   string `json:"location" validate:"oneof=header footer both"`
	Order      int    `json:"order"`
	Icon       string `json:"icon"`
	ParentID   *int64 `json:"parent_id"`
	IsActive   bool   `json:"is_active"`
	OpenNewTab bool   `json:"open_new_tab"`
}
