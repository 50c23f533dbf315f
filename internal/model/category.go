// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Category is a news category.
type Category struct {
	ID         int64     `json:"id" validate:"gt=0"`
	NameEn     string    `json:"name_en"`
	NameBn     string    `json:"name_bn"`
	Slug       string    `json:"slug"`
	Order      int       `json:"order"`
	ShowInMenu *bool     `json:"show_in_menu,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// GetID implements Identified.
func (c Category) GetID() int64 { return c.ID }

// Name returns the localized category name.
func (c Category) Name(lang string) string { return Localize(lang, c.NameEn, c.NameBn) }

// InMenu reports whether the category belongs in the fallback navigation.
// A missing flag counts as true.
func (c Category) InMenu() bool {
	return c.ShowInMenu == nil || *c.ShowInMenu
}

// Link returns the public URL of the category.
func (c Category) Link() string { return "/category/" + c.Slug }

// Input converts the category to its write payload.
func (c Category) Input() CategoryInput {
	return CategoryInput{
		NameEn:     c.NameEn,
		NameBn:     c.NameBn,
		Slug:       c.Slug,
		Order:      c.Order,
		ShowInMenu: c.InMenu(),
	}
}

// CategoryInput is the create/update payload for a category.
type CategoryInput struct {
	NameEn     string `json:"name_en" validate:"required"`
	NameBn     string `json:"name_bn" validate:"required"`
	Slug       string `json:"slug" validate:"required"`
	Order      int    `json:"order"`
	ShowInMenu bool   `json:"show_in_menu"`
}
