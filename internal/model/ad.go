// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Ad placement positions.
const (
	AdHeader      = "header"
	AdTop         = "top"
	AdSidebar     = "sidebar"
	AdFooter      = "footer"
	AdBetweenNews = "between-news"
)

// Ad is an advertisement banner.
type Ad struct {
	ID       int64  `json:"id" validate:"gt=0"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
	LinkURL  string `json:"link_url,omitempty"`
	Position string `json:"position" validate:"oneof=header top sidebar footer between-news"`
	Order    int    `json:"order"`
	IsActive bool   `json:"is_active"`
}

// GetID implements Identified.
func (a Ad) GetID() int64 { return a.ID }

// Input converts the ad to its write payload.
func (a Ad) Input() AdInput {
	return AdInput{
		Title:    a.Title,
		ImageURL: a.ImageURL,
		LinkURL:  a.LinkURL,
		Position: a.Position,
		Order:    a.Order,
		IsActive: a.IsActive,
	}
}

// AdInput is the create/update payload for an ad.
type AdInput struct {
	Title    string `json:"title" validate:"required"`
	ImageURL string `json:"image_url" validate:"required,uri"`
	LinkURL  string `json:"link_url" validate:"omitempty,uri"`
	Position string `json:"position" validate:"oneof=header top sidebar footer between-news"`
	Order    int    `json:"order"`
	IsActive bool   `json:"is_active"`
}
