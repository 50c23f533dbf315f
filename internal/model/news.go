// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"strconv"
	"time"
)

// CategoryRef is the category embedded in an article.
type CategoryRef struct {
	ID     int64  `json:"id" validate:"gt=0"`
	NameEn string `json:"name_en"`
	NameBn string `json:"name_bn"`
	Slug   string `json:"slug"`
}

// Name returns the localized category name.
func (c CategoryRef) Name(lang string) string {
	return Localize(lang, c.NameEn, c.NameBn)
}

// Article is a news item.
type Article struct {
	ID         int64        `json:"id" validate:"gt=0"`
	Slug       string       `json:"slug,omitempty"`
	TitleEn    string       `json:"title_en"`
	TitleBn    string       `json:"title_bn"`
	SummaryEn  string       `json:"summary_en,omitempty"`
	SummaryBn  string       `json:"summary_bn,omitempty"`
	ContentEn  string       `json:"content_en"`
	ContentBn  string       `json:"content_bn"`
	Image      string       `json:"image,omitempty"`
	VideoURL   string       `json:"video_url,omitempty"`
	Category   *CategoryRef `json:"category,omitempty"`
	AuthorName string       `json:"author_name,omitempty"`
	IsBreaking bool         `json:"is_breaking"`
	IsFeatured bool         `json:"is_featured"`
	IsTrending bool         `json:"is_trending"`
	Views      int64        `json:"views" validate:"gte=0"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// GetID implements Identified.
func (a Article) GetID() int64 { return a.ID }

// Title returns the localized title.
func (a Article) Title(lang string) string { return Localize(lang, a.TitleEn, a.TitleBn) }

// Summary returns the localized summary.
func (a Article) Summary(lang string) string { return Localize(lang, a.SummaryEn, a.SummaryBn) }

// Content returns the localized HTML content.
func (a Article) Content(lang string) string { return Localize(lang, a.ContentEn, a.ContentBn) }

// HasImage reports whether the article carries a lead image.
func (a Article) HasImage() bool { return a.Image != "" }

// Link returns the public URL of the article, by slug when available.
func (a Article) Link() string {
	if a.Slug != "" {
		return "/news/" + a.Slug
	}
	return "/news/" + strconv.FormatInt(a.ID, 10)
}

// Input converts the article to its write payload.
func (a Article) Input() ArticleInput {
	in := ArticleInput{
		TitleEn:    a.TitleEn,
		TitleBn:    a.TitleBn,
		SummaryEn:  a.SummaryEn,
		SummaryBn:  a.SummaryBn,
		ContentEn:  a.ContentEn,
		ContentBn:  a.ContentBn,
		Image:      a.Image,
		VideoURL:   a.VideoURL,
		AuthorName: a.AuthorName,
		IsBreaking: a.IsBreaking,
		IsFeatured: a.IsFeatured,
		IsTrending: a.IsTrending,
	}
	if a.Category != nil {
		in.Category = a.Category.ID
	}
	return in
}

// ArticleInput is the create/update payload for an article.
type ArticleInput struct {
	TitleEn    string `json:"title_en" validate:"required"`
	TitleBn    string `json:"title_bn" validate:"required"`
	SummaryEn  string `json:"summary_en"`
	SummaryBn  string `json:"summary_bn"`
	ContentEn  string `json:"content_en" validate:"required"`
	ContentBn  string `json:"content_bn" validate:"required"`
	Image      string `json:"image" validate:"omitempty,uri"`
	VideoURL   string `json:"video_url" validate:"omitempty,uri"`
	Category   int64  `json:"category" validate:"gt=0"`
	AuthorName string `json:"author_name"`
	IsBreaking bool   `json:"is_breaking"`
	IsFeatured bool   `json:"is_featured"`
	IsTrending bool   `json:"is_trending"`
}
