// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Photo is a gallery photo.
type Photo struct {
	ID            int64     `json:"id" validate:"gt=0"`
	TitleEn       string    `json:"title_en"`
	TitleBn       string    `json:"title_bn"`
	ImageURL      string    `json:"image_url"`
	DescriptionEn string    `json:"description_en,omitempty"`
	DescriptionBn string    `json:"description_bn,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// GetID implements Identified.
func (p Photo) GetID() int64 { return p.ID }

// Title returns the localized title.
func (p Photo) Title(lang string) string { return Localize(lang, p.TitleEn, p.TitleBn) }

// Description returns the localized description.
func (p Photo) Description(lang string) string {
	return Localize(lang, p.DescriptionEn, p.DescriptionBn)
}

// Input converts the photo to its write payload.
func (p Photo) Input() PhotoInput {
	return PhotoInput{
		TitleEn:       p.TitleEn,
		TitleBn:       p.TitleBn,
		ImageURL:      p.ImageURL,
		DescriptionEn: p.DescriptionEn,
		DescriptionBn: p.DescriptionBn,
	}
}

// PhotoInput is the create/update payload for a photo.
type PhotoInput struct {
	TitleEn       string `json:"title_en" validate:"required"`
	TitleBn       string `json:"title_bn" validate:"required"`
	ImageURL      string `json:"image_url" validate:"required,uri"`
	DescriptionEn string `json:"description_en"`
	DescriptionBn string `json:"description_bn"`
}

// Video is a gallery video.
type Video struct {
	ID            int64     `json:"id" validate:"gt=0"`
	TitleEn       string    `json:"title_en"`
	TitleBn       string    `json:"title_bn"`
	VideoURL      string    `json:"video_url"`
	Thumbnail     string    `json:"thumbnail,omitempty"`
	DescriptionEn string    `json:"description_en,omitempty"`
	DescriptionBn string    `json:"description_bn,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// GetID implements Identified.
func (v Video) GetID() int64 { return v.ID }

// Title returns the localized title.
func (v Video) Title(lang string) string { return Localize(lang, v.TitleEn, v.TitleBn) }

// Description returns the localized description.
func (v Video) Description(lang string) string {
	return Localize(lang, v.DescriptionEn, v.DescriptionBn)
}

// Input converts the video to its write payload.
func (v Video) Input() VideoInput {
	return VideoInput{
		TitleEn:       v.TitleEn,
		TitleBn:       v.TitleBn,
		VideoURL:      v.VideoURL,
		Thumbnail:     v.Thumbnail,
		DescriptionEn: v.DescriptionEn,
		DescriptionBn: v.DescriptionBn,
	}
}

// VideoInput is the create/update payload for a video.
type VideoInput struct {
	TitleEn       string `json:"title_en" validate:"required"`
	TitleBn       string `json:"title_bn" validate:"required"`
	VideoURL      string `json:"video_url" validate:"required,uri"`
	Thumbnail     string `json:"thumbnail" validate:"omitempty,uri"`
	DescriptionEn string `json:"description_en"`
	DescriptionBn string `json:"description_bn"`
}
