// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"errors"

	"github.com/olegiv/protidin-go/internal/model"
)

// settingsID is the id of the single settings row.
const settingsID = 1

const settingsColumns = `site_name_en, site_name_bn, logo_url, favicon_url, description_en, description_bn,
	contact_email, contact_phone, address_en, address_bn, facebook_url, twitter_url, youtube_url,
	instagram_url, theme_color, footer_links, footer_about_en, footer_about_bn`

func settingsArgs(in model.SettingsInput) []any {
	return []any{
		in.SiteNameEn, in.SiteNameBn, in.LogoURL, in.FaviconURL, in.DescriptionEn, in.DescriptionBn,
		in.ContactEmail, in.ContactPhone, in.AddressEn, in.AddressBn, in.FacebookURL, in.TwitterURL, in.YoutubeURL,
		in.InstagramURL, in.ThemeColor, in.FooterLinks, in.FooterAboutEn, in.FooterAboutBn,
	}
}

// GetSettings returns the site settings. Before the first update it
// returns ErrNotFound.
func (s *Store) GetSettings(ctx context.Context) (model.Settings, error) {
	var st model.Settings
	err := s.db.QueryRowContext(ctx, "SELECT "+settingsColumns+" FROM settings WHERE id = ?", settingsID).Scan(
		&st.SiteNameEn, &st.SiteNameBn, &st.LogoURL, &st.FaviconURL, &st.DescriptionEn, &st.DescriptionBn,
		&st.ContactEmail, &st.ContactPhone, &st.AddressEn, &st.AddressBn, &st.FacebookURL, &st.TwitterURL, &st.YoutubeURL,
		&st.InstagramURL, &st.ThemeColor, &st.FooterLinks, &st.FooterAboutEn, &st.FooterAboutBn)
	if err != nil {
		return st, readErr("getting settings", err)
	}
	return st, nil
}

// UpdateSettings replaces the site settings, creating the row when missing.
func (s *Store) UpdateSettings(ctx context.Context, in model.SettingsInput) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE settings SET site_name_en = ?, site_name_bn = ?, logo_url = ?, favicon_url = ?,
			description_en = ?, description_bn = ?, contact_email = ?, contact_phone = ?,
			address_en = ?, address_bn = ?, facebook_url = ?, twitter_url = ?, youtube_url = ?,
			instagram_url = ?, theme_color = ?, footer_links = ?, footer_about_en = ?, footer_about_bn = ?
		WHERE id = ?`,
		append(settingsArgs(in), settingsID)...)
	err = affectedOne("updating settings", res, err)
	if !errors.Is(err, ErrNotFound) {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO settings (id, "+settingsColumns+") VALUES (?, "+placeholders(18)+")",
		append([]any{settingsID}, settingsArgs(in)...)...)
	if err != nil {
		return writeErr("creating settings", err)
	}
	return nil
}
