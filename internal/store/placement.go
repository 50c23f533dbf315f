// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/olegiv/protidin-go/internal/model"
	"github.com/olegiv/protidin-go/internal/util"
)

const (
	adSelect   = `SELECT id, title, image_url, link_url, position, sort_order, is_active FROM ads`
	menuSelect = `SELECT id, title_en, title_bn, url, location, sort_order, icon, parent_id, is_active, open_new_tab FROM menus`
)

func scanAd(row scanner) (model.Ad, error) {
	var a model.Ad
	err := row.Scan(&a.ID, &a.Title, &a.ImageURL, &a.LinkURL, &a.Position, &a.Order, &a.IsActive)
	return a, err
}

func scanMenuItem(row scanner) (model.MenuItem, error) {
	var (
		m      model.MenuItem
		parent sql.NullInt64
	)
	err := row.Scan(&m.ID, &m.TitleEn, &m.TitleBn, &m.URL, &m.Location, &m.Order, &m.Icon, &parent, &m.IsActive, &m.OpenNewTab)
	m.ParentID = util.Int64Ptr(parent)
	return m, err
}

// ListAds returns ads in display order. With a position, only the active
// ads of that position are returned.
func (s *Store) ListAds(ctx context.Context, position string) ([]model.Ad, error) {
	query, args := adSelect+" ORDER BY sort_order, id", []any(nil)
	if position != "" {
		query = adSelect + " WHERE position = ? AND is_active = ? ORDER BY sort_order, id"
		args = []any{position, true}
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing ads: %w", err)
	}
	ads, err := collect(rows, scanAd)
	if err != nil {
		return nil, fmt.Errorf("scanning ads: %w", err)
	}
	return ads, nil
}

// GetAd returns an ad by id.
func (s *Store) GetAd(ctx context.Context, id int64) (model.Ad, error) {
	a, err := scanAd(s.db.QueryRowContext(ctx, adSelect+" WHERE id = ?", id))
	if err != nil {
		return a, readErr("getting ad", err)
	}
	return a, nil
}

// CreateAd stores a new ad.
func (s *Store) CreateAd(ctx context.Context, in model.AdInput) (model.Ad, error) {
	id, err := insertID(ctx, s.db, "creating ad",
		`INSERT INTO ads (title, image_url, link_url, position, sort_order, is_active) VALUES (`+placeholders(6)+`)`,
		in.Title, in.ImageURL, in.LinkURL, in.Position, in.Order, in.IsActive)
	if err != nil {
		return model.Ad{}, err
	}
	return s.GetAd(ctx, id)
}

// UpdateAd replaces an ad.
func (s *Store) UpdateAd(ctx context.Context, id int64, in model.AdInput) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE ads SET title = ?, image_url = ?, link_url = ?, position = ?, sort_order = ?, is_active = ? WHERE id = ?`,
		in.Title, in.ImageURL, in.LinkURL, in.Position, in.Order, in.IsActive, id)
	return affectedOne("updating ad", res, err)
}

// DeleteAd removes an ad.
func (s *Store) DeleteAd(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM ads WHERE id = ?", id)
	return affectedOne("deleting ad", res, err)
}

// ListMenus returns menu items in display order. With a location, items
// placed there or in both locations are returned.
func (s *Store) ListMenus(ctx context.Context, location string) ([]model.MenuItem, error) {
	query, args := menuSelect+" ORDER BY sort_order, id", []any(nil)
	if location != "" {
		query = menuSelect + " WHERE location = ? OR location = ? ORDER BY sort_order, id"
		args = []any{location, model.MenuBoth}
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing menus: %w", err)
	}
	items, err := collect(rows, scanMenuItem)
	if err != nil {
		return nil, fmt.Errorf("scanning menus: %w", err)
	}
	return items, nil
}

// GetMenuItem returns a menu item by id.
func (s *Store) GetMenuItem(ctx context.Context, id int64) (model.MenuItem, error) {
	m, err := scanMenuItem(s.db.QueryRowContext(ctx, menuSelect+" WHERE id = ?", id))
	if err != nil {
		return m, readErr("getting menu item", err)
	}
	return m, nil
}

// CreateMenuItem stores a new menu item.
func (s *Store) CreateMenuItem(ctx context.Context, in model.MenuItemInput) (model.MenuItem, error) {
	id, err := insertID(ctx, s.db, "creating menu item",
		`INSERT INTO menus (title_en, title_bn, url, location, sort_order, icon, parent_id, is_active, open_new_tab)
		VALUES (`+placeholders(9)+`)`,
		in.TitleEn, in.TitleBn, in.URL, in.Location, in.Order, in.Icon, util.NullInt64FromPtr(in.ParentID), in.IsActive, in.OpenNewTab)
	if err != nil {
		return model.MenuItem{}, err
	}
	return s.GetMenuItem(ctx, id)
}

// UpdateMenuItem replaces a menu item.
func (s *Store) UpdateMenuItem(ctx context.Context, id int64, in model.MenuItemInput) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE menus SET title_en = ?, title_bn = ?, url = ?, location = ?, sort_order = ?, icon = ?,
			parent_id = ?, is_active = ?, open_new_tab = ? WHERE id = ?`,
		in.TitleEn, in.TitleBn, in.URL, in.Location, in.Order, in.Icon, util.NullInt64FromPtr(in.ParentID), in.IsActive, in.OpenNewTab, id)
	return affectedOne("updating menu item", res, err)
}

// DeleteMenuItem removes a menu item. Its children move to the top level.
func (s *Store) DeleteMenuItem(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM menus WHERE id = ?", id)
	return affectedOne("deleting menu item", res, err)
}
