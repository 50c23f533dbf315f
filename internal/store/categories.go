// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"

	"github.com/olegiv/protidin-go/internal/model"
)

const categorySelect = `SELECT id, name_en, name_bn, slug, sort_order, show_in_menu, created_at FROM categories`

func scanCategory(row scanner) (model.Category, error) {
	var (
		c      model.Category
		inMenu bool
	)
	if err := row.Scan(&c.ID, &c.NameEn, &c.NameBn, &c.Slug, &c.Order, &inMenu, &c.CreatedAt); err != nil {
		return c, err
	}
	c.ShowInMenu = &inMenu
	return c, nil
}

// ListCategories returns all categories in menu order.
func (s *Store) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := s.db.QueryContext(ctx, categorySelect+" ORDER BY sort_order, id")
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	cats, err := collect(rows, scanCategory)
	if err != nil {
		return nil, fmt.Errorf("scanning categories: %w", err)
	}
	return cats, nil
}

// GetCategory returns a category by id.
func (s *Store) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	c, err := scanCategory(s.db.QueryRowContext(ctx, categorySelect+" WHERE id = ?", id))
	if err != nil {
		return c, readErr("getting category", err)
	}
	return c, nil
}

// GetCategoryBySlug returns a category by slug.
func (s *Store) GetCategoryBySlug(ctx context.Context, slug string) (model.Category, error) {
	c, err := scanCategory(s.db.QueryRowContext(ctx, categorySelect+" WHERE slug = ?", slug))
	if err != nil {
		return c, readErr("getting category", err)
	}
	return c, nil
}

// CreateCategory stores a new category. A taken slug yields ErrConflict.
func (s *Store) CreateCategory(ctx context.Context, in model.CategoryInput) (model.Category, error) {
	id, err := insertID(ctx, s.db, "creating category",
		`INSERT INTO categories (name_en, name_bn, slug, sort_order, show_in_menu, created_at)
		VALUES (`+placeholders(6)+`)`,
		in.NameEn, in.NameBn, in.Slug, in.Order, in.ShowInMenu, s.now())
	if err != nil {
		return model.Category{}, err
	}
	return s.GetCategory(ctx, id)
}

// UpdateCategory replaces a category.
func (s *Store) UpdateCategory(ctx context.Context, id int64, in model.CategoryInput) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE categories SET name_en = ?, name_bn = ?, slug = ?, sort_order = ?, show_in_menu = ? WHERE id = ?`,
		in.NameEn, in.NameBn, in.Slug, in.Order, in.ShowInMenu, id)
	return affectedOne("updating category", res, err)
}

// DeleteCategory removes a category. Its articles become uncategorized.
func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	return affectedOne("deleting category", res, err)
}
