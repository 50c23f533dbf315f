// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/olegiv/protidin-go/internal/model"
	"github.com/olegiv/protidin-go/internal/util"
)

// NewsFilter narrows ListNews. Zero values select everything.
type NewsFilter struct {
	Breaking   bool
	Featured   bool
	Trending   bool
	CategoryID int64
	Limit      int
}

const newsSelect = `SELECT n.id, n.slug, n.title_en, n.title_bn, n.summary_en, n.summary_bn,
	n.content_en, n.content_bn, n.image, n.video_url, n.author_name,
	n.is_breaking, n.is_featured, n.is_trending, n.views, n.created_at, n.updated_at,
	c.id, c.name_en, c.name_bn, c.slug
FROM news n LEFT JOIN categories c ON c.id = n.category_id`

func scanArticle(row scanner) (model.Article, error) {
	var (
		a       model.Article
		catID   sql.NullInt64
		catEn   sql.NullString
		catBn   sql.NullString
		catSlug sql.NullString
	)
	err := row.Scan(&a.ID, &a.Slug, &a.TitleEn, &a.TitleBn, &a.SummaryEn, &a.SummaryBn,
		&a.ContentEn, &a.ContentBn, &a.Image, &a.VideoURL, &a.AuthorName,
		&a.IsBreaking, &a.IsFeatured, &a.IsTrending, &a.Views, &a.CreatedAt, &a.UpdatedAt,
		&catID, &catEn, &catBn, &catSlug)
	if err != nil {
		return a, err
	}
	if catID.Valid {
		a.Category = &model.CategoryRef{ID: catID.Int64, NameEn: catEn.String, NameBn: catBn.String, Slug: catSlug.String}
	}
	return a, nil
}

// ListNews returns articles newest first.
func (s *Store) ListNews(ctx context.Context, f NewsFilter) ([]model.Article, error) {
	var (
		where []string
		args  []any
	)
	if f.Breaking {
		where = append(where, "n.is_breaking = ?")
		args = append(args, true)
	}
	if f.Featured {
		where = append(where, "n.is_featured = ?")
		args = append(args, true)
	}
	if f.Trending {
		where = append(where, "n.is_trending = ?")
		args = append(args, true)
	}
	if f.CategoryID > 0 {
		where = append(where, "n.category_id = ?")
		args = append(args, f.CategoryID)
	}

	query := newsSelect
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	if f.Trending {
		query += " ORDER BY n.views DESC, n.id DESC"
	} else {
		query += " ORDER BY n.created_at DESC, n.id DESC"
	}
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing news: %w", err)
	}
	news, err := collect(rows, scanArticle)
	if err != nil {
		return nil, fmt.Errorf("scanning news: %w", err)
	}
	return news, nil
}

// GetNews returns one article by numeric id or by slug.
func (s *Store) GetNews(ctx context.Context, idOrSlug string) (model.Article, error) {
	if id, ok := parseID(idOrSlug); ok {
		a, err := scanArticle(s.db.QueryRowContext(ctx, newsSelect+" WHERE n.id = ?", id))
		if err == nil {
			return a, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return a, readErr("getting news", err)
		}
	}
	a, err := scanArticle(s.db.QueryRowContext(ctx, newsSelect+" WHERE n.slug = ?", idOrSlug))
	if err != nil {
		return a, readErr("getting news", err)
	}
	return a, nil
}

func (s *Store) newsSlug(ctx context.Context, in model.ArticleInput) (string, error) {
	base := util.Slugify(in.TitleEn)
	if base == "" {
		base = util.Slugify(in.TitleBn)
	}
	if base == "" {
		base = "news"
	}
	return util.UniqueSlug(base, func(slug string) (bool, error) {
		var n int
		if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM news WHERE slug = ?", slug).Scan(&n); err != nil {
			return false, fmt.Errorf("checking news slug: %w", err)
		}
		return n > 0, nil
	})
}

// CreateNews stores a new article under a slug derived from its title.
func (s *Store) CreateNews(ctx context.Context, in model.ArticleInput) (model.Article, error) {
	slug, err := s.newsSlug(ctx, in)
	if err != nil {
		return model.Article{}, err
	}
	now := s.now()
	id, err := insertID(ctx, s.db, "creating news",
		`INSERT INTO news (slug, title_en, title_bn, summary_en, summary_bn, content_en, content_bn,
			image, video_url, category_id, author_name, is_breaking, is_featured, is_trending, views,
			created_at, updated_at)
		VALUES (`+placeholders(17)+`)`,
		slug, in.TitleEn, in.TitleBn, in.SummaryEn, in.SummaryBn, in.ContentEn, in.ContentBn,
		in.Image, in.VideoURL, categoryRef(in.Category), in.AuthorName,
		in.IsBreaking, in.IsFeatured, in.IsTrending, 0, now, now)
	if err != nil {
		return model.Article{}, err
	}
	return s.GetNews(ctx, fmt.Sprint(id))
}

// UpdateNews replaces an article's content. The slug is kept so
// published links stay valid.
func (s *Store) UpdateNews(ctx context.Context, id int64, in model.ArticleInput) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE news SET title_en = ?, title_bn = ?, summary_en = ?, summary_bn = ?,
			content_en = ?, content_bn = ?, image = ?, video_url = ?, category_id = ?,
			author_name = ?, is_breaking = ?, is_featured = ?, is_trending = ?, updated_at = ?
		WHERE id = ?`,
		in.TitleEn, in.TitleBn, in.SummaryEn, in.SummaryBn, in.ContentEn, in.ContentBn,
		in.Image, in.VideoURL, categoryRef(in.Category), in.AuthorName,
		in.IsBreaking, in.IsFeatured, in.IsTrending, s.now(), id)
	return affectedOne("updating news", res, err)
}

// DeleteNews removes an article.
func (s *Store) DeleteNews(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM news WHERE id = ?", id)
	return affectedOne("deleting news", res, err)
}

// IncrementViews bumps an article's view counter.
func (s *Store) IncrementViews(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "UPDATE news SET views = views + 1 WHERE id = ?", id)
	return affectedOne("counting view", res, err)
}

func categoryRef(id int64) sql.NullInt64 {
	if id <= 0 {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: id, Valid: true}
}
