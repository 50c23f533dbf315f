// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/olegiv/protidin-go/internal/apiclient"
	"github.com/olegiv/protidin-go/internal/model"
)

// Home page layout limits.
const (
	MainGridSize   = 9
	GalleryLimit   = 6
	TrendingLimit  = 5
	CategoryCards  = 8
	secondaryCount = 2
)

// Frame is the data every public page shares: settings, categories and
// the header menu.
type Frame struct {
	Settings    model.Settings
	HasSettings bool
	Categories  []model.Category
	HeaderMenus []model.MenuItem
}

// HomeGrid is the home page's main news grid.
type HomeGrid struct {
	Lead      *model.Article
	Secondary []model.Article
	Grid      []model.Article
	More      []model.Article
}

// HomePage is the data behind "/".
type HomePage struct {
	Frame
	Breaking []model.Article
	Trending []model.Article
	News     HomeGrid
	Photos   []model.Photo
	Videos   []model.Video
	Ads      map[string][]model.Ad
	Cards    []CategoryCard
}

// CategoryCard is one tile of the home page's category strip.
type CategoryCard struct {
	Category model.Category
	Icon     string
}

var cardIcons = []string{"📰", "🏛️", "⚽", "💼", "🎭", "🌾", "🏥", "🎓"}

// CategoryCardsOf returns the first CategoryCards categories with an icon
// each, cycling through a fixed icon set.
func CategoryCardsOf(categories []model.Category) []CategoryCard {
	categories = capped(categories, CategoryCards)
	cards := make([]CategoryCard, 0, len(categories))
	for i, c := range categories {
		cards = append(cards, CategoryCard{Category: c, Icon: cardIcons[i%len(cardIcons)]})
	}
	return cards
}

// CategoryPage is the data behind "/category/{slug}". Category is nil when
// the slug is unknown.
type CategoryPage struct {
	Frame
	Category *model.Category
	News     []model.Article
}

// ArticlePage is the data behind "/news/{id}". Article is nil when the
// backend has no such article.
type ArticlePage struct {
	Frame
	Article *model.Article
}

// PhotosPage is the data behind "/photos".
type PhotosPage struct {
	Frame
	Photos []model.Photo
}

// VideosPage is the data behind "/videos".
type VideosPage struct {
	Frame
	Videos []model.Video
}

// Content loads public pages.
type Content struct {
	api    *apiclient.Client
	ads    *Ads
	logger *slog.Logger
}

// NewContent creates a Content service.
func NewContent(api *apiclient.Client, logger *slog.Logger) *Content {
	return &Content{api: api, ads: NewAds(api, logger), logger: logger}
}

// frame schedules the shared fetches on g.
func (s *Content) frame(ctx context.Context, g *errgroup.Group, f *Frame) {
	g.Go(func() error {
		settings, err := s.api.Settings.Get(ctx)
		if err != nil {
			s.logger.WarnContext(ctx, "backend fetch failed, using defaults", "what", "settings", "error", err)
			return nil
		}
		f.Settings = settings
		f.HasSettings = true
		return nil
	})
	fetch(ctx, g, s.logger, "categories", &f.Categories, s.api.Categories.List)
	fetch(ctx, g, s.logger, "header menus", &f.HeaderMenus, func(ctx context.Context) ([]model.MenuItem, error) {
		return s.api.Menus.ByLocation(ctx, model.MenuHeader)
	})
}

// Frame loads the shared page data on its own.
func (s *Content) Frame(ctx context.Context) Frame {
	var (
		g errgroup.Group
		f Frame
	)
	s.frame(ctx, &g, &f)
	_ = g.Wait()
	return f
}

// Home loads the home page.
func (s *Content) Home(ctx context.Context) HomePage {
	var (
		g    errgroup.Group
		p    HomePage
		news []model.Article
	)
	s.frame(ctx, &g, &p.Frame)
	fetch(ctx, &g, s.logger, "breaking news", &p.Breaking, s.api.News.Breaking)
	fetch(ctx, &g, s.logger, "news", &news, s.api.News.List)
	fetch(ctx, &g, s.logger, "trending news", &p.Trending, s.api.News.Trending)
	fetch(ctx, &g, s.logger, "photos", &p.Photos, s.api.Photos.List)
	fetch(ctx, &g, s.logger, "videos", &p.Videos, s.api.Videos.List)

	positions := []string{model.AdHeader, model.AdBetweenNews, model.AdSidebar, model.AdFooter}
	ads := make([][]model.Ad, len(positions))
	for i, pos := range positions {
		g.Go(func() error {
			ads[i] = s.ads.ForPosition(ctx, pos)
			return nil
		})
	}
	_ = g.Wait()

	p.News = SplitHome(SortImageFirst(news))
	p.Photos = capped(p.Photos, GalleryLimit)
	p.Videos = capped(p.Videos, GalleryLimit)
	p.Trending = capped(p.Trending, TrendingLimit)
	p.Cards = CategoryCardsOf(p.Categories)
	p.Ads = make(map[string][]model.Ad, len(positions))
	for i, pos := range positions {
		p.Ads[pos] = ads[i]
	}
	return p
}

// Category loads a category page. The category's news are fetched once the
// slug has resolved.
func (s *Content) Category(ctx context.Context, slug string) CategoryPage {
	var (
		g errgroup.Group
		p CategoryPage
	)
	s.frame(ctx, &g, &p.Frame)
	g.Go(func() error {
		cat, err := s.api.Categories.BySlug(ctx, slug)
		if err != nil {
			s.logger.WarnContext(ctx, "category lookup failed", "slug", slug, "error", err)
			return nil
		}
		p.Category = &cat

		news, err := s.api.News.ByCategory(ctx, cat.ID)
		if err != nil {
			s.logger.WarnContext(ctx, "backend fetch failed, using empty result", "what", "category news", "error", err)
			return nil
		}
		p.News = news
		return nil
	})
	_ = g.Wait()
	return p
}

// Article loads an article by id or slug.
func (s *Content) Article(ctx context.Context, idOrSlug string) ArticlePage {
	var (
		g errgroup.Group
		p ArticlePage
	)
	s.frame(ctx, &g, &p.Frame)
	g.Go(func() error {
		a, err := s.api.News.Get(ctx, idOrSlug)
		if err != nil {
			if !apiclient.IsNotFound(err) {
				s.logger.WarnContext(ctx, "article fetch failed", "id", idOrSlug, "error", err)
			}
			return nil
		}
		p.Article = &a
		return nil
	})
	_ = g.Wait()
	return p
}

// Photos loads the photo gallery.
func (s *Content) Photos(ctx context.Context) PhotosPage {
	var (
		g errgroup.Group
		p PhotosPage
	)
	s.frame(ctx, &g, &p.Frame)
	fetch(ctx, &g, s.logger, "photos", &p.Photos, s.api.Photos.List)
	_ = g.Wait()
	return p
}

// Videos loads the video gallery.
func (s *Content) Videos(ctx context.Context) VideosPage {
	var (
		g errgroup.Group
		p VideosPage
	)
	s.frame(ctx, &g, &p.Frame)
	fetch(ctx, &g, s.logger, "videos", &p.Videos, s.api.Videos.List)
	_ = g.Wait()
	return p
}

// SortImageFirst returns a copy of news with articles that have an image
// ahead of those without. Relative order within each group is kept.
func SortImageFirst(news []model.Article) []model.Article {
	out := slices.Clone(news)
	slices.SortStableFunc(out, func(a, b model.Article) int {
		switch {
		case a.HasImage() && !b.HasImage():
			return -1
		case !a.HasImage() && b.HasImage():
			return 1
		default:
			return 0
		}
	})
	return out
}

// SplitHome lays out sorted news: index 0 leads, 1-2 are secondary, 3-8
// fill the grid and the rest go to "More News".
func SplitHome(news []model.Article) HomeGrid {
	var grid HomeGrid
	main := capped(news, MainGridSize)
	if len(main) > 0 {
		lead := main[0]
		grid.Lead = &lead
	}
	if len(main) > 1 {
		grid.Secondary = main[1:min(len(main), 1+secondaryCount)]
	}
	if len(main) > 1+secondaryCount {
		grid.Grid = main[1+secondaryCount:]
	}
	if len(news) > MainGridSize {
		grid.More = news[MainGridSize:]
	}
	return grid
}

func capped[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
