// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/olegiv/protidin-go/internal/apiclient"
)

// DashboardStat is one tile on the admin dashboard.
type DashboardStat struct {
	Key   string // i18n key of the label
	Icon  string
	URL   string
	Count int
}

// Dashboard counts the records behind the admin dashboard tiles.
type Dashboard struct {
	api    *apiclient.Client
	logger *slog.Logger
}

// NewDashboard creates a Dashboard service.
func NewDashboard(api *apiclient.Client, logger *slog.Logger) *Dashboard {
	return &Dashboard{api: api, logger: logger}
}

// Stats fetches the five resource lists in parallel and counts them. A
// failed fetch counts as zero.
func (d *Dashboard) Stats(ctx context.Context) []DashboardStat {
	stats := []DashboardStat{
		{Key: "admin.news", Icon: "📰", URL: "/admin/news"},
		{Key: "admin.categories", Icon: "📁", URL: "/admin/categories"},
		{Key: "admin.photos", Icon: "📷", URL: "/admin/photos"},
		{Key: "admin.videos", Icon: "🎥", URL: "/admin/videos"},
		{Key: "admin.ads", Icon: "📢", URL: "/admin/ads"},
	}
	counters := []func(context.Context) (int, error){
		countOf(d.api.News.List),
		countOf(d.api.Categories.List),
		countOf(d.api.Photos.List),
		countOf(d.api.Videos.List),
		countOf(d.api.Ads.List),
	}

	var g errgroup.Group
	for i, count := range counters {
		fetch(ctx, &g, d.logger, stats[i].Key, &stats[i].Count, count)
	}
	_ = g.Wait()
	return stats
}

func countOf[T any](list func(context.Context) ([]T, error)) func(context.Context) (int, error) {
	return func(ctx context.Context) (int, error) {
		items, err := list(ctx)
		return len(items), err
	}
}
