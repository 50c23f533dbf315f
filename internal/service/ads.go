// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/olegiv/protidin-go/internal/apiclient"
	"github.com/olegiv/protidin-go/internal/model"
)

// Ads resolves the ads shown in a page slot.
type Ads struct {
	api    *apiclient.Client
	logger *slog.Logger
}

// NewAds creates an Ads service.
func NewAds(api *apiclient.Client, logger *slog.Logger) *Ads {
	return &Ads{api: api, logger: logger}
}

// ForPosition returns the ads for a slot. The header slot also shows the
// "top" ads, header ones first; each of the two fetches falls back to
// empty on its own.
func (a *Ads) ForPosition(ctx context.Context, position string) []model.Ad {
	byPosition := func(pos string) func(context.Context) ([]model.Ad, error) {
		return func(ctx context.Context) ([]model.Ad, error) {
			return a.api.Ads.ByPosition(ctx, pos)
		}
	}

	var (
		g            errgroup.Group
		primary, top []model.Ad
	)
	fetch(ctx, &g, a.logger, "ads:"+position, &primary, byPosition(position))
	if position == model.AdHeader {
		fetch(ctx, &g, a.logger, "ads:"+model.AdTop, &top, byPosition(model.AdTop))
	}
	_ = g.Wait()

	if len(top) == 0 {
		return primary
	}
	out := make([]model.Ad, 0, len(primary)+len(top))
	out = append(out, primary...)
	return append(out, top...)
}
