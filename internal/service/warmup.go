// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/olegiv/protidin-go/internal/apiclient"
	"github.com/olegiv/protidin-go/internal/model"
)

// Warmer refreshes the request cache with the fetches every public page
// makes, so visitors after an expiry do not pay for them.
type Warmer struct {
	api    *apiclient.Client
	logger *slog.Logger
}

// NewWarmer creates a Warmer.
func NewWarmer(api *apiclient.Client, logger *slog.Logger) *Warmer {
	return &Warmer{api: api, logger: logger}
}

// Warm issues the home page fetches and returns the joined errors of the
// ones that failed.
func (w *Warmer) Warm(ctx context.Context) error {
	start := time.Now()
	calls := map[string]func(context.Context) error{
		"settings":   discard(w.api.Settings.Get),
		"categories": discard(w.api.Categories.List),
		"menus": discard(func(ctx context.Context) ([]model.MenuItem, error) {
			return w.api.Menus.ByLocation(ctx, model.MenuHeader)
		}),
		"news":     discard(w.api.News.List),
		"breaking": discard(w.api.News.Breaking),
		"trending": discard(w.api.News.Trending),
		"photos":   discard(w.api.Photos.List),
		"videos":   discard(w.api.Videos.List),
	}

	var g errgroup.Group
	errs := make(chan error, len(calls))
	for name, call := range calls {
		g.Go(func() error {
			if err := call(ctx); err != nil {
				errs <- errors.New(name + ": " + err.Error())
			}
			return nil
		})
	}
	_ = g.Wait()
	close(errs)

	var joined []error
	for err := range errs {
		joined = append(joined, err)
	}
	w.logger.Debug("cache warm-up finished", "duration", time.Since(start), "failed", len(joined))
	return errors.Join(joined...)
}

func discard[T any](fn func(context.Context) (T, error)) func(context.Context) error {
	return func(ctx context.Context) error {
		_, err := fn(ctx)
		return err
	}
}
