// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service assembles page data from the news backend.
//
// Every view issues its backend calls in parallel and joins them before
// rendering. A failed call is logged and replaced by an empty result; it
// never cancels its siblings.
package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// fetch runs fn on g and stores its result in dst. Errors are logged and
// leave dst at its zero value.
func fetch[T any](ctx context.Context, g *errgroup.Group, logger *slog.Logger, what string, dst *T, fn func(context.Context) (T, error)) {
	g.Go(func() error {
		v, err := fn(ctx)
		if err != nil {
			logger.WarnContext(ctx, "backend fetch failed, using empty result", "what", what, "error", err)
			return nil
		}
		*dst = v
		return nil
	})
}
