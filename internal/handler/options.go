// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/olegiv/protidin-go/internal/admin"
	"github.com/olegiv/protidin-go/internal/apiclient"
	"github.com/olegiv/protidin-go/internal/i18n"
	"github.com/olegiv/protidin-go/internal/model"
)

// optionLoader fetches the choices of a dynamic option source.
type optionLoader func(ctx context.Context, lang string) ([]admin.Option, error)

func optionLoaders(api *apiclient.Client) map[string]optionLoader {
	return map[string]optionLoader{
		"categories": func(ctx context.Context, lang string) ([]admin.Option, error) {
			cats, err := api.Categories.List(ctx)
			return optionsOf(cats, func(c model.Category) admin.Option {
				return admin.Option{Value: model.IDString(c), Label: c.Name(lang)}
			}), err
		},
		"districts": func(ctx context.Context, lang string) ([]admin.Option, error) {
			districts, err := api.Districts.Active(ctx)
			return optionsOf(districts, func(d model.District) admin.Option {
				return admin.Option{Value: model.IDString(d), Label: d.Name(lang)}
			}), err
		},
		"roles": func(ctx context.Context, _ string) ([]admin.Option, error) {
			roles, err := api.Roles.List(ctx)
			return optionsOf(roles, func(r model.Role) admin.Option {
				return admin.Option{Value: model.IDString(r), Label: r.DisplayName}
			}), err
		},
		"permissions": func(ctx context.Context, lang string) ([]admin.Option, error) {
			perms, err := api.Permissions.List(ctx)
			return optionsOf(perms, func(p model.Permission) admin.Option {
				return admin.Option{Value: model.IDString(p), Label: p.DisplayName(lang), Group: p.Module}
			}), err
		},
		"menus": func(ctx context.Context, lang string) ([]admin.Option, error) {
			menus, err := api.Menus.List(ctx)
			return optionsOf(menus, func(m model.MenuItem) admin.Option {
				return admin.Option{Value: model.IDString(m), Label: m.Title(lang)}
			}), err
		},
	}
}

func optionsOf[T any](items []T, fn func(T) admin.Option) []admin.Option {
	out := make([]admin.Option, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}

// loadOptions resolves the option sources used by res's fields in
// parallel. A failed source leaves its select empty. The record being
// edited, selfID, is not offered as a choice of its own fields.
func (h *AdminHandler) loadOptions(ctx context.Context, lang string, res *admin.Resource, selfID int64) (map[string][]admin.Option, map[string][]admin.OptionGroup) {
	var (
		g      errgroup.Group
		mu     sync.Mutex
		opts   = map[string][]admin.Option{}
		groups = map[string][]admin.OptionGroup{}
	)
	self := strconv.FormatInt(selfID, 10)

	for _, f := range res.Fields {
		if f.Options == "" {
			continue
		}
		if static, ok := h.schema.StaticOptions(f.Options); ok {
			translated := make([]admin.Option, 0, len(static))
			for _, o := range static {
				translated = append(translated, admin.Option{Value: o.Value, Label: i18n.T(lang, o.Label)})
			}
			opts[f.Name] = translated
			continue
		}
		load, ok := h.loaders[f.Options]
		if !ok {
			h.logger.WarnContext(ctx, "unknown option source", "resource", res.Name, "field", f.Name, "source", f.Options)
			continue
		}
		g.Go(func() error {
			loaded, err := load(ctx, lang)
			if err != nil {
				h.logger.WarnContext(ctx, "backend fetch failed, using empty result", "what", f.Options, "error", err)
			}
			if res.Name == f.Options && selfID > 0 {
				filtered := loaded[:0]
				for _, o := range loaded {
					if o.Value != self {
						filtered = append(filtered, o)
					}
				}
				loaded = filtered
			}
			mu.Lock()
			opts[f.Name] = loaded
			if f.Kind == admin.FieldMultiSelect {
				groups[f.Name] = admin.GroupOptions(loaded)
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return opts, groups
}
