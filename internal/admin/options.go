// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package admin

// DefaultGroup is the group of options that declare none.
const DefaultGroup = "other"

// OptionGroup is a run of options sharing a group, e.g. the permissions of
// one module.
type OptionGroup struct {
	Name    string
	Options []Option
}

// GroupOptions groups options in order of first appearance.
func GroupOptions(opts []Option) []OptionGroup {
	var groups []OptionGroup
	index := map[string]int{}
	for _, o := range opts {
		name := o.Group
		if name == "" {
			name = DefaultGroup
		}
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, OptionGroup{Name: name})
		}
		groups[i].Options = append(groups[i].Options, o)
	}
	return groups
}
