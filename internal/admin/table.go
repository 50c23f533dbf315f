// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package admin

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/olegiv/protidin-go/internal/i18n"
	"github.com/olegiv/protidin-go/internal/model"
	"github.com/olegiv/protidin-go/internal/uikit"
)

// Badge is a small status label.
type Badge struct {
	Label string
	Tone  string
}

// Cell is one rendered table cell.
type Cell struct {
	Text   string
	Image  string
	Badges []Badge
	Muted  bool
}

// Row is one table row.
type Row struct {
	ID    int64
	Cells []Cell
}

// Rows renders records as table rows in lang.
func Rows[T model.Identified](r *Resource, records []T, lang string) ([]Row, error) {
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("encoding %s record: %w", r.Name, err)
		}
		var doc map[string]any
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("decoding %s record: %w", r.Name, err)
		}

		row := Row{ID: rec.GetID(), Cells: make([]Cell, 0, len(r.Columns))}
		for _, c := range r.Columns {
			row.Cells = append(row.Cells, c.cell(doc, lang))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (c Column) cell(doc map[string]any, lang string) Cell {
	v := lookup(doc, c.Key)

	switch c.Kind {
	case ColumnID, ColumnText:
		return c.text(scalarString(v), lang)

	case ColumnLocalized:
		suffix := "_" + model.LangBengali
		if lang == model.LangEnglish {
			suffix = "_" + model.LangEnglish
		}
		return c.text(scalarString(lookup(doc, c.Key+suffix)), lang)

	case ColumnBool:
		if on, _ := v.(bool); on {
			return Cell{Badges: []Badge{{Label: i18n.T(lang, "status.active"), Tone: "success"}}}
		}
		return Cell{Badges: []Badge{{Label: i18n.T(lang, "status.inactive"), Tone: "muted"}}}

	case ColumnImage:
		return Cell{Image: scalarString(v)}

	case ColumnEnum:
		s := scalarString(v)
		if s == "" {
			return c.text("", lang)
		}
		return Cell{Text: i18n.T(lang, c.Prefix+s)}

	case ColumnCount:
		items, _ := v.([]any)
		return Cell{Text: strconv.Itoa(len(items))}

	case ColumnRefs:
		items, _ := v.([]any)
		names := make([]string, 0, len(items))
		for _, item := range items {
			if m, ok := item.(map[string]any); ok {
				if s := scalarString(m[c.Sub]); s != "" {
					names = append(names, s)
				}
			}
		}
		return c.text(strings.Join(names, ", "), lang)

	case ColumnDateTime:
		s, _ := v.(string)
		t, err := time.Parse(time.RFC3339, s)
		if err != nil || t.IsZero() {
			return c.text("", lang)
		}
		return Cell{Text: uikit.FormatDateTime(t, lang)}

	case ColumnFlags:
		var cell Cell
		for _, f := range c.Flags {
			if on, _ := lookup(doc, f.Key).(bool); on {
				cell.Badges = append(cell.Badges, Badge{Label: i18n.T(lang, f.Label), Tone: f.Tone})
			}
		}
		return cell
	}
	return Cell{}
}

// text returns a text cell, falling back to the column's empty label.
func (c Column) text(s, lang string) Cell {
	if s != "" {
		return Cell{Text: s}
	}
	if c.Empty != "" {
		return Cell{Text: i18n.T(lang, c.Empty), Muted: true}
	}
	return Cell{Text: "-", Muted: true}
}

// lookup follows a dotted path through nested JSON objects.
func lookup(doc map[string]any, path string) any {
	if path == "" {
		return nil
	}
	var cur any = doc
	for part := range strings.SplitSeq(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[part]
	}
	return cur
}
