// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package uikit provides reusable template helpers and view model types
// for the portal's Bengali and English pages.
package uikit

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// MonthsBn contains Bengali month names.
var MonthsBn = []string{
	"জানুয়ারি", "ফেব্রুয়ারি", "মার্চ", "এপ্রিল", "মে", "জুন",
	"জুলাই", "আগস্ট", "সেপ্টেম্বর", "অক্টোবর", "নভেম্বর", "ডিসেম্বর",
}

// DaysBn contains Bengali weekday names, Sunday first.
var DaysBn = []string{
	"রবিবার", "সোমবার", "মঙ্গলবার", "বুধবার", "বৃহস্পতিবার", "শুক্রবার", "শনিবার",
}

var banglaDigits = []rune{'০', '১', '২', '৩', '৪', '৫', '৬', '৭', '৮', '৯'}

// contentPolicy sanitizes article bodies authored in the admin console.
var contentPolicy = bluemonday.UGCPolicy()

// TemplateFuncs returns a template.FuncMap with pure helper functions.
//
// Callers can merge project-specific functions on top:
//
//	funcs := uikit.TemplateFuncs()
//	funcs["T"] = i18n.T
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		// String functions
		"lower":     strings.ToLower,
		"upper":     strings.ToUpper,
		"hasPrefix": strings.HasPrefix,
		"truncate":  Truncate,
		"contains": func(collection []int64, element int64) bool {
			for _, v := range collection {
				if v == element {
					return true
				}
			}
			return false
		},

		// HTML/URL safety
		"sanitize": SanitizeHTML,
		"safeCSS": func(s string) template.CSS {
			return template.CSS(s)
		},

		// Math
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},

		// Numbers and time
		"digits":     LocalizeDigits,
		"formatDate": FormatDate,
		"headerDate": FormatLongDate,
		"clockTime":  FormatClock,
		"formatDateTime": func(t *time.Time, lang string) string {
			if t == nil {
				return ""
			}
			return FormatDateTime(*t, lang)
		},

		// Data structures
		"dict": func(values ...any) map[string]any {
			if len(values)%2 != 0 {
				return nil
			}
			dict := make(map[string]any, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					continue
				}
				dict[key] = values[i+1]
			}
			return dict
		},
	}
}

// Truncate shortens s to at most length runes, appending an ellipsis when
// anything was cut.
func Truncate(s string, length int) string {
	r := []rune(s)
	if len(r) <= length {
		return s
	}
	return strings.TrimSpace(string(r[:length])) + "..."
}

// SanitizeHTML strips unsafe markup from user generated HTML.
func SanitizeHTML(s string) template.HTML {
	return template.HTML(contentPolicy.Sanitize(s)) // #nosec G203 -- sanitized by bluemonday
}

// BanglaDigits replaces ASCII digits in s with Bengali digits.
func BanglaDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(banglaDigits[r-'0'])
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// LocalizeDigits formats v for lang. Bengali uses Bengali digits.
func LocalizeDigits(v any, lang string) string {
	var s string
	switch n := v.(type) {
	case int:
		s = strconv.Itoa(n)
	case int64:
		s = strconv.FormatInt(n, 10)
	case string:
		s = n
	default:
		s = fmt.Sprint(v)
	}
	if lang == "en" {
		return s
	}
	return BanglaDigits(s)
}

// FormatLongDate formats the header date, e.g. "রবিবার, ১৯ অক্টোবর ২০২৬"
// or "Monday, October 19, 2026".
func FormatLongDate(t time.Time, lang string) string {
	if lang == "en" {
		return t.Format("Monday, January 2, 2006")
	}
	return fmt.Sprintf("%s, %s %s %s",
		DaysBn[t.Weekday()],
		BanglaDigits(strconv.Itoa(t.Day())),
		MonthsBn[t.Month()-1],
		BanglaDigits(strconv.Itoa(t.Year())),
	)
}

// FormatClock formats the live clock text. Bengali components are not
// zero padded.
func FormatClock(t time.Time, lang string) string {
	if lang == "en" {
		return t.Format("03:04:05 PM")
	}
	return BanglaDigits(fmt.Sprintf("%d:%d:%d", t.Hour(), t.Minute(), t.Second()))
}

// FormatDate formats an article date.
func FormatDate(t time.Time, lang string) string {
	if t.IsZero() {
		return ""
	}
	if lang == "en" {
		return t.Format("January 2, 2006")
	}
	return fmt.Sprintf("%s %s %s",
		BanglaDigits(strconv.Itoa(t.Day())),
		MonthsBn[t.Month()-1],
		BanglaDigits(strconv.Itoa(t.Year())),
	)
}

// FormatDateTime formats a timestamp for admin tables.
func FormatDateTime(t time.Time, lang string) string {
	if lang == "en" {
		return t.Format("Jan 2, 2006 3:04 PM")
	}
	return fmt.Sprintf("%s, %s", FormatDate(t, lang), BanglaDigits(t.Format("15:04")))
}
