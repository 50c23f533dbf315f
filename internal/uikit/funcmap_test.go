// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package uikit

import (
	"strings"
	"testing"
	"time"
)

func TestBanglaDigits(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"0123456789", "০১২৩৪৫৬৭৮৯"},
		{"2026", "২০২৬"},
		{"12:5:9", "১২:৫:৯"},
		{"abc", "abc"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := BanglaDigits(tt.input); got != tt.expected {
			t.Errorf("BanglaDigits(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestLocalizeDigits(t *testing.T) {
	tests := []struct {
		value    any
		lang     string
		expected string
	}{
		{int64(1520), "bn", "১৫২০"},
		{int64(1520), "en", "1520"},
		{7, "bn", "৭"},
		{"42", "en", "42"},
	}
	for _, tt := range tests {
		if got := LocalizeDigits(tt.value, tt.lang); got != tt.expected {
			t.Errorf("LocalizeDigits(%v, %q) = %q, want %q", tt.value, tt.lang, got, tt.expected)
		}
	}
}

func TestFormatLongDate(t *testing.T) {
	// 2026-10-19 is a Monday.
	ts := time.Date(2026, time.October, 19, 9, 5, 3, 0, time.UTC)

	if got, want := FormatLongDate(ts, "bn"), "সোমবার, ১৯ অক্টোবর ২০২৬"; got != want {
		t.Errorf("FormatLongDate(bn) = %q, want %q", got, want)
	}
	if got, want := FormatLongDate(ts, "en"), "Monday, October 19, 2026"; got != want {
		t.Errorf("FormatLongDate(en) = %q, want %q", got, want)
	}
}

func TestFormatClock(t *testing.T) {
	ts := time.Date(2026, time.October, 19, 9, 5, 3, 0, time.UTC)

	if got, want := FormatClock(ts, "bn"), "৯:৫:৩"; got != want {
		t.Errorf("FormatClock(bn) = %q, want %q", got, want)
	}
	if got, want := FormatClock(ts, "en"), "09:05:03 AM"; got != want {
		t.Errorf("FormatClock(en) = %q, want %q", got, want)
	}
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2025, time.March, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		lang     string
		expected string
	}{
		{"bn", "১৫ মার্চ ২০২৫"},
		{"en", "March 15, 2025"},
	}
	for _, tt := range tests {
		if got := FormatDate(ts, tt.lang); got != tt.expected {
			t.Errorf("FormatDate(%q) = %q, want %q", tt.lang, got, tt.expected)
		}
	}
	if got := FormatDate(time.Time{}, "en"); got != "" {
		t.Errorf("FormatDate(zero) = %q, want empty", got)
	}
	if got, want := FormatDateTime(ts, "en"), "Mar 15, 2025 2:30 PM"; got != want {
		t.Errorf("FormatDateTime(en) = %q, want %q", got, want)
	}
	if got, want := FormatDateTime(ts, "bn"), "১৫ মার্চ ২০২৫, ১৪:৩০"; got != want {
		t.Errorf("FormatDateTime(bn) = %q, want %q", got, want)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		length   int
		expected string
	}{
		{"hello world", 5, "hello..."},
		{"hello", 5, "hello"},
		{"", 5, ""},
		{"সাতক্ষীরা", 3, "সাত..."},
	}
	for _, tt := range tests {
		if got := Truncate(tt.input, tt.length); got != tt.expected {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.length, got, tt.expected)
		}
	}
}

func TestSanitizeHTML(t *testing.T) {
	got := string(SanitizeHTML(`<p onclick="x()">Hi <b>there</b></p><script>alert(1)</script>`))

	if strings.Contains(got, "script") || strings.Contains(got, "onclick") {
		t.Errorf("SanitizeHTML kept unsafe markup: %q", got)
	}
	if !strings.Contains(got, "<b>there</b>") {
		t.Errorf("SanitizeHTML dropped safe markup: %q", got)
	}
}

func TestTemplateFuncs(t *testing.T) {
	funcs := TemplateFuncs()

	for _, name := range []string{"truncate", "sanitize", "digits", "formatDate", "headerDate", "clockTime", "dict", "contains"} {
		if _, ok := funcs[name]; !ok {
			t.Errorf("TemplateFuncs missing %q", name)
		}
	}

	contains := funcs["contains"].(func([]int64, int64) bool)
	if !contains([]int64{1, 2, 3}, 2) || contains([]int64{1}, 5) {
		t.Error("contains returned wrong result")
	}

	dict := funcs["dict"].(func(...any) map[string]any)
	if m := dict("a", 1, "b"); m != nil {
		t.Error("dict with odd arguments should be nil")
	}
	if m := dict("a", 1); m["a"] != 1 {
		t.Errorf("dict() = %v", m)
	}
}

func TestNavLinkTarget(t *testing.T) {
	if got := (NavLink{NewTab: true}).Target(); got != "_blank" {
		t.Errorf("Target() = %q, want _blank", got)
	}
	if got := (NavLink{}).Target(); got != "" {
		t.Errorf("Target() = %q, want empty", got)
	}
}

func TestChromePageTitle(t *testing.T) {
	tests := []struct {
		site, title, expected string
	}{
		{"Daily News", "Sports", "Sports | Daily News"},
		{"Daily News", "", "Daily News"},
		{"", "Sports", "Sports"},
	}
	for _, tt := range tests {
		if got := (Chrome{SiteName: tt.site}).PageTitle(tt.title); got != tt.expected {
			t.Errorf("PageTitle(%q) = %q, want %q", tt.title, got, tt.expected)
		}
	}
}
