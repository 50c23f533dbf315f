// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestContextHandler_AddsRequestAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewContextHandler(slog.NewTextHandler(&buf, nil)))

	ctx := context.WithValue(context.Background(), chimw.RequestIDKey, "req-42")
	ctx = WithPath(ctx, "/news/7")
	logger.InfoContext(ctx, "fetched article")

	out := buf.String()
	if !strings.Contains(out, "request_id=req-42") {
		t.Errorf("output missing request_id: %s", out)
	}
	if !strings.Contains(out, "path=/news/7") {
		t.Errorf("output missing path: %s", out)
	}
}

func TestContextHandler_NoContextValues(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewContextHandler(slog.NewTextHandler(&buf, nil)))

	logger.Info("plain message")

	out := buf.String()
	if strings.Contains(out, "request_id=") || strings.Contains(out, "path=") {
		t.Errorf("unexpected request attrs: %s", out)
	}
}

func TestContextHandler_WithAttrsKeepsEnrichment(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewContextHandler(slog.NewTextHandler(&buf, nil))).With("component", "apiclient")

	ctx := WithPath(context.Background(), "/photos")
	logger.WarnContext(ctx, "backend slow")

	out := buf.String()
	if !strings.Contains(out, "component=apiclient") || !strings.Contains(out, "path=/photos") {
		t.Errorf("output = %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger, closer := newLogger(&buf, Options{Level: "warn"})
	defer func() { _ = closer.Close() }()

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info record should be filtered at warn level")
	}
	if !strings.Contains(out, "shown") {
		t.Error("warn record missing")
	}
}

func TestNewLogger_File(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "protidin.log")
	logger, closer := newLogger(&buf, Options{Level: "info", File: path})

	logger.Info("to both")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if !strings.Contains(buf.String(), "to both") {
		t.Error("stdout writer missing record")
	}
}
