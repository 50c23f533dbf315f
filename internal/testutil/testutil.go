// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers for the backend packages.
package testutil

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/olegiv/protidin-go/internal/store"

	_ "github.com/mattn/go-sqlite3"
)

// TestAdminPassword is the password of the admin account seeded by TestStore.
const TestAdminPassword = "changeme"

// TestLogger creates a test logger that only outputs warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestLoggerSilent creates a logger that discards everything.
func TestLoggerSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestDB opens a migrated in-memory SQLite database with foreign keys on.
// The database is closed when the test ends.
func TestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	// One connection: every connection to ":memory:" is a new database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(db, store.DriverSQLite); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

// TestStore returns a Store on TestDB holding the default seed data, with
// the admin password set to TestAdminPassword.
func TestStore(t *testing.T) *store.Store {
	t.Helper()

	st := store.New(TestDB(t))
	opts := store.SeedOptions{AdminPassword: TestAdminPassword}
	if err := store.Seed(context.Background(), st, opts, TestLoggerSilent()); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	return st
}
