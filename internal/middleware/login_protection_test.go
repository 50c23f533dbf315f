// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLoginProtection_Lockout(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{
		MaxFailedAttempts: 3,
		LockoutDuration:   time.Minute,
		AttemptWindow:     time.Hour,
	})
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	lp.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		if locked, _ := lp.RecordFailedAttempt("admin"); locked {
			t.Fatalf("locked after %d attempts", i+1)
		}
	}
	locked, d := lp.RecordFailedAttempt("admin")
	if !locked || d != time.Minute {
		t.Fatalf("third failure: locked=%v duration=%v, want true 1m", locked, d)
	}
	if locked, _ := lp.IsLocked("admin"); !locked {
		t.Error("IsLocked should be true during lockout")
	}
	if locked, _ := lp.IsLocked("editor"); locked {
		t.Error("other usernames are not locked")
	}

	now = now.Add(2 * time.Minute)
	if locked, _ := lp.IsLocked("admin"); locked {
		t.Error("lockout should expire")
	}

	// Second lockout doubles the duration.
	for i := 0; i < 2; i++ {
		lp.RecordFailedAttempt("admin")
	}
	if _, d := lp.RecordFailedAttempt("admin"); d != 2*time.Minute {
		t.Errorf("second lockout = %v, want 2m", d)
	}

	lp.RecordSuccessfulLogin("admin")
	if locked, _ := lp.IsLocked("admin"); locked {
		t.Error("successful login clears the lockout")
	}
}

func TestLoginProtection_WindowReset(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{MaxFailedAttempts: 2, AttemptWindow: time.Minute})
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	lp.now = func() time.Time { return now }

	lp.RecordFailedAttempt("admin")
	now = now.Add(2 * time.Minute)
	if locked, _ := lp.RecordFailedAttempt("admin"); locked {
		t.Error("attempts outside the window should not lock")
	}

	now = now.Add(time.Hour)
	lp.cleanupStaleEntries()
	lp.attemptsMu.RLock()
	n := len(lp.failedAttempts)
	lp.attemptsMu.RUnlock()
	if n != 0 {
		t.Errorf("stale entries = %d, want 0", n)
	}
}

func TestLoginProtection_Middleware(t *testing.T) {
	lp := NewLoginProtection(LoginProtectionConfig{IPRateLimit: 0.001, IPBurst: 2})
	h := lp.Middleware()(okHandler())

	post := func(addr string) int {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	if post("10.0.0.1:1111") != http.StatusOK || post("10.0.0.1:2222") != http.StatusOK {
		t.Fatal("burst requests should pass")
	}
	if got := post("10.0.0.1:3333"); got != http.StatusTooManyRequests {
		t.Errorf("third request status = %d, want 429", got)
	}
	if got := post("10.0.0.2:1111"); got != http.StatusOK {
		t.Errorf("other IP status = %d, want 200", got)
	}

	// GET is never limited.
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.RemoteAddr = "10.0.0.1:4444"
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("GET status = %d, want 200", rec.Code)
	}
}
