// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package auth holds the admin console's login state.
//
// The state only decides which screens the portal renders. It is not a
// security boundary: every admin mutation is authorized (or not) by the
// backend, which the portal reaches over the same REST API as any client.
package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/protidin-go/internal/model"
)

// Session keys for the persisted login state.
const (
	SessionKeyAuthenticated = "is_authenticated"
	SessionKeyAdmin         = "admin"
)

// State is the login state of one request.
type State struct {
	Authenticated bool
	Admin         *model.AdminProfile
}

// DisplayName returns the name shown in the admin chrome.
func (s State) DisplayName() string {
	if s.Admin == nil {
		return ""
	}
	return s.Admin.DisplayName()
}

type contextKey struct{}

// WithState returns a context carrying s.
func WithState(ctx context.Context, s State) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the state injected by WithState, or the zero
// (unauthenticated) state.
func FromContext(ctx context.Context) State {
	s, _ := ctx.Value(contextKey{}).(State)
	return s
}

// Store persists the login state in the server-side session.
type Store struct {
	sm *scs.SessionManager
}

// NewStore creates a Store backed by sm.
func NewStore(sm *scs.SessionManager) *Store {
	return &Store{sm: sm}
}

// Load rehydrates the state from the session. A profile that no longer
// decodes is treated as logged out.
func (s *Store) Load(ctx context.Context) State {
	if !s.sm.GetBool(ctx, SessionKeyAuthenticated) {
		return State{}
	}

	st := State{Authenticated: true}
	if raw := s.sm.GetBytes(ctx, SessionKeyAdmin); len(raw) > 0 {
		var admin model.AdminProfile
		if err := json.Unmarshal(raw, &admin); err != nil {
			return State{}
		}
		st.Admin = &admin
	}
	return st
}

// Login stores the admin profile and the authenticated flag under a fresh
// session token.
func (s *Store) Login(ctx context.Context, admin model.AdminProfile) error {
	raw, err := json.Marshal(admin)
	if err != nil {
		return fmt.Errorf("encoding admin profile: %w", err)
	}
	if err := s.sm.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session token: %w", err)
	}
	s.sm.Put(ctx, SessionKeyAdmin, raw)
	s.sm.Put(ctx, SessionKeyAuthenticated, true)
	return nil
}

// Logout clears the login state. Other session values, such as the admin
// language, are kept.
func (s *Store) Logout(ctx context.Context) error {
	s.sm.Remove(ctx, SessionKeyAdmin)
	s.sm.Remove(ctx, SessionKeyAuthenticated)
	if err := s.sm.RenewToken(ctx); err != nil {
		return fmt.Errorf("renewing session token: %w", err)
	}
	return nil
}
