// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"net/http"

	"github.com/olegiv/protidin-go/internal/model"
	"github.com/olegiv/protidin-go/internal/store"
)

// InvalidCredentials is the message of a rejected login.
const InvalidCredentials = "Invalid credentials"

// Login handles POST /admin/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeInput[model.LoginRequest](w, r)
	if !ok {
		return
	}

	profile, err := h.store.Authenticate(r.Context(), req.Username, req.Password)
	if errors.Is(err, store.ErrInvalidCredentials) {
		h.logger.InfoContext(r.Context(), "login rejected", "username", req.Username)
		WriteUnauthorized(w, InvalidCredentials)
		return
	}
	if err != nil {
		h.writeStoreError(w, r, "login", err)
		return
	}

	h.logger.InfoContext(r.Context(), "admin logged in", "admin_id", profile.ID)
	WriteJSON(w, http.StatusOK, model.LoginResponse{Success: true, Admin: &profile})
}

// Register handles POST /admin/register. The new account has no roles.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeInput[model.RegisterRequest](w, r)
	if !ok {
		return
	}

	user, err := h.store.Register(r.Context(), req)
	if err != nil {
		h.writeStoreError(w, r, "user", err)
		return
	}

	h.logger.InfoContext(r.Context(), "admin registered", "user_id", user.ID, "username", user.Username)
	WriteJSON(w, http.StatusCreated, model.AdminProfile{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
		Roles:    user.Roles,
	})
}
