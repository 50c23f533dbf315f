// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the REST handlers of the reference news backend.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/protidin-go/internal/model"
	"github.com/olegiv/protidin-go/internal/store"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	store  *store.Store
	logger *slog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(st *store.Store, logger *slog.Logger) *Handler {
	return &Handler{store: st, logger: logger}
}

// ErrorResponse is the error body of every failed request.
type ErrorResponse struct {
	StatusCode int `json:"statusCode"`
	Message    any `json:"message"` // string, or a list of field messages
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, message any) {
	WriteJSON(w, statusCode, ErrorResponse{StatusCode: statusCode, Message: message})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message any) {
	WriteError(w, http.StatusBadRequest, message)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, message)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message)
}

// WriteValidationError writes a 400 response listing the rejected fields.
func WriteValidationError(w http.ResponseWriter, err error) {
	fields := model.InvalidFields(err)
	if len(fields) == 0 {
		WriteBadRequest(w, "Validation failed")
		return
	}
	messages := make([]string, 0, len(fields))
	for _, f := range fields {
		messages = append(messages, f+" is invalid")
	}
	WriteBadRequest(w, messages)
}

// decodeInput reads and validates a JSON request body into T.
// On failure the response has been written.
func decodeInput[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var in T
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&in); err != nil {
		WriteBadRequest(w, "Invalid JSON body")
		return in, false
	}
	if err := model.Validate(in); err != nil {
		WriteValidationError(w, err)
		return in, false
	}
	return in, true
}

// idParam parses the {id} URL parameter. On failure a 400 has been written.
func idParam(w http.ResponseWriter, r *http.Request, entity string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		WriteBadRequest(w, "Invalid "+entity+" ID")
		return 0, false
	}
	return id, true
}

// writeStoreError maps a store error onto the response.
func (h *Handler) writeStoreError(w http.ResponseWriter, r *http.Request, entity string, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		WriteNotFound(w, capitalizeFirst(entity)+" not found")
	case errors.Is(err, store.ErrConflict):
		WriteError(w, http.StatusConflict, capitalizeFirst(entity)+" already exists")
	case errors.Is(err, store.ErrPasswordRequired):
		WriteBadRequest(w, []string{"password is required"})
	default:
		h.logger.ErrorContext(r.Context(), "store operation failed", "entity", entity, "error", err)
		WriteInternalError(w, fmt.Sprintf("Failed to process %s", entity))
	}
}

// capitalizeFirst returns s with the first letter capitalized.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
