// hevygate - Hevy API proxy with exercise template resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hevygate

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/hevygate/internal/hevy"
)

const defaultRoutinesPageSize = 5

// ListRoutines relays one page of routines.
//
// GET /routines?page=1&pageSize=5
func (h *Handler) ListRoutines(w http.ResponseWriter, r *http.Request) {
	q := hevy.RoutinesQuery{
		Page:     getIntParam(r, "page", 1),
		PageSize: clampPageSize(getIntParam(r, "pageSize", defaultRoutinesPageSize)),
	}

	body, err := h.client.Routines(r.Context(), q)
	if err != nil {
		writeUpstreamError(w, r, "routines", err)
		return
	}
	relayJSON(w, http.StatusOK, body)
}

// GetRoutine relays a single routine.
//
// GET /routines/{id}
func (h *Handler) GetRoutine(w http.ResponseWriter, r *http.Request) {
	body, err := h.client.Routine(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUpstreamError(w, r, "routine", err)
		return
	}
	relayJSON(w, http.StatusOK, body)
}

// CreateRoutine forwards a routine unchanged.
//
// POST /routines
func (h *Handler) CreateRoutine(w http.ResponseWriter, r *http.Request) {
	in, ok := h.readJSONBody(w, r)
	if !ok {
		return
	}

	body, err := h.client.CreateRoutine(r.Context(), in)
	if err != nil {
		writeUpstreamError(w, r, "create_routine", err)
		return
	}
	relayJSON(w, http.StatusCreated, body)
}

// UpdateRoutine forwards a routine update unchanged.
//
// PUT /routines/{id}
func (h *Handler) UpdateRoutine(w http.ResponseWriter, r *http.Request) {
	in, ok := h.readJSONBody(w, r)
	if !ok {
		return
	}

	body, err := h.client.UpdateRoutine(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeUpstreamError(w, r, "update_routine", err)
		return
	}
	relayJSON(w, http.StatusOK, body)
}
