// hevygate - Hevy API proxy with exercise template resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hevygate

package api

import (
	"context"
	"net/http"

	"github.com/tomtom215/hevygate/internal/logging"
)

type templatesResponse struct {
	Templates map[string]string `json:"templates"`
}

type refreshResponse struct {
	Count int `json:"count"`
}

// AllTemplates returns the live title to template id mapping.
//
// GET /exercise_templates/all
func (h *Handler) AllTemplates(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, templatesResponse{Templates: h.cache.Snapshot()})
}

// RefreshTemplates rebuilds the template cache now and reports its size.
// A refresh already running is joined rather than repeated.
//
// POST /exercise_templates/refresh
func (h *Handler) RefreshTemplates(w http.ResponseWriter, r *http.Request) {
	// The rebuild is shared with other callers, so a client disconnect must
	// not cancel it.
	ctx := context.WithoutCancel(r.Context())

	count, err := h.refresher.Refresh(ctx)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Manual template refresh failed")
		writeUpstreamError(w, r, "exercise_templates", err)
		return
	}

	respondJSON(w, http.StatusOK, refreshResponse{Count: count})
}
