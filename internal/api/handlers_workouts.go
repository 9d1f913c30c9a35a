// hevygate - Hevy API proxy with exercise template resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hevygate

package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/hevygate/internal/hevy"
	"github.com/tomtom215/hevygate/internal/logging"
	"github.com/tomtom215/hevygate/internal/workout"
)

const defaultWorkoutsPageSize = 10

// ListWorkouts relays one page of the user's workouts.
//
// GET /workouts?page=1&pageSize=10&since=...
func (h *Handler) ListWorkouts(w http.ResponseWriter, r *http.Request) {
	q := hevy.WorkoutsQuery{
		Page:     getIntParam(r, "page", 1),
		PageSize: clampPageSize(getIntParam(r, "pageSize", defaultWorkoutsPageSize)),
		Since:    r.URL.Query().Get("since"),
	}

	body, err := h.client.Workouts(r.Context(), q)
	if err != nil {
		writeUpstreamError(w, r, "workouts", err)
		return
	}
	relayJSON(w, http.StatusOK, body)
}

// CreateWorkout resolves exercise titles to template ids, strips fields
// Hevy rejects and forwards the workout. Nothing is sent upstream when the
// payload is malformed or names an unknown exercise.
//
// POST /workouts
func (h *Handler) CreateWorkout(w http.ResponseWriter, r *http.Request) {
	raw, ok := h.readBody(w, r)
	if !ok {
		return
	}

	payload, err := workout.Decode(raw)
	if err != nil {
		writeRewriteError(w, r, err)
		return
	}

	if err := workout.Rewrite(payload, countingLookup{cache: h.cache}); err != nil {
		writeRewriteError(w, r, err)
		return
	}

	out, err := json.Marshal(payload)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to encode rewritten workout")
		respondDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	body, err := h.client.CreateWorkout(r.Context(), out)
	if err != nil {
		writeUpstreamError(w, r, "create_workout", err)
		return
	}

	logging.Ctx(r.Context()).Info().Msg("Workout created")
	relayJSON(w, http.StatusCreated, body)
}
