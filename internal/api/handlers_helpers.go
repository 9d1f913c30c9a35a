// hevygate - Hevy API proxy with exercise template resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hevygate

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/hevygate/internal/hevy"
	"github.com/tomtom215/hevygate/internal/logging"
	"github.com/tomtom215/hevygate/internal/workout"
)

// maxPageSize is the largest page size Hevy accepts on list endpoints.
const maxPageSize = 10

// errorResponse is the body of every error this service produces.
type errorResponse struct {
	Detail string `json:"detail"`
}

// sanitizeLogValue replaces control characters so client input cannot forge log lines.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&result, "\\x%02x", r)
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON marshals v and writes it with the given status.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	relayJSON(w, status, data)
}

// relayJSON writes an already encoded JSON body unchanged.
func relayJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondDetail writes {"detail": detail}.
func respondDetail(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, errorResponse{Detail: detail})
}

// writeUpstreamError maps a hevy client error to a response:
// an upstream 4xx/5xx is relayed with its body as detail, an open
// breaker is 503, anything else (transport failure, timeout) is 502.
func writeUpstreamError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	var upErr *hevy.UpstreamError
	switch {
	case errors.As(err, &upErr) && upErr.Status < http.StatusBadRequest:
		// 1xx and 3xx cannot carry a detail body.
		logging.Ctx(r.Context()).Warn().
			Str("operation", operation).
			Int("status", upErr.Status).
			Msg("Hevy returned an unexpected status")
		respondDetail(w, http.StatusBadGateway,
			fmt.Sprintf("Hevy API returned unexpected status %d", upErr.Status))
	case errors.As(err, &upErr):
		logging.Ctx(r.Context()).Warn().
			Str("operation", operation).
			Int("status", upErr.Status).
			Msg("Hevy returned an error")
		respondDetail(w, upErr.Status, string(upErr.Body))
	case errors.Is(err, hevy.ErrCircuitOpen):
		logging.Ctx(r.Context()).Warn().Str("operation", operation).Msg("Hevy circuit open; request rejected")
		respondDetail(w, http.StatusServiceUnavailable, "Hevy API temporarily unavailable")
	default:
		logging.Ctx(r.Context()).Error().Err(err).Str("operation", operation).Msg("Hevy request failed")
		respondDetail(w, http.StatusBadGateway, "Hevy API request failed: "+err.Error())
	}
}

// writeRewriteError maps a workout rewrite error to 400 or 422.
func writeRewriteError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *workout.ValidationError
	if errors.As(err, &verr) {
		logging.Ctx(r.Context()).Info().
			Str("title", sanitizeLogValue(verr.Title)).
			Msg("Workout rejected: unknown exercise title")
		respondDetail(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	var merr *workout.MalformedError
	if errors.As(err, &merr) {
		logging.Ctx(r.Context()).Info().Str("reason", merr.Reason).Msg("Workout rejected: malformed")
		respondDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	logging.Ctx(r.Context()).Error().Err(err).Msg("Workout rewrite failed")
	respondDetail(w, http.StatusInternalServerError, "Internal server error")
}

// readBody reads the request body up to the handler's limit. On failure
// it has already written the response and returns false.
func (h *Handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondDetail(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit))
			return nil, false
		}
		respondDetail(w, http.StatusBadRequest, "Failed to read request body")
		return nil, false
	}
	return body, true
}

// readJSONBody reads the body and checks that it is a JSON document.
func (h *Handler) readJSONBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, ok := h.readBody(w, r)
	if !ok {
		return nil, false
	}
	if !json.Valid(body) {
		respondDetail(w, http.StatusBadRequest, "Request body is not valid JSON")
		return nil, false
	}
	return body, true
}

// getIntParam extracts an integer query parameter with a default value.
// Missing and non-numeric values both yield the default.
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

// clampPageSize forces n into [1, maxPageSize].
func clampPageSize(n int) int {
	return min(max(n, 1), maxPageSize)
}
