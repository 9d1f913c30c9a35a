// hevygate - Hevy API proxy with exercise template resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hevygate

package hevy

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	// ErrNoMorePages is returned by ExerciseTemplatesPage when Hevy answers
	// 404 for a page past the end of the catalog.
	ErrNoMorePages = errors.New("hevy: no more pages")

	// ErrCircuitOpen is returned while the circuit breaker rejects calls.
	ErrCircuitOpen = errors.New("hevy: circuit breaker open")
)

// UpstreamError is a non-2xx response from Hevy. Handlers relay Status and
// Body to the caller unchanged.
type UpstreamError struct {
	Operation string
	Status    int
	Body      []byte
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s request failed with status %d: %s", e.Operation, e.Status, e.Body)
}

// IsServerError reports whether the upstream failed on its side (5xx).
func (e *UpstreamError) IsServerError() bool {
	return e.Status >= http.StatusInternalServerError
}

// maxErrorBodySize bounds how much of an error response is kept.
const maxErrorBodySize = 64 * 1024

// readBodyForError reads at most maxErrorBodySize bytes of an error body.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}
