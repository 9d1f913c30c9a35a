// hevygate - Hevy API proxy with exercise template resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hevygate

package api

import (
	"net/http"
	"time"
)

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status             string     `json:"status"`
	Templates          int        `json:"templates"`
	TemplatesUpdatedAt *time.Time `json:"templates_updated_at,omitempty"`
	CircuitBreaker     string     `json:"circuit_breaker,omitempty"`
	Uptime             float64    `json:"uptime"`
}

// breakerStater is implemented by *hevy.CircuitBreakerClient.
type breakerStater interface {
	State() string
}

// Health reports the template cache and upstream breaker state.
// Status is "degraded" while the cache is empty or the breaker is open.
//
// GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	health := HealthStatus{
		Status:    "healthy",
		Templates: h.cache.Len(),
		Uptime:    time.Since(h.startTime).Seconds(),
	}
	if updated := h.cache.UpdatedAt(); !updated.IsZero() {
		health.TemplatesUpdatedAt = &updated
	}
	if b, ok := h.client.(breakerStater); ok {
		health.CircuitBreaker = b.State()
	}

	if health.Templates == 0 || health.CircuitBreaker == "open" {
		health.Status = "degraded"
	}

	respondJSON(w, http.StatusOK, health)
}

// HealthLive returns 200 while the process is up, regardless of Hevy.
//
// GET /health/live
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady returns 200 once the template cache holds at least one
// entry and 503 before that.
//
// GET /health/ready
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	templates := h.cache.Len()
	ready := templates > 0

	statusCode := http.StatusOK
	status := "ready"
	if !ready {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, map[string]interface{}{
		"status":    status,
		"templates": templates,
	})
}
