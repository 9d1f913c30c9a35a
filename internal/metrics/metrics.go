// hevygate - Hevy API proxy with exercise template resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hevygate

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - inbound API requests
// - outbound Hevy API calls
// - the exercise template cache and its refresh job
// - the upstream circuit breaker

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Upstream (Hevy) Metrics
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hevy_upstream_requests_total",
			Help: "Total number of requests sent to the Hevy API",
		},
		[]string{"operation", "status_code"}, // status_code "error" for transport failures
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hevy_upstream_request_duration_seconds",
			Help:    "Duration of Hevy API requests in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)

	// Template Cache Metrics
	TemplateRefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "template_refresh_duration_seconds",
			Help:    "Duration of exercise template refreshes in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	TemplateRefreshErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "template_refresh_errors_total",
			Help: "Total number of failed exercise template refreshes",
		},
	)

	TemplateRefreshLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "template_refresh_last_success_timestamp",
			Help: "Unix timestamp of the last successful template refresh",
		},
	)

	TemplateCacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "template_cache_entries",
			Help: "Number of exercise templates in the live cache",
		},
	)

	TemplateLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "template_lookups_total",
			Help: "Title lookups performed while rewriting workouts",
		},
		[]string{"result"}, // "hit", "miss"
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordUpstreamRequest records one Hevy API call. status 0 means the call
// failed before a response arrived.
func RecordUpstreamRequest(operation string, status int, duration time.Duration) {
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	UpstreamRequestsTotal.WithLabelValues(operation, code).Inc()
	UpstreamRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordTemplateRefresh records the outcome of a template refresh.
func RecordTemplateRefresh(duration time.Duration, entries int, err error) {
	TemplateRefreshDuration.Observe(duration.Seconds())
	if err != nil {
		TemplateRefreshErrors.Inc()
		return
	}
	TemplateCacheEntries.Set(float64(entries))
	TemplateRefreshLastSuccess.Set(float64(time.Now().Unix()))
}

// RecordTemplateLookup counts a cache hit or miss.
func RecordTemplateLookup(hit bool) {
	if hit {
		TemplateLookups.WithLabelValues("hit").Inc()
		return
	}
	TemplateLookups.WithLabelValues("miss").Inc()
}
