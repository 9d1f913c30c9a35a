// hevygate - Hevy API proxy with exercise template resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hevygate

// Package middleware holds HTTP middleware that is independent of the
// router. PrometheusMetrics records request count, latency and in-flight
// requests into package metrics.
package middleware
