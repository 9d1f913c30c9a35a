// hevygate - Hevy API proxy with exercise template resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hevygate

/*
Package metrics defines the Prometheus metrics exported at /metrics.

All collectors are registered with promauto on the default registry.

API (inbound):
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests

Hevy (outbound):
  - hevy_upstream_requests_total{operation, status_code}; status_code is
    "error" when no response arrived
  - hevy_upstream_request_duration_seconds{operation}

Template cache:
  - template_refresh_duration_seconds
  - template_refresh_errors_total
  - template_refresh_last_success_timestamp
  - template_cache_entries
  - template_lookups_total{result}; result is "hit" or "miss"

Circuit breaker:
  - circuit_breaker_state{name}; 0 closed, 1 half-open, 2 open
  - circuit_breaker_requests_total{name, result}
  - circuit_breaker_state_transitions_total{name, from_state, to_state}
*/
package metrics
