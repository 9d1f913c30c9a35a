// hevygate - Hevy API proxy with exercise template resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hevygate

package hevy

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/hevygate/internal/logging"
	"github.com/tomtom215/hevygate/internal/metrics"
)

// CircuitBreakerClient wraps an API with a circuit breaker.
//
// Only transport failures and 5xx responses count against the breaker. A 4xx
// is the caller's problem and is relayed without affecting breaker state, as
// is the 404 that ends template paging. The breaker never retries.
type CircuitBreakerClient struct {
	client API
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
}

// BreakerSettings tunes the breaker. Zero values take the defaults below.
type BreakerSettings struct {
	// MaxRequests allowed in half-open state (default 3).
	MaxRequests uint32
	// Interval after which closed-state counts reset (default 1m).
	Interval time.Duration
	// Timeout spent open before probing (default 1m).
	Timeout time.Duration
	// MinRequests before the failure ratio is considered (default 10).
	MinRequests uint32
	// FailureRatio that opens the circuit (default 0.6).
	FailureRatio float64
}

func (s BreakerSettings) withDefaults() BreakerSettings {
	if s.MaxRequests == 0 {
		s.MaxRequests = 3
	}
	if s.Interval == 0 {
		s.Interval = time.Minute
	}
	if s.Timeout == 0 {
		s.Timeout = time.Minute
	}
	if s.MinRequests == 0 {
		s.MinRequests = 10
	}
	if s.FailureRatio == 0 {
		s.FailureRatio = 0.6
	}
	return s
}

// NewCircuitBreakerClient wraps client. name labels the breaker metrics.
func NewCircuitBreakerClient(client API, name string, settings BreakerSettings) *CircuitBreakerClient {
	s := settings.withDefaults()

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			if failureRatio >= s.FailureRatio {
				logging.Warn().
					Str("breaker", name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("Opening circuit")
				return true
			}
			return false
		},
		IsSuccessful: countsAsSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &CircuitBreakerClient{client: client, cb: cb, name: name}
}

// countsAsSuccess decides what the breaker treats as a healthy upstream.
func countsAsSuccess(err error) bool {
	if err == nil || errors.Is(err, ErrNoMorePages) || errors.Is(err, context.Canceled) {
		return true
	}
	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) {
		return !upstreamErr.IsServerError()
	}
	return false
}

// State returns the current breaker state as "closed", "half-open" or "open".
func (cbc *CircuitBreakerClient) State() string {
	return stateToString(cbc.cb.State())
}

func (cbc *CircuitBreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := cbc.cb.Execute(fn)
	if err == nil {
		metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "success").Inc()
		return result, nil
	}

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "rejected").Inc()
		return nil, fmt.Errorf("%w: %w", ErrCircuitOpen, err)
	}

	if countsAsSuccess(err) {
		metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "success").Inc()
	} else {
		metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "failure").Inc()
	}
	return nil, err
}

// castResult type-asserts a breaker result.
func castResult[T any](result interface{}, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// ExerciseTemplatesPage fetches a template page with circuit breaker protection.
func (cbc *CircuitBreakerClient) ExerciseTemplatesPage(ctx context.Context, page, pageSize int) ([]ExerciseTemplate, error) {
	return castResult[[]ExerciseTemplate](cbc.execute(func() (interface{}, error) {
		return cbc.client.ExerciseTemplatesPage(ctx, page, pageSize)
	}))
}

// Workouts lists workouts with circuit breaker protection.
func (cbc *CircuitBreakerClient) Workouts(ctx context.Context, q WorkoutsQuery) ([]byte, error) {
	return castResult[[]byte](cbc.execute(func() (interface{}, error) {
		return cbc.client.Workouts(ctx, q)
	}))
}

// CreateWorkout creates a workout with circuit breaker protection.
func (cbc *CircuitBreakerClient) CreateWorkout(ctx context.Context, body []byte) ([]byte, error) {
	return castResult[[]byte](cbc.execute(func() (interface{}, error) {
		return cbc.client.CreateWorkout(ctx, body)
	}))
}

// Routines lists routines with circuit breaker protection.
func (cbc *CircuitBreakerClient) Routines(ctx context.Context, q RoutinesQuery) ([]byte, error) {
	return castResult[[]byte](cbc.execute(func() (interface{}, error) {
		return cbc.client.Routines(ctx, q)
	}))
}

// Routine fetches a routine with circuit breaker protection.
func (cbc *CircuitBreakerClient) Routine(ctx context.Context, id string) ([]byte, error) {
	return castResult[[]byte](cbc.execute(func() (interface{}, error) {
		return cbc.client.Routine(ctx, id)
	}))
}

// CreateRoutine creates a routine with circuit breaker protection.
func (cbc *CircuitBreakerClient) CreateRoutine(ctx context.Context, body []byte) ([]byte, error) {
	return castResult[[]byte](cbc.execute(func() (interface{}, error) {
		return cbc.client.CreateRoutine(ctx, body)
	}))
}

// UpdateRoutine updates a routine with circuit breaker protection.
func (cbc *CircuitBreakerClient) UpdateRoutine(ctx context.Context, id string, body []byte) ([]byte, error) {
	return castResult[[]byte](cbc.execute(func() (interface{}, error) {
		return cbc.client.UpdateRoutine(ctx, id, body)
	}))
}
