// hevygate - Hevy API proxy with exercise template resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hevygate

package hevy

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"
)

// fakeAPI returns err from every call and counts invocations.
type fakeAPI struct {
	err   error
	calls atomic.Int32
}

func (f *fakeAPI) result() ([]byte, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return []byte(`{}`), nil
}

func (f *fakeAPI) ExerciseTemplatesPage(context.Context, int, int) ([]ExerciseTemplate, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return []ExerciseTemplate{{ID: "1", Title: "Row"}}, nil
}
func (f *fakeAPI) Workouts(context.Context, WorkoutsQuery) ([]byte, error) { return f.result() }
func (f *fakeAPI) CreateWorkout(context.Context, []byte) ([]byte, error)  { return f.result() }
func (f *fakeAPI) Routines(context.Context, RoutinesQuery) ([]byte, error) { return f.result() }
func (f *fakeAPI) Routine(context.Context, string) ([]byte, error)         { return f.result() }
func (f *fakeAPI) CreateRoutine(context.Context, []byte) ([]byte, error)  { return f.result() }
func (f *fakeAPI) UpdateRoutine(context.Context, string, []byte) ([]byte, error) {
	return f.result()
}

func testBreakerSettings() BreakerSettings {
	return BreakerSettings{MinRequests: 3, FailureRatio: 0.5, Timeout: time.Hour}
}

func TestCircuitBreakerClient_PassesResults(t *testing.T) {
	t.Parallel()

	fake := &fakeAPI{}
	cbc := NewCircuitBreakerClient(fake, "test-pass", testBreakerSettings())

	body, err := cbc.Workouts(context.Background(), WorkoutsQuery{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("Workouts() error = %v", err)
	}
	if string(body) != `{}` {
		t.Errorf("Workouts() = %s, want {}", body)
	}

	templates, err := cbc.ExerciseTemplatesPage(context.Background(), 1, 100)
	if err != nil {
		t.Fatalf("ExerciseTemplatesPage() error = %v", err)
	}
	if len(templates) != 1 || templates[0].Title != "Row" {
		t.Errorf("ExerciseTemplatesPage() = %+v, want one Row template", templates)
	}
}

func TestCircuitBreakerClient_OpensOnServerErrors(t *testing.T) {
	t.Parallel()

	fake := &fakeAPI{err: &UpstreamError{Operation: "get_routine", Status: http.StatusBadGateway}}
	cbc := NewCircuitBreakerClient(fake, "test-open", testBreakerSettings())

	for i := 0; i < 3; i++ {
		_, err := cbc.Routine(context.Background(), "r")
		var upstreamErr *UpstreamError
		if !errors.As(err, &upstreamErr) {
			t.Fatalf("call %d error = %v, want *UpstreamError", i, err)
		}
	}

	if got := cbc.State(); got != "open" {
		t.Fatalf("State() = %q, want open", got)
	}

	_, err := cbc.Routine(context.Background(), "r")
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("Routine() error = %v, want ErrCircuitOpen", err)
	}
	if got := fake.calls.Load(); got != 3 {
		t.Errorf("upstream calls = %d, want 3 (rejected call must not reach upstream)", got)
	}
}

func TestCircuitBreakerClient_ClientErrorsDoNotTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
	}{
		{name: "4xx", err: &UpstreamError{Operation: "create_workout", Status: http.StatusBadRequest}},
		{name: "end of pages", err: ErrNoMorePages},
		{name: "caller canceled", err: context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fake := &fakeAPI{err: tt.err}
			cbc := NewCircuitBreakerClient(fake, "test-"+tt.name, testBreakerSettings())

			for i := 0; i < 10; i++ {
				_, err := cbc.CreateWorkout(context.Background(), []byte(`{}`))
				if !errors.Is(err, tt.err) {
					t.Fatalf("call %d error = %v, want %v", i, err, tt.err)
				}
			}
			if got := cbc.State(); got != "closed" {
				t.Errorf("State() = %q, want closed", got)
			}
		})
	}
}

func TestCountsAsSuccess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, true},
		{"404 end of pages", ErrNoMorePages, true},
		{"422", &UpstreamError{Status: 422}, true},
		{"500", &UpstreamError{Status: 500}, false},
		{"transport", errors.New("dial tcp: connection refused"), false},
		{"deadline", context.DeadlineExceeded, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := countsAsSuccess(tt.err); got != tt.want {
				t.Errorf("countsAsSuccess(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
