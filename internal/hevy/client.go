// hevygate - Hevy API proxy with exercise template resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hevygate

/*
Package hevy is the HTTP client for the Hevy public API (https://api.hevyapp.com/v1).

Client Features:
  - api-key header on every request
  - Fixed per-call timeout (HEVY_TIMEOUT, default 10s)
  - Optional outbound rate limit (golang.org/x/time/rate)
  - Non-2xx responses surface as *UpstreamError carrying status and body
  - No retries: a failed call is returned to the caller immediately

CircuitBreakerClient wraps Client with sony/gobreaker so that an unreachable
Hevy fails fast instead of tying up request goroutines until the timeout.

Successful bodies are returned as raw bytes; the proxy relays them verbatim
and only the template pager looks inside them.
*/
package hevy

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/tomtom215/hevygate/internal/config"
	"github.com/tomtom215/hevygate/internal/metrics"
)

// API is the set of Hevy operations the proxy uses. It is implemented by
// Client, CircuitBreakerClient, and test fakes.
type API interface {
	ExerciseTemplatesPage(ctx context.Context, page, pageSize int) ([]ExerciseTemplate, error)
	Workouts(ctx context.Context, q WorkoutsQuery) ([]byte, error)
	CreateWorkout(ctx context.Context, body []byte) ([]byte, error)
	Routines(ctx context.Context, q RoutinesQuery) ([]byte, error)
	Routine(ctx context.Context, id string) ([]byte, error)
	CreateRoutine(ctx context.Context, body []byte) ([]byte, error)
	UpdateRoutine(ctx context.Context, id string, body []byte) ([]byte, error)
}

// WorkoutsQuery is the query for GET /workouts. Since is omitted when empty.
type WorkoutsQuery struct {
	Page     int
	PageSize int
	Since    string
}

// RoutinesQuery is the query for GET /routines.
type RoutinesQuery struct {
	Page     int
	PageSize int
}

// Client talks to the Hevy API.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	limiter *rate.Limiter
}

// NewClient creates a Client from configuration.
func NewClient(cfg config.HevyConfig) *Client {
	c := &Client{
		baseURL: cfg.URL,
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return c
}

// Workouts lists workouts, newest first.
func (c *Client) Workouts(ctx context.Context, q WorkoutsQuery) ([]byte, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("pageSize", strconv.Itoa(q.PageSize))
	if q.Since != "" {
		params.Set("since", q.Since)
	}
	return c.do(ctx, "list_workouts", http.MethodGet, "/workouts", params, nil)
}

// CreateWorkout posts an already rewritten workout payload.
func (c *Client) CreateWorkout(ctx context.Context, body []byte) ([]byte, error) {
	return c.do(ctx, "create_workout", http.MethodPost, "/workouts", nil, body)
}

// Routines lists routines.
func (c *Client) Routines(ctx context.Context, q RoutinesQuery) ([]byte, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("pageSize", strconv.Itoa(q.PageSize))
	return c.do(ctx, "list_routines", http.MethodGet, "/routines", params, nil)
}

// Routine fetches a single routine.
func (c *Client) Routine(ctx context.Context, id string) ([]byte, error) {
	return c.do(ctx, "get_routine", http.MethodGet, "/routines/"+url.PathEscape(id), nil, nil)
}

// CreateRoutine creates a routine.
func (c *Client) CreateRoutine(ctx context.Context, body []byte) ([]byte, error) {
	return c.do(ctx, "create_routine", http.MethodPost, "/routines", nil, body)
}

// UpdateRoutine replaces a routine.
func (c *Client) UpdateRoutine(ctx context.Context, id string, body []byte) ([]byte, error) {
	return c.do(ctx, "update_routine", http.MethodPut, "/routines/"+url.PathEscape(id), nil, body)
}

// do performs one request. A non-nil body is sent as JSON. Non-2xx
// responses are returned as *UpstreamError.
func (c *Client) do(ctx context.Context, operation, method, path string, params url.Values, body []byte) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%s request rate limited: %w", operation, err)
		}
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var reqBody io.Reader = http.NoBody
	if body != nil {
		reqBody = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", operation, err)
	}
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("accept", "application/json")
	if body != nil {
		req.Header.Set("content-type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.RecordUpstreamRequest(operation, 0, time.Since(start))
		return nil, fmt.Errorf("%s request failed: %w", operation, err)
	}
	defer func() { _ = resp.Body.Close() }()

	metrics.RecordUpstreamRequest(operation, resp.StatusCode, time.Since(start))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &UpstreamError{
			Operation: operation,
			Status:    resp.StatusCode,
			Body:      readBodyForError(resp.Body),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", operation, err)
	}
	return data, nil
}
