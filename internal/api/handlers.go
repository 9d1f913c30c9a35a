// hevygate - Hevy API proxy with exercise template resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hevygate

package api

import (
	"context"
	"time"

	"github.com/tomtom215/hevygate/internal/hevy"
	"github.com/tomtom215/hevygate/internal/metrics"
	"github.com/tomtom215/hevygate/internal/templates"
)

// DefaultMaxBodyBytes caps request bodies when no limit is configured.
const DefaultMaxBodyBytes int64 = 1 << 20

// TemplateRefresher rebuilds the template cache on demand.
// *templates.Refresher implements it.
type TemplateRefresher interface {
	Refresh(ctx context.Context) (int, error)
}

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: response writing, error mapping, query parsing
//   - handlers_health.go: health endpoints
//   - handlers_templates.go: exercise template cache endpoints
//   - handlers_workouts.go: workout list and submission
//   - handlers_routines.go: routine pass-through endpoints
type Handler struct {
	client       hevy.API
	cache        *templates.Cache
	refresher    TemplateRefresher
	maxBodyBytes int64
	startTime    time.Time
}

// NewHandler creates a Handler. client is usually a
// *hevy.CircuitBreakerClient; cache must be the same cache the refresher
// fills. A non-positive maxBodyBytes selects DefaultMaxBodyBytes.
//
// Example:
//
//	handler := api.NewHandler(breaker, cache, refresher, cfg.Server.MaxBodyBytes)
//	router := api.NewRouter(handler, api.ChiMiddlewareConfigFromSecurity(cfg.Security))
//	http.ListenAndServe(cfg.Server.Addr(), router.SetupChi())
func NewHandler(client hevy.API, cache *templates.Cache, refresher TemplateRefresher, maxBodyBytes int64) *Handler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &Handler{
		client:       client,
		cache:        cache,
		refresher:    refresher,
		maxBodyBytes: maxBodyBytes,
		startTime:    time.Now(),
	}
}

// countingLookup records a hit or miss for every title resolution.
type countingLookup struct {
	cache *templates.Cache
}

func (c countingLookup) Lookup(title string) (string, bool) {
	id, ok := c.cache.Lookup(title)
	metrics.RecordTemplateLookup(ok)
	return id, ok
}
