// hevygate - Hevy API proxy with exercise template resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hevygate

package templates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/tomtom215/hevygate/internal/config"
	"github.com/tomtom215/hevygate/internal/hevy"
	"github.com/tomtom215/hevygate/internal/logging"
	"github.com/tomtom215/hevygate/internal/metrics"
)

// Pager fetches one page of the exercise template catalog.
// hevy.Client and hevy.CircuitBreakerClient implement it.
type Pager interface {
	ExerciseTemplatesPage(ctx context.Context, page, pageSize int) ([]hevy.ExerciseTemplate, error)
}

// Refresher rebuilds a Cache from the Hevy catalog.
type Refresher struct {
	cache        *Cache
	pager        Pager
	pageSize     int
	snapshotPath string

	group singleflight.Group
}

// NewRefresher creates a Refresher that fills cache from pager.
func NewRefresher(cache *Cache, pager Pager, cfg config.TemplatesConfig) *Refresher {
	pageSize := cfg.PageSize
	if pageSize < 1 || pageSize > hevy.MaxTemplatePageSize {
		pageSize = hevy.MaxTemplatePageSize
	}
	return &Refresher{
		cache:        cache,
		pager:        pager,
		pageSize:     pageSize,
		snapshotPath: cfg.SnapshotPath,
	}
}

// Refresh pages through the whole catalog and replaces the cache with the
// result. It returns the number of cached titles.
//
// Paging starts at page 1 and stops at a 404 or an empty page. Any other
// error abandons the rebuild and leaves the live mapping untouched.
//
// Concurrent calls share one rebuild: a caller arriving while a refresh is
// in flight waits for it and gets its result. The rebuild runs on the first
// caller's context.
func (r *Refresher) Refresh(ctx context.Context) (int, error) {
	v, err, shared := r.group.Do("refresh", func() (interface{}, error) {
		return r.refresh(ctx)
	})
	if shared {
		logging.Debug().Msg("Joined in-flight template refresh")
	}
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

func (r *Refresher) refresh(ctx context.Context) (int, error) {
	start := time.Now()

	built := make(map[string]string)
	pages := 0
	for page := 1; ; page++ {
		chunk, err := r.pager.ExerciseTemplatesPage(ctx, page, r.pageSize)
		if errors.Is(err, hevy.ErrNoMorePages) {
			break
		}
		if err != nil {
			err = fmt.Errorf("exercise template refresh failed on page %d: %w", page, err)
			metrics.RecordTemplateRefresh(time.Since(start), 0, err)
			return 0, err
		}
		if len(chunk) == 0 {
			break
		}
		pages++
		for _, tpl := range chunk {
			built[normalizeTitle(tpl.Title)] = tpl.ID
		}
	}

	r.cache.Replace(built)
	count := len(built)

	if r.snapshotPath != "" {
		if err := WriteSnapshot(r.snapshotPath, built); err != nil {
			logging.Warn().Err(err).Str("path", r.snapshotPath).Msg("Template snapshot not written")
		}
	}

	metrics.RecordTemplateRefresh(time.Since(start), count, nil)
	logging.Info().
		Int("count", count).
		Int("pages", pages).
		Dur("duration", time.Since(start)).
		Msg("Cached exercise templates")

	return count, nil
}

// LoadSnapshot installs the mapping from the snapshot file, if one is
// configured. It returns the number of titles loaded.
func (r *Refresher) LoadSnapshot() (int, error) {
	if r.snapshotPath == "" {
		return 0, errors.New("no template snapshot path configured")
	}
	m, err := ReadSnapshot(r.snapshotPath)
	if err != nil {
		return 0, err
	}
	r.cache.Replace(m)
	metrics.TemplateCacheEntries.Set(float64(len(m)))
	return len(m), nil
}

// Prime fills the cache before the server starts taking traffic.
//
// It always attempts a live refresh and blocks until it finishes. With
// warmStart the snapshot is loaded first, so a failed live refresh still
// leaves the last known mapping in place. A failed live refresh is logged,
// not returned: the service starts with whatever the cache holds, which is
// an empty mapping on a cold start.
func (r *Refresher) Prime(ctx context.Context, warmStart bool) int {
	if warmStart {
		n, err := r.LoadSnapshot()
		if err != nil {
			logging.Warn().Err(err).Msg("Template snapshot not loaded")
		} else {
			logging.Info().Int("count", n).Str("path", r.snapshotPath).Msg("Loaded template snapshot")
		}
	}

	n, err := r.Refresh(ctx)
	if err != nil {
		logging.Error().Err(err).Int("cached", r.cache.Len()).Msg("Initial template refresh failed; starting with current cache")
		return r.cache.Len()
	}
	return n
}
