// hevygate - Hevy API proxy with exercise template resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hevygate

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tomtom215/hevygate/internal/logging"
)

// TemplateRefresher is satisfied by *templates.Refresher.
type TemplateRefresher interface {
	Refresh(ctx context.Context) (int, error)
}

// RefreshService runs the template refresh on a cron schedule.
//
// A failed run is logged and the schedule continues; the cache keeps its
// previous mapping. A run that is still going when the next one is due is
// skipped. Panics inside a run are recovered by cron so they never reach
// the supervisor.
type RefreshService struct {
	refresher   TemplateRefresher
	schedule    string
	stopTimeout time.Duration
	name        string
}

// NewRefreshService creates the service. schedule uses the standard cron
// syntax plus descriptors such as "@every 24h". stopTimeout bounds how long
// Serve waits for a running refresh after cancellation.
func NewRefreshService(refresher TemplateRefresher, schedule string, stopTimeout time.Duration) (*RefreshService, error) {
	if _, err := cron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid template refresh schedule %q: %w", schedule, err)
	}
	if stopTimeout <= 0 {
		stopTimeout = 10 * time.Second
	}
	return &RefreshService{
		refresher:   refresher,
		schedule:    schedule,
		stopTimeout: stopTimeout,
		name:        "template-refresh",
	}, nil
}

// Serve implements suture.Service.
func (s *RefreshService) Serve(ctx context.Context) error {
	cronLogger := logging.NewCronLogger()
	c := cron.New(
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)

	id, err := c.AddFunc(s.schedule, func() { s.run(ctx) })
	if err != nil {
		return fmt.Errorf("template refresh schedule rejected: %w", err)
	}

	c.Start()
	if entry := c.Entry(id); entry.Valid() {
		logging.Info().
			Str("schedule", s.schedule).
			Time("next", entry.Next).
			Msg("Template refresh scheduled")
	}

	<-ctx.Done()

	stopped := c.Stop()
	select {
	case <-stopped.Done():
	case <-time.After(s.stopTimeout):
		logging.Warn().Dur("timeout", s.stopTimeout).Msg("Template refresh still running at shutdown")
	}
	return ctx.Err()
}

func (s *RefreshService) run(ctx context.Context) {
	start := time.Now()
	count, err := s.refresher.Refresh(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		logging.Error().Err(err).Msg("Scheduled template refresh failed; keeping previous mapping")
		return
	}
	logging.Debug().Int("count", count).Dur("duration", time.Since(start)).Msg("Scheduled template refresh finished")
}

// String names the service in supervisor events.
func (s *RefreshService) String() string {
	return s.name
}
