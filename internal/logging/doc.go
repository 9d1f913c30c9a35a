// hevygate - Hevy API proxy with exercise template resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hevygate

// Package logging provides centralized zerolog-based structured logging.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Int("count", n).Msg("Cached exercise templates")
//	logging.Error().Err(err).Str("operation", "workouts").Msg("Hevy request failed")
//
//	// Request-scoped: adds request_id when the context carries one
//	logging.Ctx(r.Context()).Warn().Msg("Workout rejected")
//
// # Configuration
//
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - json, console (default: json)
//	LOG_CALLER  - include caller file:line (default: false)
//
// # Adapters
//
// Two third-party libraries log through this package:
//
//   - NewSlogLogger returns a *slog.Logger backed by zerolog, used by
//     sutureslog for supervisor events.
//   - NewCronLogger implements cron.Logger for robfig/cron. Routine
//     scheduler messages go to debug; job panics and errors go to error.
//
// The Hevy API key is never passed to the logger.
package logging
