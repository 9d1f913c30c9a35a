// hevygate - Hevy API proxy with exercise template resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hevygate

// Package services adapts hevygate components to suture.Service.
//
//   - HTTPServerService: ListenAndServe until the context ends, then a
//     graceful Shutdown.
//   - RefreshService: runs the exercise template refresh on a robfig/cron
//     schedule.
package services
