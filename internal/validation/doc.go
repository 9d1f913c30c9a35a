// hevygate - Hevy API proxy with exercise template resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hevygate

// Package validation wraps go-playground/validator v10 with a shared
// instance and readable messages.
//
// Field names in messages are koanf paths, so a failure reads the same way
// the setting is written in config.yaml:
//
//	templates.page_size must be at most 100
//
// Custom tags:
//
//	cronspec  value parses as a robfig/cron schedule ("@every 24h", "0 3 * * *")
package validation
