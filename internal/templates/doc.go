// hevygate - Hevy API proxy with exercise template resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hevygate

/*
Package templates keeps the exercise template cache: a case-insensitive index
from exercise title to Hevy exercise template id.

# Lifecycle

	cache := templates.New()                          // empty, usable
	refresher := templates.NewRefresher(cache, client, cfg.Templates)
	refresher.Prime(ctx, cfg.Templates.WarmStart)     // blocks before serving
	// then services.NewRefreshService(refresher, schedule) every 24h

# Consistency

Each refresh builds a private map and installs it with one atomic pointer
store. Lookups never take a lock and never see a half-built mapping. A
failed refresh installs nothing.

# Snapshot

After each successful refresh the mapping is written to exercise_cache.json
(indented JSON). It is read back only when warm start is enabled.
*/
package templates
