// hevygate - Hevy API proxy with exercise template resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hevygate

/*
Command server runs hevygate, a pass-through proxy in front of the Hevy API.

It lets clients submit workouts that name exercises by title. Titles are
resolved against a cache of Hevy exercise templates that is rebuilt at
startup and then on a schedule (every 24h by default).

# Process layout

	RootSupervisor ("hevygate")
	├── BackgroundSupervisor ("background-layer")
	│   └── template-refresh (robfig/cron)
	└── APISupervisor ("api-layer")
	    └── http-server (chi)

Startup order:

 1. Configuration: .hevy_env, optional config.yaml, environment (koanf v2).
    A missing HEVY_API_KEY stops the process here.
 2. Logging (zerolog).
 3. Hevy client behind a circuit breaker.
 4. Template cache priming. With TEMPLATES_WARM_START the last snapshot is
    loaded first; the live refresh always runs and blocks.
 5. Supervisor tree with the refresh scheduler and the HTTP server.

SIGINT and SIGTERM stop the tree; the HTTP server drains for
HTTP_SHUTDOWN_TIMEOUT.

# Configuration

	HEVY_API_KEY                 required
	HEVY_API_URL                 https://api.hevyapp.com/v1
	HEVY_TIMEOUT                 10s
	TEMPLATES_REFRESH_SCHEDULE   @every 24h
	TEMPLATES_SNAPSHOT_PATH      exercise_cache.json
	HTTP_PORT                    8000
	LOG_LEVEL, LOG_FORMAT        info, json
*/
package main
