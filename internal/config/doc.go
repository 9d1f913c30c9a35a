// hevygate - Hevy API proxy with exercise template resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hevygate

/*
Package config loads hevygate's configuration.

# Sources

Later sources override earlier ones:

 1. Built-in defaults
 2. YAML file: CONFIG_PATH, else ./config.yaml or /etc/hevygate/config.yaml
 3. Environment variables, after .hevy_env (or HEVY_ENV_FILE) has been
    merged into the process environment by godotenv. Variables already set
    in the environment are not overwritten by the dotenv file.

# Environment Variables

Hevy:
  - HEVY_API_KEY: API key sent as the api-key header (required)
  - HEVY_API_URL: base URL (default: https://api.hevyapp.com/v1)
  - HEVY_TIMEOUT: per-request timeout (default: 10s)
  - HEVY_RATE_LIMIT, HEVY_RATE_BURST: outbound requests per second (default: 0, unlimited)

Template cache:
  - TEMPLATES_PAGE_SIZE: catalog page size, at most 100 (default: 100)
  - TEMPLATES_REFRESH_SCHEDULE: cron spec (default: @every 24h)
  - TEMPLATES_SNAPSHOT_PATH: JSON snapshot file, empty disables (default: exercise_cache.json)
  - TEMPLATES_WARM_START: load the snapshot before the first refresh (default: false)

HTTP server:
  - HTTP_HOST, HTTP_PORT (default: 0.0.0.0:8000)
  - HTTP_TIMEOUT, HTTP_SHUTDOWN_TIMEOUT (default: 30s, 10s)
  - SERVER_MAX_BODY_BYTES (default: 1 MiB)
  - CORS_ORIGINS: comma-separated (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, RATE_LIMIT_DISABLED (default: 100 per 1m)

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Validation

Load fails when HEVY_API_KEY is missing, so the process refuses to start
without a credential. Remaining fields are checked with validator tags; see
package validation.
*/
package config
