// hevygate - Hevy API proxy with exercise template resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hevygate

package config

import (
	"fmt"
	"time"
)

// Config holds all hevygate configuration.
//
// Loading order (see LoadWithKoanf):
//  1. Defaults from defaultConfig()
//  2. Optional YAML file (CONFIG_PATH, ./config.yaml, /etc/hevygate/config.yaml)
//  3. The .hevy_env dotenv file, merged into the process environment
//  4. Environment variables
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
//	client := hevy.NewClient(cfg.Hevy)
type Config struct {
	Hevy      HevyConfig      `koanf:"hevy"`
	Templates TemplatesConfig `koanf:"templates"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// HevyConfig holds settings for the upstream Hevy API.
type HevyConfig struct {
	// APIKey is sent as the api-key header on every upstream request. Required.
	APIKey string `koanf:"api_key" validate:"required"`

	URL string `koanf:"url" validate:"required,url"`

	// Timeout bounds every upstream call, including each template page.
	Timeout time.Duration `koanf:"timeout" validate:"gt=0"`

	// RateLimit caps outbound requests per second. 0 disables the limiter.
	RateLimit float64 `koanf:"rate_limit" validate:"gte=0"`
	RateBurst int     `koanf:"rate_burst" validate:"gte=0"`
}

// TemplatesConfig controls the exercise template cache.
type TemplatesConfig struct {
	// PageSize is the page_size used while paging the catalog. Hevy caps it at 100.
	PageSize int `koanf:"page_size" validate:"min=1,max=100"`

	// RefreshSchedule is a robfig/cron spec; the default is "@every 24h".
	RefreshSchedule string `koanf:"refresh_schedule" validate:"required,cronspec"`

	// SnapshotPath receives the JSON mapping after each successful refresh.
	// Empty disables the snapshot.
	SnapshotPath string `koanf:"snapshot_path"`

	// WarmStart loads SnapshotPath before the first live refresh so that a
	// failed cold refresh still serves the last known mapping.
	WarmStart bool `koanf:"warm_start"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout         time.Duration `koanf:"timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	MaxBodyBytes    int64         `koanf:"max_body_bytes" validate:"gt=0"`
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds CORS and inbound rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests" validate:"gte=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gte=0"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings passed to logging.Init.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, config file, .hevy_env and the environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
