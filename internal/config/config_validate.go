// hevygate - Hevy API proxy with exercise template resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hevygate

package config

import (
	"fmt"
	"strings"

	"github.com/tomtom215/hevygate/internal/validation"
)

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateHevy(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return validation.ValidateStruct(c)
}

// validateHevy runs before the tag rules so that the missing credential
// produces one actionable message instead of a field list.
func (c *Config) validateHevy() error {
	if strings.TrimSpace(c.Hevy.APIKey) == "" {
		return fmt.Errorf("HEVY_API_KEY is required; set it in the environment or in %s", DefaultDotenvPath)
	}

	if err := validateBaseURL(c.Hevy.URL, "HEVY_API_URL"); err != nil {
		return err
	}
	c.Hevy.URL = strings.TrimRight(c.Hevy.URL, "/")
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitRequests <= 0 || c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive unless RATE_LIMIT_DISABLED=true")
	}
	return nil
}
