// hevygate - Hevy API proxy with exercise template resolution
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/hevygate

package validation

import (
	"errors"
	"strings"
	"testing"
)

type innerConfig struct {
	PageSize int    `koanf:"page_size" validate:"min=1,max=100"`
	Schedule string `koanf:"refresh_schedule" validate:"required,cronspec"`
}

type outerConfig struct {
	URL       string      `koanf:"url" validate:"required,url"`
	Format    string      `koanf:"format" validate:"oneof=json console"`
	Templates innerConfig `koanf:"templates"`
}

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()

	if GetValidator() != GetValidator() {
		t.Error("GetValidator() returned different instances")
	}
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	valid := outerConfig{
		URL:    "https://api.hevyapp.com/v1",
		Format: "json",
		Templates: innerConfig{
			PageSize: 100,
			Schedule: "@every 24h",
		},
	}

	tests := []struct {
		name      string
		mutate    func(c *outerConfig)
		wantField string
		wantMsg   string
	}{
		{name: "valid"},
		{
			name:      "missing url",
			mutate:    func(c *outerConfig) { c.URL = "" },
			wantField: "url",
			wantMsg:   "url is required",
		},
		{
			name:      "bad format",
			mutate:    func(c *outerConfig) { c.Format = "xml" },
			wantField: "format",
			wantMsg:   "format must be one of: json console",
		},
		{
			name:      "page size too large",
			mutate:    func(c *outerConfig) { c.Templates.PageSize = 101 },
			wantField: "templates.page_size",
			wantMsg:   "templates.page_size must be at most 100",
		},
		{
			name:      "bad schedule",
			mutate:    func(c *outerConfig) { c.Templates.Schedule = "every day" },
			wantField: "templates.refresh_schedule",
			wantMsg:   "must be a valid cron expression",
		},
		{
			name:      "cron five field expression accepted",
			mutate:    func(c *outerConfig) { c.Templates.Schedule = "0 3 * * *" },
			wantField: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}

			err := ValidateStruct(&cfg)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("ValidateStruct() error = %v, want nil", err)
				}
				return
			}

			var verrs Errors
			if !errors.As(err, &verrs) {
				t.Fatalf("ValidateStruct() error = %v, want Errors", err)
			}
			if len(verrs) != 1 {
				t.Fatalf("len(errors) = %d, want 1 (%v)", len(verrs), verrs)
			}
			if verrs[0].Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verrs[0].Field, tt.wantField)
			}
			if !strings.Contains(verrs[0].Message, tt.wantMsg) {
				t.Errorf("Message = %q, want it to contain %q", verrs[0].Message, tt.wantMsg)
			}
		})
	}
}

func TestErrors_Error(t *testing.T) {
	t.Parallel()

	if got := (Errors{}).Error(); got != "validation failed" {
		t.Errorf("Errors{}.Error() = %q, want %q", got, "validation failed")
	}

	errs := Errors{{Message: "a is required"}, {Message: "b must be at least 1"}}
	if got, want := errs.Error(), "a is required; b must be at least 1"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
