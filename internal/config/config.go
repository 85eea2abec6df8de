// Package config holds the server configuration: column roles (identity,
// required, dates, filters), upload limits, and listen address. Values come
// from built-in defaults, optionally overlaid by a YAML file and a couple of
// ROSTERD_* environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the full server configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr"`

	// MaxUploadBytes caps spreadsheet upload size.
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`

	// IdentityColumn is the column user edits are keyed by. It must be one
	// of RequiredColumns so every editable row carries it.
	IdentityColumn string `yaml:"identity_column"`

	// RequiredColumns must be non-empty on every appended record.
	RequiredColumns []string `yaml:"required_columns"`

	// DateColumns are coerced to typed dates on ingest and edit.
	DateColumns []string `yaml:"date_columns"`

	// FilterColumns populate the sidebar filter dropdowns.
	FilterColumns []string `yaml:"filter_columns"`

	// SearchColumns are scanned by the free-text search box.
	SearchColumns []string `yaml:"search_columns"`

	// ClassColumns are the training class columns tracked by the metrics,
	// class list, and completion views.
	ClassColumns []string `yaml:"class_columns"`

	// HireDateColumn feeds the recent-hire metric.
	HireDateColumn string `yaml:"hire_date_column"`

	// RecentHireDays is the recent-hire window.
	RecentHireDays int `yaml:"recent_hire_days"`

	// UploadsPerMinute rate-limits spreadsheet uploads per client IP.
	// Zero disables the limit.
	UploadsPerMinute float64 `yaml:"uploads_per_minute"`
	// UploadBurst is the rate limiter burst size.
	UploadBurst int `yaml:"upload_burst"`
}

// Default returns the configuration matching the original dashboard layout.
func Default() *Config {
	return &Config{
		Addr:            "localhost:8080",
		MaxUploadBytes:  16 << 20,
		IdentityColumn:  "Work Email",
		RequiredColumns: []string{"Preferred Name", "Work Email"},
		DateColumns:     []string{"Hire Date", "Course Completion", "SE Capstone"},
		FilterColumns:   []string{"Region", "Role", "Business Unit", "Employee Type"},
		SearchColumns: []string{
			"Preferred Name", "Work Email", "Personal", "Role", "Region",
			"Business Unit", "Business Title", "Manager Name",
		},
		ClassColumns:     []string{"Boot Camp In-Person", "VILT"},
		HireDateColumn:   "Hire Date",
		RecentHireDays:   90,
		UploadsPerMinute: 10,
		UploadBurst:      5,
	}
}

// Load returns the defaults overlaid with the YAML file at path (when path
// is non-empty) and then with environment overrides.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	c.applyEnv()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ROSTERD_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("ROSTERD_MAX_UPLOAD_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			c.MaxUploadBytes = n
		}
	}
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive")
	}
	if c.IdentityColumn == "" {
		return fmt.Errorf("identity_column is required")
	}
	for _, col := range c.RequiredColumns {
		if col == c.IdentityColumn {
			return nil
		}
	}
	return fmt.Errorf("identity_column %q must be one of required_columns", c.IdentityColumn)
}
