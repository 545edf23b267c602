package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Timezone   string `yaml:"timezone"`
	DataSource struct {
		Symbol   string `yaml:"symbol"`
		Span     string `yaml:"span"`
		Interval string `yaml:"interval"`
		Proxy    string `yaml:"proxy"`
	} `yaml:"data_source"`
	Refresh struct {
		Enabled         bool `yaml:"enabled"`
		IntervalSeconds int  `yaml:"interval_seconds"`
	} `yaml:"refresh"`
	SMTP struct {
		Enabled  bool   `yaml:"enabled"`
		Server   string `yaml:"server"`
		Port     int    `yaml:"port"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
		To       string `yaml:"to"`
	} `yaml:"smtp"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	DemoMode bool `yaml:"demo_mode"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TRACKER_TIMEZONE"); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv("TRACKER_SYMBOL"); v != "" {
		cfg.DataSource.Symbol = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.DataSource.Proxy = v
	}
	if v := os.Getenv("SMTP_SERVER"); v != "" {
		cfg.SMTP.Server = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.SMTP.Port = port
		}
	}
	if v := os.Getenv("SMTP_EMAIL"); v != "" {
		cfg.SMTP.Email = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.SMTP.Password = v
	}
	if v := os.Getenv("REFRESH_INTERVAL"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.Refresh.IntervalSeconds = secs
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("DEMO_MODE"); v == "true" {
		cfg.DemoMode = true
	}

	// Defaults
	if cfg.Timezone == "" {
		cfg.Timezone = "Europe/Paris"
	}
	if cfg.DataSource.Symbol == "" {
		cfg.DataSource.Symbol = "SAP.DE"
	}
	if cfg.DataSource.Span == "" {
		cfg.DataSource.Span = "1mo"
	}
	if cfg.DataSource.Interval == "" {
		cfg.DataSource.Interval = "1d"
	}
	if cfg.Refresh.IntervalSeconds == 0 {
		cfg.Refresh.IntervalSeconds = 60
	}
	if cfg.SMTP.Server == "" {
		cfg.SMTP.Server = "smtp.gmail.com"
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = 587
	}

	return cfg, nil
}

// Validate checks that all required fields are consistent.
func (c *Config) Validate() error {
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	if c.Refresh.Enabled && (c.Refresh.IntervalSeconds < 30 || c.Refresh.IntervalSeconds > 300) {
		return fmt.Errorf("refresh.interval_seconds must be within [30, 300], got %d", c.Refresh.IntervalSeconds)
	}
	if c.SMTP.Enabled {
		if c.SMTP.Email == "" {
			return fmt.Errorf("smtp.email is required when smtp is enabled")
		}
		if c.SMTP.Password == "" {
			return fmt.Errorf("smtp.password is required when smtp is enabled")
		}
	}
	return nil
}

// Location resolves the configured reference timezone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
