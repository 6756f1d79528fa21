package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables holding the two required API credentials.
const (
	EnvKeyA = "STRIPE_API_KEY_A"
	EnvKeyB = "STRIPE_API_KEY_B"
)

// Settings is the optional YAML settings file. It carries display and
// tuning knobs only; credentials always come from the environment.
type Settings struct {
	LabelA       string `yaml:"label_a,omitempty"`
	LabelB       string `yaml:"label_b,omitempty"`
	PageSize     int    `yaml:"page_size,omitempty"`
	TrailingDays int    `yaml:"trailing_days,omitempty"`
	APIBaseURL   string `yaml:"api_base_url,omitempty"`
}

// Config is the validated runtime configuration passed into the report run.
type Config struct {
	KeyA, KeyB     string
	LabelA, LabelB string
	PageSize       int
	TrailingDays   int
	BaseURL        string
}

// ConfigError reports required credentials missing from the environment.
// It is detected before any network access.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("please ensure the %s environment variable(s) are set",
		strings.Join(e.Missing, " and "))
}

// DefaultSettingsPath returns the default settings file path
// (~/.revenue-compare/config.yaml).
func DefaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".revenue-compare", "config.yaml")
}

// LoadConfig reads credentials from the environment and merges the optional
// settings file at path. A missing settings file is not an error; missing
// credentials are a *ConfigError.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		KeyA:         os.Getenv(EnvKeyA),
		KeyB:         os.Getenv(EnvKeyB),
		LabelA:       "Account A",
		LabelB:       "Account B",
		PageSize:     DefaultPageSize,
		TrailingDays: 31,
	}

	var missing []string
	if cfg.KeyA == "" {
		missing = append(missing, EnvKeyA)
	}
	if cfg.KeyB == "" {
		missing = append(missing, EnvKeyB)
	}
	if len(missing) > 0 {
		return nil, &ConfigError{Missing: missing}
	}

	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading settings file: %w", err)
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing settings file: %w", err)
	}

	if s.LabelA != "" {
		cfg.LabelA = s.LabelA
	}
	if s.LabelB != "" {
		cfg.LabelB = s.LabelB
	}
	if s.PageSize > 0 {
		cfg.PageSize = s.PageSize
	}
	if s.TrailingDays > 0 {
		cfg.TrailingDays = s.TrailingDays
	}
	if s.APIBaseURL != "" {
		cfg.BaseURL = s.APIBaseURL
	}

	return cfg, nil
}

// NewSources builds the two account transaction clients from the config.
func (c *Config) NewSources() (a, b *Client) {
	a = &Client{Key: c.KeyA, BaseURL: c.BaseURL, PageSize: c.PageSize}
	b = &Client{Key: c.KeyB, BaseURL: c.BaseURL, PageSize: c.PageSize}
	return a, b
}
