package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Default endpoints for the Iconify catalog. The raw GitHub JSON mirror
// is used for per-collection documents because it is the most reliable
// source for full icon data.
const (
	DefaultAPIBaseURL = "https://api.iconify.design"
	DefaultRawBaseURL = "https://raw.githubusercontent.com/iconify/icon-sets/master/json"
)

// Config represents the iconify configuration.
type Config struct {
	Fetch  FetchConfig  `yaml:"fetch"`
	Search SearchConfig `yaml:"search"`
	Render RenderConfig `yaml:"render"`
}

// FetchConfig holds network-related settings.
type FetchConfig struct {
	APIBaseURL  string `yaml:"api_base_url"`  // Catalog API base URL
	RawBaseURL  string `yaml:"raw_base_url"`  // Per-collection raw JSON base URL
	TimeoutSecs int    `yaml:"timeout_secs"`  // Per-request timeout in seconds
	MaxAttempts int    `yaml:"max_attempts"`  // Retry attempts before cache fallback
	UserAgent   string `yaml:"user_agent"`    // User-Agent header for catalog requests
}

// SearchConfig holds search-related settings.
type SearchConfig struct {
	DefaultLimit int `yaml:"default_limit"` // Default max search results
	MaxLimit     int `yaml:"max_limit"`     // Hard cap on search results
}

// RenderConfig holds SVG output settings.
type RenderConfig struct {
	DefaultSize int `yaml:"default_size"` // Default icon size in px
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Fetch: FetchConfig{
			APIBaseURL:  DefaultAPIBaseURL,
			RawBaseURL:  DefaultRawBaseURL,
			TimeoutSecs: 30,
			MaxAttempts: 3,
			UserAgent:   "iconify-skill/" + Version,
		},
		Search: SearchConfig{
			DefaultLimit: 20,
			MaxLimit:     100,
		},
		Render: RenderConfig{
			DefaultSize: 24,
		},
	}
}

// Version is the tool version recorded in index metadata and sent as
// part of the User-Agent. Overridden via ldflags at build time.
var Version = "1.0.0"

// Load reads the configuration from the default location.
func Load() (*Config, error) {
	paths := DefaultPaths()
	return LoadFromFile(paths.ConfigFile())
}

// LoadFromFile reads configuration from a specific file, applying
// defaults and environment overrides. A missing file is not an error.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.ApplyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// ApplyEnvOverrides applies ICONIFY_* environment variable overrides.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("ICONIFY_API"); v != "" {
		c.Fetch.APIBaseURL = v
	}
	if v := os.Getenv("ICONIFY_RAW_JSON"); v != "" {
		c.Fetch.RawBaseURL = v
	}
	if v := os.Getenv("ICONIFY_FETCH_TIMEOUT_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Fetch.TimeoutSecs = n
		}
	}
}

// Validate checks configuration values for consistency.
func (c *Config) Validate() error {
	if c.Fetch.APIBaseURL == "" {
		return fmt.Errorf("fetch.api_base_url must not be empty")
	}
	if c.Fetch.RawBaseURL == "" {
		return fmt.Errorf("fetch.raw_base_url must not be empty")
	}
	if c.Fetch.TimeoutSecs <= 0 {
		return fmt.Errorf("fetch.timeout_secs must be positive, got %d", c.Fetch.TimeoutSecs)
	}
	if c.Search.MaxLimit < c.Search.DefaultLimit {
		return fmt.Errorf("search.max_limit (%d) must be >= search.default_limit (%d)",
			c.Search.MaxLimit, c.Search.DefaultLimit)
	}
	if c.Render.DefaultSize <= 0 {
		return fmt.Errorf("render.default_size must be positive, got %d", c.Render.DefaultSize)
	}
	return nil
}

// Save writes the configuration to a file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// CollectionsURL returns the catalog endpoint listing all collections.
func (c *Config) CollectionsURL() string {
	return c.Fetch.APIBaseURL + "/collections"
}

// CollectionURL returns the per-collection icon document endpoint.
func (c *Config) CollectionURL(prefix string) string {
	return c.Fetch.RawBaseURL + "/" + prefix + ".json"
}
