package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultAPIBaseURL, cfg.Fetch.APIBaseURL)
	assert.Equal(t, DefaultRawBaseURL, cfg.Fetch.RawBaseURL)
	assert.Equal(t, 30, cfg.Fetch.TimeoutSecs)
	assert.Equal(t, 3, cfg.Fetch.MaxAttempts)
	assert.Equal(t, 20, cfg.Search.DefaultLimit)
	assert.Equal(t, 100, cfg.Search.MaxLimit)
	assert.Equal(t, 24, cfg.Render.DefaultSize)

	require.NoError(t, cfg.Validate())
}

// clearIconifyEnv neutralizes ICONIFY_* overrides for tests asserting
// file or default values.
func clearIconifyEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"ICONIFY_API", "ICONIFY_RAW_JSON", "ICONIFY_FETCH_TIMEOUT_SECS"} {
		t.Setenv(key, "")
	}
}

func TestLoadFromFileMissingIsNotAnError(t *testing.T) {
	clearIconifyEnv(t)
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "no-such-config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFromFilePartialOverride(t *testing.T) {
	clearIconifyEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
fetch:
  timeout_secs: 5
search:
  default_limit: 10
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Fetch.TimeoutSecs)
	assert.Equal(t, 10, cfg.Search.DefaultLimit)
	// Unset keys keep their defaults.
	assert.Equal(t, DefaultAPIBaseURL, cfg.Fetch.APIBaseURL)
	assert.Equal(t, 100, cfg.Search.MaxLimit)
}

func TestLoadFromFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fetch: [not a map"), 0o644))

	_, err := LoadFromFile(path)
	assert.Error(t, err)
}

func TestLoadFromFileInvalidValues(t *testing.T) {
	clearIconifyEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fetch:\n  timeout_secs: -1\n"), 0o644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout_secs")
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("ICONIFY_API", "http://localhost:9999")
	t.Setenv("ICONIFY_RAW_JSON", "http://localhost:9999/json")
	t.Setenv("ICONIFY_FETCH_TIMEOUT_SECS", "7")

	cfg := DefaultConfig()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "http://localhost:9999", cfg.Fetch.APIBaseURL)
	assert.Equal(t, "http://localhost:9999/json", cfg.Fetch.RawBaseURL)
	assert.Equal(t, 7, cfg.Fetch.TimeoutSecs)
}

func TestApplyEnvOverridesIgnoresBadTimeout(t *testing.T) {
	t.Setenv("ICONIFY_FETCH_TIMEOUT_SECS", "not-a-number")

	cfg := DefaultConfig()
	cfg.ApplyEnvOverrides()
	assert.Equal(t, 30, cfg.Fetch.TimeoutSecs)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty api url", func(c *Config) { c.Fetch.APIBaseURL = "" }},
		{"empty raw url", func(c *Config) { c.Fetch.RawBaseURL = "" }},
		{"zero timeout", func(c *Config) { c.Fetch.TimeoutSecs = 0 }},
		{"max below default limit", func(c *Config) { c.Search.MaxLimit = 5 }},
		{"zero render size", func(c *Config) { c.Render.DefaultSize = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearIconifyEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Fetch.TimeoutSecs = 12
	require.NoError(t, cfg.Save(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestURLHelpers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Fetch.APIBaseURL = "http://api.test"
	cfg.Fetch.RawBaseURL = "http://raw.test/json"

	assert.Equal(t, "http://api.test/collections", cfg.CollectionsURL())
	assert.Equal(t, "http://raw.test/json/mdi.json", cfg.CollectionURL("mdi"))
}

func TestDefaultPathsEnvOverrides(t *testing.T) {
	t.Setenv("ICONIFY_CACHE_DIR", "/tmp/iconify-cache-test")
	t.Setenv("ICONIFY_BUNDLE_DIR", "/tmp/iconify-bundle-test")

	p := DefaultPaths()
	assert.Equal(t, "/tmp/iconify-cache-test", p.CacheDir)
	assert.Equal(t, "/tmp/iconify-bundle-test", p.BundleDir)
	assert.Equal(t, filepath.Join("/tmp/iconify-cache-test", "icons.db"), p.CacheIndexFile())
	assert.Equal(t, filepath.Join("/tmp/iconify-bundle-test", "icons.db"), p.BundleIndexFile())
	assert.Equal(t, filepath.Join("/tmp/iconify-bundle-test", "collections.json"), p.BundleMetadataFile())
}

func TestDefaultPathsXDG(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG paths do not apply on Windows")
	}
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	t.Setenv("ICONIFY_CACHE_DIR", "")
	t.Setenv("ICONIFY_BUNDLE_DIR", "")

	p := DefaultPaths()
	assert.Equal(t, filepath.Join("/tmp/xdg-cache", "iconify-skill"), p.CacheDir)
	assert.Equal(t, filepath.Join(p.DataDir, "bundle"), p.BundleDir)
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	p := &Paths{
		ConfigDir: filepath.Join(base, "config"),
		DataDir:   filepath.Join(base, "data"),
		CacheDir:  filepath.Join(base, "cache"),
		BundleDir: filepath.Join(base, "data", "bundle"),
	}

	require.NoError(t, p.EnsureDirectories())
	for _, dir := range []string{p.ConfigDir, p.DataDir, p.CacheDir, p.BundleDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}
