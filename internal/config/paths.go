// Package config provides configuration management for iconify.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Paths holds all the path configurations for iconify.
type Paths struct {
	// ConfigDir is the directory for configuration files (~/.config/iconify-skill)
	ConfigDir string

	// DataDir is the directory for data files (~/.local/share/iconify-skill)
	DataDir string

	// CacheDir is the directory for cached documents and the user index (~/.cache/iconify-skill)
	CacheDir string

	// BundleDir is the directory holding the pre-built offline index and
	// collection metadata snapshot.
	BundleDir string
}

// DefaultPaths returns the default paths based on XDG Base Directory spec.
// On Windows, it uses %APPDATA% instead. ICONIFY_CACHE_DIR and
// ICONIFY_BUNDLE_DIR override the cache and bundle locations.
func DefaultPaths() *Paths {
	home := homeDir()

	var p *Paths
	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(home, "AppData", "Local")
		}

		p = &Paths{
			ConfigDir: filepath.Join(appData, "iconify-skill"),
			DataDir:   filepath.Join(localAppData, "iconify-skill"),
			CacheDir:  filepath.Join(localAppData, "iconify-skill", "cache"),
		}
	} else {
		// Unix-like systems follow XDG Base Directory spec
		configHome := os.Getenv("XDG_CONFIG_HOME")
		if configHome == "" {
			configHome = filepath.Join(home, ".config")
		}

		dataHome := os.Getenv("XDG_DATA_HOME")
		if dataHome == "" {
			dataHome = filepath.Join(home, ".local", "share")
		}

		cacheHome := os.Getenv("XDG_CACHE_HOME")
		if cacheHome == "" {
			cacheHome = filepath.Join(home, ".cache")
		}

		p = &Paths{
			ConfigDir: filepath.Join(configHome, "iconify-skill"),
			DataDir:   filepath.Join(dataHome, "iconify-skill"),
			CacheDir:  filepath.Join(cacheHome, "iconify-skill"),
		}
	}

	if dir := os.Getenv("ICONIFY_CACHE_DIR"); dir != "" {
		p.CacheDir = dir
	}

	p.BundleDir = filepath.Join(p.DataDir, "bundle")
	if dir := os.Getenv("ICONIFY_BUNDLE_DIR"); dir != "" {
		p.BundleDir = dir
	}

	return p
}

// ConfigFile returns the path to the main configuration file.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, "config.yaml")
}

// CacheIndexFile returns the path to the user-built search index.
func (p *Paths) CacheIndexFile() string {
	return filepath.Join(p.CacheDir, "icons.db")
}

// BundleIndexFile returns the path to the offline bundled index.
func (p *Paths) BundleIndexFile() string {
	return filepath.Join(p.BundleDir, "icons.db")
}

// BundleMetadataFile returns the path to the bundled collections snapshot.
func (p *Paths) BundleMetadataFile() string {
	return filepath.Join(p.BundleDir, "collections.json")
}

// IntentKeywordsFile returns the path to the optional intent keyword map
// consulted by the suggest command.
func (p *Paths) IntentKeywordsFile() string {
	return filepath.Join(p.CacheDir, "intent_keywords.json")
}

// EnsureDirectories creates all necessary directories.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{
		p.ConfigDir,
		p.DataDir,
		p.CacheDir,
		p.BundleDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return nil
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback
		if runtime.GOOS == "windows" {
			return os.Getenv("USERPROFILE")
		}
		return os.Getenv("HOME")
	}
	return home
}
