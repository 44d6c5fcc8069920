// Package cmd implements the iconify command-line interface.
package cmd

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bingal/iconify-skill/internal/catalog"
	"github.com/bingal/iconify-skill/internal/config"
	"github.com/bingal/iconify-skill/internal/fetch"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "iconify",
	Short: "Search and retrieve SVG icons from Iconify collections",
	Long: `iconify - search and retrieve SVG icons from Iconify collections
  - search tens of thousands of icons by name or alias
  - render any icon as standalone SVG markup with attribution
  - works fully offline once an index is built`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// appEnv bundles the shared runtime pieces most commands need.
type appEnv struct {
	cfg     *config.Config
	paths   *config.Paths
	fetcher *fetch.Client
	catalog *catalog.Loader
	logger  *slog.Logger
}

// newEnv loads configuration, ensures directories, and wires the
// fetcher and catalog loader.
func newEnv() (*appEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	paths := config.DefaultPaths()
	if err := paths.EnsureDirectories(); err != nil {
		return nil, err
	}

	logger := slog.Default()
	fetcher := fetch.New(fetch.Options{
		CacheDir:    paths.CacheDir,
		Timeout:     time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
		MaxAttempts: cfg.Fetch.MaxAttempts,
		UserAgent:   cfg.Fetch.UserAgent,
		Logger:      logger,
	})

	return &appEnv{
		cfg:     cfg,
		paths:   paths,
		fetcher: fetcher,
		catalog: &catalog.Loader{Fetcher: fetcher, Config: cfg, Paths: paths},
		logger:  logger,
	}, nil
}
