package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bingal/iconify-skill/internal/index"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Optimize the search index",
	Long: `Compact the full-text token index for query performance.

Safe to run at any time; search results are unchanged.`,
	Args: cobra.NoArgs,
	RunE: runOptimize,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show search index statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(statsCmd)
}

// userIndexPath returns the cache index path, failing when no index has
// been built yet.
func userIndexPath(env *appEnv) (string, error) {
	path := env.paths.CacheIndexFile()
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("no index found at %s; run 'iconify build-index' first", path)
	}
	return path, nil
}

func runOptimize(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}
	path, err := userIndexPath(env)
	if err != nil {
		return err
	}

	store, err := index.Open(cmd.Context(), path, false)
	if err != nil {
		return err
	}
	defer store.Close()

	fmt.Println("Optimizing index...")
	if err := store.Optimize(cmd.Context()); err != nil {
		return err
	}
	fmt.Println("Index optimized.")
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}
	path, err := userIndexPath(env)
	if err != nil {
		return err
	}

	store, err := index.Open(cmd.Context(), path, true)
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := store.ReadStats(cmd.Context())
	if err != nil {
		return err
	}

	builtAt := stats.BuiltAt
	if builtAt == "" {
		builtAt = "Unknown"
	}

	fmt.Println("Index Statistics")
	fmt.Println("==============================")
	fmt.Printf("Total icons: %d\n", stats.TotalIcons)
	fmt.Printf("Collections: %d\n", stats.Collections)
	fmt.Printf("Size: %.1f KB\n", float64(stats.SizeBytes)/1024)
	fmt.Printf("Built: %s\n", builtAt)
	if stats.BuildID != "" {
		fmt.Printf("Build ID: %s\n", stats.BuildID)
	}
	return nil
}
