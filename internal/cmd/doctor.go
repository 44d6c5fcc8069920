package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bingal/iconify-skill/internal/index"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check iconify installation and data health",
	Long: `Run diagnostic checks on the iconify setup.

This command checks:
- Cache directory
- Bundled offline index
- User cache index and its record/token invariant
- Network connectivity (only when no bundle is available)

Example:
  iconify doctor`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

type checkResult struct {
	name    string
	status  string // "ok", "warn", "error"
	message string
}

func runDoctor(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	fmt.Printf("%siconify Doctor%s\n", colorBold, colorReset)
	fmt.Println(strings.Repeat("-", 40))
	fmt.Println()

	results := []checkResult{
		checkCacheDir(env),
		checkIndexFile(ctx, "Bundled index", env.paths.BundleIndexFile(), "warn"),
		checkIndexFile(ctx, "Cache index", env.paths.CacheIndexFile(), "warn"),
	}

	// Network only matters when no bundle can serve offline queries.
	bundleOK := results[1].status == "ok"
	if !bundleOK {
		results = append(results, checkNetwork(ctx, env))
	}

	hasErrors := false
	for _, r := range results {
		var statusIcon string
		switch r.status {
		case "ok":
			statusIcon = colorGreen + "[OK]" + colorReset
		case "warn":
			statusIcon = colorYellow + "[WARN]" + colorReset
		case "error":
			statusIcon = colorRed + "[ERROR]" + colorReset
			hasErrors = true
		}
		fmt.Printf("%s %s", statusIcon, r.name)
		if r.message != "" {
			fmt.Printf(": %s", r.message)
		}
		fmt.Println()
	}

	fmt.Println()
	if hasErrors {
		return fmt.Errorf("some checks failed")
	}
	fmt.Println("All checks passed.")
	return nil
}

func checkCacheDir(env *appEnv) checkResult {
	if _, err := os.Stat(env.paths.CacheDir); err != nil {
		return checkResult{"Cache directory", "error", err.Error()}
	}
	return checkResult{"Cache directory", "ok", env.paths.CacheDir}
}

// checkIndexFile verifies an index exists, is readable, and satisfies
// the record/token row-count invariant. missingStatus controls how a
// missing file is reported: a missing index is a warning, but a present
// corrupt one is always an error.
func checkIndexFile(ctx context.Context, name, path, missingStatus string) checkResult {
	if _, err := os.Stat(path); err != nil {
		return checkResult{name, missingStatus, "not present"}
	}

	store, err := index.Open(ctx, path, true)
	if err != nil {
		return checkResult{name, "error", err.Error()}
	}
	defer store.Close()

	if err := store.Validate(ctx); err != nil {
		return checkResult{name, "error", err.Error()}
	}

	records, _, err := store.Counts(ctx)
	if err != nil {
		return checkResult{name, "error", err.Error()}
	}
	if records == 0 {
		return checkResult{name, "warn", "empty"}
	}
	return checkResult{name, "ok", fmt.Sprintf("%d icons", records)}
}

func checkNetwork(ctx context.Context, env *appEnv) checkResult {
	cols, err := env.catalog.Load(ctx)
	if err != nil {
		return checkResult{"Network connectivity", "error", err.Error()}
	}
	if len(cols) == 0 {
		return checkResult{"Network connectivity", "error", "catalog returned no collections"}
	}
	return checkResult{"Network connectivity", "ok", fmt.Sprintf("%d collections", len(cols))}
}
