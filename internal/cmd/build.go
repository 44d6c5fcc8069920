package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bingal/iconify-skill/internal/iconset"
	"github.com/bingal/iconify-skill/internal/index"
)

var (
	buildForce    bool
	buildBundle   bool
	buildPrefixes []string
)

var buildIndexCmd = &cobra.Command{
	Use:   "build-index",
	Short: "Build the icon search index",
	Long: `Fetch every collection and build the full-text search index.

By default the index is written to the user cache. With --bundle it is
written to the offline bundle directory together with a collections
metadata snapshot, taking priority over the cache index for searches.

A collection that fails to fetch is reported and skipped; it never
aborts the rest of the build.

Examples:
  iconify build-index
  iconify build-index --force
  iconify build-index --prefixes mdi,lucide --bundle`,
	Args: cobra.NoArgs,
	RunE: runBuildIndex,
}

func init() {
	buildIndexCmd.Flags().BoolVarP(&buildForce, "force", "f", false, "rebuild even if an index exists")
	buildIndexCmd.Flags().BoolVarP(&buildBundle, "bundle", "b", false, "write to the offline bundle directory")
	buildIndexCmd.Flags().StringSliceVarP(&buildPrefixes, "prefixes", "p", nil, "comma-separated collection prefixes to index")

	rootCmd.AddCommand(buildIndexCmd)
}

func runBuildIndex(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	env, err := newEnv()
	if err != nil {
		return err
	}

	indexPath := env.paths.CacheIndexFile()
	if buildBundle {
		indexPath = env.paths.BundleIndexFile()
	}

	// Bundle builds snapshot the live catalog; cache builds may reuse an
	// existing bundle snapshot.
	var cols iconset.Collections
	if buildBundle {
		cols, err = env.catalog.LoadRemote(ctx)
	} else {
		cols, err = env.catalog.Load(ctx)
	}
	if err != nil {
		return err
	}

	cols = filterCollections(cols, buildPrefixes)
	if len(cols) == 0 {
		return fmt.Errorf("no collections match the requested prefixes")
	}

	store, err := index.Open(ctx, indexPath, false)
	if err != nil {
		return err
	}
	defer store.Close()

	fmt.Println("Building search index...")
	fmt.Printf("Output: %s\n", indexPath)

	builder := index.NewBuilder(env.fetcher, env.cfg, env.logger)
	report, err := builder.Build(ctx, store, cols, buildForce)
	if err != nil {
		return err
	}

	if report.Reused {
		fmt.Printf("Index already exists with %d icons. Use --force to rebuild.\n", report.TotalIndexed)
		return nil
	}

	fmt.Println()
	fmt.Printf("Indexed %d icons from %d collections.\n", report.TotalIndexed, report.Collections)
	if report.SkippedIcons > 0 {
		fmt.Printf("Skipped %d icons with broken parent chains.\n", report.SkippedIcons)
	}

	if len(report.Errors) > 0 {
		fmt.Printf("\nErrors (%d):\n", len(report.Errors))
		for i, e := range report.Errors {
			if i >= 5 {
				fmt.Printf("  ... and %d more\n", len(report.Errors)-5)
				break
			}
			fmt.Printf("  - %s\n", e.Error())
		}
	}

	if buildBundle {
		if err := writeBundleMetadata(env.paths.BundleMetadataFile(), cols); err != nil {
			return fmt.Errorf("failed to write bundle metadata: %w", err)
		}
		fmt.Printf("Saved metadata to %s\n", env.paths.BundleMetadataFile())
	}

	return nil
}

func filterCollections(cols iconset.Collections, prefixes []string) iconset.Collections {
	if len(prefixes) == 0 {
		return cols
	}
	filtered := make(iconset.Collections, len(prefixes))
	for _, prefix := range prefixes {
		if info, ok := cols[prefix]; ok {
			filtered[prefix] = info
		}
	}
	return filtered
}

func writeBundleMetadata(path string, cols iconset.Collections) error {
	data, err := json.MarshalIndent(cols, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
