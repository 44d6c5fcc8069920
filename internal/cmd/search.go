package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bingal/iconify-skill/internal/iconset"
	"github.com/bingal/iconify-skill/internal/index"
)

var (
	searchJSON     bool
	searchLimit    int
	searchPrefixes []string
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search for icons by name or alias",
	Long: `Search the icon index for names and aliases matching the query.

Query tokens match as prefixes, so "home set" finds "home-settings".
When no index exists the search degrades to a slow live scan over the
catalog and results come back unranked.

Examples:
  iconify search home                      # Ranked full-text search
  iconify search "arrow left" --limit 5    # Multi-token query
  iconify search home -p mdi,lucide        # Restrict to collections`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", 20, "maximum number of results")
	searchCmd.Flags().StringSliceVarP(&searchPrefixes, "prefixes", "p", nil, "comma-separated collection prefixes to search")

	rootCmd.AddCommand(searchCmd)
}

// searchHit is one search result; Score is meaningful only when Ranked.
type searchHit struct {
	Prefix string  `json:"prefix"`
	Name   string  `json:"name"`
	FullID string  `json:"full_id"`
	Score  float64 `json:"score,omitempty"`
	Ranked bool    `json:"ranked"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}

	hits, err := executeSearch(cmd.Context(), env, args[0], searchLimit, searchPrefixes)
	if err != nil {
		return err
	}

	if searchJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetEscapeHTML(false)
		return enc.Encode(struct {
			Results []searchHit `json:"results"`
			Total   int         `json:"total"`
		}{Results: hits, Total: len(hits)})
	}

	if len(hits) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	for _, h := range hits {
		if h.Ranked {
			fmt.Printf("%s (score: %.2f)\n", h.FullID, h.Score)
		} else {
			fmt.Println(h.FullID)
		}
	}
	return nil
}

// executeSearch picks the index source once and runs the query against
// it, degrading to a live catalog scan when no index exists.
func executeSearch(ctx context.Context, env *appEnv, query string, limit int, prefixes []string) ([]searchHit, error) {
	source := index.SelectSource(ctx, env.paths.BundleIndexFile(), env.paths.CacheIndexFile())

	if source.Kind != index.SourceNone {
		store, err := index.Open(ctx, source.Path, true)
		if err != nil {
			return nil, err
		}
		defer store.Close()

		env.logger.Debug("searching index", "source", source.Kind.String(), "path", source.Path)
		results, err := store.Search(ctx, query, limit, prefixes)
		if err != nil {
			return nil, err
		}

		hits := make([]searchHit, len(results))
		for i, r := range results {
			hits[i] = searchHit{
				Prefix: r.Prefix,
				Name:   r.Name,
				FullID: iconset.FullID(r.Prefix, r.Name),
				Score:  r.Score,
				Ranked: true,
			}
		}
		return hits, nil
	}

	fmt.Fprintln(os.Stderr, "Warning: no search index available, falling back to network scan (slow). Run 'iconify build-index' to fix this.")

	cols, err := env.catalog.Load(ctx)
	if err != nil {
		return nil, err
	}

	results, err := index.LiveScan(ctx, env.fetcher, env.cfg.CollectionURL, cols, query, limit, prefixes, env.logger)
	if err != nil {
		return nil, err
	}

	hits := make([]searchHit, len(results))
	for i, r := range results {
		hits[i] = searchHit{
			Prefix: r.Prefix,
			Name:   r.Name,
			FullID: iconset.FullID(r.Prefix, r.Name),
		}
	}
	return hits, nil
}
