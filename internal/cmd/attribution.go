package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/bingal/iconify-skill/internal/iconset"
)

var attributionPrefixes []string

var attributionCmd = &cobra.Command{
	Use:   "attribution",
	Short: "Show license attribution for icon collections",
	Long: `Print a markdown attribution summary for icon collections.

With no flags, every collection in the catalog is listed. With
--prefixes, only those collections are shown, using their full
collection documents.`,
	Args: cobra.NoArgs,
	RunE: runAttribution,
}

func init() {
	attributionCmd.Flags().StringSliceVarP(&attributionPrefixes, "prefixes", "p", nil, "comma-separated collection prefixes")

	rootCmd.AddCommand(attributionCmd)
}

func runAttribution(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}

	if len(attributionPrefixes) == 0 {
		cols, err := env.catalog.Load(cmd.Context())
		if err != nil {
			return err
		}

		prefixes := make([]string, 0, len(cols))
		for prefix := range cols {
			prefixes = append(prefixes, prefix)
		}
		sort.Strings(prefixes)

		fmt.Println("# Icon Attribution Summary")
		fmt.Println()
		for _, prefix := range prefixes {
			printAttribution(prefix, cols[prefix].License)
		}
		return nil
	}

	for _, prefix := range attributionPrefixes {
		data, err := env.fetcher.FetchJSON(cmd.Context(), env.cfg.CollectionURL(prefix))
		if err != nil {
			fmt.Printf("Failed to get info for %s: %v\n", prefix, err)
			continue
		}
		doc, err := iconset.ParseDocument(data)
		if err != nil {
			fmt.Printf("Failed to get info for %s: %v\n", prefix, err)
			continue
		}
		printAttribution(prefix, doc.License)
	}
	return nil
}

func printAttribution(prefix string, license iconset.License) {
	title := license.Title
	if title == "" {
		title = "Unknown"
	}
	fmt.Printf("## %s\n", prefix)
	fmt.Printf("License: %s\n", title)
	if license.URL != "" {
		fmt.Printf("URL: %s\n", license.URL)
	}
	if license.Requirements != "" {
		fmt.Printf("Requirements: %s\n", license.Requirements)
	}
	fmt.Println()
}
