package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var listCollectionsCmd = &cobra.Command{
	Use:   "list-collections",
	Short: "List available icon collections",
	Long: `List every icon collection known to the catalog with its prefix,
icon count, and license.

The bundled metadata snapshot is used when present, so this works
offline after a bundle has been installed or built.`,
	Args: cobra.NoArgs,
	RunE: runListCollections,
}

func init() {
	rootCmd.AddCommand(listCollectionsCmd)
}

func runListCollections(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}

	cols, err := env.catalog.Load(cmd.Context())
	if err != nil {
		return err
	}

	prefixes := make([]string, 0, len(cols))
	for prefix := range cols {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)

	fmt.Printf("%-20s %-12s %s\n", "Prefix", "Total Icons", "License")
	fmt.Println(strings.Repeat("-", 70))
	for _, prefix := range prefixes {
		info := cols[prefix]
		license := info.License.Title
		if license == "" {
			license = "Unknown"
		}
		fmt.Printf("%-20s %-12d %s\n", prefix, info.Total, license)
	}

	return nil
}
