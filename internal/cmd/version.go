package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bingal/iconify-skill/internal/config"
)

// Build information (set via ldflags during build)
var (
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("iconify %s\n", config.Version)
		fmt.Printf("  commit: %s\n", GitCommit)
		fmt.Printf("  built:  %s\n", BuildDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
