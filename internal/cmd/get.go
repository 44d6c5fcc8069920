package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bingal/iconify-skill/internal/iconset"
	"github.com/bingal/iconify-skill/internal/svg"
)

var (
	getSize  int
	getColor string
)

var getCmd = &cobra.Command{
	Use:   "get <prefix:name>",
	Short: "Get SVG markup for an icon",
	Long: `Fetch one icon and print it as a standalone SVG document followed by
license attribution comments.

Icon bodies containing scripts, event handlers, or external references
are rejected and nothing is printed.

Examples:
  iconify get mdi:home
  iconify get mdi:home --size 32
  iconify get mdi:home --color "#ff0000"`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	getCmd.Flags().IntVarP(&getSize, "size", "s", 0, "rendered size in px (default from config)")
	getCmd.Flags().StringVarP(&getColor, "color", "c", "", "fill color (hex or 'currentColor')")

	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}

	prefix, name, err := iconset.ParseID(args[0])
	if err != nil {
		return err
	}

	size := getSize
	if size <= 0 {
		size = env.cfg.Render.DefaultSize
	}

	data, err := env.fetcher.FetchJSON(cmd.Context(), env.cfg.CollectionURL(prefix))
	if err != nil {
		return err
	}
	doc, err := iconset.ParseDocument(data)
	if err != nil {
		return err
	}

	icon, err := iconset.ResolveCanonical(doc, name)
	if err != nil {
		return fmt.Errorf("icon not found: %s: %w", args[0], err)
	}
	if icon.Body == "" {
		return fmt.Errorf("empty icon body: %s", args[0])
	}

	width, height := icon.Width, icon.Height
	if width == 0 {
		width = size
	}
	if height == 0 {
		height = size
	}

	markup, err := svg.Assemble(icon.Body, width, height, size, getColor)
	if err != nil {
		return err
	}

	fmt.Println(markup)
	fmt.Println()
	fmt.Println(svg.Attribution(args[0], doc.License.Title, doc.License.URL))
	return nil
}
