package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/bingal/iconify-skill/internal/picker"
)

var pickPrefixes []string

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactively pick an icon",
	Long: `Open an interactive picker that searches the icon index as you type.

Enter prints the selected icon id to stdout (pipe it into 'iconify
get'); Esc cancels.

Requires a built index; run 'iconify build-index' first.`,
	Args: cobra.NoArgs,
	RunE: runPick,
}

func init() {
	pickCmd.Flags().StringSliceVarP(&pickPrefixes, "prefixes", "p", nil, "comma-separated collection prefixes to search")

	rootCmd.AddCommand(pickCmd)
}

// indexProvider adapts executeSearch to the picker's Provider interface.
type indexProvider struct {
	env      *appEnv
	prefixes []string
}

func (p *indexProvider) Fetch(ctx context.Context, req picker.Request) (picker.Response, error) {
	if req.Query == "" {
		return picker.Response{}, nil
	}
	hits, err := executeSearch(ctx, p.env, req.Query, req.Limit, p.prefixes)
	if err != nil {
		return picker.Response{}, err
	}
	items := make([]picker.Item, len(hits))
	for i, h := range hits {
		items[i] = picker.Item{ID: h.FullID, Score: h.Score}
	}
	return picker.Response{Items: items}, nil
}

func runPick(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}

	lipgloss.SetColorProfile(termenv.ColorProfile())

	model := picker.NewModel(&indexProvider{env: env, prefixes: pickPrefixes})
	prog := tea.NewProgram(model, tea.WithOutput(os.Stderr))

	final, err := prog.Run()
	if err != nil {
		return fmt.Errorf("picker failed: %w", err)
	}

	result := final.(picker.Model).Result()
	if result == "" {
		return fmt.Errorf("no icon selected")
	}
	fmt.Println(result)
	return nil
}
