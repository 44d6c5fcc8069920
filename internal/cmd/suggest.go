package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var wordPattern = regexp.MustCompile(`\b\w+\b`)

var suggestCmd = &cobra.Command{
	Use:   "suggest <intent>",
	Short: "Suggest icons for a natural-language intent",
	Long: `Turn an intent description into a search query and run it.

An optional intent keyword map (intent_keywords.json in the cache
directory) maps intent phrases to curated icon names; without a match
the first few words of the intent are used directly.

Example:
  iconify suggest "a button to close the dialog"`,
	Args: cobra.ExactArgs(1),
	RunE: runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	env, err := newEnv()
	if err != nil {
		return err
	}

	query := intentQuery(args[0], env.paths.IntentKeywordsFile())
	if query == "" {
		return fmt.Errorf("could not extract keywords from intent %q", args[0])
	}

	fmt.Printf("Searching for: %s\n", query)

	hits, err := executeSearch(cmd.Context(), env, query, 10, nil)
	if err != nil {
		return err
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

// intentQuery maps an intent description to a search query. A curated
// keyword map wins when one of its keys appears in the intent;
// otherwise the first three words are used.
func intentQuery(intent, keywordsPath string) string {
	intentLower := strings.ToLower(intent)

	if data, err := os.ReadFile(keywordsPath); err == nil {
		var intentMap map[string][]string
		if err := json.Unmarshal(data, &intentMap); err == nil {
			keys := make([]string, 0, len(intentMap))
			for key := range intentMap {
				keys = append(keys, key)
			}
			sort.Strings(keys)
			for _, key := range keys {
				if key != "" && strings.Contains(intentLower, key) {
					icons := intentMap[key]
					n := len(icons)
					if n > 5 {
						n = 5
					}
					return strings.Join(icons[:n], " ")
				}
			}
		}
	}

	words := wordPattern.FindAllString(intentLower, 3)
	return strings.Join(words, " ")
}
