package iconset

import (
	"errors"
	"fmt"
	"sort"
)

// ErrResolution indicates a broken parent chain: either a parent
// reference points at a missing icon, or the chain contains a cycle.
var ErrResolution = errors.New("icon resolution failed")

// lookup finds an entry by name, checking the icons table first and the
// document alias table second.
func lookup(doc *Document, name string) (Icon, bool) {
	if icon, ok := doc.Icons[name]; ok {
		return icon, true
	}
	if icon, ok := doc.Aliases[name]; ok {
		return icon, true
	}
	return Icon{}, false
}

// ResolveCanonical follows parent references from name until it reaches
// an entry with no parent and returns that terminal entry. Missing
// dimensions are filled from the document defaults.
//
// The source data forms a forest by convention but nothing enforces
// acyclicity, so the walk keeps a visited set and fails rather than loop
// forever on a cycle.
func ResolveCanonical(doc *Document, name string) (Icon, error) {
	visited := make(map[string]bool)
	current := name

	for {
		if visited[current] {
			return Icon{}, fmt.Errorf("%w: parent cycle at %q resolving %q", ErrResolution, current, name)
		}
		visited[current] = true

		icon, ok := lookup(doc, current)
		if !ok {
			return Icon{}, fmt.Errorf("%w: %q not found resolving %q", ErrResolution, current, name)
		}
		if icon.Parent == "" {
			if icon.Width == 0 {
				icon.Width = doc.Width
			}
			if icon.Height == 0 {
				icon.Height = doc.Height
			}
			return icon, nil
		}
		current = icon.Parent
	}
}

// FlattenAliases collects the icon's own alias set unioned with the
// alias sets of every ancestor on its parent chain. The result is
// sorted for deterministic token generation; callers treat it as a set.
//
// Same cycle safety as ResolveCanonical: a parent cycle is an error,
// not a hang.
func FlattenAliases(doc *Document, name string) ([]string, error) {
	set := make(map[string]bool)
	visited := make(map[string]bool)
	current := name

	for {
		if visited[current] {
			return nil, fmt.Errorf("%w: parent cycle at %q flattening aliases of %q", ErrResolution, current, name)
		}
		visited[current] = true

		icon, ok := lookup(doc, current)
		if !ok {
			// A dangling parent truncates the chain; aliases gathered so
			// far are still usable for matching.
			break
		}
		for alias := range icon.Aliases {
			set[alias] = true
		}
		if icon.Parent == "" {
			break
		}
		current = icon.Parent
	}

	aliases := make([]string, 0, len(set))
	for alias := range set {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases, nil
}
