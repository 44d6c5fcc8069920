package picker

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

// ansiPattern matches ANSI escape sequences.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripANSI removes ANSI escape sequences so item text from untrusted
// sources cannot corrupt the terminal.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// Truncate shortens s to at most maxWidth display cells, appending an
// ellipsis when truncation occurs. Width is measured in terminal cells,
// not bytes, so wide runes count correctly.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return "…"
	}

	var b strings.Builder
	width := 0
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if width+rw > maxWidth-1 {
			break
		}
		b.WriteRune(r)
		width += rw
	}
	b.WriteRune('…')
	return b.String()
}
