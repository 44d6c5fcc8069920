// Package svg assembles icon bodies into standalone SVG documents.
//
// The safety gate is a denylist of regex checks, not a parser-based
// sanitizer: it is a pragmatic best-effort filter against the obvious
// script/event-handler/external-reference vectors, not a security
// boundary against a determined adversary.
package svg

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrUnsafeContent indicates the icon body failed the safety gate and
// must not be rendered.
var ErrUnsafeContent = errors.New("icon body contains unsafe content")

// unsafePattern is one denylist entry.
type unsafePattern struct {
	Name  string
	Regex *regexp.Regexp
}

// unsafePatterns are applied case-insensitively against the raw body.
var unsafePatterns = []unsafePattern{
	{
		Name:  "script element",
		Regex: regexp.MustCompile(`(?i)<script`),
	},
	{
		Name:  "onload handler",
		Regex: regexp.MustCompile(`(?i)onload=`),
	},
	{
		Name:  "external href",
		Regex: regexp.MustCompile(`(?i)href=["']http`),
	},
}

// Check rejects bodies containing a script opening tag, an onload
// attribute, or an href pointing at an external http resource.
func Check(body string) error {
	for _, p := range unsafePatterns {
		if p.Regex.MatchString(body) {
			return fmt.Errorf("%w: %s", ErrUnsafeContent, p.Name)
		}
	}
	return nil
}

// Assemble wraps body in a minimal SVG document shell. The viewBox uses
// the icon's intrinsic width and height while the rendered width and
// height are both set to size. A non-empty color other than the
// "currentColor" sentinel wraps the body in a fill-overriding group.
//
// Assemble is a pure function: identical inputs produce identical
// output, and a rejected body produces no output at all.
func Assemble(body string, width, height, size int, color string) (string, error) {
	if err := Check(body); err != nil {
		return "", err
	}

	parts := []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		fmt.Sprintf(`viewBox="0 0 %d %d"`, width, height),
		fmt.Sprintf(`width="%d" height="%d">`, size, size),
	}

	if color != "" && color != "currentColor" {
		parts = append(parts, fmt.Sprintf(`<g fill="%s">`, color), body, `</g>`)
	} else {
		parts = append(parts, body)
	}

	parts = append(parts, `</svg>`)
	return strings.Join(parts, "\n"), nil
}

// Attribution renders the license comment block emitted after an icon.
func Attribution(fullID, licenseTitle, licenseURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<!-- Icon: %s -->\n", fullID)
	if licenseTitle == "" {
		licenseTitle = "Unknown"
	}
	fmt.Fprintf(&b, "<!-- License: %s -->", licenseTitle)
	if licenseURL != "" {
		fmt.Fprintf(&b, "\n<!-- License URL: %s -->", licenseURL)
	}
	return b.String()
}
