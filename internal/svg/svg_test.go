package svg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAcceptsPlainBody(t *testing.T) {
	assert.NoError(t, Check(`<path d="M10 10 L20 20"/>`))
}

func TestCheckDenylist(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"script element", `<script>alert(1)</script>`},
		{"script element uppercase", `<SCRIPT>alert(1)</SCRIPT>`},
		{"onload handler", `<svg onload="alert(1)">`},
		{"onload mixed case", `<svg OnLoad="x">`},
		{"external href double quote", `<a href="http://evil.example">`},
		{"external href single quote", `<a href='https://evil.example'>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.body)
			require.ErrorIs(t, err, ErrUnsafeContent)
		})
	}
}

// The gate is substring/regex based, not a parser: bodies that merely
// mention these strings in text content are also rejected. That is the
// accepted cost of a best-effort denylist.
func TestCheckIsBestEffortDenylist(t *testing.T) {
	err := Check(`<text>see href="http://example.com"</text>`)
	assert.ErrorIs(t, err, ErrUnsafeContent)
}

func TestAssembleBasic(t *testing.T) {
	body := `<path d='M10 10'/>`

	out, err := Assemble(body, 24, 24, 32, "")
	require.NoError(t, err)

	assert.Contains(t, out, `viewBox="0 0 24 24"`)
	assert.Contains(t, out, `width="32" height="32"`)
	assert.Contains(t, out, body)
	assert.NotContains(t, out, "<g", "no fill group without a color override")
	assert.Contains(t, out, `xmlns="http://www.w3.org/2000/svg"`)
}

func TestAssembleDeterministic(t *testing.T) {
	body := `<path d='M10 10'/>`

	first, err := Assemble(body, 24, 24, 24, "#ff0000")
	require.NoError(t, err)
	second, err := Assemble(body, 24, 24, 24, "#ff0000")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestAssembleColorOverride(t *testing.T) {
	out, err := Assemble(`<path/>`, 24, 24, 24, "#FF0000")
	require.NoError(t, err)
	assert.Contains(t, out, `<g fill="#FF0000">`)
	assert.Contains(t, out, `</g>`)
}

func TestAssembleCurrentColorSentinel(t *testing.T) {
	out, err := Assemble(`<path/>`, 24, 24, 24, "currentColor")
	require.NoError(t, err)
	assert.NotContains(t, out, "<g", "currentColor must not wrap the body")
}

func TestAssembleRejectsUnsafeBody(t *testing.T) {
	out, err := Assemble(`<script>x</script>`, 24, 24, 24, "")
	require.ErrorIs(t, err, ErrUnsafeContent)
	assert.Empty(t, out, "a rejected body produces no output")
}

func TestAttribution(t *testing.T) {
	out := Attribution("mdi:home", "Apache 2.0", "https://example.com/license")
	assert.Contains(t, out, "<!-- Icon: mdi:home -->")
	assert.Contains(t, out, "<!-- License: Apache 2.0 -->")
	assert.Contains(t, out, "<!-- License URL: https://example.com/license -->")
}

func TestAttributionUnknownLicense(t *testing.T) {
	out := Attribution("mdi:home", "", "")
	assert.Contains(t, out, "<!-- License: Unknown -->")
	assert.NotContains(t, out, "License URL")
}
