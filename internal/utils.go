package internal

import (
	"bytes"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/getzep/sprig/v3"
)

// ParsePrompt renders promptTemplate with data. Sprig's text functions are available
// to templates, e.g. {{ .Text | trim }}.
func ParsePrompt(promptTemplate string, data any) (string, error) {
	tmpl, err := template.New("prompt").Funcs(sprig.TxtFuncMap()).Parse(promptTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, data)
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}

// NormalizeTerm lower-cases and trims a slang term and collapses inner whitespace.
// Used as the key for cached lookups.
func NormalizeTerm(term string) string {
	return strings.ToLower(strings.Join(strings.Fields(term), " "))
}

// Truncate shortens s to at most n runes, appending an ellipsis when it cuts.
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "…"
}
