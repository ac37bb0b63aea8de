// Package template implements placeholder extraction and substitution over
// template bodies. Placeholders are {{name}} tokens where name is made of
// word characters.
package template

import (
	"fmt"
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Placeholders returns each distinct placeholder name exactly once, in order
// of first occurrence in the body.
func Placeholders(body string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(body, -1)
	seen := make(map[string]bool, len(matches))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		names = append(names, m[1])
	}
	return names
}

// Render substitutes every {{key}} occurrence for each key in values.
// Values for names not present in the body are ignored; placeholders with no
// value are left verbatim. Callers validate required values up front via
// Placeholders.
func Render(body string, values map[string]any) string {
	rendered := body
	for key, value := range values {
		token := "{{" + key + "}}"
		rendered = strings.ReplaceAll(rendered, token, fmt.Sprintf("%v", value))
	}
	return rendered
}
