// Package textclean turns untrusted participant input into plain text.
package textclean

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict strips every element; script and style bodies are dropped entirely.
var strict = bluemonday.StrictPolicy()

// Clean removes markup and surrounding whitespace from s.
// Entities are unescaped afterwards because the result is served as JSON and
// embedded in prompts, never rendered as HTML.
func Clean(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}
