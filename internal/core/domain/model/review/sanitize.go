package review

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

const maxSanitizePasses = 4

// Sanitize strips every HTML tag and returns plain, trimmed text. Entities are
// unescaped, and the text is stripped again until unescaping uncovers no
// more markup; input that keeps nesting escaped markup stays escaped.
func Sanitize(s string) string {
	text := s
	for range maxSanitizePasses {
		plain := html.UnescapeString(strictPolicy.Sanitize(text))
		if plain == text {
			return strings.TrimSpace(plain)
		}
		text = plain
	}
	return strings.TrimSpace(html.EscapeString(text))
}
