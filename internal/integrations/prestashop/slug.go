// internal/integrations/prestashop/slug.go
package prestashop

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Slug builds a link_rewrite value: lowercase, only ASCII letters, digits and
// whitespace survive, whitespace runs collapse into single hyphens.
func Slug(name string) string {
	var b strings.Builder
	for _, r := range cases.Lower(language.Und).String(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), "-")
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
