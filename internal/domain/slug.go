package domain

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxSlugLength is the column width of resources.slug.
const MaxSlugLength = 100

var (
	slugStrip    = regexp.MustCompile(`[^\w\s-]`)
	slugCollapse = regexp.MustCompile(`[-\s]+`)
)

// Slugify derives a URL-safe identifier: accents are folded to ASCII,
// anything other than letters, digits, underscores, spaces and hyphens is
// dropped, and runs of spaces/hyphens become a single hyphen.
func Slugify(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
	ascii, _, err := transform.String(t, s)
	if err != nil {
		ascii = s
	}

	ascii = strings.ToLower(strings.TrimSpace(slugStrip.ReplaceAllString(ascii, "")))
	slug := slugCollapse.ReplaceAllString(ascii, "-")

	if len(slug) > MaxSlugLength {
		slug = strings.TrimRight(slug[:MaxSlugLength], "-")
	}
	return slug
}
