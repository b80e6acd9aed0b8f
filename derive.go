package waypost

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	reNonSlug    = regexp.MustCompile(`[^\w\s-]`)
	reSlugRuns   = regexp.MustCompile(`[\s_-]+`)
	reTag        = regexp.MustCompile(`<[^>]*>`)
	reWhitespace = regexp.MustCompile(`\s+`)
)

// diacriticFolder decomposes characters and strips combining marks, so that
// "Café" slugifies to "cafe".
var diacriticFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

const wordsPerMinute = 220

// Slugify converts a title to a URL-safe, lowercase, hyphenated slug. It is
// total: pathological input yields an empty string, which callers must treat
// as an error rather than accept silently.
func Slugify(title string) string {
	s := strings.ToLower(title)
	if folded, _, err := transform.String(diacriticFolder, s); err == nil {
		s = folded
	}
	s = reNonSlug.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = reSlugRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// ReadingTime estimates reading time in whole minutes from an HTML body.
// Tags are replaced by spaces before counting words; the estimate never goes
// below one minute, so an empty body reads as 1.
func ReadingTime(html string) int {
	text := reTag.ReplaceAllString(html, " ")
	text = strings.TrimSpace(reWhitespace.ReplaceAllString(text, " "))
	if text == "" {
		return 1
	}
	words := len(strings.Split(text, " "))
	minutes := int(math.Ceil(float64(words) / wordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
