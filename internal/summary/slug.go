package summary

import (
	"regexp"
	"strings"
	"time"
)

const maxSlugLength = 50

var (
	// Word characters are Unicode-wide: accented or CJK titles keep
	// their letters instead of collapsing to an empty slug.
	nonWordChars = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	separatorRun = regexp.MustCompile(`[-\s]+`)
)

// dateLayouts are tried in order against feed publish dates. ISO forms
// first, then the RFC 822 style dates RSS feeds usually carry.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	time.RFC1123Z,
	time.RFC1123,
}

// SanitizeTitle converts a title to a filesystem-safe slug: lowercase,
// non-word characters stripped, whitespace and hyphen runs collapsed to a
// single hyphen, truncated to 50 characters.
func SanitizeTitle(title string) string {
	slug := strings.ToLower(title)
	slug = nonWordChars.ReplaceAllString(slug, "")
	slug = separatorRun.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	// Truncate by runes, not bytes, so multibyte slugs are never split
	// mid-character.
	if runes := []rune(slug); len(runes) > maxSlugLength {
		slug = strings.TrimRight(string(runes[:maxSlugLength]), "-")
	}
	return slug
}

// DateForFilename normalizes a publish date to YYYY-MM-DD. Unparsable or
// empty input falls back to the current UTC date so the filename is always
// well formed.
func DateForFilename(published string) string {
	if published == "" {
		return time.Now().UTC().Format("2006-01-02")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, published); err == nil {
			return t.Format("2006-01-02")
		}
	}

	return time.Now().UTC().Format("2006-01-02")
}

// Filename derives the summary file name from a publish date and title.
func Filename(published, title string) string {
	return DateForFilename(published) + "-" + SanitizeTitle(title) + ".md"
}
