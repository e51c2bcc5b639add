package usecases

import (
	"regexp"
	"strings"
)

var (
	slugPattern   = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	slugSpaces    = regexp.MustCompile(`\s+`)
	slugNonWord   = regexp.MustCompile(`[^a-z0-9_-]+`)
	slugDashes    = regexp.MustCompile(`-{2,}`)
	slugUnderline = regexp.MustCompile(`_+`)
)

// Slugify turns a title into a lowercase hyphenated slug.
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugNonWord.ReplaceAllString(s, "")
	s = slugUnderline.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// IsValidSlug reports whether s is lowercase alphanumeric words joined by single hyphens.
func IsValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}
