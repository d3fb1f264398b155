package utils

import (
	"regexp"
	"strings"
)

var (
	nonWordChars   = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
	hyphenRuns     = regexp.MustCompile(`-+`)
	edgeHyphens    = regexp.MustCompile(`^-+|-+$`)
)

// Slugify derives a URL-friendly slug from a skill name:
// "UI/UX Design" -> "uiux-design".
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = nonWordChars.ReplaceAllString(slug, "")
	slug = whitespaceRuns.ReplaceAllString(slug, "-")
	slug = hyphenRuns.ReplaceAllString(slug, "-")
	slug = edgeHyphens.ReplaceAllString(slug, "")
	return slug
}
