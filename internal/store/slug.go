package store

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	nonWordRegex    = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
	hyphenRunRegex  = regexp.MustCompile(`-+`)
)

// Slugify converts a human readable name into a URL-safe slug
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = nonWordRegex.ReplaceAllString(slug, "")
	slug = whitespaceRegex.ReplaceAllString(slug, "-")
	slug = hyphenRunRegex.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// uniqueSlug appends -1, -2, ... until taken reports the slug as free
func uniqueSlug(base string, taken func(string) bool) string {
	if base == "" {
		base = "untitled"
	}
	slug := base
	for i := 1; taken(slug); i++ {
		slug = fmt.Sprintf("%s-%d", base, i)
	}
	return slug
}
