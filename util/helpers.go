// Package util provides shared validation and formatting helpers.
package util

import (
	"regexp"
	"strings"
)

var (
	// Pragmatic RFC-style check; the mail provider remains the final judge.
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	slugRe     = regexp.MustCompile(`[^a-z0-9]+`)
)

// ValidEmail reports whether the string looks like an email address.
func ValidEmail(email string) bool {
	return emailRe.MatchString(strings.TrimSpace(email))
}

// NormalizeEmail lower-cases and trims an email for storage and comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidHexColor reports whether the string is a #RRGGBB color.
func ValidHexColor(color string) bool {
	return hexColorRe.MatchString(color)
}

// Slugify converts a display name into a URL-safe slug.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
