package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	slugInvalid  = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces   = regexp.MustCompile(`[\s_]+`)
	slugRepeated = regexp.MustCompile(`-+`)
)

// GenerateSlug turns a business name into a URL-safe slug with a short
// random suffix to avoid collisions.
func GenerateSlug(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugInvalid.ReplaceAllString(slug, "")
	slug = slugSpaces.ReplaceAllString(slug, "-")
	slug = slugRepeated.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:6]
	if slug == "" {
		return suffix
	}
	return slug + "-" + suffix
}
