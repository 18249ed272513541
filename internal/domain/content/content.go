// Package content holds the marketing-site and knowledge-base entities: blog,
// projects, technologies, maintenance notices, FAQ and project requirements.
// They are plain CRUD records; validation lives in each Validate method.
package content

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)
	slugValid   = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Slugify turns a title into a URL slug, folding accents ("Diseño Web" ->
// "diseno-web").
func Slugify(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	slug := slugInvalid.ReplaceAllString(strings.ToLower(folded), "-")
	return strings.Trim(slug, "-")
}

// normalizeSlug returns slug, or one derived from fallback when slug is empty.
func normalizeSlug(slug, fallback string) (string, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		slug = Slugify(fallback)
	}
	if !slugValid.MatchString(slug) {
		return "", fmt.Errorf("invalid slug: %q", slug)
	}
	return slug, nil
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}
