package utils

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
	nonSlugChars = regexp.MustCompile(`[^a-z0-9-]+`)
	multiHyphen  = regexp.MustCompile(`-+`)

	// NFD decomposition followed by dropping combining marks turns
	// "Nguyễn" into "Nguyen" and "café" into "cafe".
	deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Slugify normalizes a title into a lowercase, hyphen-separated,
// punctuation-stripped identifier. Pure function: same input, same output.
func Slugify(input string) string {
	ascii, _, err := transform.String(deaccent, input)
	if err != nil {
		ascii = input
	}

	lower := strings.ToLower(ascii)
	hyphenated := strings.ReplaceAll(lower, " ", "-")
	cleaned := nonSlugChars.ReplaceAllString(hyphenated, "")
	collapsed := multiHyphen.ReplaceAllString(cleaned, "-")

	return strings.Trim(collapsed, "-")
}

// BookSlug derives the canonical slug for a book: the normalized title
// suffixed with the owner id. The suffix makes the slug unique per author
// without a global lock; the database unique constraint is the backstop
// for the remaining race.
func BookSlug(title string, ownerID int64) string {
	return fmt.Sprintf("%s-%d", Slugify(title), ownerID)
}
