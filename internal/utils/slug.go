package utils

import (
	"strings"
	"unicode"
)

// Slugify turns a company name into a URL-safe identifier: lower-cased, runs
// of non-alphanumerics collapsed to single hyphens. Uniqueness is the caller's
// concern (a numeric suffix is appended on collision).
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		slug = "company"
	}
	return slug
}
