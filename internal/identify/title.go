package identify

import (
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DeriveTrackTitle builds a human-readable title hint from an audio file
// name, for submissions that carry no explicit title. Separators become
// spaces, a leading track number is dropped, and the remainder is title
// cased.
func DeriveTrackTitle(sourcePath string) string {
	if sourcePath == "" {
		return "Unknown Track"
	}
	base := filepath.Base(sourcePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range base {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(cleaned.String())
	title = trimTrackNumber(title)
	if title == "" {
		return "Unknown Track"
	}
	return cases.Title(language.Und).String(title)
}

// trimTrackNumber drops a leading all-digit token ("01 Foo" -> "Foo").
func trimTrackNumber(title string) string {
	first, rest, found := strings.Cut(title, " ")
	if !found {
		return title
	}
	for _, r := range first {
		if !unicode.IsDigit(r) {
			return title
		}
	}
	return rest
}
