package source

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe   = regexp.MustCompile(`\s+`)
	nonPrintableRe = regexp.MustCompile(`[^\x20-\x7E]`)
)

// CleanText collapses whitespace runs to a single space and strips every
// character outside printable ASCII.
func CleanText(text string) string {
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = nonPrintableRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
