package util

import (
	"regexp"
	"strings"
)

var (
	reSpaces      = regexp.MustCompile(`\s+`)
	reLabelPrefix = regexp.MustCompile(`^(column|col|field)\s*[:\-_]?\s*`)
)

// CleanHeader normalizes a raw column header for matching: lowercase, trimmed,
// internal whitespace collapsed, and a leading "column/col/field" label token
// removed.
func CleanHeader(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = reSpaces.ReplaceAllString(s, " ")
	s = reLabelPrefix.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// FoldHeader is CleanHeader plus separator folding, used for exact-equality
// checks where "rds_on" and "rds on" should collide.
func FoldHeader(input string) string {
	s := CleanHeader(input)
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}
