package util

import (
	"regexp"
	"strconv"
	"strings"
)

var reNumeric = regexp.MustCompile(`^[+-]?\d{1,3}(?: \d{3})*(?:[.,]\d+)?$|^[+-]?\d+(?:[.,]\d+)?$`)

// ParseNumber reports whether a raw cell text is a plain numeric value and
// returns it. Decimal commas and thin thousands spaces are accepted; anything
// with units or extra tokens stays a string.
func ParseNumber(input string) (float64, bool) {
	s := strings.TrimSpace(input)
	if s == "" || !reNumeric.MatchString(s) {
		return 0, false
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
