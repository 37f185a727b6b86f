package validate

import (
	"strconv"
	"strings"
)

const (
	MinUsername = 3
	MinPassword = 6
)

// Username trims and checks the minimum length.
func Username(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, len(s) >= MinUsername
}

// Password checks the minimum length. Trimmed first so an all-spaces input
// does not pass.
func Password(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, len(s) >= MinPassword
}

// Required trims and rejects empty values.
func Required(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}

// ItemID parses a well-formed positive integer id.
func ItemID(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
