package model

import (
	"regexp"
	"strings"
)

var handlePattern = regexp.MustCompile(`^[a-zA-Z0-9._]+$`)

// NormalizeUsername strips a single leading "@", trims whitespace and lowercases.
func NormalizeUsername(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "@")
	return strings.ToLower(strings.TrimSpace(s))
}

// ValidHandle reports whether s only uses characters Instagram allows in a handle.
func ValidHandle(s string) bool {
	return handlePattern.MatchString(s)
}
