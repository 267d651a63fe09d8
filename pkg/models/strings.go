package models

import "strings"

func trimSpace(s string) string {
	return strings.TrimSpace(s)
}

// HasText reports whether s contains anything besides whitespace.
func HasText(s string) bool {
	return strings.TrimSpace(s) != ""
}
