package normalization

import (
	"strings"
)

func ParseInputString(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// ParseUsername trims surrounding space but keeps case, usernames are shown back
// to the user as typed.
func ParseUsername(input string) string {
	return strings.TrimSpace(input)
}

func ParseEmail(input string) string {
	return ParseInputString(input)
}
