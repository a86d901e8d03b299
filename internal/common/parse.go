package common

import "strings"

// ToLowerWithTrim normalizes a configured name such as a log level.
func ToLowerWithTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
