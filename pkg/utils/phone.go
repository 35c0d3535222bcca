package utils

import (
	"strings"
	"unicode"
)

// NormalizePhone strips formatting from a phone number. It returns "" when the
// input is not a plausible number (6 to 20 digits, optional leading +).
func NormalizePhone(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	var b strings.Builder
	digits := 0
	for i, r := range trimmed {
		switch {
		case unicode.IsDigit(r):
			b.WriteRune(r)
			digits++
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return ""
		}
	}

	if digits < 6 || digits > 20 {
		return ""
	}
	return b.String()
}
