package validate

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email reports whether value looks like a syntactically valid email
// address. Comparison elsewhere is case-insensitive; this only checks
// shape.
func Email(value string) bool {
	return emailPattern.MatchString(value)
}

// Password checks the account password policy: at least 8 characters
// with at least one uppercase letter, one lowercase letter and one
// digit. Returns a human-readable reason when the policy is violated.
func Password(value string) (ok bool, reason string) {
	if len(value) < 8 {
		return false, "password must be at least 8 characters long"
	}
	var upper, lower, digit bool
	for _, r := range value {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return false, "password must contain at least one uppercase letter, one lowercase letter, and one digit"
	}
	return true, ""
}

// Required reports whether value is non-empty after trimming.
func Required(value string) bool {
	return strings.TrimSpace(value) != ""
}

// NormalizeEmail lowercases and trims an email address so uniqueness
// checks and lookups agree regardless of how the caller typed it.
func NormalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
