package utils

import (
	"regexp"  // Regular expressions
	"strings" // Input trimming
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9\s\-]{7,20}$`)
)

// IsValidEmail checks the address has a local part, a domain and a dot in the domain
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// IsValidPhone checks for 7 to 20 digits, spaces or dashes with an optional leading plus
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(strings.TrimSpace(phone))
}
