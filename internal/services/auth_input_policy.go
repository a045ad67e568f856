package services

import (
	"regexp"
	"strings"
)

const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateRegistrationInput returns a user-facing message for the first
// failed rule, or "" when the input is acceptable.
func ValidateRegistrationInput(name string, email string, password string) string {
	if strings.TrimSpace(name) == "" {
		return "name is required"
	}
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return "email is required"
	}
	if !emailPattern.MatchString(normalized) {
		return "invalid email address"
	}
	if len(password) < MinPasswordLength {
		return "password must be at least 6 characters"
	}
	return ""
}

func ValidateLoginInput(email string, password string) string {
	if NormalizeEmail(email) == "" || password == "" {
		return "email and password are required"
	}
	return ""
}
