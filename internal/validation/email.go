package validation

import (
	"net/mail"
	"strings"
)

// NormalizeEmail lowercases and trims an address before lookup or storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks length (RFC 5321) and format (RFC 5322).
func ValidateEmail(email string) error {
	if email == "" {
		return newError("email", "email address is required")
	}

	if len(email) > 254 {
		return newError("email", "email address is too long (max 254 characters)")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return newError("email", "invalid email address format")
	}

	return nil
}
