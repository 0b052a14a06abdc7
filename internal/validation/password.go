package validation

import (
	"strings"
)

var commonPasswordPatterns = []string{
	"password", "123456", "qwerty", "admin", "letmein",
	"welcome", "monkey", "dragon", "master", "sunshine",
}

// ValidatePassword enforces 12 to 72 bytes and rejects common patterns.
// bcrypt silently truncates after 72 bytes.
func ValidatePassword(password string) error {
	if len(password) < 12 {
		return newError("password", "password must be at least 12 characters")
	}

	if len(password) > 72 {
		return newError("password", "password must not exceed 72 characters")
	}

	lower := strings.ToLower(password)
	for _, pattern := range commonPasswordPatterns {
		if strings.Contains(lower, pattern) {
			return newError("password", "password is too common, please choose a stronger one")
		}
	}

	return nil
}
