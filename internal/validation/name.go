package validation

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	MaxUserNameLength   = 100
	MaxDomainNameLength = 30
)

// ValidateUserName allows an empty display name.
func ValidateUserName(name string) error {
	if utf8.RuneCountInString(strings.TrimSpace(name)) > MaxUserNameLength {
		return newError("name", "name is too long (max %d characters)", MaxUserNameLength)
	}
	return nil
}

// NormalizeDomainName applies NFC, trims and collapses inner whitespace so
// that visually identical names are stored identically.
func NormalizeDomainName(name string) string {
	return strings.Join(strings.Fields(norm.NFC.String(name)), " ")
}

// ValidateDomainName expects a normalized name.
func ValidateDomainName(name string) error {
	if name == "" {
		return newError("name", "domain name is required")
	}

	if utf8.RuneCountInString(name) > MaxDomainNameLength {
		return newError("name", "domain name is too long (max %d characters)", MaxDomainNameLength)
	}

	return nil
}
