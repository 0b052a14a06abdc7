package repository

import (
	"strings"
)

// isUniqueViolation reports a unique constraint failure from either SQLite or
// PostgreSQL.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value")
}
