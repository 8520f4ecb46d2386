// Package dbid validates and normalizes upstream database identifiers
package dbid

import (
	"strings"

	perr "caserelay/internal/platform/errors"
)

// Field is the caller facing name of the identifier in requests and errors
const Field = "databaseId"

const (
	msgRequired = "Database ID is required"
	msgFormat   = "Invalid database ID format. Must be 32 hexadecimal characters."
)

// Normalize strips dashes, lowercases and checks for exactly 32 hex characters.
// Nothing else is stripped: surrounding whitespace is a format error.
// Errors carry ErrorCodeValidation so they map to 400 before any network call
func Normalize(s string) (string, error) {
	if s == "" {
		return "", perr.WithField(perr.Validationf(msgRequired), Field)
	}
	id := strings.ToLower(strings.ReplaceAll(s, "-", ""))
	if len(id) != 32 || !isHex(id) {
		return "", perr.WithField(perr.Validationf(msgFormat), Field)
	}
	return id, nil
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
