// internal/app/system/normalize/normalize.go

// Package normalize provides canonical forms for user-supplied fields
// before they are stored. Stores call these so the same value always
// lands in the database the same way regardless of which handler wrote
// it.
package normalize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict strips all markup. Member-facing fields are plain text; any
// HTML a client sends is treated as hostile input, not formatting.
var strict = bluemonday.StrictPolicy()

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace and collapses internal runs of
// whitespace to single spaces. Case is preserved.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Phone keeps digits and a leading "+", dropping spaces, dashes, and
// parentheses.
func Phone(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Text sanitizes a free-text field (address, descriptions): markup is
// stripped and whitespace trimmed.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}

// Shift lowercases and trims a shift label.
func Shift(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
