// Package sanitize cleans user-supplied values before they are written to logs.
package sanitize

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

var redacted = strings.NewReplacer(":", "", "#", "")

// StripANSI removes ANSI escape sequences.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// Redact strips escape sequences and removes ':' and '#'.
func Redact(s string) string {
	return redacted.Replace(StripANSI(s))
}
