package api

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidEmail reports whether the address looks deliverable enough for
// the share dialog and auth forms.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// UsernameFromEmail returns the local part of an address.
func UsernameFromEmail(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return ""
}
