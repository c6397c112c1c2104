package validation

import "regexp"

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail reports whether email looks like an address worth inviting.
func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}
