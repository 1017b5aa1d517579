package validation

import (
	"regexp"
)

const maxSlugLen = 200

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Slugs as the content system generates them: letters, digits and the
// unreserved URL marks '-', '_', '.' and '~'.
var slugRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._~-]*$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// IsValidSlug rejects path segments no entry could have, so they never reach the API.
func IsValidSlug(slug string) bool {
	return len(slug) <= maxSlugLen && slugRe.MatchString(slug)
}
