// Package stringutil holds the shape predicates behind URL and email checks.
package stringutil

import "strings"

const (
	httpScheme  = "http://"
	httpsScheme = "https://"
)

// IsValidEmail reports whether s has the shape of an email address.
// Only the presence of "@" is required.
func IsValidEmail(s string) bool {
	return strings.Contains(s, "@")
}

// IsValidURL reports whether s is an absolute http(s) URL.
func IsValidURL(s string) bool {
	return strings.HasPrefix(s, httpScheme) || strings.HasPrefix(s, httpsScheme)
}
