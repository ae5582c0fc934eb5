package domain

import "strings"

// encodedSpace replaces literal spaces in identifiers.
// Only spaces are substituted; other characters pass through untouched.
const encodedSpace = "%20"

// NormalizeIdentifier canonicalizes a creature name or number into the form
// the upstream service expects in a URL path segment.
func NormalizeIdentifier(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", NewInvalidIdentifierError("name or number is required")
	}

	return strings.ReplaceAll(strings.ToLower(trimmed), " ", encodedSpace), nil
}
