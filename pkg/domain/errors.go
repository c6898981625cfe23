package domain

import "fmt"

// MalformedPageError is returned when a structural element we rely on
// is missing from a page. It usually means the source site changed its
// markup and the readers need updating.
type MalformedPageError struct {
	URL     string
	Missing string
}

// Error implements the error interface.
func (e *MalformedPageError) Error() string {
	return fmt.Sprintf("malformed page %s: missing %s", e.URL, e.Missing)
}

// NewMalformedPageError creates a MalformedPageError for a missing
// structural element.
func NewMalformedPageError(url, missing string) *MalformedPageError {
	return &MalformedPageError{URL: url, Missing: missing}
}
