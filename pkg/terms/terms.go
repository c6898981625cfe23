// Package terms implements the keyword filter used to decide whether a
// page, speech or chunk is worth processing at all.
package terms

import (
	"regexp"
	"strings"
)

// Matcher checks text for whole-token mentions of a fixed set of search
// terms. It is safe for concurrent use and has no mutable state.
type Matcher struct {
	terms    []string
	patterns []*regexp.Regexp
}

// NewMatcher compiles a matcher for the given terms. Matching is
// case-insensitive. A term only counts when it appears as a whole
// token: preceded by the start of the string, whitespace, an opening
// bracket or a quote, and followed by the end of the string,
// whitespace, a closing bracket or light punctuation. A plain
// substring check would flag "ONS" inside "ONSR", which is not what we
// want.
func NewMatcher(terms []string) *Matcher {
	patterns := make([]*regexp.Regexp, 0, len(terms))
	for _, term := range terms {
		quoted := regexp.QuoteMeta(strings.ToLower(term))
		patterns = append(patterns, regexp.MustCompile(
			`(^|[('\[\s])`+quoted+`([)\]\s!?.,:;'-]|$)`,
		))
	}

	return &Matcher{terms: terms, patterns: patterns}
}

// Terms returns the search terms the matcher was built with.
func (m *Matcher) Terms() []string {
	return m.terms
}

// ContainsAny reports whether the text mentions any of the search
// terms. With no terms configured, everything passes.
func (m *Matcher) ContainsAny(text string) bool {
	if len(m.patterns) == 0 {
		return true
	}

	text = strings.ToLower(text)
	for _, pattern := range m.patterns {
		if pattern.MatchString(text) {
			return true
		}
	}

	return false
}
