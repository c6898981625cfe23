// Package urls collects and filters the entry links the readers
// discover.
package urls

import "strings"

// Filter decides whether a discovered URL should be kept.
type Filter interface {
	ShouldKeep(url string) bool
}

// Apply runs every filter over a list of URLs, keeping only the URLs
// that pass all of them. Order is preserved.
func Apply(list []string, filters ...Filter) []string {
	kept := make([]string, 0, len(list))

	for _, url := range list {
		keep := true
		for _, f := range filters {
			if !f.ShouldKeep(url) {
				keep = false
				break
			}
		}
		if keep {
			kept = append(kept, url)
		}
	}

	return kept
}

// SuffixFilter drops URLs ending in a fixed suffix. The readers use it
// to drop ".mh" multi-statement links, whose individual statements
// already appear elsewhere in the same daily listing.
type SuffixFilter struct {
	suffix string
}

// NewSuffixFilter creates a filter dropping URLs that end in suffix.
func NewSuffixFilter(suffix string) *SuffixFilter {
	return &SuffixFilter{suffix: suffix}
}

// ShouldKeep returns false when the URL ends in the configured suffix.
func (f *SuffixFilter) ShouldKeep(url string) bool {
	return !strings.HasSuffix(url, f.suffix)
}
