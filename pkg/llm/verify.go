package llm

import (
	"regexp"
	"strings"
)

// Letters and digits in any script survive normalisation; accented
// names like "Siân" must not collapse into different words.
var punctuation = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// Grounded reports whether a model response appears verbatim in the
// source text it was generated from.
//
// Both sides are normalised to lowercase with punctuation stripped,
// then the response is checked one sentence-like unit at a time. Every
// unit must appear as a contiguous substring of the normalised source;
// the first unit that does not ends the check. This catches
// hallucinated or paraphrased output cheaply: exact wording is
// required, formatting is not. An empty response is trivially
// grounded.
func Grounded(response, source string) bool {
	normalised := normalise(source)

	for _, unit := range strings.Split(response, ". ") {
		if !strings.Contains(normalised, normalise(unit)) {
			return false
		}
	}

	return true
}

func normalise(text string) string {
	return punctuation.ReplaceAllString(strings.ToLower(text), "")
}
