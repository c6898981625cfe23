// Package chunk splits long text into overlapping segments sized for a
// model's context window.
package chunk

import "strings"

// Defaults match what the summariser sends to the model. Size is a
// soft target in characters, not a hard cap.
const (
	DefaultSeparator = ". "
	DefaultSize      = 4000
	DefaultOverlap   = 1000
)

// Split breaks text into chunks of roughly size characters, cutting
// only at sep boundaries so no sentence is ever split in half.
// Adjacent chunks share up to overlap characters of trailing context,
// so a passage spanning a cut point still reads whole to the model.
//
// Text no longer than size comes back as a single chunk. A single
// separator unit longer than size is emitted whole, so a chunk may
// exceed the target when no boundary occurs near it.
func Split(text, sep string, size, overlap int) []string {
	if size <= 0 {
		size = DefaultSize
	}
	if sep == "" {
		sep = DefaultSeparator
	}
	if len(text) <= size {
		return []string{text}
	}

	units := splitUnits(text, sep)

	var chunks []string
	var current []string
	length := 0

	for _, unit := range units {
		if length > 0 && length+len(unit) > size {
			chunks = append(chunks, strings.Join(current, ""))
			current, length = carryOverlap(current, overlap)
		}
		current = append(current, unit)
		length += len(unit)
	}
	if length > 0 {
		chunks = append(chunks, strings.Join(current, ""))
	}

	return chunks
}

// splitUnits cuts text at each separator, keeping the separator
// attached to the unit before it so concatenating all units gives the
// original text back.
func splitUnits(text, sep string) []string {
	parts := strings.Split(text, sep)
	units := make([]string, len(parts))
	for i, part := range parts {
		if i < len(parts)-1 {
			units[i] = part + sep
		} else {
			units[i] = part
		}
	}
	return units
}

// carryOverlap returns the trailing whole units of a finished chunk
// whose combined length fits the overlap budget, to seed the next one.
func carryOverlap(units []string, overlap int) ([]string, int) {
	if overlap <= 0 {
		return nil, 0
	}

	length := 0
	start := len(units)
	for start > 0 && length+len(units[start-1]) <= overlap {
		start--
		length += len(units[start])
	}

	carried := make([]string, len(units)-start)
	copy(carried, units[start:])

	return carried, length
}
