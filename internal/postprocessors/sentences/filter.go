package sentences

import (
	"context"
	"unicode"
)

// LetterFilterName is the registry name of the LetterFilter.
const LetterFilterName = "letters"

// LetterFilter drops sentences that contain no letters, such as lines
// left over from stripped tables or lists of numbers.
type LetterFilter struct{}

// NewLetterFilter creates a new LetterFilter.
func NewLetterFilter() *LetterFilter {
	return &LetterFilter{}
}

// Name returns the processor name.
func (f *LetterFilter) Name() string {
	return LetterFilterName
}

// Process returns the sentences that contain at least one letter.
func (f *LetterFilter) Process(_ context.Context, _ string, sentences []string) ([]string, error) {
	kept := sentences[:0:0]
	for _, s := range sentences {
		if hasLetter(s) {
			kept = append(kept, s)
		}
	}
	return kept, nil
}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
