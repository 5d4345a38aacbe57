package driven

// Segmenter splits text of a language without word delimiters into
// surface-form tokens.
type Segmenter interface {
	// Segment returns the surface forms of text in order.
	// Whitespace-only tokens are never returned.
	Segment(text string) ([]string, error)
}
