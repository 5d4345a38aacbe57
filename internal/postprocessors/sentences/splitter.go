// Package sentences provides processors that split article text into
// sentences and drop sentences that carry no words.
package sentences

import (
	"context"
	"strings"
	"unicode/utf8"
)

// SplitterName is the registry name of the Splitter.
const SplitterName = "sentences"

// DefaultMinRunes is the shortest sentence kept by default.
const DefaultMinRunes = 1

// Splitter cuts text at line breaks and sentence-final punctuation.
// Punctuation inside quotes or parentheses does not end a sentence.
// It implements the PostProcessor interface.
type Splitter struct {
	minRunes int
}

// Option configures the Splitter.
type Option func(*Splitter)

// WithMinRunes drops sentences shorter than n characters.
func WithMinRunes(n int) Option {
	return func(s *Splitter) {
		if n > 0 {
			s.minRunes = n
		}
	}
}

// NewSplitter creates a new Splitter with the given options.
func NewSplitter(opts ...Option) *Splitter {
	s := &Splitter{minRunes: DefaultMinRunes}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the processor name.
func (s *Splitter) Name() string {
	return SplitterName
}

// Process splits text into sentences.
// Input sentences are ignored; this processor creates them from text.
func (s *Splitter) Process(ctx context.Context, text string, _ []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		out     []string
		current strings.Builder
		depth   int
	)

	flush := func() {
		sentence := strings.TrimSpace(current.String())
		current.Reset()
		if utf8.RuneCountInString(sentence) >= s.minRunes {
			out = append(out, sentence)
		}
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\n':
			depth = 0
			flush()
			continue
		case isOpener(r):
			depth++
		case isCloser(r):
			if depth > 0 {
				depth--
			}
		}

		current.WriteRune(r)

		if depth == 0 && isTerminator(r) {
			// Runs like "！？" stay with the sentence they end.
			for i+1 < len(runes) && isTerminator(runes[i+1]) {
				i++
				current.WriteRune(runes[i])
			}
			flush()
		}
	}
	flush()

	return out, nil
}

func isTerminator(r rune) bool {
	switch r {
	case '。', '！', '？', '!', '?':
		return true
	}
	return false
}

func isOpener(r rune) bool {
	switch r {
	case '「', '『', '（', '(':
		return true
	}
	return false
}

func isCloser(r rune) bool {
	switch r {
	case '」', '』', '）', ')':
		return true
	}
	return false
}
