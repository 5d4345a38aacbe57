// Package kagome provides a Japanese segmenter backed by the kagome
// morphological analyser and the IPA dictionary.
package kagome

import (
	"fmt"
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"github.com/custodia-labs/jawikivec/internal/core/domain"
	"github.com/custodia-labs/jawikivec/internal/core/ports/driven"
)

// Ensure Segmenter implements the interface.
var _ driven.Segmenter = (*Segmenter)(nil)

// Mode names accepted by Config.Mode.
const (
	ModeNormal   = "normal"
	ModeSearch   = "search"
	ModeExtended = "extended"
)

// Config holds configuration for the Segmenter.
type Config struct {
	// Mode selects the analysis mode (default: normal).
	Mode string
}

// Segmenter splits Japanese text into surface forms.
// It is safe for concurrent use.
type Segmenter struct {
	tokenizer *tokenizer.Tokenizer
	mode      tokenizer.TokenizeMode
}

// New loads the IPA dictionary and creates a Segmenter.
func New(cfg Config) (*Segmenter, error) {
	mode, err := ParseMode(cfg.Mode)
	if err != nil {
		return nil, err
	}

	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}

	return &Segmenter{tokenizer: t, mode: mode}, nil
}

// Segment returns the surface forms of text in order.
func (s *Segmenter) Segment(text string) ([]string, error) {
	tokens := s.tokenizer.Analyze(text, s.mode)

	surfaces := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if strings.TrimSpace(tok.Surface) == "" {
			continue
		}
		surfaces = append(surfaces, tok.Surface)
	}
	return surfaces, nil
}

// ParseMode maps a mode name to a kagome analysis mode.
func ParseMode(name string) (tokenizer.TokenizeMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ModeNormal:
		return tokenizer.Normal, nil
	case ModeSearch:
		return tokenizer.Search, nil
	case ModeExtended:
		return tokenizer.Extended, nil
	default:
		return tokenizer.Normal, fmt.Errorf("segmenter mode %q: %w", name, domain.ErrInvalidConfig)
	}
}
