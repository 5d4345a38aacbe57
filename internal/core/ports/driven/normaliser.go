package driven

import (
	"context"

	"github.com/custodia-labs/jawikivec/internal/core/domain"
)

// Normaliser converts the markup of a raw page into plain text.
type Normaliser interface {
	// Name returns the normaliser name for logging.
	Name() string

	// Normalise returns the plain text of page. Paragraphs are separated
	// by newlines; an empty result means the page has no prose.
	Normalise(ctx context.Context, page *domain.Page) (string, error)
}
