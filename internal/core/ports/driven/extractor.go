package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/jawikivec/internal/core/domain"
)

// ArticleExtractor streams articles out of a dump archive.
type ArticleExtractor interface {
	// Extract reads the archive and emits articles in dump order.
	// Both channels are closed when extraction ends. The error channel is
	// buffered and receives at most one error, so callers read it after
	// draining the articles.
	Extract(ctx context.Context, archive io.Reader) (<-chan domain.Article, <-chan error)
}
