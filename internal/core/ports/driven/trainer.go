package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/jawikivec/internal/core/domain"
)

// EmbeddingTrainer learns word vectors from a corpus.
type EmbeddingTrainer interface {
	// Train reads a corpus of whitespace-separated tokens, one sentence per
	// line. The corpus is seekable because trainers make several passes.
	Train(ctx context.Context, corpus io.ReadSeeker, params domain.TrainParams) (*domain.Embeddings, error)
}
