package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/custodia-labs/jawikivec/internal/core/domain"
	"github.com/custodia-labs/jawikivec/internal/logger"
	"github.com/custodia-labs/jawikivec/internal/vectorfmt"
)

// train learns embeddings over the training corpus and writes the binary
// model and the text vectors together.
func (p *Pipeline) train(ctx context.Context) ([]domain.ArtifactDigest, error) {
	if p.trainer == nil {
		return nil, fmt.Errorf("embedding trainer not configured")
	}

	input := p.cfg.TrainingInput()
	corpus, err := os.Open(p.cfg.Path(input))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", input, err)
	}
	defer corpus.Close()

	counts, err := countTokens(corpus)
	if err != nil {
		return nil, fmt.Errorf("count tokens in %s: %w", input, err)
	}
	if _, err := corpus.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind %s: %w", input, err)
	}

	params := p.cfg.Train.Params()
	logger.Info("Training %d-dimensional vectors on %s (%d distinct tokens, window %d, min count %d, %d workers, %d iterations)",
		params.Dim, input, len(counts), params.Window, params.MinCount, params.Workers, params.Iter)

	embeddings, err := p.trainer.Train(ctx, corpus, params)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: train embeddings: %w", domain.ErrCollaborator, err)
	}
	if err := embeddings.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrCollaborator, err)
	}
	if embeddings.Dim != params.Dim {
		return nil, fmt.Errorf("%w: trainer returned %d dimensions, want %d",
			domain.ErrCollaborator, embeddings.Dim, params.Dim)
	}

	vocab := selectVocabulary(embeddings, counts, params.MinCount)
	if vocab.Len() == 0 {
		return nil, fmt.Errorf("%w: no token in %s occurs %d or more times", domain.ErrEmptyVocabulary, input, params.MinCount)
	}
	logger.Debug("kept %d of %d trained tokens", vocab.Len(), embeddings.Len())

	out, err := createArtifacts(p.cfg, p.cfg.ModelFile(), p.cfg.VectorsFile())
	if err != nil {
		return nil, err
	}
	if err := vectorfmt.WriteBinary(out[0], vocab); err != nil {
		out.abort()
		return nil, fmt.Errorf("write model: %w", err)
	}
	if err := vectorfmt.WriteText(out[1], vocab, p.cfg.Train.TextHeader); err != nil {
		out.abort()
		return nil, fmt.Errorf("write vectors: %w", err)
	}

	artifacts, err := out.commit()
	if err != nil {
		return nil, err
	}
	logger.Info("Saved %d vectors to %s and %s", vocab.Len(), p.cfg.ModelFile(), p.cfg.VectorsFile())
	return artifacts, nil
}

// countTokens counts whitespace-separated tokens.
func countTokens(r io.Reader) (map[string]int, error) {
	counts := make(map[string]int)
	err := eachLine(r, func(line string) error {
		for _, tok := range strings.Fields(line) {
			counts[tok]++
		}
		return nil
	})
	return counts, err
}

// selectVocabulary keeps tokens occurring at least minCount times in the
// corpus, ordered by descending frequency and then by token.
func selectVocabulary(e *domain.Embeddings, counts map[string]int, minCount int) *domain.Embeddings {
	type entry struct {
		word  string
		count int
		vec   []float32
	}

	seen := make(map[string]bool, len(e.Words))
	entries := make([]entry, 0, len(e.Words))
	for i, w := range e.Words {
		c := counts[w]
		if c < minCount || seen[w] {
			continue
		}
		seen[w] = true
		entries = append(entries, entry{word: w, count: c, vec: e.Vectors[i]})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].word < entries[j].word
	})

	vocab := &domain.Embeddings{Dim: e.Dim}
	for _, en := range entries {
		vocab.Add(en.word, en.vec)
	}
	return vocab
}
