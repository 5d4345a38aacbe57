// Package wego provides an embedding trainer backed by the wego word2vec
// implementation.
package wego

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/ynqa/wego/pkg/model/modelutil/vector"
	"github.com/ynqa/wego/pkg/model/word2vec"

	"github.com/custodia-labs/jawikivec/internal/core/domain"
	"github.com/custodia-labs/jawikivec/internal/core/ports/driven"
	"github.com/custodia-labs/jawikivec/internal/vectorfmt"
)

// Ensure Trainer implements the interface.
var _ driven.EmbeddingTrainer = (*Trainer)(nil)

// Default configuration values.
const (
	DefaultNegativeSamples = 5
)

// Config holds configuration for the Trainer.
type Config struct {
	// SkipGram trains skip-gram instead of CBOW.
	SkipGram bool

	// NegativeSamples is the number of negative samples (default: 5).
	NegativeSamples int

	// Verbose lets wego print its own progress to stdout.
	Verbose bool
}

// Trainer learns word2vec embeddings with negative sampling.
type Trainer struct {
	config Config
}

// New creates a new Trainer.
func New(cfg Config) *Trainer {
	if cfg.NegativeSamples <= 0 {
		cfg.NegativeSamples = DefaultNegativeSamples
	}
	return &Trainer{config: cfg}
}

// Train reads the corpus and returns one vector per vocabulary word.
// wego cannot be interrupted, so on cancellation Train returns at once
// and the training goroutine finishes in the background.
func (t *Trainer) Train(ctx context.Context, corpus io.ReadSeeker, params domain.TrainParams) (*domain.Embeddings, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	model, err := word2vec.New(t.options(params)...)
	if err != nil {
		return nil, fmt.Errorf("configure word2vec: %w", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- model.Train(corpus)
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case err := <-done:
		if err != nil {
			return nil, fmt.Errorf("train word2vec: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := model.Save(&buf, vector.Single); err != nil {
		return nil, fmt.Errorf("export vectors: %w", err)
	}
	return vectorfmt.ReadText(&buf, params.Dim)
}

func (t *Trainer) options(params domain.TrainParams) []word2vec.ModelOption {
	typ := word2vec.Cbow
	if t.config.SkipGram {
		typ = word2vec.SkipGram
	}

	opts := []word2vec.ModelOption{
		word2vec.Model(typ),
		word2vec.Optimizer(word2vec.NegativeSampling),
		word2vec.NegativeSampleSize(t.config.NegativeSamples),
		word2vec.Dim(params.Dim),
		word2vec.Window(params.Window),
		word2vec.MinCount(params.MinCount),
		word2vec.Goroutines(params.Workers),
		word2vec.Iter(params.Iter),
	}
	if t.config.Verbose {
		opts = append(opts, word2vec.Verbose())
	}
	return opts
}
