package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/custodia-labs/jawikivec/internal/core/domain"
	"github.com/custodia-labs/jawikivec/internal/core/ports/driven"
)

// --- Mock implementations for pipeline testing ---

// mockFetcher implements driven.ArchiveFetcher.
type mockFetcher struct {
	mu      sync.Mutex
	payload []byte
	err     error
	calls   int
	urls    []string
}

var _ driven.ArchiveFetcher = (*mockFetcher)(nil)

func (m *mockFetcher) Fetch(_ context.Context, url string, w io.Writer) (int64, error) {
	m.mu.Lock()
	m.calls++
	m.urls = append(m.urls, url)
	m.mu.Unlock()

	n, err := w.Write(m.payload)
	if err != nil {
		return int64(n), err
	}
	if m.err != nil {
		return int64(n), m.err
	}
	return int64(n), nil
}

// mockExtractor implements driven.ArticleExtractor.
// It ignores the archive and yields the configured articles.
type mockExtractor struct {
	mu       sync.Mutex
	articles []domain.Article
	err      error
	calls    int
}

var _ driven.ArticleExtractor = (*mockExtractor)(nil)

func (m *mockExtractor) Extract(ctx context.Context, archive io.Reader) (<-chan domain.Article, <-chan error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	out := make(chan domain.Article)
	errs := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errs)
		_, _ = io.Copy(io.Discard, archive)
		for _, a := range m.articles {
			select {
			case out <- a:
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
		}
		if m.err != nil {
			errs <- m.err
		}
	}()
	return out, errs
}

func articlesOf(sentences ...[]string) []domain.Article {
	articles := make([]domain.Article, 0, len(sentences))
	for i, s := range sentences {
		articles = append(articles, domain.Article{ID: uint64(i + 1), Sentences: s})
	}
	return articles
}

// mockSegmenter implements driven.Segmenter.
// Lines found in splits return the mapped tokens; others split on spaces.
type mockSegmenter struct {
	mu     sync.Mutex
	splits map[string][]string
	failOn string
	calls  int
}

var _ driven.Segmenter = (*mockSegmenter)(nil)

func (m *mockSegmenter) Segment(text string) ([]string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.failOn != "" && strings.Contains(text, m.failOn) {
		return nil, errors.New("segmentation fault in dictionary")
	}
	if tokens, ok := m.splits[text]; ok {
		return tokens, nil
	}
	return strings.Fields(text), nil
}

// mockTrainer implements driven.EmbeddingTrainer.
// Every distinct token gets a deterministic vector; frequency filtering is
// left to the pipeline.
type mockTrainer struct {
	mu     sync.Mutex
	calls  int
	params domain.TrainParams
	err    error
	dim    int // overrides params.Dim when set
}

var _ driven.EmbeddingTrainer = (*mockTrainer)(nil)

func (m *mockTrainer) Train(ctx context.Context, corpus io.ReadSeeker, params domain.TrainParams) (*domain.Embeddings, error) {
	m.mu.Lock()
	m.calls++
	m.params = params
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(corpus)
	if err != nil {
		return nil, err
	}

	dim := params.Dim
	if m.dim > 0 {
		dim = m.dim
	}
	e := &domain.Embeddings{Dim: dim}
	seen := make(map[string]bool)
	for _, tok := range strings.Fields(string(data)) {
		if seen[tok] {
			continue
		}
		seen[tok] = true
		vec := make([]float32, dim)
		for j := range vec {
			vec[j] = float32(len(tok)+j) / 10
		}
		e.Add(tok, vec)
	}
	return e, nil
}

// failingManifest implements driven.ManifestStore and fails every call.
type failingManifest struct{}

var _ driven.ManifestStore = failingManifest{}

func (failingManifest) Save(context.Context, domain.StageRecord) error { return errors.New("disk I/O error") }
func (failingManifest) Get(context.Context, domain.Stage) (*domain.StageRecord, error) {
	return nil, errors.New("disk I/O error")
}
func (failingManifest) Delete(context.Context, domain.Stage) error { return errors.New("disk I/O error") }
func (failingManifest) List(context.Context) ([]domain.StageRecord, error) {
	return nil, errors.New("disk I/O error")
}
