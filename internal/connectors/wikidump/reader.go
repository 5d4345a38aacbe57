package wikidump

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"unicode/utf8"

	"github.com/dustin/go-wikiparse"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/jawikivec/internal/core/domain"
	"github.com/custodia-labs/jawikivec/internal/core/ports/driven"
	"github.com/custodia-labs/jawikivec/internal/logger"
)

// Ensure Reader implements the interface.
var _ driven.ArticleExtractor = (*Reader)(nil)

// Reader extracts articles from a dump archive.
type Reader struct {
	config     Config
	normaliser driven.Normaliser
	pipeline   driven.PostProcessorPipeline
}

// New creates a new dump Reader.
func New(cfg Config, normaliser driven.Normaliser, pipeline driven.PostProcessorPipeline) *Reader {
	return &Reader{
		config:     cfg,
		normaliser: normaliser,
		pipeline:   pipeline,
	}
}

// Stats counts what happened to the pages of one extraction.
type Stats struct {
	Pages   int64
	Skipped int64
	Short   int64
	Emitted int64
}

type job struct {
	page   domain.Page
	result chan outcome
}

type outcome struct {
	article domain.Article
	err     error
}

// Extract reads the archive and emits articles in dump order.
func (r *Reader) Extract(ctx context.Context, archive io.Reader) (<-chan domain.Article, <-chan error) {
	articles := make(chan domain.Article)
	errs := make(chan error, 1)

	go func() {
		defer close(errs)
		defer close(articles)

		var stats Stats
		if err := r.run(ctx, archive, articles, &stats); err != nil {
			errs <- err
			return
		}
		logger.Debug("Read %d pages: %d articles, %d skipped, %d too short.",
			stats.Pages, stats.Emitted, stats.Skipped, stats.Short)
	}()

	return articles, errs
}

// run pipes pages from the parser through the workers. Each page gets a
// result channel that is queued in dump order, so the consumer emits
// articles in order while cleaning runs in parallel.
func (r *Reader) run(ctx context.Context, archive io.Reader, out chan<- domain.Article, stats *Stats) error {
	src, err := Decompress(archive)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	parser, err := wikiparse.NewParser(src)
	if err != nil {
		return fmt.Errorf("read dump header: %w", err)
	}

	workers := r.config.workers()
	jobs := make(chan job, workers)
	order := make(chan chan outcome, 2*workers)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		defer close(order)
		for {
			p, err := parser.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("read page: %w", err)
			}
			atomic.AddInt64(&stats.Pages, 1)

			page := toPage(p)
			if !page.IsArticle() {
				atomic.AddInt64(&stats.Skipped, 1)
				continue
			}

			res := make(chan outcome, 1)
			select {
			case jobs <- job{page: page, result: res}:
			case <-gctx.Done():
				return gctx.Err()
			}
			select {
			case order <- res:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
	})

	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for j := range jobs {
				j.result <- r.clean(gctx, j.page, stats)
			}
			return nil
		})
	}

	g.Go(func() error {
		for res := range order {
			var o outcome
			select {
			case o = <-res:
			case <-gctx.Done():
				return gctx.Err()
			}
			if o.err != nil {
				return o.err
			}
			if o.article.IsEmpty() {
				continue
			}
			select {
			case out <- o.article:
				atomic.AddInt64(&stats.Emitted, 1)
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	return g.Wait()
}

// clean turns one page into an article. Articles that end up too short
// or without sentences are returned empty.
func (r *Reader) clean(ctx context.Context, page domain.Page, stats *Stats) outcome {
	text, err := r.normaliser.Normalise(ctx, &page)
	if err != nil {
		return outcome{err: fmt.Errorf("normalise %q: %w", page.Title, err)}
	}
	if utf8.RuneCountInString(text) < r.config.MinArticleRunes {
		atomic.AddInt64(&stats.Short, 1)
		return outcome{}
	}

	sentences, err := r.pipeline.Process(ctx, text)
	if err != nil {
		return outcome{err: fmt.Errorf("split %q: %w", page.Title, err)}
	}

	return outcome{article: domain.Article{
		ID:        page.ID,
		Title:     page.Title,
		Sentences: sentences,
	}}
}

// toPage keeps the latest revision of a parsed page.
func toPage(p *wikiparse.Page) domain.Page {
	page := domain.Page{
		ID:         p.ID,
		Title:      p.Title,
		Namespace:  p.Ns,
		RedirectTo: p.Redir.Title,
	}
	if n := len(p.Revisions); n > 0 {
		page.Markup = p.Revisions[n-1].Text
	}
	return page
}
