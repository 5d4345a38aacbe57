package services

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/custodia-labs/jawikivec/internal/core/domain"
)

// extract streams articles out of the archive into the article file (one
// article per line) and the sentence file (one sentence per line).
func (p *Pipeline) extract(ctx context.Context) ([]domain.ArtifactDigest, error) {
	if p.extractor == nil {
		return nil, fmt.Errorf("article extractor not configured")
	}

	archive, err := os.Open(p.cfg.Path(p.cfg.Files.Archive))
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer archive.Close()

	out, err := createArtifacts(p.cfg, p.cfg.Files.Text, p.cfg.Files.Sentences)
	if err != nil {
		return nil, err
	}
	text, sentences := out[0], out[1]

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	articles, errs := p.extractor.Extract(ctx, archive)
	progress := newThroughput(p.cfg.Extract.LogEvery, p.now)

	var writeErr error
	for article := range articles {
		if writeErr != nil {
			continue // drain so the extractor can exit
		}
		if article.IsEmpty() {
			continue
		}
		writeErr = writeArticle(text, sentences, article)
		if writeErr != nil {
			cancel()
			continue
		}
		progress.add(len(article.Sentences))
	}

	if writeErr != nil {
		out.abort()
		return nil, writeErr
	}
	if err := ctx.Err(); err != nil {
		out.abort()
		return nil, err
	}
	if err := <-errs; err != nil {
		out.abort()
		return nil, fmt.Errorf("%w: extract articles: %w", domain.ErrCollaborator, err)
	}

	return out.commit()
}

func writeArticle(text, sentences *artifact, article domain.Article) error {
	lines := make([]string, 0, len(article.Sentences))
	for _, s := range article.Sentences {
		s = oneLine(s)
		lines = append(lines, s)
		if _, err := sentences.WriteString(s + "\n"); err != nil {
			return fmt.Errorf("write sentence: %w", err)
		}
	}
	if _, err := text.WriteString(strings.Join(lines, " ") + "\n"); err != nil {
		return fmt.Errorf("write article: %w", err)
	}
	return nil
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// oneLine keeps a sentence on a single output line.
func oneLine(s string) string {
	return lineBreaks.Replace(s)
}
