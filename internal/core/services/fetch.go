package services

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/jawikivec/internal/core/domain"
	"github.com/custodia-labs/jawikivec/internal/logger"
)

// fetch downloads the archive in a single attempt.
func (p *Pipeline) fetch(ctx context.Context) ([]domain.ArtifactDigest, error) {
	if p.fetcher == nil {
		return nil, fmt.Errorf("archive fetcher not configured")
	}

	out, err := createArtifacts(p.cfg, p.cfg.Files.Archive)
	if err != nil {
		return nil, err
	}

	logger.Info("Downloading %s", p.cfg.SourceURL)
	n, err := p.fetcher.Fetch(ctx, p.cfg.SourceURL, out[0])
	if err != nil {
		out.abort()
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrFetchFailed, p.cfg.SourceURL, err)
	}

	artifacts, err := out.commit()
	if err != nil {
		return nil, err
	}
	logger.Info("Saved %s (%s)", p.cfg.Files.Archive, humanize.IBytes(uint64(n)))
	return artifacts, nil
}
