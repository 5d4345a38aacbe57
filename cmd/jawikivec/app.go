package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/custodia-labs/jawikivec/internal/adapters/driven/config/file"
	"github.com/custodia-labs/jawikivec/internal/adapters/driven/embedding/wego"
	"github.com/custodia-labs/jawikivec/internal/adapters/driven/fetch/httpfetch"
	"github.com/custodia-labs/jawikivec/internal/adapters/driven/segmenter/kagome"
	"github.com/custodia-labs/jawikivec/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/jawikivec/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/jawikivec/internal/adapters/driving/cli"
	"github.com/custodia-labs/jawikivec/internal/connectors/wikidump"
	"github.com/custodia-labs/jawikivec/internal/core/domain"
	"github.com/custodia-labs/jawikivec/internal/core/ports/driven"
	"github.com/custodia-labs/jawikivec/internal/core/ports/driving"
	"github.com/custodia-labs/jawikivec/internal/core/services"
	"github.com/custodia-labs/jawikivec/internal/logger"
	"github.com/custodia-labs/jawikivec/internal/normalisers/wikitext"
	"github.com/custodia-labs/jawikivec/internal/postprocessors"
	"github.com/custodia-labs/jawikivec/internal/postprocessors/sentences"
)

// Ensure application implements the interface.
var _ cli.App = (*application)(nil)

// application wires the adapters to the core services.
type application struct {
	processors *postprocessors.Registry
}

func newApplication() *application {
	r := postprocessors.NewRegistry()
	postprocessors.RegisterDefaults(r)
	return &application{processors: r}
}

// ConfigService opens the TOML config file for opts.
func (a *application) ConfigService(opts cli.Options) (driving.ConfigService, error) {
	path := opts.ConfigPath
	if path == "" {
		path = filepath.Join(opts.WorkDir, file.DefaultFileName)
	}
	store, err := file.NewConfigStoreAt(path)
	if err != nil {
		return nil, fmt.Errorf("open config %s: %w", path, err)
	}
	return services.NewConfigService(store), nil
}

// Runner builds the pipeline and its collaborators for cfg.
func (a *application) Runner(_ context.Context, cfg domain.PipelineConfig, opts cli.Options) (driving.PipelineRunner, io.Closer, error) {
	if _, err := kagome.ParseMode(cfg.Tokenize.Mode); err != nil {
		return nil, nil, err
	}

	manifest, closer, err := openManifest(cfg)
	if err != nil {
		return nil, nil, err
	}

	pipeline, err := postprocessors.BuildPipeline(a.processors, processorConfigs(cfg), postprocessors.DefaultProcessors...)
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}

	runner, err := services.NewPipeline(
		cfg,
		httpfetch.New(httpfetch.Config{Progress: opts.Progress}),
		wikidump.New(wikidump.ConfigFrom(cfg.Extract), wikitext.New(), pipeline),
		&lazySegmenter{config: kagome.Config{Mode: cfg.Tokenize.Mode}},
		wego.New(wego.Config{Verbose: logger.IsVerbose()}),
		manifest,
	)
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}
	return runner, closer, nil
}

// openManifest opens the SQLite manifest, or an in-memory one when the
// manifest is disabled.
func openManifest(cfg domain.PipelineConfig) (driven.ManifestStore, io.Closer, error) {
	if !cfg.Manifest.Enabled {
		return memory.NewManifestStore(), nopCloser{}, nil
	}
	store, err := sqlite.NewStore(cfg.ManifestPath())
	if err != nil {
		return nil, nil, fmt.Errorf("open manifest: %w", err)
	}
	return store.ManifestStore(), store, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// lazySegmenter loads the dictionary on first use so commands that never
// tokenize do not pay for it.
type lazySegmenter struct {
	config kagome.Config

	once      sync.Once
	segmenter *kagome.Segmenter
	err       error
}

func (l *lazySegmenter) Segment(text string) ([]string, error) {
	l.once.Do(func() {
		logger.Debug("Loading IPA dictionary")
		l.segmenter, l.err = kagome.New(l.config)
	})
	if l.err != nil {
		return nil, l.err
	}
	return l.segmenter.Segment(text)
}

// processorConfigs maps extraction settings onto postprocessor options.
func processorConfigs(cfg domain.PipelineConfig) map[string]map[string]any {
	return map[string]map[string]any{
		sentences.SplitterName: {"min_runes": cfg.Extract.MinSentenceRunes},
	}
}
