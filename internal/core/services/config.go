package services

import (
	"fmt"

	"github.com/custodia-labs/jawikivec/internal/core/domain"
	"github.com/custodia-labs/jawikivec/internal/core/ports/driven"
	"github.com/custodia-labs/jawikivec/internal/core/ports/driving"
)

// Ensure ConfigService implements the interface.
var _ driving.ConfigService = (*ConfigService)(nil)

// Config keys for pipeline configuration storage.
const (
	keySourceURL           = "source.url"
	keyFilesArchive        = "files.archive"
	keyFilesText           = "files.text"
	keyFilesSentences      = "files.sentences"
	keyFilesTokens         = "files.tokens"
	keyFilesSentenceTokens = "files.sentence_tokens"
	keyFilesModel          = "files.model_pattern"
	keyFilesVectors        = "files.vectors_pattern"
	keyExtractWorkers      = "extract.workers"
	keyExtractMinRunes     = "extract.min_article_runes"
	keyExtractMinSentRunes = "extract.min_sentence_runes"
	keyExtractLogEvery     = "extract.log_every"
	keyTokenizeLegacyJoin  = "tokenize.legacy_join"
	keyTokenizeSentences   = "tokenize.sentences"
	keyTokenizeLogEvery    = "tokenize.log_every"
	keyTokenizeMode        = "tokenize.mode"
	keyTrainDim            = "train.dim"
	keyTrainWindow         = "train.window"
	keyTrainMinCount       = "train.min_count"
	keyTrainWorkers        = "train.workers"
	keyTrainIter           = "train.iter"
	keyTrainTextHeader     = "train.text_header"
	keyManifestEnabled     = "manifest.enabled"
	keyManifestStrict      = "manifest.strict"
	keyManifestPath        = "manifest.path"
)

// ConfigService resolves the pipeline configuration from a config store.
// Keys absent from the store take their default values.
type ConfigService struct {
	configStore driven.ConfigStore
}

// NewConfigService creates a new config service.
func NewConfigService(configStore driven.ConfigStore) *ConfigService {
	return &ConfigService{configStore: configStore}
}

// Get returns the stored configuration over the defaults.
// The result is not validated; callers validate after applying overrides.
func (s *ConfigService) Get() (*domain.PipelineConfig, error) {
	d := domain.DefaultPipelineConfig()

	cfg := &domain.PipelineConfig{
		WorkDir:   d.WorkDir,
		SourceURL: s.getString(keySourceURL, d.SourceURL),
		Files: domain.FileNames{
			Archive:        s.getString(keyFilesArchive, d.Files.Archive),
			Text:           s.getString(keyFilesText, d.Files.Text),
			Sentences:      s.getString(keyFilesSentences, d.Files.Sentences),
			Tokens:         s.getString(keyFilesTokens, d.Files.Tokens),
			SentenceTokens: s.getString(keyFilesSentenceTokens, d.Files.SentenceTokens),
			ModelPattern:   s.getString(keyFilesModel, d.Files.ModelPattern),
			VectorsPattern: s.getString(keyFilesVectors, d.Files.VectorsPattern),
		},
		Extract: domain.ExtractSettings{
			Workers:          s.getInt(keyExtractWorkers, d.Extract.Workers),
			MinArticleRunes:  s.getInt(keyExtractMinRunes, d.Extract.MinArticleRunes),
			MinSentenceRunes: s.getInt(keyExtractMinSentRunes, d.Extract.MinSentenceRunes),
			LogEvery:         s.getInt(keyExtractLogEvery, d.Extract.LogEvery),
		},
		Tokenize: domain.TokenizeSettings{
			LegacyJoin: s.getBool(keyTokenizeLegacyJoin, d.Tokenize.LegacyJoin),
			Sentences:  s.getBool(keyTokenizeSentences, d.Tokenize.Sentences),
			LogEvery:   s.getInt(keyTokenizeLogEvery, d.Tokenize.LogEvery),
			Mode:       s.getString(keyTokenizeMode, d.Tokenize.Mode),
		},
		Train: domain.TrainSettings{
			Dim:        s.getInt(keyTrainDim, d.Train.Dim),
			Window:     s.getInt(keyTrainWindow, d.Train.Window),
			MinCount:   s.getInt(keyTrainMinCount, d.Train.MinCount),
			Workers:    s.getInt(keyTrainWorkers, d.Train.Workers),
			Iter:       s.getInt(keyTrainIter, d.Train.Iter),
			TextHeader: s.getBool(keyTrainTextHeader, d.Train.TextHeader),
		},
		Manifest: domain.ManifestSettings{
			Enabled: s.getBool(keyManifestEnabled, d.Manifest.Enabled),
			Strict:  s.getBool(keyManifestStrict, d.Manifest.Strict),
			Path:    s.getString(keyManifestPath, d.Manifest.Path),
		},
	}
	return cfg, nil
}

// Save persists a configuration. The work directory is not stored.
func (s *ConfigService) Save(cfg *domain.PipelineConfig) error {
	if cfg == nil {
		return domain.ErrInvalidInput
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keySourceURL, cfg.SourceURL},
		{keyFilesArchive, cfg.Files.Archive},
		{keyFilesText, cfg.Files.Text},
		{keyFilesSentences, cfg.Files.Sentences},
		{keyFilesTokens, cfg.Files.Tokens},
		{keyFilesSentenceTokens, cfg.Files.SentenceTokens},
		{keyFilesModel, cfg.Files.ModelPattern},
		{keyFilesVectors, cfg.Files.VectorsPattern},
		{keyExtractWorkers, cfg.Extract.Workers},
		{keyExtractMinRunes, cfg.Extract.MinArticleRunes},
		{keyExtractMinSentRunes, cfg.Extract.MinSentenceRunes},
		{keyExtractLogEvery, cfg.Extract.LogEvery},
		{keyTokenizeLegacyJoin, cfg.Tokenize.LegacyJoin},
		{keyTokenizeSentences, cfg.Tokenize.Sentences},
		{keyTokenizeLogEvery, cfg.Tokenize.LogEvery},
		{keyTokenizeMode, cfg.Tokenize.Mode},
		{keyTrainDim, cfg.Train.Dim},
		{keyTrainWindow, cfg.Train.Window},
		{keyTrainMinCount, cfg.Train.MinCount},
		{keyTrainWorkers, cfg.Train.Workers},
		{keyTrainIter, cfg.Train.Iter},
		{keyTrainTextHeader, cfg.Train.TextHeader},
		{keyManifestEnabled, cfg.Manifest.Enabled},
		{keyManifestStrict, cfg.Manifest.Strict},
		{keyManifestPath, cfg.Manifest.Path},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// GetDefaults returns the default configuration.
func (s *ConfigService) GetDefaults() domain.PipelineConfig {
	return domain.DefaultPipelineConfig()
}

// Path returns the configuration file path.
func (s *ConfigService) Path() string {
	return s.configStore.Path()
}

func (s *ConfigService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *ConfigService) getInt(key string, defaultVal int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *ConfigService) getBool(key string, defaultVal bool) bool {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
