package domain

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
)

// DimPlaceholder is replaced by the vector size in model and vector file patterns.
const DimPlaceholder = "{dim}"

// Default configuration values.
const (
	DefaultSourceURL      = "https://dumps.wikimedia.org/jawiki/latest/jawiki-latest-pages-articles.xml.bz2"
	DefaultArchiveFile    = "jawiki-latest-pages-articles.xml.bz2"
	DefaultTextFile       = "jawiki-latest-text.txt"
	DefaultSentencesFile  = "jawiki-latest-text-sentences.txt"
	DefaultTokensFile     = "jawiki-latest-text-tokens.txt"
	DefaultSentenceTokens = "jawiki-latest-text-sentences-tokens.txt"
	DefaultModelPattern   = "ja-gensim." + DimPlaceholder + "d.data.model"
	DefaultVectorsPattern = "ja-gensim." + DimPlaceholder + "d.data.txt"
	DefaultManifestPath   = ".jawikivec/manifest.db"

	DefaultVectorSize       = 300
	DefaultWindow           = 5
	DefaultMinCount         = 5
	DefaultTrainWorkers     = 4
	DefaultIterations       = 5
	DefaultMinArticleRunes  = 50
	DefaultMinSentenceRunes = 1
	DefaultLogEvery         = 100
	DefaultTokenizeMode     = "normal"
)

// FileNames holds the artifact file names, relative to the work directory.
type FileNames struct {
	Archive        string
	Text           string
	Sentences      string
	Tokens         string
	SentenceTokens string

	// ModelPattern and VectorsPattern contain DimPlaceholder.
	ModelPattern   string
	VectorsPattern string
}

// ExtractSettings configures the extraction stage.
type ExtractSettings struct {
	// Workers is the number of goroutines cleaning wiki markup.
	// Zero means one per CPU.
	Workers int

	// MinArticleRunes drops articles whose plain text is shorter.
	MinArticleRunes int

	// MinSentenceRunes drops sentences shorter than this after splitting.
	MinSentenceRunes int

	// LogEvery is the number of articles between progress lines.
	LogEvery int
}

// TokenizeSettings configures the tokenization stage.
type TokenizeSettings struct {
	// LegacyJoin writes tokenized lines without newlines, each wrapped in
	// single spaces, reproducing the historical single-line output.
	LegacyJoin bool

	// Sentences also tokenizes the sentence file; training then reads
	// the tokenized sentences.
	Sentences bool

	// LogEvery is the number of lines between progress lines.
	LogEvery int

	// Mode is the morphological analysis mode: normal, search or extended.
	Mode string
}

// TrainSettings configures the training stage.
type TrainSettings struct {
	Dim      int
	Window   int
	MinCount int
	Workers  int
	Iter     int

	// TextHeader prefixes the text vectors with a "<count> <dim>" line.
	TextHeader bool
}

// Params returns the hyperparameters handed to the trainer.
func (t TrainSettings) Params() TrainParams {
	return TrainParams{
		Dim:      t.Dim,
		Window:   t.Window,
		MinCount: t.MinCount,
		Workers:  t.Workers,
		Iter:     t.Iter,
	}
}

// ManifestSettings configures the completion manifest.
type ManifestSettings struct {
	// Enabled persists stage records to Path. When false records are
	// kept in memory for the lifetime of the process.
	Enabled bool

	// Strict treats outputs without a matching record as incomplete.
	// It requires Enabled.
	Strict bool

	// Path is the manifest database, relative to the work directory
	// unless absolute.
	Path string
}

// PipelineConfig is the full configuration passed to the pipeline.
type PipelineConfig struct {
	// WorkDir holds every artifact. Empty means the current directory.
	WorkDir   string
	SourceURL string
	Files     FileNames
	Extract   ExtractSettings
	Tokenize  TokenizeSettings
	Train     TrainSettings
	Manifest  ManifestSettings
}

// DefaultPipelineConfig returns the default configuration.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		WorkDir:   ".",
		SourceURL: DefaultSourceURL,
		Files: FileNames{
			Archive:        DefaultArchiveFile,
			Text:           DefaultTextFile,
			Sentences:      DefaultSentencesFile,
			Tokens:         DefaultTokensFile,
			SentenceTokens: DefaultSentenceTokens,
			ModelPattern:   DefaultModelPattern,
			VectorsPattern: DefaultVectorsPattern,
		},
		Extract: ExtractSettings{
			Workers:          0,
			MinArticleRunes:  DefaultMinArticleRunes,
			MinSentenceRunes: DefaultMinSentenceRunes,
			LogEvery:         DefaultLogEvery,
		},
		Tokenize: TokenizeSettings{
			LogEvery: DefaultLogEvery,
			Mode:     DefaultTokenizeMode,
		},
		Train: TrainSettings{
			Dim:      DefaultVectorSize,
			Window:   DefaultWindow,
			MinCount: DefaultMinCount,
			Workers:  DefaultTrainWorkers,
			Iter:     DefaultIterations,
		},
		Manifest: ManifestSettings{
			Enabled: true,
			Path:    DefaultManifestPath,
		},
	}
}

// Validate checks the configuration. Errors wrap ErrInvalidConfig.
func (c PipelineConfig) Validate() error {
	u, err := url.Parse(c.SourceURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: source url %q must be an http(s) URL", ErrInvalidConfig, c.SourceURL)
	}

	names := map[string]string{
		"files.archive":         c.Files.Archive,
		"files.text":            c.Files.Text,
		"files.sentences":       c.Files.Sentences,
		"files.tokens":          c.Files.Tokens,
		"files.sentence_tokens": c.Files.SentenceTokens,
	}
	for key, name := range names {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: %s is empty", ErrInvalidConfig, key)
		}
	}
	for key, pattern := range map[string]string{
		"files.model_pattern":   c.Files.ModelPattern,
		"files.vectors_pattern": c.Files.VectorsPattern,
	} {
		if !strings.Contains(pattern, DimPlaceholder) {
			return fmt.Errorf("%w: %s %q must contain %s", ErrInvalidConfig, key, pattern, DimPlaceholder)
		}
	}
	if c.ModelFile() == c.VectorsFile() {
		return fmt.Errorf("%w: model and vectors files must differ", ErrInvalidConfig)
	}

	switch {
	case c.Train.Dim <= 0:
		return fmt.Errorf("%w: vector size must be a positive integer, got %d", ErrInvalidConfig, c.Train.Dim)
	case c.Train.Window <= 0:
		return fmt.Errorf("%w: window must be positive, got %d", ErrInvalidConfig, c.Train.Window)
	case c.Train.MinCount < 1:
		return fmt.Errorf("%w: min count must be at least 1, got %d", ErrInvalidConfig, c.Train.MinCount)
	case c.Train.Workers <= 0:
		return fmt.Errorf("%w: train workers must be positive, got %d", ErrInvalidConfig, c.Train.Workers)
	case c.Train.Iter <= 0:
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidConfig, c.Train.Iter)
	case c.Extract.Workers < 0:
		return fmt.Errorf("%w: extract workers must not be negative, got %d", ErrInvalidConfig, c.Extract.Workers)
	case c.Extract.MinArticleRunes < 0:
		return fmt.Errorf("%w: min article runes must not be negative", ErrInvalidConfig)
	case c.Extract.MinSentenceRunes < 0:
		return fmt.Errorf("%w: min sentence runes must not be negative", ErrInvalidConfig)
	case c.Extract.LogEvery <= 0 || c.Tokenize.LogEvery <= 0:
		return fmt.Errorf("%w: log_every must be positive", ErrInvalidConfig)
	}

	if c.Manifest.Enabled && strings.TrimSpace(c.Manifest.Path) == "" {
		return fmt.Errorf("%w: manifest path is empty", ErrInvalidConfig)
	}
	// Strict mode against a per-process memory manifest would rerun every
	// stage on every invocation.
	if c.Manifest.Strict && !c.Manifest.Enabled {
		return fmt.Errorf("%w: manifest.strict requires manifest.enabled", ErrInvalidConfig)
	}
	return nil
}

// ModelFile returns the binary model file name for the configured vector size.
func (c PipelineConfig) ModelFile() string {
	return expandDim(c.Files.ModelPattern, c.Train.Dim)
}

// VectorsFile returns the text vectors file name for the configured vector size.
func (c PipelineConfig) VectorsFile() string {
	return expandDim(c.Files.VectorsPattern, c.Train.Dim)
}

// TrainingInput returns the corpus file the training stage reads.
func (c PipelineConfig) TrainingInput() string {
	if c.Tokenize.Sentences {
		return c.Files.SentenceTokens
	}
	return c.Files.Sentences
}

// Path resolves a file name against the work directory.
func (c PipelineConfig) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	dir := c.WorkDir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, name)
}

// ManifestPath returns the resolved manifest database path.
func (c PipelineConfig) ManifestPath() string {
	return c.Path(c.Manifest.Path)
}

// Inputs returns the file names a stage reads.
func (c PipelineConfig) Inputs(stage Stage) []string {
	switch stage {
	case StageExtract:
		return []string{c.Files.Archive}
	case StageTokenize:
		if c.Tokenize.Sentences {
			return []string{c.Files.Text, c.Files.Sentences}
		}
		return []string{c.Files.Text}
	case StageTrain:
		return []string{c.TrainingInput()}
	default:
		return nil
	}
}

// Outputs returns the file names a stage produces.
// For StageTrain the first entry is the primary output.
func (c PipelineConfig) Outputs(stage Stage) []string {
	switch stage {
	case StageFetch:
		return []string{c.Files.Archive}
	case StageExtract:
		return []string{c.Files.Text, c.Files.Sentences}
	case StageTokenize:
		if c.Tokenize.Sentences {
			return []string{c.Files.Tokens, c.Files.SentenceTokens}
		}
		return []string{c.Files.Tokens}
	case StageTrain:
		return []string{c.ModelFile(), c.VectorsFile()}
	default:
		return nil
	}
}

func expandDim(pattern string, dim int) string {
	return strings.ReplaceAll(pattern, DimPlaceholder, strconv.Itoa(dim))
}
