package postprocessors

import (
	"github.com/custodia-labs/jawikivec/internal/core/ports/driven"
	"github.com/custodia-labs/jawikivec/internal/postprocessors/sentences"
)

// DefaultProcessors is the processor chain applied to every article.
var DefaultProcessors = []string{sentences.SplitterName, sentences.LetterFilterName}

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register(sentences.SplitterName, buildSplitter)
	r.Register(sentences.LetterFilterName, buildLetterFilter)
}

// BuildPipeline builds a pipeline from registered processor names.
// configs holds optional per-processor settings keyed by name.
func BuildPipeline(r *Registry, configs map[string]map[string]any, names ...string) (*Pipeline, error) {
	p := NewPipeline()
	for _, name := range names {
		processor, err := r.Build(name, configs[name])
		if err != nil {
			return nil, err
		}
		p.Add(processor)
	}
	return p, nil
}

// buildSplitter creates a sentence splitter from generic config.
// Supported config keys:
//   - min_runes (int): Shortest sentence kept, in characters (default: 1)
func buildSplitter(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []sentences.Option

	if cfg != nil {
		if n := getIntFromConfig(cfg, "min_runes"); n > 0 {
			opts = append(opts, sentences.WithMinRunes(n))
		}
	}

	return sentences.NewSplitter(opts...), nil
}

func buildLetterFilter(_ map[string]any) (driven.PostProcessor, error) {
	return sentences.NewLetterFilter(), nil
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) int {
	val, ok := cfg[key]
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
