package wikidump

import (
	"runtime"

	"github.com/custodia-labs/jawikivec/internal/core/domain"
)

// Config holds the settings of a Reader.
type Config struct {
	// Workers is the number of goroutines cleaning pages.
	// Zero or less means one per CPU.
	Workers int

	// MinArticleRunes drops articles whose plain text is shorter.
	MinArticleRunes int
}

// ConfigFrom builds a Config from the extraction settings.
func ConfigFrom(s domain.ExtractSettings) Config {
	return Config{
		Workers:         s.Workers,
		MinArticleRunes: s.MinArticleRunes,
	}
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}
