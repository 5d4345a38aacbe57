package driving

import "github.com/custodia-labs/jawikivec/internal/core/domain"

// ConfigService manages the persisted pipeline configuration.
type ConfigService interface {
	// Get returns the stored configuration over the defaults.
	Get() (*domain.PipelineConfig, error)

	// Save persists a configuration.
	Save(cfg *domain.PipelineConfig) error

	// GetDefaults returns the default configuration.
	GetDefaults() domain.PipelineConfig

	// Path returns where the configuration is stored.
	Path() string
}
