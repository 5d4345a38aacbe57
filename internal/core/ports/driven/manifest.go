package driven

import (
	"context"

	"github.com/custodia-labs/jawikivec/internal/core/domain"
)

// ManifestStore persists stage completion records.
type ManifestStore interface {
	// Save stores or replaces the record for a stage.
	Save(ctx context.Context, record domain.StageRecord) error

	// Get retrieves the record for a stage.
	// Returns domain.ErrNotFound when the stage has no record.
	Get(ctx context.Context, stage domain.Stage) (*domain.StageRecord, error)

	// Delete removes the record for a stage.
	Delete(ctx context.Context, stage domain.Stage) error

	// List returns all records.
	List(ctx context.Context) ([]domain.StageRecord, error)
}
