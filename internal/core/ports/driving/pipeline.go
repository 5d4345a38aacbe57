package driving

import (
	"context"

	"github.com/custodia-labs/jawikivec/internal/core/domain"
)

// PipelineRunner runs and inspects the download → extract → tokenize → train pipeline.
type PipelineRunner interface {
	// Run executes every stage in order, skipping completed ones.
	Run(ctx context.Context) error

	// RunStage executes a single stage, skipping it if complete.
	RunStage(ctx context.Context, stage domain.Stage) error

	// Status reports the state of every stage.
	Status(ctx context.Context) ([]StageStatus, error)

	// Verify re-hashes committed artifacts against the manifest.
	Verify(ctx context.Context) ([]domain.ArtifactCheck, error)

	// Reset deletes a stage's outputs and its manifest record.
	Reset(ctx context.Context, stage domain.Stage) error

	// Config returns the effective configuration.
	Config() domain.PipelineConfig
}

// StageStatus represents the current state of a stage.
type StageStatus struct {
	// Stage identifies the stage.
	Stage domain.Stage

	// State is done when every required output exists.
	State domain.StageState

	// Outputs lists the stage's artifacts.
	Outputs []ArtifactPresence

	// Record is the manifest record, nil when none exists.
	Record *domain.StageRecord
}

// ArtifactPresence describes one output file on disk.
type ArtifactPresence struct {
	// Path is relative to the work directory.
	Path string

	// Exists reports whether the file is present.
	Exists bool

	// Size is the file size when present.
	Size int64
}
