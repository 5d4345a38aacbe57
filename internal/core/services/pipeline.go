package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/jawikivec/internal/core/domain"
	"github.com/custodia-labs/jawikivec/internal/core/ports/driven"
	"github.com/custodia-labs/jawikivec/internal/core/ports/driving"
	"github.com/custodia-labs/jawikivec/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driving.PipelineRunner = (*Pipeline)(nil)

// Pipeline runs the fetch → extract → tokenize → train stages in order.
// A stage whose outputs already exist is skipped without touching its
// collaborator. Outputs are committed atomically, so a present file is
// always a complete one.
type Pipeline struct {
	cfg       domain.PipelineConfig
	fetcher   driven.ArchiveFetcher
	extractor driven.ArticleExtractor
	segmenter driven.Segmenter
	trainer   driven.EmbeddingTrainer
	manifest  driven.ManifestStore

	now      func() time.Time
	newRunID func() string
}

// NewPipeline creates a pipeline over cfg.
// Collaborators may be nil when the stages using them are never run.
// The manifest is optional; without it no completion records are kept
// and strict mode falls back to presence checks.
func NewPipeline(
	cfg domain.PipelineConfig,
	fetcher driven.ArchiveFetcher,
	extractor driven.ArticleExtractor,
	segmenter driven.Segmenter,
	trainer driven.EmbeddingTrainer,
	manifest driven.ManifestStore,
) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Pipeline{
		cfg:       cfg,
		fetcher:   fetcher,
		extractor: extractor,
		segmenter: segmenter,
		trainer:   trainer,
		manifest:  manifest,
		now:       time.Now,
		newRunID:  func() string { return uuid.New().String() },
	}, nil
}

// Config returns the effective configuration.
func (p *Pipeline) Config() domain.PipelineConfig {
	return p.cfg
}

// Run executes every stage in order. The first error aborts the run.
func (p *Pipeline) Run(ctx context.Context) error {
	for _, stage := range domain.AllStages() {
		if err := p.RunStage(ctx, stage); err != nil {
			return err
		}
	}
	return nil
}

// RunStage executes one stage unless its outputs are already complete.
func (p *Pipeline) RunStage(ctx context.Context, stage domain.Stage) error {
	if !stage.IsValid() {
		return fmt.Errorf("%w: stage %q", domain.ErrUnsupportedType, stage)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	complete, err := p.isComplete(ctx, stage)
	if err != nil {
		return fmt.Errorf("%s: %w", stage, err)
	}
	if complete {
		logger.Info("Skipping %s. File(s) already exist: %s", stage, strings.Join(p.gatedOutputs(stage), " "))
		return nil
	}

	if err := p.checkInputs(stage); err != nil {
		return fmt.Errorf("%s: %w", stage, err)
	}

	logger.Section(stage.Description())
	start := p.now()

	var artifacts []domain.ArtifactDigest
	switch stage {
	case domain.StageFetch:
		artifacts, err = p.fetch(ctx)
	case domain.StageExtract:
		artifacts, err = p.extract(ctx)
	case domain.StageTokenize:
		artifacts, err = p.tokenize(ctx)
	case domain.StageTrain:
		artifacts, err = p.train(ctx)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", stage, err)
	}

	if err := p.record(ctx, stage, artifacts); err != nil {
		return fmt.Errorf("%s: %w", stage, err)
	}

	logger.Info("Finished %s. It took %.2f s to execute.", stage, p.now().Sub(start).Seconds())
	return nil
}

// gatedOutputs returns the outputs whose presence marks a stage complete.
// Training is gated on the binary model only.
func (p *Pipeline) gatedOutputs(stage domain.Stage) []string {
	outputs := p.cfg.Outputs(stage)
	if stage == domain.StageTrain {
		return outputs[:1]
	}
	return outputs
}

func (p *Pipeline) isComplete(ctx context.Context, stage domain.Stage) (bool, error) {
	var record *domain.StageRecord
	if p.cfg.Manifest.Strict && p.manifest != nil {
		r, err := p.manifest.Get(ctx, stage)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return false, fmt.Errorf("read manifest: %w", err)
		}
		if r == nil {
			logger.Debug("%s has no manifest record", stage)
			return false, nil
		}
		record = r
	}

	for _, name := range p.gatedOutputs(stage) {
		size, exists, err := fileSize(p.cfg.Path(name))
		if err != nil {
			return false, err
		}
		if !exists {
			return false, nil
		}
		if record != nil {
			a, ok := record.Artifact(name)
			if !ok || a.Size != size {
				logger.Debug("%s does not match its manifest record", name)
				return false, nil
			}
		}
	}

	if stage == domain.StageTrain {
		vectors := p.cfg.VectorsFile()
		if _, exists, _ := fileSize(p.cfg.Path(vectors)); !exists {
			logger.Warn("%s exists but %s is missing. Reset the train stage to regenerate it.",
				p.cfg.ModelFile(), vectors)
		}
	}
	return true, nil
}

func (p *Pipeline) checkInputs(stage domain.Stage) error {
	for _, name := range p.cfg.Inputs(stage) {
		_, exists, err := fileSize(p.cfg.Path(name))
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: input %s is missing", domain.ErrNotFound, name)
		}
	}
	return nil
}

func (p *Pipeline) record(ctx context.Context, stage domain.Stage, artifacts []domain.ArtifactDigest) error {
	if p.manifest == nil {
		return nil
	}
	record := domain.StageRecord{
		Stage:       stage,
		RunID:       p.newRunID(),
		CompletedAt: p.now().UTC(),
		Artifacts:   artifacts,
	}
	if err := p.manifest.Save(ctx, record); err != nil {
		return fmt.Errorf("record completion: %w", err)
	}
	logger.Debug("Recorded %s run %s", stage, record.RunID)
	return nil
}

// Status reports the state of every stage.
func (p *Pipeline) Status(ctx context.Context) ([]driving.StageStatus, error) {
	statuses := make([]driving.StageStatus, 0, len(domain.AllStages()))
	for _, stage := range domain.AllStages() {
		status := driving.StageStatus{Stage: stage, State: domain.StateDone}

		for _, name := range p.cfg.Outputs(stage) {
			size, exists, err := fileSize(p.cfg.Path(name))
			if err != nil {
				return nil, err
			}
			status.Outputs = append(status.Outputs, driving.ArtifactPresence{
				Path:   name,
				Exists: exists,
				Size:   size,
			})
		}
		for _, name := range p.gatedOutputs(stage) {
			if _, exists, _ := fileSize(p.cfg.Path(name)); !exists {
				status.State = domain.StateNotStarted
			}
		}

		record, err := p.lookup(ctx, stage)
		if err != nil {
			return nil, err
		}
		status.Record = record
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// Verify re-hashes every present output and compares it with the manifest.
func (p *Pipeline) Verify(ctx context.Context) ([]domain.ArtifactCheck, error) {
	var checks []domain.ArtifactCheck
	for _, stage := range domain.AllStages() {
		record, err := p.lookup(ctx, stage)
		if err != nil {
			return nil, err
		}

		for _, name := range p.cfg.Outputs(stage) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			check := domain.ArtifactCheck{Stage: stage, Path: name}
			var recorded domain.ArtifactDigest
			var ok bool
			if record != nil {
				recorded, ok = record.Artifact(name)
				check.Expected = recorded.SHA256
			}

			_, actual, err := hashFile(p.cfg.Path(name))
			switch {
			case errors.Is(err, os.ErrNotExist):
				check.Status = domain.ArtifactMissing
			case err != nil:
				return nil, err
			case !ok:
				check.Actual = actual
				check.Status = domain.ArtifactUnrecorded
			case actual != recorded.SHA256:
				check.Actual = actual
				check.Status = domain.ArtifactMismatch
			default:
				check.Actual = actual
				check.Status = domain.ArtifactOK
			}
			checks = append(checks, check)
		}
	}
	return checks, nil
}

// Reset deletes a stage's outputs, any leftover temporary files and its
// manifest record. Later stages are left untouched.
func (p *Pipeline) Reset(ctx context.Context, stage domain.Stage) error {
	if !stage.IsValid() {
		return fmt.Errorf("%w: stage %q", domain.ErrUnsupportedType, stage)
	}
	for _, name := range p.cfg.Outputs(stage) {
		path := p.cfg.Path(name)
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", name, err)
		}
		if err := removePartials(path); err != nil {
			return fmt.Errorf("remove partial %s: %w", name, err)
		}
		logger.Debug("Removed %s", name)
	}
	if p.manifest != nil {
		if err := p.manifest.Delete(ctx, stage); err != nil {
			return fmt.Errorf("delete manifest record: %w", err)
		}
	}
	logger.Info("Reset %s.", stage)
	return nil
}

func (p *Pipeline) lookup(ctx context.Context, stage domain.Stage) (*domain.StageRecord, error) {
	if p.manifest == nil {
		return nil, nil
	}
	record, err := p.manifest.Get(ctx, stage)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return record, nil
}
