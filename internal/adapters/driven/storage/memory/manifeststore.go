package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/jawikivec/internal/core/domain"
	"github.com/custodia-labs/jawikivec/internal/core/ports/driven"
)

// Ensure ManifestStore implements the interface.
var _ driven.ManifestStore = (*ManifestStore)(nil)

// ManifestStore is an in-memory implementation of driven.ManifestStore.
// Used when the persistent manifest is disabled.
type ManifestStore struct {
	mu      sync.RWMutex
	records map[domain.Stage]domain.StageRecord
}

// NewManifestStore creates a new in-memory manifest store.
func NewManifestStore() *ManifestStore {
	return &ManifestStore{
		records: make(map[domain.Stage]domain.StageRecord),
	}
}

// Save stores or replaces the record for a stage.
func (s *ManifestStore) Save(_ context.Context, record domain.StageRecord) error {
	if !record.Stage.IsValid() || record.RunID == "" {
		return fmt.Errorf("%w: stage record needs a valid stage and run id", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.Stage] = cloneRecord(record)
	return nil
}

// Get retrieves the record for a stage.
func (s *ManifestStore) Get(_ context.Context, stage domain.Stage) (*domain.StageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[stage]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := cloneRecord(record)
	return &clone, nil
}

// Delete removes the record for a stage.
func (s *ManifestStore) Delete(_ context.Context, stage domain.Stage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, stage)
	return nil
}

// List returns all records ordered by completion time.
func (s *ManifestStore) List(_ context.Context) ([]domain.StageRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]domain.StageRecord, 0, len(s.records))
	for _, r := range s.records {
		records = append(records, cloneRecord(r))
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].CompletedAt.Equal(records[j].CompletedAt) {
			return records[i].Stage < records[j].Stage
		}
		return records[i].CompletedAt.Before(records[j].CompletedAt)
	})
	return records, nil
}

func cloneRecord(r domain.StageRecord) domain.StageRecord {
	r.Artifacts = append([]domain.ArtifactDigest(nil), r.Artifacts...)
	return r
}
