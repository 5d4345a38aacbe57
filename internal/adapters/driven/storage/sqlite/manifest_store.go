package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/jawikivec/internal/core/domain"
	"github.com/custodia-labs/jawikivec/internal/core/ports/driven"
)

// manifestStore implements driven.ManifestStore.
type manifestStore struct {
	store *Store
}

var _ driven.ManifestStore = (*manifestStore)(nil)

// Save stores or replaces the record for a stage.
// The run row and its artifacts are written in one transaction.
func (m *manifestStore) Save(ctx context.Context, record domain.StageRecord) error {
	if !record.Stage.IsValid() || record.RunID == "" {
		return fmt.Errorf("%w: stage record needs a valid stage and run id", domain.ErrInvalidInput)
	}

	tx, err := m.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := deleteStage(ctx, tx, record.Stage); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO stage_runs (stage, run_id, completed_at)
		VALUES (?, ?, ?)
	`, string(record.Stage), record.RunID, record.CompletedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("saving stage run: %w", err)
	}

	for i, a := range record.Artifacts {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO stage_artifacts (stage, path, size, sha256, position)
			VALUES (?, ?, ?, ?, ?)
		`, string(record.Stage), a.Path, a.Size, a.SHA256, i)
		if err != nil {
			return fmt.Errorf("saving artifact %s: %w", a.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing stage record: %w", err)
	}
	return nil
}

// Get retrieves the record for a stage.
func (m *manifestStore) Get(ctx context.Context, stage domain.Stage) (*domain.StageRecord, error) {
	row := m.store.db.QueryRowContext(ctx, `
		SELECT stage, run_id, completed_at FROM stage_runs WHERE stage = ?
	`, string(stage))

	record, err := scanStageRun(row)
	if err != nil {
		return nil, err
	}

	if err := m.loadArtifacts(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Delete removes the record for a stage. Deleting a missing record is not an error.
func (m *manifestStore) Delete(ctx context.Context, stage domain.Stage) error {
	tx, err := m.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := deleteStage(ctx, tx, stage); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing delete: %w", err)
	}
	return nil
}

func deleteStage(ctx context.Context, tx *sql.Tx, stage domain.Stage) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM stage_artifacts WHERE stage = ?", string(stage)); err != nil {
		return fmt.Errorf("deleting artifacts: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM stage_runs WHERE stage = ?", string(stage)); err != nil {
		return fmt.Errorf("deleting stage run: %w", err)
	}
	return nil
}

// List returns all records ordered by completion time.
func (m *manifestStore) List(ctx context.Context) ([]domain.StageRecord, error) {
	rows, err := m.store.db.QueryContext(ctx, `
		SELECT stage, run_id, completed_at FROM stage_runs ORDER BY completed_at, stage
	`)
	if err != nil {
		return nil, fmt.Errorf("querying stage runs: %w", err)
	}

	var records []domain.StageRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		record, err := scanStageRun(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating stage runs: %w", err)
	}
	rows.Close()

	for i := range records {
		if err := m.loadArtifacts(ctx, &records[i]); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func (m *manifestStore) loadArtifacts(ctx context.Context, record *domain.StageRecord) error {
	rows, err := m.store.db.QueryContext(ctx, `
		SELECT path, size, sha256 FROM stage_artifacts
		WHERE stage = ?
		ORDER BY position
	`, string(record.Stage))
	if err != nil {
		return fmt.Errorf("querying artifacts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a domain.ArtifactDigest
		if err := rows.Scan(&a.Path, &a.Size, &a.SHA256); err != nil {
			return fmt.Errorf("scanning artifact: %w", err)
		}
		record.Artifacts = append(record.Artifacts, a)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating artifacts: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStageRun(row scanner) (*domain.StageRecord, error) {
	var (
		stage       string
		completedAt string
		record      domain.StageRecord
	)
	err := row.Scan(&stage, &record.RunID, &completedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning stage run: %w", err)
	}

	record.Stage = domain.Stage(stage)
	record.CompletedAt, err = time.Parse(time.RFC3339Nano, completedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing completed_at: %w", err)
	}
	return &record, nil
}
