package domain

import "time"

// ArtifactDigest describes one committed output file.
type ArtifactDigest struct {
	// Path is the file name relative to the work directory.
	Path string

	// Size is the file size in bytes.
	Size int64

	// SHA256 is the hex-encoded content digest.
	SHA256 string
}

// StageRecord proves a stage committed its outputs.
type StageRecord struct {
	Stage       Stage
	RunID       string
	CompletedAt time.Time
	Artifacts   []ArtifactDigest
}

// Artifact returns the digest recorded for path.
func (r *StageRecord) Artifact(path string) (ArtifactDigest, bool) {
	for _, a := range r.Artifacts {
		if a.Path == path {
			return a, true
		}
	}
	return ArtifactDigest{}, false
}

// ArtifactStatus is the outcome of verifying one artifact.
type ArtifactStatus string

// Artifact verification outcomes.
const (
	// ArtifactOK matches its recorded digest.
	ArtifactOK ArtifactStatus = "ok"

	// ArtifactMissing is absent from disk.
	ArtifactMissing ArtifactStatus = "missing"

	// ArtifactUnrecorded exists on disk but has no manifest entry.
	ArtifactUnrecorded ArtifactStatus = "unrecorded"

	// ArtifactMismatch exists but differs from its recorded digest.
	ArtifactMismatch ArtifactStatus = "mismatch"
)

// ArtifactCheck is the verification result for one artifact.
type ArtifactCheck struct {
	Stage    Stage
	Path     string
	Status   ArtifactStatus
	Expected string
	Actual   string
}
