package domain

import (
	"fmt"
	"strings"
)

// Stage identifies one step of the pipeline.
type Stage string

// Pipeline stages in execution order.
const (
	// StageFetch downloads the dump archive.
	StageFetch Stage = "fetch"

	// StageExtract converts the archive into article and sentence text.
	StageExtract Stage = "extract"

	// StageTokenize segments article text into space-separated tokens.
	StageTokenize Stage = "tokenize"

	// StageTrain trains word embeddings over the sentence text.
	StageTrain Stage = "train"
)

// AllStages returns every stage in execution order.
func AllStages() []Stage {
	return []Stage{StageFetch, StageExtract, StageTokenize, StageTrain}
}

// ParseStage converts a stage name into a Stage.
func ParseStage(name string) (Stage, error) {
	s := Stage(strings.ToLower(strings.TrimSpace(name)))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: stage %q", ErrUnsupportedType, name)
	}
	return s, nil
}

// IsValid returns true if the stage is recognised.
func (s Stage) IsValid() bool {
	switch s {
	case StageFetch, StageExtract, StageTokenize, StageTrain:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s Stage) String() string {
	return string(s)
}

// Description returns a human-readable description of the stage.
func (s Stage) Description() string {
	switch s {
	case StageFetch:
		return "Download the dump archive"
	case StageExtract:
		return "Extract article and sentence text"
	case StageTokenize:
		return "Segment text into tokens"
	case StageTrain:
		return "Train word embeddings"
	default:
		return "Unknown"
	}
}

// StageState is the durable state of a stage.
// There is no in-progress state: outputs only appear once committed.
type StageState string

// Stage states.
const (
	StateNotStarted StageState = "not-started"
	StateDone       StageState = "done"
)

// String returns the string representation.
func (s StageState) String() string {
	return string(s)
}
