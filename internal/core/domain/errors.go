package domain

import "errors"

// Domain errors represent pipeline failures.
// Stages wrap them with context; callers test with errors.Is.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidConfig indicates the pipeline configuration is unusable.
	// Raised before any stage runs so an unset vector size never reaches training.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUnsupportedType indicates an unknown stage name.
	ErrUnsupportedType = errors.New("unsupported type")

	// Stage Errors.

	// ErrFetchFailed indicates the archive download did not complete.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrCollaborator indicates an external collaborator (dump reader,
	// segmenter, trainer) reported a failure.
	ErrCollaborator = errors.New("collaborator failed")

	// ErrEmptyVocabulary indicates no token survived the minimum frequency.
	ErrEmptyVocabulary = errors.New("empty vocabulary")

	// Manifest Errors.

	// ErrDigestMismatch indicates an artifact no longer matches its recorded digest.
	ErrDigestMismatch = errors.New("artifact digest mismatch")
)
