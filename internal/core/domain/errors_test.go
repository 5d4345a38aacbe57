package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrInvalidConfig", ErrInvalidConfig},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrFetchFailed", ErrFetchFailed},
		{"ErrCollaborator", ErrCollaborator},
		{"ErrEmptyVocabulary", ErrEmptyVocabulary},
		{"ErrDigestMismatch", ErrDigestMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_Distinct(t *testing.T) {
	assert.False(t, errors.Is(ErrNotFound, ErrInvalidInput))
	assert.False(t, errors.Is(ErrInvalidConfig, ErrInvalidInput))
	assert.False(t, errors.Is(ErrFetchFailed, ErrCollaborator))
}

func TestErrors_Wrapped(t *testing.T) {
	err := fmt.Errorf("train: %w", ErrEmptyVocabulary)

	assert.True(t, errors.Is(err, ErrEmptyVocabulary))
	assert.Equal(t, "train: empty vocabulary", err.Error())
}
