package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllStages_Order(t *testing.T) {
	assert.Equal(t, []Stage{StageFetch, StageExtract, StageTokenize, StageTrain}, AllStages())
}

func TestStage_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		stage    Stage
		expected bool
	}{
		{"fetch", StageFetch, true},
		{"extract", StageExtract, true},
		{"tokenize", StageTokenize, true},
		{"train", StageTrain, true},
		{"empty", Stage(""), false},
		{"unknown", Stage("serve"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.stage.IsValid())
		})
	}
}

func TestParseStage(t *testing.T) {
	stage, err := ParseStage("  Train ")
	require.NoError(t, err)
	assert.Equal(t, StageTrain, stage)

	_, err = ParseStage("serve")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestStage_Description(t *testing.T) {
	for _, s := range AllStages() {
		assert.NotEqual(t, "Unknown", s.Description(), s.String())
	}
	assert.Equal(t, "Unknown", Stage("nope").Description())
}
