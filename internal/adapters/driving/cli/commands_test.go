package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jawikivec/internal/adapters/driving/cli/styles"
	"github.com/custodia-labs/jawikivec/internal/core/domain"
	"github.com/custodia-labs/jawikivec/internal/core/ports/driving"
)

func TestStatusCmd(t *testing.T) {
	a := newMockApp()
	a.runner.statuses = []driving.StageStatus{
		{
			Stage: domain.StageFetch,
			State: domain.StateDone,
			Outputs: []driving.ArtifactPresence{
				{Path: domain.DefaultArchiveFile, Exists: true, Size: 3 << 20},
			},
			Record: &domain.StageRecord{Stage: domain.StageFetch, CompletedAt: time.Now()},
		},
		{
			Stage: domain.StageExtract,
			State: domain.StateNotStarted,
			Outputs: []driving.ArtifactPresence{
				{Path: domain.DefaultTextFile},
				{Path: domain.DefaultSentencesFile},
			},
		},
	}

	out, err := execute(t, a, "", "status")

	require.NoError(t, err)
	assert.Contains(t, out, "Pipeline status")
	assert.Contains(t, out, "fetch")
	assert.Contains(t, out, "done")
	assert.Contains(t, out, "3.0 MiB")
	assert.Contains(t, out, "not-started")
	assert.Contains(t, out, domain.DefaultSentencesFile)
}

func TestRenderStatus_OneRowPerOutput(t *testing.T) {
	statuses := []driving.StageStatus{{
		Stage: domain.StageTrain,
		State: domain.StateNotStarted,
		Outputs: []driving.ArtifactPresence{
			{Path: "a.model"},
			{Path: "a.txt"},
		},
	}}

	lines := strings.Split(renderStatus(styles.DefaultStyles(), statuses), "\n")

	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "train")
	assert.NotContains(t, lines[2], "train")
}

func TestVerifyCmd_AllOK(t *testing.T) {
	a := newMockApp()
	a.runner.checks = []domain.ArtifactCheck{
		{Stage: domain.StageFetch, Path: "a", Status: domain.ArtifactOK, Expected: "abcdef0123456789", Actual: "abcdef0123456789"},
		{Stage: domain.StageTrain, Path: "b", Status: domain.ArtifactMissing, Expected: "ff"},
	}

	out, err := execute(t, a, "", "verify")

	require.NoError(t, err)
	assert.Contains(t, out, "abcdef012345")
	assert.NotContains(t, out, "abcdef0123456789")
	assert.Contains(t, out, "missing")
	assert.Contains(t, out, "All recorded files match.")
}

func TestVerifyCmd_Mismatch(t *testing.T) {
	a := newMockApp()
	a.runner.checks = []domain.ArtifactCheck{
		{Stage: domain.StageExtract, Path: "a", Status: domain.ArtifactMismatch, Expected: "aa", Actual: "bb"},
	}

	out, err := execute(t, a, "", "verify")

	assert.ErrorIs(t, err, domain.ErrDigestMismatch)
	assert.Contains(t, out, "mismatch")
}

func TestShortDigest(t *testing.T) {
	assert.Equal(t, "-", shortDigest(""))
	assert.Equal(t, "abc", shortDigest("abc"))
	assert.Equal(t, "0123456789ab", shortDigest("0123456789abcdef"))
}

func TestResetCmd_Yes(t *testing.T) {
	a := newMockApp()

	out, err := execute(t, a, "", "reset", "tokenize", "--yes")

	require.NoError(t, err)
	assert.Equal(t, []domain.Stage{domain.StageTokenize}, a.runner.resets)
	assert.Contains(t, out, "Stage tokenize reset.")
}

func TestResetCmd_Confirm(t *testing.T) {
	a := newMockApp()

	out, err := execute(t, a, "y\n", "reset", "extract")

	require.NoError(t, err)
	assert.Contains(t, out, domain.DefaultSentencesFile)
	assert.Equal(t, []domain.Stage{domain.StageExtract}, a.runner.resets)
}

func TestResetCmd_Declined(t *testing.T) {
	a := newMockApp()

	out, err := execute(t, a, "n\n", "reset", "extract")

	require.NoError(t, err)
	assert.Contains(t, out, "Aborted.")
	assert.Empty(t, a.runner.resets)
}

func TestResetCmd_UnknownStage(t *testing.T) {
	a := newMockApp()

	_, err := execute(t, a, "", "reset", "serve", "--yes")

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
	assert.Nil(t, a.built)
}

func TestConfigShow_TOML(t *testing.T) {
	out, err := execute(t, newMockApp(), "", "config", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "[train]")
	assert.Contains(t, out, "dim = 300")
	assert.Contains(t, out, domain.DefaultSourceURL)
}

func TestConfigShow_YAMLWithOverride(t *testing.T) {
	out, err := execute(t, newMockApp(), "", "--vectorsize", "50", "config", "show", "--format", "yaml")

	require.NoError(t, err)
	assert.Contains(t, out, "train:")
	assert.Contains(t, out, "dim: 50")
}

func TestConfigShow_UnknownFormat(t *testing.T) {
	_, err := execute(t, newMockApp(), "", "config", "show", "--format", "json")

	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestConfigPath(t *testing.T) {
	a := newMockApp()
	a.config.path = "/etc/jawikivec.toml"

	out, err := execute(t, a, "", "config", "path")

	require.NoError(t, err)
	assert.Equal(t, "/etc/jawikivec.toml\n", out)
}

func TestConfigInit(t *testing.T) {
	a := newMockApp()
	a.config.path = filepath.Join(t.TempDir(), "jawikivec.toml")

	out, err := execute(t, a, "", "--vectorsize", "100", "config", "init")

	require.NoError(t, err)
	require.NotNil(t, a.config.saved)
	assert.Equal(t, 100, a.config.saved.Train.Dim)
	assert.Contains(t, out, "Wrote")
}

func TestConfigInit_ExistingFile(t *testing.T) {
	a := newMockApp()
	a.config.path = filepath.Join(t.TempDir(), "jawikivec.toml")
	require.NoError(t, os.WriteFile(a.config.path, []byte("[train]\n"), 0600))

	_, err := execute(t, a, "", "config", "init")
	require.Error(t, err)
	assert.Nil(t, a.config.saved)

	_, err = execute(t, a, "", "config", "init", "--force")
	require.NoError(t, err)
	assert.NotNil(t, a.config.saved)
}
