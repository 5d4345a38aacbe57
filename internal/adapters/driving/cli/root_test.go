package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jawikivec/internal/core/domain"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "jawikivec", rootCmd.Use)
	assert.Contains(t, rootCmd.Long, "skips itself")
}

func TestRootCmd_HasCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"run", "fetch", "extract", "tokenize", "train", "status", "verify", "reset", "config", "version"} {
		assert.True(t, names[want], want)
	}
}

func TestRootCmd_RunsPipelineWithoutSubcommand(t *testing.T) {
	a := newMockApp()

	_, err := execute(t, a, "")

	require.NoError(t, err)
	assert.Equal(t, 1, a.runner.runs)
	assert.Equal(t, 1, a.closed)
}

func TestRunCmd(t *testing.T) {
	a := newMockApp()

	_, err := execute(t, a, "", "run")

	require.NoError(t, err)
	assert.Equal(t, 1, a.runner.runs)
	assert.Empty(t, a.runner.stages)
}

func TestStageCmds(t *testing.T) {
	for _, stage := range domain.AllStages() {
		t.Run(stage.String(), func(t *testing.T) {
			a := newMockApp()

			_, err := execute(t, a, "", stage.String())

			require.NoError(t, err)
			assert.Equal(t, []domain.Stage{stage}, a.runner.stages)
			assert.Zero(t, a.runner.runs)
		})
	}
}

func TestStageCmd_RejectsArgs(t *testing.T) {
	_, err := execute(t, newMockApp(), "", "train", "extra")
	assert.Error(t, err)
}

func TestVectorSizeFlag_Overrides(t *testing.T) {
	a := newMockApp()
	a.config.cfg.Train.Dim = 100

	_, err := execute(t, a, "", "--vectorsize", "50", "train")

	require.NoError(t, err)
	require.NotNil(t, a.built)
	assert.Equal(t, 50, a.built.Train.Dim)
}

func TestVectorSizeFlag_DefaultKeepsConfiguredValue(t *testing.T) {
	a := newMockApp()
	a.config.cfg.Train.Dim = 100

	_, err := execute(t, a, "", "train")

	require.NoError(t, err)
	assert.Equal(t, 100, a.built.Train.Dim)
}

func TestVectorSizeFlag_Invalid(t *testing.T) {
	for _, size := range []string{"0", "-5"} {
		t.Run(size, func(t *testing.T) {
			a := newMockApp()

			_, err := execute(t, a, "", "--vectorsize="+size, "run")

			assert.ErrorIs(t, err, domain.ErrInvalidConfig)
			assert.Nil(t, a.built, "no runner may be built for an invalid size")
			assert.Zero(t, a.runner.runs)
		})
	}
}

func TestWorkDirFlag(t *testing.T) {
	a := newMockApp()

	_, err := execute(t, a, "", "--workdir", "/data/wiki", "--config", "/etc/jawikivec.toml", "run")

	require.NoError(t, err)
	assert.Equal(t, "/data/wiki", a.built.WorkDir)
	assert.Equal(t, "/data/wiki", a.options.WorkDir)
	assert.Equal(t, "/etc/jawikivec.toml", a.options.ConfigPath)
}

func TestRunner_ErrorPropagatesAndCloses(t *testing.T) {
	a := newMockApp()
	boom := errors.New("boom")
	a.runner.err = boom

	_, err := execute(t, a, "", "run")

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, a.closed)
}

func TestAppNotConfigured(t *testing.T) {
	_, err := execute(t, nil, "", "run")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "application not configured")
}

func TestVerboseAndQuietConflict(t *testing.T) {
	_, err := execute(t, newMockApp(), "", "--verbose", "--quiet", "run")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestExecute_UsesContext(t *testing.T) {
	a := newMockApp()
	oldApp := app
	app = a
	defer func() { app = oldApp }()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"run"})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, Execute(context.Background()))
	assert.Equal(t, 1, a.runner.runs)
}
