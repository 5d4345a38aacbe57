package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/jawikivec/internal/core/domain"
	"github.com/custodia-labs/jawikivec/internal/core/ports/driving"
)

// mockConfigService implements driving.ConfigService for testing.
type mockConfigService struct {
	cfg   domain.PipelineConfig
	path  string
	saved *domain.PipelineConfig
}

func (m *mockConfigService) Get() (*domain.PipelineConfig, error) {
	cfg := m.cfg
	return &cfg, nil
}

func (m *mockConfigService) Save(cfg *domain.PipelineConfig) error {
	m.saved = cfg
	return nil
}

func (m *mockConfigService) GetDefaults() domain.PipelineConfig {
	return domain.DefaultPipelineConfig()
}

func (m *mockConfigService) Path() string {
	return m.path
}

// mockRunner implements driving.PipelineRunner for testing.
type mockRunner struct {
	cfg      domain.PipelineConfig
	runs     int
	stages   []domain.Stage
	resets   []domain.Stage
	statuses []driving.StageStatus
	checks   []domain.ArtifactCheck
	err      error
}

func (m *mockRunner) Run(_ context.Context) error {
	m.runs++
	return m.err
}

func (m *mockRunner) RunStage(_ context.Context, stage domain.Stage) error {
	m.stages = append(m.stages, stage)
	return m.err
}

func (m *mockRunner) Status(_ context.Context) ([]driving.StageStatus, error) {
	return m.statuses, m.err
}

func (m *mockRunner) Verify(_ context.Context) ([]domain.ArtifactCheck, error) {
	return m.checks, m.err
}

func (m *mockRunner) Reset(_ context.Context, stage domain.Stage) error {
	m.resets = append(m.resets, stage)
	return m.err
}

func (m *mockRunner) Config() domain.PipelineConfig {
	return m.cfg
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// mockApp implements App for testing.
type mockApp struct {
	config  *mockConfigService
	runner  *mockRunner
	built   *domain.PipelineConfig
	closed  int
	options Options
}

func newMockApp() *mockApp {
	return &mockApp{
		config: &mockConfigService{cfg: domain.DefaultPipelineConfig(), path: "jawikivec.toml"},
		runner: &mockRunner{},
	}
}

func (m *mockApp) ConfigService(opts Options) (driving.ConfigService, error) {
	m.options = opts
	return m.config, nil
}

func (m *mockApp) Runner(_ context.Context, cfg domain.PipelineConfig, _ Options) (driving.PipelineRunner, io.Closer, error) {
	m.built = &cfg
	m.runner.cfg = cfg
	return m.runner, closerFunc(func() error {
		m.closed++
		return nil
	}), nil
}

// resetFlags restores every flag to its default so tests do not leak
// state through the shared command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// execute runs the root command against a with the given input and
// returns the combined output.
func execute(t *testing.T, a App, input string, args ...string) (string, error) {
	t.Helper()

	oldApp := app
	app = a
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(input))
	if args == nil {
		// A nil slice makes cobra fall back to os.Args.
		args = []string{}
	}
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		app = oldApp
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}
