// Package cli provides the jawikivec command-line interface.
package cli

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/jawikivec/internal/core/domain"
	"github.com/custodia-labs/jawikivec/internal/core/ports/driving"
	"github.com/custodia-labs/jawikivec/internal/logger"
)

// version is set at build time.
var version = "dev"

// Options carries the global flag values to the App.
type Options struct {
	// WorkDir holds every artifact.
	WorkDir string

	// ConfigPath is the TOML config file. Empty means <workdir>/jawikivec.toml.
	ConfigPath string

	// Progress receives download progress. Nil when output is not a terminal.
	Progress func(done, total int64)
}

// App builds the services the commands drive. It is provided by the
// composition root.
type App interface {
	// ConfigService opens the configuration store for opts.
	ConfigService(opts Options) (driving.ConfigService, error)

	// Runner builds a pipeline for a validated configuration.
	// The returned closer releases the manifest store.
	Runner(ctx context.Context, cfg domain.PipelineConfig, opts Options) (driving.PipelineRunner, io.Closer, error)
}

var app App

// Global flag values.
var (
	flagWorkDir    string
	flagConfig     string
	flagVectorSize int
	flagVerbose    bool
	flagQuiet      bool
	flagTimestamps bool
)

var rootCmd = &cobra.Command{
	Use:   "jawikivec",
	Short: "Build Japanese word vectors from Wikipedia",
	Long: `jawikivec downloads the Japanese Wikipedia dump, extracts article text,
segments it into words and trains word2vec embeddings.

Every stage skips itself when its output files already exist, so the
pipeline can be rerun after an interruption. Running without a
subcommand runs the whole pipeline.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: configureLogging,
	RunE:              runPipeline,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&flagWorkDir, "workdir", "w", ".", "directory holding the pipeline files")
	flags.StringVarP(&flagConfig, "config", "c", "", "config file (default <workdir>/jawikivec.toml)")
	flags.IntVar(&flagVectorSize, "vectorsize", domain.DefaultVectorSize, "embedding dimensionality")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "print debug output")
	flags.BoolVarP(&flagQuiet, "quiet", "q", false, "only print warnings and errors")
	flags.BoolVar(&flagTimestamps, "timestamps", false, "prefix log lines with the time")
}

// SetApp sets the App used by all commands.
func SetApp(a App) {
	app = a
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func configureLogging(cmd *cobra.Command, _ []string) error {
	if flagVerbose && flagQuiet {
		return errors.New("--verbose and --quiet are mutually exclusive")
	}
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetVerbose(flagVerbose)
	logger.SetQuiet(flagQuiet)
	logger.SetTimestamps(flagTimestamps)
	return nil
}

func options(cmd *cobra.Command) Options {
	return Options{
		WorkDir:    flagWorkDir,
		ConfigPath: flagConfig,
		Progress:   downloadProgress(cmd.ErrOrStderr(), flagQuiet),
	}
}

// loadConfig resolves the effective configuration: stored values over
// defaults, then command-line overrides. The result is validated, so an
// unusable vector size fails before any stage runs.
func loadConfig(cmd *cobra.Command) (*domain.PipelineConfig, driving.ConfigService, error) {
	if app == nil {
		return nil, nil, errors.New("application not configured")
	}

	svc, err := app.ConfigService(options(cmd))
	if err != nil {
		return nil, nil, err
	}
	cfg, err := svc.Get()
	if err != nil {
		return nil, nil, err
	}

	cfg.WorkDir = flagWorkDir
	if f := cmd.Flags().Lookup("vectorsize"); f != nil && f.Changed {
		cfg.Train.Dim = flagVectorSize
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, svc, nil
}

// withRunner builds a pipeline runner, calls fn and releases the runner.
func withRunner(cmd *cobra.Command, fn func(ctx context.Context, runner driving.PipelineRunner) error) (err error) {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	runner, closer, err := app.Runner(ctx, *cfg, options(cmd))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closer.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return fn(ctx, runner)
}

func runPipeline(cmd *cobra.Command, _ []string) error {
	return withRunner(cmd, func(ctx context.Context, runner driving.PipelineRunner) error {
		return runner.Run(ctx)
	})
}
