package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/jawikivec/internal/core/domain"
	"github.com/custodia-labs/jawikivec/internal/core/ports/driving"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every pipeline stage in order",
	Long: `Runs fetch, extract, tokenize and train in order.
Stages whose output files already exist are skipped.`,
	Args: cobra.NoArgs,
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)
	for _, stage := range domain.AllStages() {
		rootCmd.AddCommand(newStageCmd(stage))
	}
}

// newStageCmd builds the command that runs a single stage.
func newStageCmd(stage domain.Stage) *cobra.Command {
	return &cobra.Command{
		Use:   stage.String(),
		Short: fmt.Sprintf("Run the %s stage only", stage),
		Long: fmt.Sprintf(`%s.
The stage is skipped when its output files already exist and fails
when its input files are missing.`, stage.Description()),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRunner(cmd, func(ctx context.Context, runner driving.PipelineRunner) error {
				return runner.RunStage(ctx, stage)
			})
		},
	}
}
