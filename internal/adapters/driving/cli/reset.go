package cli

import (
	"bufio"
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/jawikivec/internal/core/domain"
	"github.com/custodia-labs/jawikivec/internal/core/ports/driving"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset <stage>",
	Short: "Delete a stage's output files so it runs again",
	Long: `Deletes the output files of a stage and its completion record.
Later stages are not touched; reset them too if they should be rebuilt.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"fetch", "extract", "tokenize", "train"},
	RunE:      runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "do not ask for confirmation")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	stage, err := domain.ParseStage(args[0])
	if err != nil {
		return err
	}

	return withRunner(cmd, func(ctx context.Context, runner driving.PipelineRunner) error {
		if !resetYes {
			cfg := runner.Config()
			cmd.Printf("This deletes %s. Continue? [y/N]: ", strings.Join(cfg.Outputs(stage), ", "))
			if !confirm(bufio.NewReader(cmd.InOrStdin())) {
				cmd.Println("Aborted.")
				return nil
			}
		}
		if err := runner.Reset(ctx, stage); err != nil {
			return err
		}
		cmd.Printf("Stage %s reset.\n", stage)
		return nil
	})
}

func confirm(reader *bufio.Reader) bool {
	line, _ := reader.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
