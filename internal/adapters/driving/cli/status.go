package cli

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/jawikivec/internal/adapters/driving/cli/styles"
	"github.com/custodia-labs/jawikivec/internal/core/domain"
	"github.com/custodia-labs/jawikivec/internal/core/ports/driving"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which stages are complete",
	Long: `Lists every stage with its state, its output files and the time
it was last recorded as complete.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	return withRunner(cmd, func(ctx context.Context, runner driving.PipelineRunner) error {
		statuses, err := runner.Status(ctx)
		if err != nil {
			return err
		}

		s := styles.DefaultStyles()
		cmd.Println(s.Title.Render("Pipeline status") + "  " + s.Muted.Render(runner.Config().WorkDir))
		cmd.Println(renderStatus(s, statuses))
		return nil
	})
}

// renderStatus formats one row per stage output.
func renderStatus(s *styles.Styles, statuses []driving.StageStatus) string {
	rows := [][]string{{"STAGE", "STATE", "FILE", "SIZE", "COMPLETED"}}
	for _, st := range statuses {
		completed := "-"
		if st.Record != nil {
			completed = st.Record.CompletedAt.Local().Format(time.DateTime)
		}
		for i, out := range st.Outputs {
			stage, state := st.Stage.String(), st.State.String()
			if i > 0 {
				stage, state, completed = "", "", ""
			}
			size := "-"
			if out.Exists {
				size = humanize.IBytes(uint64(out.Size))
			}
			rows = append(rows, []string{stage, state, out.Path, size, completed})
		}
	}

	return s.Table(rows, func(_, col int, cell string) lipgloss.Style {
		switch {
		case col == 1 && cell == domain.StateDone.String():
			return s.Success
		case col == 1 && cell != "":
			return s.Warning
		case col == 3 && cell == "-":
			return s.Muted
		case strings.TrimSpace(cell) == "":
			return s.Muted
		}
		return s.Normal
	})
}
