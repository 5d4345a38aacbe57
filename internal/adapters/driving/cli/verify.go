package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/jawikivec/internal/adapters/driving/cli/styles"
	"github.com/custodia-labs/jawikivec/internal/core/domain"
	"github.com/custodia-labs/jawikivec/internal/core/ports/driving"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check pipeline files against their recorded digests",
	Long: `Re-hashes every output file and compares it with the SHA-256 digest
recorded when its stage completed. Exits with an error when a file
differs from its record.`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, _ []string) error {
	return withRunner(cmd, func(ctx context.Context, runner driving.PipelineRunner) error {
		checks, err := runner.Verify(ctx)
		if err != nil {
			return err
		}

		s := styles.DefaultStyles()
		cmd.Println(renderChecks(s, checks))

		mismatched := 0
		for _, c := range checks {
			if c.Status == domain.ArtifactMismatch {
				mismatched++
			}
		}
		if mismatched > 0 {
			return fmt.Errorf("%d file(s) changed since they were recorded: %w", mismatched, domain.ErrDigestMismatch)
		}
		cmd.Println(s.Success.Render("All recorded files match."))
		return nil
	})
}

func renderChecks(s *styles.Styles, checks []domain.ArtifactCheck) string {
	rows := [][]string{{"STAGE", "FILE", "STATUS", "SHA256"}}
	for _, c := range checks {
		digest := c.Actual
		if digest == "" {
			digest = c.Expected
		}
		rows = append(rows, []string{c.Stage.String(), c.Path, string(c.Status), shortDigest(digest)})
	}

	return s.Table(rows, func(_, col int, cell string) lipgloss.Style {
		if col != 2 {
			return s.Normal
		}
		switch domain.ArtifactStatus(cell) {
		case domain.ArtifactOK:
			return s.Success
		case domain.ArtifactMismatch:
			return s.Error
		default:
			return s.Warning
		}
	})
}

func shortDigest(d string) string {
	if len(d) > 12 {
		return d[:12]
	}
	if d == "" {
		return "-"
	}
	return d
}
