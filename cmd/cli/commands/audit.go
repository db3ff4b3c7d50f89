package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/services"
)

// AuditCmd creates the audit command
func AuditCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Re-run the plan and diff it against the outputs on disk",
		Long: `Re-run the whole plan into a scratch directory and compare every generated file
with the outputs already in the output directory. Existing outputs are not modified.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			skipRepair, _ := cmd.Flags().GetBool("skip-repair")

			app.Logger.Debug("audit command", zap.Bool("skip_repair", skipRepair))

			result, err := services.AuditRun(app.Ctx, app.Cfg, app.Logger, services.PlanOptions{
				Env:        app.Env,
				SkipRepair: skipRepair,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n🔍 Audit of %d output file(s)\n", len(result.Compared))
			if result.PreviousRunID != "" {
				fmt.Printf("Previous run: %s\n", result.PreviousRunID)
			}
			fmt.Println()
			if result.Identical() {
				fmt.Println("✅ Re-run reproduced every output exactly")
				fmt.Println()
				return nil
			}

			for _, diff := range result.Diffs {
				fmt.Printf("❌ %s differs:\n%s\n", diff.Name, diff.Diff)
			}

			return fmt.Errorf("%d of %d output file(s) differ", len(result.Diffs), len(result.Compared))
		},
	}

	cmd.Flags().Bool("skip-repair", false, "Audit a run made with --skip-repair")

	return cmd
}
