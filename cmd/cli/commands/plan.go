package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/services"
)

// PlanCmd creates the plan command
func PlanCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Seat every exam session and assign invigilators",
		Long: `Run the full pipeline: per-session seat tables, the student conflict report,
the invigilation duty table and the run manifest. Outputs of the previous run are replaced.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			skipRepair, _ := cmd.Flags().GetBool("skip-repair")

			app.Logger.Debug("plan command", zap.Bool("skip_repair", skipRepair))

			result, err := services.PlanExams(app.Ctx, app.Store, app.Cfg, app.Logger, services.PlanOptions{
				Env:        app.Env,
				SkipRepair: skipRepair,
			})
			if err != nil {
				return fmt.Errorf("planning failed: %w", err)
			}
			app.LastPlan = result

			printPlanSummary(result)
			printDutySummary(result)
			printOutputs(app.Store.OutputDir(), result.Manifest.Outputs)

			return nil
		},
	}

	cmd.Flags().Bool("skip-repair", false, "Leave blocks the first pass cannot staff unassigned")

	return cmd
}

// SeatsCmd creates the seats command
func SeatsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "seats",
		Short: "Produce seat tables and the conflict report only",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("seats command")

			result, err := services.PlanExams(app.Ctx, app.Store, app.Cfg, app.Logger, services.PlanOptions{
				Env:        app.Env,
				SkipDuties: true,
			})
			if err != nil {
				return fmt.Errorf("seating failed: %w", err)
			}
			app.LastPlan = result

			printPlanSummary(result)
			printOutputs(app.Store.OutputDir(), result.Manifest.Outputs)

			return nil
		},
	}
}

// DutiesCmd creates the duties command
func DutiesCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "duties",
		Short: "Plan the exam period and print the invigilation duty table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			skipRepair, _ := cmd.Flags().GetBool("skip-repair")
			all, _ := cmd.Flags().GetBool("all")

			app.Logger.Debug("duties command",
				zap.Bool("skip_repair", skipRepair),
				zap.Bool("all", all))

			result, err := services.PlanExams(app.Ctx, app.Store, app.Cfg, app.Logger, services.PlanOptions{
				Env:        app.Env,
				SkipRepair: skipRepair,
			})
			if err != nil {
				return fmt.Errorf("planning failed: %w", err)
			}
			app.LastPlan = result

			printDutyTable(result, all)
			printDutySummary(result)

			return nil
		},
	}

	cmd.Flags().Bool("skip-repair", false, "Leave blocks the first pass cannot staff unassigned")
	cmd.Flags().Bool("all", false, "Include blocks that were assigned directly")

	return cmd
}
