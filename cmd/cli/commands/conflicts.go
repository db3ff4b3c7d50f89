package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/services"
)

// ConflictsCmd creates the conflicts command
func ConflictsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "conflicts",
		Short: "Rebuild the student conflict report from existing seat tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("conflicts command")

			result, err := services.ReportConflicts(app.Ctx, app.Store, app.Cfg, app.Logger)
			if err != nil {
				return err
			}

			fmt.Println()
			fmt.Print(result.Report)
			fmt.Printf("\nWrote report to %s\n\n", result.Path)

			return nil
		},
	}
}
