package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/services"
)

// ListFacultyCmd creates the listFaculty command
func ListFacultyCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listFaculty",
		Short: "List the invigilation roster and the courses each member coordinates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := services.ListFaculty(app.Ctx, app.Store, app.Logger)
			if err != nil {
				return fmt.Errorf("failed to list faculty: %w", err)
			}

			source := "faculty roster"
			if list.FromCoordinators {
				source = "course coordinators"
			}
			fmt.Printf("\nFound %d faculty (from %s):\n\n", len(list.Entries), source)
			for _, entry := range list.Entries {
				coordinates := ""
				if len(entry.Coordinates) > 0 {
					coordinates = fmt.Sprintf(" [Coordinates: %s]", strings.Join(entry.Coordinates, ", "))
				}
				fmt.Printf("- %s (%s)%s\n", entry.Faculty.Display, entry.Faculty.Key, coordinates)
			}

			if len(list.UnmatchedCoordinators) > 0 {
				fmt.Printf("\n⚠️  Coordinators not on the roster (%d):\n", len(list.UnmatchedCoordinators))
				for _, name := range list.UnmatchedCoordinators {
					fmt.Printf("  - %s\n", name)
				}
			}
			fmt.Println()

			return nil
		},
	}
}
