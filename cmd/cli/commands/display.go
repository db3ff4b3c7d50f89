package commands

import (
	"fmt"
	"path/filepath"

	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/model"
	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/services"
)

func printPlanSummary(result *services.PlanResult) {
	fmt.Printf("\n🎯 Exam Plan Results\n\n")
	fmt.Printf("Run ID:    %s\n", result.RunID)
	fmt.Printf("Rooms:     %d\n", len(result.Inputs.Rooms))
	fmt.Printf("Students:  %d\n", len(result.Inputs.Students))
	fmt.Printf("Courses:   %d\n", len(result.Inputs.Courses))
	if result.Success() {
		fmt.Printf("Status:    ✅ SUCCESS\n")
	} else {
		fmt.Printf("Status:    ⚠️  NEEDS REVIEW\n")
	}
	fmt.Println()

	fmt.Printf("Sessions seated (%d):\n", len(result.Plans))
	for _, plan := range result.Plans {
		placed := 0
		for _, block := range plan.OccupiedBlocks() {
			placed += block.Count
		}
		fmt.Printf("  ✓ %-24s %4d / %-4d seats\n", plan.Session, placed, plan.Capacity())
	}
	fmt.Println()

	if len(result.Failures) > 0 {
		fmt.Printf("❌ Sessions not seated (%d):\n", len(result.Failures))
		for _, failure := range result.Failures {
			fmt.Printf("  ✗ %s: %v\n", failure.Session, failure.Err)
		}
		fmt.Println()
	}

	if len(result.Conflicts) > 0 {
		fmt.Printf("⚠️  Student conflicts in %d session(s):\n", len(result.Conflicts))
		for _, group := range result.Conflicts {
			fmt.Printf("  - %s: %d student(s), courses %v\n", group.Session, len(group.StudentIDs), group.CourseIDs)
		}
		fmt.Println()
	}
}

func printDutySummary(result *services.PlanResult) {
	if result.Duties == nil || result.Manifest == nil {
		return
	}

	counts := result.Manifest.Duties
	fmt.Printf("Invigilation duties (%d):\n", counts.Total)
	if result.RosterFromCoordinators {
		fmt.Printf("  Roster:            %d faculty (from course coordinators)\n", len(result.Roster))
	} else {
		fmt.Printf("  Roster:            %d faculty\n", len(result.Roster))
	}
	fmt.Printf("  Assigned directly: %d\n", counts.AssignedDirect)
	fmt.Printf("  Assigned by shift: %d\n", counts.AssignedByShift)
	fmt.Printf("  Shifted by repair: %d\n", counts.ShiftedByRepair)
	if counts.Unassigned > 0 {
		fmt.Printf("  Unassigned:        %d\n", counts.Unassigned)
	}
	fmt.Printf("  Unassigned final:  %d\n", counts.UnassignedFinal)
	fmt.Printf("  No students:       %d\n", counts.NoStudents)

	load := result.Manifest.Load
	fmt.Printf("  Load per faculty:  min %d, max %d, mean %.2f, std dev %.2f\n", load.Min, load.Max, load.Mean, load.StdDev)
	fmt.Println()

	if len(result.Duties.ValidationErrors) > 0 {
		fmt.Printf("⚠️  Validation Errors (%d):\n", len(result.Duties.ValidationErrors))
		for _, verr := range result.Duties.ValidationErrors {
			fmt.Printf("  - [%s] %s %s/%s: %s\n", verr.CriterionName, verr.Session, verr.Room, verr.Block, verr.Description)
		}
		fmt.Println()
	}
}

func printDutyTable(result *services.PlanResult, all bool) {
	if result.Duties == nil {
		return
	}

	fmt.Printf("\n%-12s %-8s %-8s %-6s %-5s %-8s %-28s %s\n", "Date", "Slot", "Course", "Room", "Block", "Students", "Faculty", "Note")
	for _, row := range services.DutyRows(result.Duties) {
		if !all && row.Note == string(model.OutcomeAssignedDirect) {
			continue
		}
		faculty := row.Faculty
		if faculty == "" {
			faculty = "-"
		}
		fmt.Printf("%-12s %-8s %-8s %-6s %-5s %-8d %-28s %s\n",
			row.Date, row.Slot, row.CourseSNo, row.Room, row.Block, row.Students, faculty, row.Note)
	}
	fmt.Println()
}

func printOutputs(dir string, names []string) {
	fmt.Printf("Outputs written to %s:\n", dir)
	for _, name := range names {
		fmt.Printf("  - %s\n", filepath.Join(dir, name))
	}
	fmt.Println()
}
