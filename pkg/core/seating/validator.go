package seating

import (
	"fmt"

	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/model"
)

// PlanValidationError represents a broken seating invariant
type PlanValidationError struct {
	Session     model.Session
	Room        string
	Block       model.BlockLabel
	CourseID    string
	Description string
}

// ValidatePlan checks a finished plan against its demand:
//   - no block holds more students than its capacity
//   - the two blocks of a room are never committed to the same course
//   - every course has exactly as many seats as registered students
//
// An empty slice indicates the plan is valid.
func ValidatePlan(plan *SessionPlan, demands []CourseDemand) []PlanValidationError {
	var errors []PlanValidationError

	for _, rb := range plan.rooms {
		for _, block := range rb.blocks {
			if len(block.Seats) > block.Capacity {
				errors = append(errors, PlanValidationError{
					Session:     plan.Session,
					Room:        block.Room,
					Block:       block.Label,
					Description: fmt.Sprintf("Block holds %d students but has %d seats", len(block.Seats), block.Capacity),
				})
			}
		}

		a, b := rb.blocks[0], rb.blocks[1]
		if a.Course != "" && a.Course == b.Course {
			errors = append(errors, PlanValidationError{
				Session:     plan.Session,
				Room:        rb.room.ID,
				CourseID:    a.Course,
				Description: "Course is committed to both blocks of the room",
			})
		}
	}

	for _, demand := range demands {
		placed := plan.PlacedCount(demand.CourseID)
		if placed != len(demand.Students) {
			errors = append(errors, PlanValidationError{
				Session:     plan.Session,
				CourseID:    demand.CourseID,
				Description: fmt.Sprintf("Course has %d seats for %d registered students", placed, len(demand.Students)),
			})
		}
	}

	return errors
}
