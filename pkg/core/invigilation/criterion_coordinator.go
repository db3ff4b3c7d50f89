package invigilation

import "fmt"

// CoordinatorCriterionName identifies CoordinatorCriterion
const CoordinatorCriterionName = "Coordinator"

// DefaultCoordinatorRoomThreshold is the room count above which a coordinator
// may not invigilate their own course
const DefaultCoordinatorRoomThreshold = 2

// CoordinatorCriterion keeps a course coordinator free while their course is
// spread over many rooms.
//
// Validity:
//   - Returns false if the faculty coordinates the duty's course and the course
//     occupies more than threshold distinct rooms in the session
//   - Coordinators of courses in threshold rooms or fewer stay eligible; the
//     allocator still prefers any non-coordinator candidate
type CoordinatorCriterion struct {
	threshold int
}

// NewCoordinatorCriterion creates a new CoordinatorCriterion.
// A threshold below 1 falls back to DefaultCoordinatorRoomThreshold.
func NewCoordinatorCriterion(threshold int) *CoordinatorCriterion {
	if threshold < 1 {
		threshold = DefaultCoordinatorRoomThreshold
	}
	return &CoordinatorCriterion{threshold: threshold}
}

func (c *CoordinatorCriterion) Name() string {
	return CoordinatorCriterionName
}

// Threshold returns the room count above which coordinators are excluded
func (c *CoordinatorCriterion) Threshold() int {
	return c.threshold
}

func (c *CoordinatorCriterion) IsEligible(state *DutyState, faculty Faculty, duty *Duty) bool {
	if !state.IsCoordinator(faculty.Key, duty.CourseID) {
		return true
	}
	return state.RoomCount(duty.Session, duty.CourseID) <= c.threshold
}

func (c *CoordinatorCriterion) ValidateDuties(state *DutyState) []DutyValidationError {
	var errors []DutyValidationError

	for _, duty := range state.Duties {
		if duty.Faculty == "" || !state.IsCoordinator(duty.Faculty, duty.CourseID) {
			continue
		}
		rooms := state.RoomCount(duty.Session, duty.CourseID)
		if rooms <= c.threshold {
			continue
		}
		errors = append(errors, DutyValidationError{
			Session:       duty.Session,
			Room:          duty.Room,
			Block:         duty.Block,
			Faculty:       duty.Faculty,
			CriterionName: c.Name(),
			Description:   fmt.Sprintf("Coordinator '%s' invigilates course %s which occupies %d rooms", duty.Faculty, duty.CourseID, rooms),
		})
	}

	return errors
}
