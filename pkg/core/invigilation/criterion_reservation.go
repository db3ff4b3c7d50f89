package invigilation

import (
	"fmt"
	"slices"

	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/model"
)

// CoordinatorReservationCriterionName identifies CoordinatorReservationCriterion
const CoordinatorReservationCriterionName = "CoordinatorReservation"

// CoordinatorReservationCriterion keeps coordinators off the duty table while
// their own exam runs and in the slots either side of it, leaving them free to
// handle queries from the exam rooms.
//
// Validity:
//   - Returns false if the duty's session is one in which a course coordinated
//     by the faculty sits, or is adjacent to such a session
//
// This rule is stricter than CoordinatorCriterion and is not part of DefaultCriteria.
type CoordinatorReservationCriterion struct{}

// NewCoordinatorReservationCriterion creates a new CoordinatorReservationCriterion
func NewCoordinatorReservationCriterion() *CoordinatorReservationCriterion {
	return &CoordinatorReservationCriterion{}
}

func (c *CoordinatorReservationCriterion) Name() string {
	return CoordinatorReservationCriterionName
}

func (c *CoordinatorReservationCriterion) IsEligible(state *DutyState, faculty Faculty, duty *Duty) bool {
	return !slices.Contains(reservedSessions(state, faculty.Key), duty.Session)
}

func (c *CoordinatorReservationCriterion) ValidateDuties(state *DutyState) []DutyValidationError {
	var errors []DutyValidationError

	for _, duty := range state.Duties {
		if duty.Faculty == "" {
			continue
		}
		if !slices.Contains(reservedSessions(state, duty.Faculty), duty.Session) {
			continue
		}
		errors = append(errors, DutyValidationError{
			Session:       duty.Session,
			Room:          duty.Room,
			Block:         duty.Block,
			Faculty:       duty.Faculty,
			CriterionName: c.Name(),
			Description:   fmt.Sprintf("Coordinator '%s' is reserved for their own exam around %s", duty.Faculty, duty.Session),
		})
	}

	return errors
}

// reservedSessions returns the coordinator's exam sessions and their neighbours
func reservedSessions(state *DutyState, key string) []model.Session {
	var reserved []model.Session
	for _, session := range state.CoordinatedSessions(key) {
		reserved = append(reserved, session)
		reserved = append(reserved, state.Slots.NeighbourSessions(session)...)
	}
	return reserved
}
