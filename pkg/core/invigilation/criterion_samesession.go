package invigilation

import (
	"fmt"

	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/model"
)

// SameSessionCriterionName identifies SameSessionCriterion
const SameSessionCriterionName = "SameSession"

// SameSessionCriterion prevents a faculty from holding two duties in one session.
//
// Validity:
//   - Returns false if the faculty already holds a duty in the duty's session
type SameSessionCriterion struct{}

// NewSameSessionCriterion creates a new SameSessionCriterion
func NewSameSessionCriterion() *SameSessionCriterion {
	return &SameSessionCriterion{}
}

func (c *SameSessionCriterion) Name() string {
	return SameSessionCriterionName
}

func (c *SameSessionCriterion) IsEligible(state *DutyState, faculty Faculty, duty *Duty) bool {
	return !state.IsAssignedIn(faculty.Key, duty.Session)
}

func (c *SameSessionCriterion) ValidateDuties(state *DutyState) []DutyValidationError {
	var errors []DutyValidationError

	// AssignedSlots holds one duty per session, so count from the duty table itself
	type holding struct {
		faculty string
		session model.Session
	}
	seen := make(map[holding]*Duty)

	for _, duty := range state.Duties {
		if duty.Faculty == "" {
			continue
		}
		key := holding{faculty: duty.Faculty, session: duty.Session}
		first, ok := seen[key]
		if !ok {
			seen[key] = duty
			continue
		}
		errors = append(errors, DutyValidationError{
			Session:       duty.Session,
			Room:          duty.Room,
			Block:         duty.Block,
			Faculty:       duty.Faculty,
			CriterionName: c.Name(),
			Description:   fmt.Sprintf("Faculty '%s' also invigilates %s/%s in the same session", duty.Faculty, first.Room, first.Block),
		})
	}

	return errors
}
