package invigilation

import (
	"fmt"

	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/model"
)

// AdjacentSlotCriterionName identifies AdjacentSlotCriterion
const AdjacentSlotCriterionName = "AdjacentSlot"

// AdjacentSlotCriterion prevents back-to-back duties.
//
// Validity:
//   - Returns false if the faculty holds a duty in a neighbouring slot on the same date
//   - Only immediate neighbours count; there is no wraparound between days
type AdjacentSlotCriterion struct{}

// NewAdjacentSlotCriterion creates a new AdjacentSlotCriterion
func NewAdjacentSlotCriterion() *AdjacentSlotCriterion {
	return &AdjacentSlotCriterion{}
}

func (c *AdjacentSlotCriterion) Name() string {
	return AdjacentSlotCriterionName
}

func (c *AdjacentSlotCriterion) IsEligible(state *DutyState, faculty Faculty, duty *Duty) bool {
	return len(state.AdjacentHolds(faculty.Key, duty.Session)) == 0
}

func (c *AdjacentSlotCriterion) ValidateDuties(state *DutyState) []DutyValidationError {
	var errors []DutyValidationError

	held := make(map[string][]*Duty)
	for _, duty := range state.Duties {
		if duty.Faculty == "" {
			continue
		}
		held[duty.Faculty] = append(held[duty.Faculty], duty)
	}

	for _, faculty := range state.Roster {
		duties := held[faculty.Key]
		for i, a := range duties {
			for _, b := range duties[i+1:] {
				if !state.Slots.AdjacentSessions(a.Session, b.Session) {
					continue
				}
				errors = append(errors, DutyValidationError{
					Session:       b.Session,
					Room:          b.Room,
					Block:         b.Block,
					Faculty:       faculty.Key,
					CriterionName: c.Name(),
					Description:   fmt.Sprintf("Faculty '%s' invigilates adjacent slots %s and %s", faculty.Key, a.Session, b.Session),
				})
			}
		}
	}

	return errors
}

// adjacentConflict reports whether the faculty's holds would clash once
// the duty at remove is given up and the duty at add is taken on
func (s *DutyState) adjacentConflict(key string, remove, add model.Session) bool {
	return hasAdjacencyConflict(s.Slots, s.projectedHolds(key, remove, add))
}
