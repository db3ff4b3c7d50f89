package invigilation

import (
	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/model"
)

// Allocator manages invigilation duty assignment with configurable criteria
type Allocator struct {
	criteria   []Criterion
	state      *DutyState
	skipRepair bool
}

// AllocationConfig contains the configuration for creating a new Allocator
type AllocationConfig struct {
	// Criteria to apply during allocation (nil means DefaultCriteria)
	Criteria []Criterion

	// Roster is the ordered list of distinct faculty
	Roster []Faculty

	// Blocks are the occupied blocks of every session
	Blocks []model.OccupiedBlock

	// Courses provides the coordinator of each course
	Courses []CourseInfo

	// Slots defines slot order and adjacency (empty means model.DefaultSlotOrder)
	Slots model.SlotOrder

	// SkipRepair leaves unassigned blocks as they are after the greedy pass
	SkipRepair bool
}

// AllocationOutcome represents the result of duty allocation
type AllocationOutcome struct {
	// State is the final allocation context
	State *DutyState

	// Duties is the full duty table in processing order
	Duties []*Duty

	// Unassigned contains the blocks left without faculty after repair
	Unassigned []*Duty

	// Shifts records every one-hop shift the repair pass committed
	Shifts []ShiftRecord

	// ValidationErrors contains any constraint violations found in the final table
	ValidationErrors []DutyValidationError

	// Success indicates every occupied block is staffed without violations
	Success bool
}

// Allocate runs the greedy duty allocation followed by the repair pass
func Allocate(config AllocationConfig) (*AllocationOutcome, error) {
	allocator, err := InitAllocation(config)
	if err != nil {
		return nil, err
	}

	pending := allocator.allocateDirect()

	var shifts []ShiftRecord
	if !allocator.skipRepair {
		shifts = Repair(allocator.state, allocator.criteria, pending)
	}

	return allocator.buildOutcome(shifts), nil
}

// allocateDirect assigns each occupied block in order and returns the blocks
// that had no eligible candidate, in discovery order
func (a *Allocator) allocateDirect() []*Duty {
	var pending []*Duty

	for _, duty := range a.state.Duties {
		if duty.Count <= 0 {
			continue
		}

		chosen, ok := a.selectFaculty(duty)
		if !ok {
			duty.Outcome = model.OutcomeUnassigned
			pending = append(pending, duty)
			continue
		}

		a.state.commit(duty, chosen.Key, model.OutcomeAssignedDirect)
	}

	return pending
}

// selectFaculty picks the eligible faculty with the lowest load, ties by key.
// Coordinators of the duty's course are only chosen when no one else is eligible.
func (a *Allocator) selectFaculty(duty *Duty) (Faculty, bool) {
	var others, coordinators []Faculty

	for _, faculty := range a.state.Roster {
		if !IsEligible(a.state, faculty, duty, a.criteria) {
			continue
		}
		if a.state.IsCoordinator(faculty.Key, duty.CourseID) {
			coordinators = append(coordinators, faculty)
		} else {
			others = append(others, faculty)
		}
	}

	candidates := others
	if len(candidates) == 0 {
		candidates = coordinators
	}
	if len(candidates) == 0 {
		return Faculty{}, false
	}

	best := candidates[0]
	for _, candidate := range candidates[1:] {
		load, bestLoad := a.state.Load[candidate.Key], a.state.Load[best.Key]
		if load < bestLoad || (load == bestLoad && candidate.Key < best.Key) {
			best = candidate
		}
	}
	return best, true
}

// buildOutcome creates the final allocation outcome report
func (a *Allocator) buildOutcome(shifts []ShiftRecord) *AllocationOutcome {
	// Initialize with empty slices (not nil) for easier consumption
	outcome := &AllocationOutcome{
		State:            a.state,
		Duties:           a.state.Duties,
		Unassigned:       []*Duty{},
		Shifts:           []ShiftRecord{},
		ValidationErrors: []DutyValidationError{},
	}
	outcome.Shifts = append(outcome.Shifts, shifts...)
	outcome.Unassigned = append(outcome.Unassigned, a.state.Unassigned()...)
	outcome.ValidationErrors = append(outcome.ValidationErrors, ValidateDuties(a.state, a.criteria)...)

	outcome.Success = len(outcome.Unassigned) == 0 && len(outcome.ValidationErrors) == 0

	return outcome
}
