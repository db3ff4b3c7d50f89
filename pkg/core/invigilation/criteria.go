package invigilation

// Criterion defines the interface for invigilation eligibility rules
type Criterion interface {
	// Name returns a human-readable identifier for this criterion
	Name() string

	// IsEligible determines if the faculty may invigilate the duty given the current state.
	// This acts as a veto - if ANY criterion returns false, the faculty is not a candidate.
	IsEligible(state *DutyState, faculty Faculty, duty *Duty) bool

	// ValidateDuties checks the final duty table against this criterion
	// Returns a slice of validation errors (empty if all valid)
	ValidateDuties(state *DutyState) []DutyValidationError
}

// DefaultCriteria returns the standard rule set: same-session exclusivity,
// slot adjacency and the coordinator room-count rule
func DefaultCriteria(coordinatorRoomThreshold int) []Criterion {
	return []Criterion{
		NewSameSessionCriterion(),
		NewAdjacentSlotCriterion(),
		NewCoordinatorCriterion(coordinatorRoomThreshold),
	}
}

// IsEligible returns true if every criterion accepts the faculty for the duty
func IsEligible(state *DutyState, faculty Faculty, duty *Duty, criteria []Criterion) bool {
	for _, criterion := range criteria {
		if !criterion.IsEligible(state, faculty, duty) {
			return false
		}
	}
	return true
}

// isEligibleIgnoring is IsEligible with the named criterion skipped
func isEligibleIgnoring(state *DutyState, faculty Faculty, duty *Duty, criteria []Criterion, ignore string) bool {
	for _, criterion := range criteria {
		if criterion.Name() == ignore {
			continue
		}
		if !criterion.IsEligible(state, faculty, duty) {
			return false
		}
	}
	return true
}
