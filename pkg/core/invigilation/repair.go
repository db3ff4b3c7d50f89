package invigilation

import (
	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/model"
)

// ShiftRecord describes one committed one-hop shift
type ShiftRecord struct {
	// Duty is the previously unassigned block, now held by Candidate
	Duty *Duty

	// Shifted is the adjacent-session duty handed from Candidate to Alternate
	Shifted *Duty

	Candidate string
	Alternate string
}

// Repair tries to staff each unassigned duty with a single reassignment chain.
//
// For a duty in session s, a candidate f is a faculty blocked only by a duty
// it holds in an adjacent session s'. If another faculty g can take over that
// s' duty without breaking any criterion, and f holding s instead of s' leaves
// f with no adjacent pair, the shift is committed: g takes s' (shifted-by-repair)
// and f takes s (assigned-by-shift).
//
// Candidates and alternates are tried in roster order; the first valid pair
// wins. Each duty is attempted once. Duties that cannot be resolved are marked
// unassigned-final.
func Repair(state *DutyState, criteria []Criterion, pending []*Duty) []ShiftRecord {
	var shifts []ShiftRecord

	for _, duty := range pending {
		if duty.Faculty != "" {
			continue
		}
		record, ok := repairDuty(state, criteria, duty)
		if !ok {
			duty.Outcome = model.OutcomeUnassignedFinal
			continue
		}
		shifts = append(shifts, record)
	}

	return shifts
}

func repairDuty(state *DutyState, criteria []Criterion, duty *Duty) (ShiftRecord, bool) {
	for _, candidate := range state.Roster {
		if state.IsAssignedIn(candidate.Key, duty.Session) {
			continue
		}
		if !isEligibleIgnoring(state, candidate, duty, criteria, AdjacentSlotCriterionName) {
			continue
		}

		for _, adjacent := range state.AdjacentHolds(candidate.Key, duty.Session) {
			if state.adjacentConflict(candidate.Key, adjacent, duty.Session) {
				continue
			}
			shifted := state.DutyFor(candidate.Key, adjacent)

			alternate, ok := findAlternate(state, criteria, candidate, shifted)
			if !ok {
				continue
			}

			state.release(candidate.Key, adjacent)
			state.commit(shifted, alternate.Key, model.OutcomeShiftedByRepair)
			state.commit(duty, candidate.Key, model.OutcomeAssignedByShift)

			return ShiftRecord{
				Duty:      duty,
				Shifted:   shifted,
				Candidate: candidate.Key,
				Alternate: alternate.Key,
			}, true
		}
	}

	return ShiftRecord{}, false
}

// findAlternate returns the first faculty other than the candidate who can
// take over the shifted duty
func findAlternate(state *DutyState, criteria []Criterion, candidate Faculty, shifted *Duty) (Faculty, bool) {
	for _, alternate := range state.Roster {
		if alternate.Key == candidate.Key {
			continue
		}
		if state.IsAssignedIn(alternate.Key, shifted.Session) {
			continue
		}
		if !IsEligible(state, alternate, shifted, criteria) {
			continue
		}
		held := append(state.HeldSessions(alternate.Key), shifted.Session)
		if hasAdjacencyConflict(state.Slots, held) {
			continue
		}
		return alternate, true
	}
	return Faculty{}, false
}
