package seating

import (
	"cmp"
	"slices"
	"strings"

	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/model"
)

// AllocateSession seats every student of the session's courses into the room blocks.
//
// Courses are placed largest first (ties by course ID). Each course repeatedly
// takes the block with the most free seats, skipping any block whose paired
// block in the same room is committed to the course, until all its students
// are seated. A block is committed to the course of its first placement; a
// later course may still fill its leftover seats. Ties between blocks keep
// room order, block A before block B.
//
// Returns a *CapacityError when total demand exceeds total seats and a
// *PlacementError when a course runs out of eligible blocks. Either error
// invalidates this session only.
func AllocateSession(session model.Session, demands []CourseDemand, rooms []model.Room) (*SessionPlan, error) {
	plan := newSessionPlan(session, rooms)

	totalDemand := 0
	for _, demand := range demands {
		totalDemand += len(demand.Students)
	}
	if capacity := plan.Capacity(); totalDemand > capacity {
		return nil, &CapacityError{Session: session, Demand: totalDemand, Capacity: capacity}
	}

	ordered := slices.Clone(demands)
	slices.SortStableFunc(ordered, func(a, b CourseDemand) int {
		if c := cmp.Compare(len(b.Students), len(a.Students)); c != 0 {
			return c
		}
		return strings.Compare(a.CourseID, b.CourseID)
	})

	for _, demand := range ordered {
		pending := demand.Students
		for len(pending) > 0 {
			block := plan.bestBlockFor(demand.CourseID)
			if block == nil {
				return nil, &PlacementError{Session: session, CourseID: demand.CourseID, Remaining: len(pending)}
			}

			take := min(block.Remaining(), len(pending))
			for _, studentID := range pending[:take] {
				block.Seats = append(block.Seats, Placement{StudentID: studentID, CourseID: demand.CourseID})
			}
			if block.Course == "" {
				block.Course = demand.CourseID
			}
			pending = pending[take:]
		}
	}

	return plan, nil
}

// bestBlockFor returns the block with the largest remaining capacity that the
// course may use, or nil if none is left
func (p *SessionPlan) bestBlockFor(courseID string) *Block {
	var best *Block
	for _, rb := range p.rooms {
		for _, block := range rb.blocks {
			remaining := block.Remaining()
			if remaining <= 0 {
				continue
			}
			// A room's two blocks are never committed to the same course
			if rb.pairOf(block).Course == courseID {
				continue
			}
			if best == nil || remaining > best.Remaining() {
				best = block
			}
		}
	}
	return best
}

// AllocateSessions runs AllocateSession for each session independently.
// A failing session is reported in the failures and never affects the others.
func AllocateSessions(inputs []SessionInput, rooms []model.Room) ([]*SessionPlan, []SessionFailure) {
	plans := make([]*SessionPlan, 0, len(inputs))
	failures := []SessionFailure{}

	for _, input := range inputs {
		plan, err := AllocateSession(input.Session, input.Demands, rooms)
		if err != nil {
			failures = append(failures, SessionFailure{Session: input.Session, Err: err})
			continue
		}
		plans = append(plans, plan)
	}

	return plans, failures
}
