package invigilation

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/identity"
	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/model"
)

// InitAllocation validates the configuration and builds a fresh allocation context.
//
// Duties are created one per occupied block and ordered by session
// (date, slot index), then room, block and course. Blocks with no occupied
// seats are kept in the duty table with outcome no-students but are never staffed.
//
// Returns an error if the roster contains an empty or duplicate key.
func InitAllocation(config AllocationConfig) (*Allocator, error) {
	slots := config.Slots
	if len(slots) == 0 {
		slots = model.DefaultSlotOrder
	}

	seen := make(map[string]bool, len(config.Roster))
	for i, faculty := range config.Roster {
		if faculty.Key == "" {
			return nil, fmt.Errorf("roster entry %d (%q) has an empty identity", i, faculty.Display)
		}
		if seen[faculty.Key] {
			return nil, fmt.Errorf("roster entry %d duplicates identity %q", i, faculty.Key)
		}
		seen[faculty.Key] = true
	}

	criteria := config.Criteria
	if criteria == nil {
		criteria = DefaultCriteria(DefaultCoordinatorRoomThreshold)
	}

	state := newDutyState(slots, slices.Clone(config.Roster))

	for _, course := range config.Courses {
		state.coordinators[course.ID] = identity.Normalize(course.Coordinator)
	}

	blocks := slices.Clone(config.Blocks)
	slices.SortStableFunc(blocks, func(a, b model.OccupiedBlock) int {
		if c := slots.CompareSessions(a.Session, b.Session); c != 0 {
			return c
		}
		if c := strings.Compare(a.Room, b.Room); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Block, b.Block); c != 0 {
			return c
		}
		return strings.Compare(a.CourseID, b.CourseID)
	})

	rooms := make(map[courseSession]map[string]bool)
	for _, block := range blocks {
		duty := &Duty{
			Session:  block.Session,
			Room:     block.Room,
			Block:    block.Block,
			CourseID: block.CourseID,
			Count:    block.Count,
		}
		state.Duties = append(state.Duties, duty)

		if block.Count <= 0 {
			duty.Outcome = model.OutcomeNoStudents
			continue
		}

		key := courseSession{session: block.Session, courseID: block.CourseID}
		if rooms[key] == nil {
			rooms[key] = make(map[string]bool)
		}
		rooms[key][block.Room] = true

		if !slices.Contains(state.courseSessions[block.CourseID], block.Session) {
			state.courseSessions[block.CourseID] = append(state.courseSessions[block.CourseID], block.Session)
		}
	}
	for key, set := range rooms {
		state.roomCounts[key] = len(set)
	}

	return &Allocator{
		criteria:   criteria,
		state:      state,
		skipRepair: config.SkipRepair,
	}, nil
}
