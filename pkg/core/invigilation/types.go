package invigilation

import (
	"slices"

	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/identity"
	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/model"
)

// Faculty is one member of the invigilation roster
type Faculty struct {
	// Key is the normalised identity used for matching and tie-breaks
	Key string

	// Display is the name written to the duty table
	Display string
}

// CourseInfo carries the course metadata the allocator needs
type CourseInfo struct {
	ID string

	// Coordinator is the raw coordinator name from the schedule
	Coordinator string
}

// Duty is the invigilation assignment for one occupied block
type Duty struct {
	Session  model.Session
	Room     string
	Block    model.BlockLabel
	CourseID string

	// Count is the number of occupied seats in the block
	Count int

	// Faculty is the assigned faculty key ("" when unassigned)
	Faculty string
	Outcome model.Outcome
}

// DutyValidationError represents a constraint violation found in the final duty table
type DutyValidationError struct {
	Session       model.Session
	Room          string
	Block         model.BlockLabel
	Faculty       string
	CriterionName string
	Description   string
}

type courseSession struct {
	session  model.Session
	courseID string
}

// DutyState is the allocation context shared by the allocator and repair pass.
// A fresh state is built for every run.
type DutyState struct {
	// Slots defines slot order and adjacency
	Slots model.SlotOrder

	// Roster in source order
	Roster []Faculty

	// Load is the number of duties currently committed to each faculty key
	Load map[string]int

	// AssignedSlots maps faculty key -> session -> duty held in that session
	AssignedSlots map[string]map[model.Session]*Duty

	// Duties in processing order
	Duties []*Duty

	coordinators   map[string]string
	roomCounts     map[courseSession]int
	courseSessions map[string][]model.Session
	displayNames   map[string]string
}

func newDutyState(slots model.SlotOrder, roster []Faculty) *DutyState {
	state := &DutyState{
		Slots:          slots,
		Roster:         roster,
		Load:           make(map[string]int, len(roster)),
		AssignedSlots:  make(map[string]map[model.Session]*Duty, len(roster)),
		coordinators:   make(map[string]string),
		roomCounts:     make(map[courseSession]int),
		courseSessions: make(map[string][]model.Session),
		displayNames:   make(map[string]string, len(roster)),
	}
	for _, faculty := range roster {
		state.displayNames[faculty.Key] = faculty.Display
	}
	return state
}

// IsAssignedIn returns true if the faculty already holds a duty in the session
func (s *DutyState) IsAssignedIn(key string, session model.Session) bool {
	_, held := s.AssignedSlots[key][session]
	return held
}

// DutyFor returns the duty the faculty holds in the session, or nil
func (s *DutyState) DutyFor(key string, session model.Session) *Duty {
	return s.AssignedSlots[key][session]
}

// AdjacentHolds returns the sessions adjacent to the given one in which the
// faculty holds a duty, earlier slot first
func (s *DutyState) AdjacentHolds(key string, session model.Session) []model.Session {
	var holds []model.Session
	for _, neighbour := range s.Slots.NeighbourSessions(session) {
		if s.IsAssignedIn(key, neighbour) {
			holds = append(holds, neighbour)
		}
	}
	return holds
}

// HeldSessions returns every session the faculty holds a duty in, sorted
func (s *DutyState) HeldSessions(key string) []model.Session {
	sessions := make([]model.Session, 0, len(s.AssignedSlots[key]))
	for session := range s.AssignedSlots[key] {
		sessions = append(sessions, session)
	}
	s.Slots.SortSessions(sessions)
	return sessions
}

// CoordinatorOf returns the normalised coordinator identity of a course
func (s *DutyState) CoordinatorOf(courseID string) string {
	return s.coordinators[courseID]
}

// IsCoordinator returns true if the faculty is the coordinator of the course
func (s *DutyState) IsCoordinator(key, courseID string) bool {
	return identity.Matches(s.coordinators[courseID], key)
}

// RoomCount returns the number of distinct rooms the course occupies in the session
func (s *DutyState) RoomCount(session model.Session, courseID string) int {
	return s.roomCounts[courseSession{session: session, courseID: courseID}]
}

// CoordinatedSessions returns the sessions in which the faculty's own courses sit
func (s *DutyState) CoordinatedSessions(key string) []model.Session {
	var sessions []model.Session
	for courseID, coordinator := range s.coordinators {
		if !identity.Matches(coordinator, key) {
			continue
		}
		for _, session := range s.courseSessions[courseID] {
			if !slices.Contains(sessions, session) {
				sessions = append(sessions, session)
			}
		}
	}
	s.Slots.SortSessions(sessions)
	return sessions
}

// DisplayName returns the roster display string for a faculty key
func (s *DutyState) DisplayName(key string) string {
	if display, ok := s.displayNames[key]; ok {
		return display
	}
	return key
}

// Unassigned returns the duties that currently have no faculty, in processing order
func (s *DutyState) Unassigned() []*Duty {
	var unassigned []*Duty
	for _, duty := range s.Duties {
		if duty.Count > 0 && duty.Faculty == "" {
			unassigned = append(unassigned, duty)
		}
	}
	return unassigned
}

// commit records the faculty against the duty and updates load and slots
func (s *DutyState) commit(duty *Duty, key string, outcome model.Outcome) {
	if s.AssignedSlots[key] == nil {
		s.AssignedSlots[key] = make(map[model.Session]*Duty)
	}
	s.AssignedSlots[key][duty.Session] = duty
	s.Load[key]++
	duty.Faculty = key
	duty.Outcome = outcome
}

// release removes the faculty's hold on the duty's session without touching the duty itself
func (s *DutyState) release(key string, session model.Session) {
	delete(s.AssignedSlots[key], session)
	s.Load[key]--
}

// hasAdjacencyConflict reports whether any two sessions in the set are
// adjacent on the same date
func hasAdjacencyConflict(slots model.SlotOrder, sessions []model.Session) bool {
	for i, a := range sessions {
		for _, b := range sessions[i+1:] {
			if slots.AdjacentSessions(a, b) {
				return true
			}
		}
	}
	return false
}

// projectedHolds returns the faculty's held sessions with one removed and one added
func (s *DutyState) projectedHolds(key string, remove, add model.Session) []model.Session {
	held := s.HeldSessions(key)
	held = slices.DeleteFunc(held, func(session model.Session) bool {
		return session == remove
	})
	if !slices.Contains(held, add) {
		held = append(held, add)
	}
	return held
}
