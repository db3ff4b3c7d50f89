package model

// BlockLabel identifies one of the two seating blocks of a room
type BlockLabel string

const (
	BlockA BlockLabel = "A"
	BlockB BlockLabel = "B"
)

// Pair returns the other block of the same room
func (b BlockLabel) Pair() BlockLabel {
	if b == BlockA {
		return BlockB
	}
	return BlockA
}

// Outcome is the note recorded against every duty row
type Outcome string

const (
	OutcomeAssignedDirect  Outcome = "assigned-direct"
	OutcomeAssignedByShift Outcome = "assigned-by-shift"
	OutcomeShiftedByRepair Outcome = "shifted-by-repair"
	OutcomeUnassigned      Outcome = "unassigned"
	OutcomeUnassignedFinal Outcome = "unassigned-final"
	OutcomeNoStudents      Outcome = "no-students"
)

// IsAssigned returns true if the outcome carries a faculty member
func (o Outcome) IsAssigned() bool {
	return o == OutcomeAssignedDirect || o == OutcomeAssignedByShift || o == OutcomeShiftedByRepair
}

// Room represents an examination room with its two seating blocks
type Room struct {
	ID        string
	CapacityA int
	CapacityB int
}

// Capacity returns the seat count of the given block
func (r Room) Capacity(block BlockLabel) int {
	if block == BlockA {
		return r.CapacityA
	}
	return r.CapacityB
}

// TotalCapacity returns the combined seat count of both blocks
func (r Room) TotalCapacity() int {
	return r.CapacityA + r.CapacityB
}

// Course represents a test held in one session
type Course struct {
	ID          string // sNo
	Code        string
	Name        string
	Coordinator string // raw display string
	Contact     string
	Semester    string
	Session     Session
}

// Student represents an eligible student and the tests they are registered for
type Student struct {
	ID      string
	Name    string
	Branch  string
	Courses []string
}

// SeatAssignment is one physical seat of a session. StudentID and CourseID
// are empty for unoccupied seats.
type SeatAssignment struct {
	Session   Session
	Room      string
	Block     BlockLabel
	SeatNo    int
	StudentID string
	CourseID  string
}

// IsEmpty returns true if nobody is seated here
func (s SeatAssignment) IsEmpty() bool {
	return s.StudentID == ""
}

// OccupiedBlock is the per-course head count of one block in one session
type OccupiedBlock struct {
	Session  Session
	CourseID string
	Room     string
	Block    BlockLabel
	Count    int
}
