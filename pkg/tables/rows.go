package tables

// Input rows. Numeric columns are read as text so a single bad cell skips
// one row instead of failing the whole file.

// RoomRow is one row of the room capacity table
type RoomRow struct {
	Room   string `csv:"Class room" validate:"required"`
	ASeats string `csv:"A-seats"`
	BSeats string `csv:"B-seats"`
}

// StudentRow is one row of the student registration table
type StudentRow struct {
	USN      string `csv:"USN" validate:"required"`
	Name     string `csv:"NAME"`
	Branch   string `csv:"BRANCH"`
	Semester string `csv:"SEM"`
	Section  string `csv:"SEC"`
	Eligible string `csv:"eligible"`

	// Tests is a comma separated list of course sNo values
	Tests string `csv:"tests"`
}

// ScheduleRow is one row of the exam schedule
type ScheduleRow struct {
	SNo         string `csv:"sNo" validate:"required"`
	CourseCode  string `csv:"Course-Code"`
	CourseName  string `csv:"Course-Name"`
	TestDate    string `csv:"Test-Date" validate:"required"`
	TestSlot    string `csv:"Test-Slot" validate:"required"`
	Coordinator string `csv:"Course-Coordinator-Name"`
	Contact     string `csv:"Contact-No"`
	Semester    string `csv:"Semester"`
	Programs    string `csv:"Common for Programs"`
}

// FacultyRow is one row of the invigilation roster
type FacultyRow struct {
	Name string `csv:"Name" validate:"required"`
}

// Output rows

// SeatRow is one physical seat of a session's seating plan
type SeatRow struct {
	Date       string `csv:"Date" validate:"required"`
	Slot       string `csv:"Slot" validate:"required"`
	Room       string `csv:"Room" validate:"required"`
	Block      string `csv:"Block" validate:"required,oneof=A B"`
	SeatNo     int    `csv:"SeatNo"`
	USN        string `csv:"USN"`
	CourseSNo  string `csv:"Course-sNo"`
	CourseCode string `csv:"Course-Code"`
}

// DutyRow is the invigilation assignment of one occupied block
type DutyRow struct {
	Date      string `csv:"Date"`
	Slot      string `csv:"Slot"`
	CourseSNo string `csv:"Course-sNo"`
	Room      string `csv:"Room"`
	Block     string `csv:"Block"`
	Students  int    `csv:"Students"`
	Faculty   string `csv:"Assigned-Faculty"`
	Note      string `csv:"Note"`
}
