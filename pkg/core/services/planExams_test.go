package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/internal/config"
	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/model"
	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/seating"
	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/tables"
)

// mockStore implements a test double for the table store
type mockStore struct {
	rooms    []model.Room
	students []model.Student
	courses  []model.Course
	faculty  []string

	loadRoomsErr error

	resetCalls int
	seatTables map[model.Session][]tables.SeatRow
	dutyRows   []tables.DutyRow
	texts      map[string]string
	manifest   *tables.Manifest
}

func (m *mockStore) LoadRooms() ([]model.Room, error) {
	if m.loadRoomsErr != nil {
		return nil, m.loadRoomsErr
	}
	return m.rooms, nil
}

func (m *mockStore) LoadStudents() ([]model.Student, error) { return m.students, nil }
func (m *mockStore) LoadSchedule() ([]model.Course, error)  { return m.courses, nil }
func (m *mockStore) LoadFaculty() ([]string, error)         { return m.faculty, nil }

func (m *mockStore) ResetOutputs() error {
	m.resetCalls++
	m.seatTables = nil
	m.dutyRows = nil
	m.texts = nil
	return nil
}

func (m *mockStore) WriteSeatTable(session model.Session, rows []tables.SeatRow) (string, error) {
	if m.seatTables == nil {
		m.seatTables = make(map[model.Session][]tables.SeatRow)
	}
	m.seatTables[session] = rows
	return "out/" + tables.SeatFileName(session), nil
}

func (m *mockStore) WriteDutyTable(rows []tables.DutyRow) (string, error) {
	m.dutyRows = rows
	return "out/" + tables.DutyFileName, nil
}

func (m *mockStore) WriteText(name, content string) (string, error) {
	if m.texts == nil {
		m.texts = make(map[string]string)
	}
	m.texts[name] = content
	return "out/" + name, nil
}

func (m *mockStore) WriteManifest(manifest *tables.Manifest) (string, error) {
	m.manifest = manifest
	return "out/" + tables.ManifestFileName, nil
}

var (
	day1Slot1 = model.Session{Date: "05-Sep-25", Slot: "Slot-1"}
	day1Slot2 = model.Session{Date: "05-Sep-25", Slot: "Slot-2"}
)

// newExamStore returns two rooms, three courses over two adjacent sessions and
// one student registered for both courses of the first session
func newExamStore() *mockStore {
	return &mockStore{
		rooms: []model.Room{
			{ID: "R1", CapacityA: 3, CapacityB: 3},
			{ID: "R2", CapacityA: 2, CapacityB: 2},
		},
		students: []model.Student{
			{ID: "1XX01", Courses: []string{"1", "2"}},
			{ID: "1XX02", Courses: []string{"1"}},
			{ID: "1XX03", Courses: []string{"1"}},
			{ID: "1XX04", Courses: []string{"1", "3"}},
			{ID: "1XX05", Courses: []string{"2"}},
			{ID: "1XX06", Courses: []string{"2"}},
		},
		courses: []model.Course{
			{ID: "1", Code: "CS501", Name: "Networks", Coordinator: "Dr. Rao", Session: day1Slot1},
			{ID: "2", Code: "CS502", Name: "Compilers", Coordinator: "Prof. Iyer", Session: day1Slot1},
			{ID: "3", Code: "CS503", Name: "Databases", Coordinator: "Ms. Das", Session: day1Slot2},
		},
		faculty: []string{"Dr. Rao", "Prof. Iyer", "Ms. Das", "Mr. Khan"},
	}
}

func testConfig() *config.Config {
	cfg := config.Default()
	return &cfg
}

func TestPlanExams(t *testing.T) {
	store := newExamStore()

	result, err := PlanExams(context.Background(), store, testConfig(), zap.NewNop(), PlanOptions{Env: "test"})
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 1, store.resetCalls)
	assert.True(t, result.Success())
	assert.Empty(t, result.Failures)
	require.Len(t, result.Plans, 2)

	// Seat tables list every seat of the session, occupied or not
	require.Len(t, store.seatTables, 2)
	slot1 := store.seatTables[day1Slot1]
	assert.Len(t, slot1, 10)
	occupied := 0
	for _, row := range slot1 {
		if row.USN != "" {
			occupied++
			assert.NotEmpty(t, row.CourseCode)
		}
	}
	assert.Equal(t, 7, occupied)

	// Duties in session, room, block order
	require.Len(t, store.dutyRows, 4)
	faculty := make([]string, len(store.dutyRows))
	for i, row := range store.dutyRows {
		faculty[i] = row.Faculty
		assert.Equal(t, string(model.OutcomeAssignedDirect), row.Note)
	}
	assert.Equal(t, []string{"Ms. Das", "Mr. Khan", "Prof. Iyer", "Dr. Rao"}, faculty)
	assert.Equal(t, tables.DutyRow{
		Date: "05-Sep-25", Slot: "Slot-1", CourseSNo: "1", Room: "R1", Block: "A",
		Students: 3, Faculty: "Ms. Das", Note: "assigned-direct",
	}, store.dutyRows[0])

	// 1XX01 sits both courses of the first session
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, []string{"1", "2"}, result.Conflicts[0].CourseIDs)
	assert.Equal(t, []string{"1XX01"}, result.Conflicts[0].StudentIDs)
	assert.Contains(t, store.texts[tables.ConflictFileName], "Students with conflicts:\n1XX01\n")

	manifest := store.manifest
	require.NotNil(t, manifest)
	assert.Equal(t, result.RunID, manifest.RunID)
	assert.Equal(t, "test", manifest.Env)
	assert.Equal(t, tables.InputCounts{Rooms: 2, Students: 6, Courses: 3, Faculty: 4}, manifest.Inputs)
	assert.Equal(t, []tables.SessionSummary{
		{Date: "05-Sep-25", Slot: "Slot-1", Courses: 2, Students: 7},
		{Date: "05-Sep-25", Slot: "Slot-2", Courses: 1, Students: 1},
	}, manifest.Sessions)
	assert.Equal(t, tables.DutyCounts{Total: 4, AssignedDirect: 4}, manifest.Duties)
	assert.Equal(t, 1, manifest.Conflicts)
	assert.Equal(t, 1, manifest.Load.Max)
	assert.InDelta(t, 0.0, manifest.Load.StdDev, 1e-9)
	assert.Equal(t, []string{
		"assignments_20250905_Slot-1.csv",
		"assignments_20250905_Slot-2.csv",
		tables.ConflictFileName,
		tables.DutyFileName,
	}, manifest.Outputs)
}

func TestPlanExams_CoordinatorFallbackRoster(t *testing.T) {
	store := newExamStore()
	store.faculty = []string{}

	result, err := PlanExams(context.Background(), store, testConfig(), zap.NewNop(), PlanOptions{})
	require.NoError(t, err)

	assert.True(t, result.RosterFromCoordinators)
	assert.Len(t, result.Roster, 3)
	assert.True(t, store.manifest.Inputs.FacultyFromCoordinators)

	// Every coordinator holds a first session duty, so the adjacent session cannot be staffed
	require.NotNil(t, result.Duties)
	require.Len(t, result.Duties.Unassigned, 1)
	assert.Equal(t, day1Slot2, result.Duties.Unassigned[0].Session)
	assert.Equal(t, model.OutcomeUnassignedFinal, result.Duties.Unassigned[0].Outcome)
	assert.False(t, result.Success())
	assert.Equal(t, 1, store.manifest.Duties.UnassignedFinal)
}

func TestPlanExams_SkipDuties(t *testing.T) {
	store := newExamStore()

	result, err := PlanExams(context.Background(), store, testConfig(), zap.NewNop(), PlanOptions{SkipDuties: true})
	require.NoError(t, err)

	assert.Nil(t, result.Duties)
	assert.Nil(t, store.dutyRows)
	assert.Len(t, store.seatTables, 2)
	assert.Equal(t, 0, store.manifest.Duties.Total)
}

func TestPlanExams_FailedSessionDoesNotStopRun(t *testing.T) {
	store := newExamStore()
	// Course 3 outgrows the rooms; the first session still fits
	for i := 0; i < 10; i++ {
		store.students = append(store.students, model.Student{ID: "2XX" + string(rune('A'+i)), Courses: []string{"3"}})
	}

	result, err := PlanExams(context.Background(), store, testConfig(), zap.NewNop(), PlanOptions{})
	require.NoError(t, err)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, day1Slot2, result.Failures[0].Session)
	assert.True(t, errors.Is(result.Failures[0].Err, seating.ErrInsufficientCapacity))
	require.Len(t, result.Plans, 1)
	assert.False(t, result.Success())

	assert.NotContains(t, store.seatTables, day1Slot2)
	assert.Len(t, store.dutyRows, 3)

	require.Len(t, store.manifest.Sessions, 2)
	assert.Contains(t, store.manifest.Sessions[1].Error, "insufficient seats")
}

func TestPlanExams_MissingInput(t *testing.T) {
	store := newExamStore()
	store.loadRoomsErr = tables.ErrMissingInput

	_, err := PlanExams(context.Background(), store, testConfig(), zap.NewNop(), PlanOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, tables.ErrMissingInput))
	assert.Equal(t, 0, store.resetCalls, "Nothing is touched when inputs are missing")
}

func TestPlanExams_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := PlanExams(ctx, newExamStore(), testConfig(), zap.NewNop(), PlanOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPlanExams_ReserveCoordinatorSessions(t *testing.T) {
	store := newExamStore()
	cfg := testConfig()
	cfg.ReserveCoordinatorSessions = true

	result, err := PlanExams(context.Background(), store, cfg, zap.NewNop(), PlanOptions{})
	require.NoError(t, err)

	// Rao, Iyer and Das are kept free around their own sessions, leaving Khan alone
	for _, row := range store.dutyRows {
		if row.Faculty != "" {
			assert.Equal(t, "Mr. Khan", row.Faculty)
		}
	}
	assert.False(t, result.Success())
}

func TestLoadPlanInputs_FiltersSchedule(t *testing.T) {
	store := newExamStore()
	store.courses = append(store.courses,
		model.Course{ID: "4", Session: model.Session{Date: "05-Sep-25", Slot: "Slot-9"}},
		model.Course{ID: "5", Session: model.Session{Date: "someday", Slot: "Slot-1"}},
		model.Course{ID: "6", Session: model.Session{Date: "07-Sep-25", Slot: "Slot-1"}},
	)
	cfg := testConfig()
	cfg.ExamCalendar = "FREQ=DAILY;BYDAY=MO,TU,WE,TH,FR,SA"

	inputs, err := LoadPlanInputs(context.Background(), store, cfg, zap.NewNop())
	require.NoError(t, err)

	ids := make([]string, len(inputs.Courses))
	for i, course := range inputs.Courses {
		ids[i] = course.ID
	}
	assert.Equal(t, []string{"1", "2", "3"}, ids, "Unknown slot, unreadable date and Sunday are dropped")
}

func TestLoadPlanInputs_SameDayDifferentSpelling(t *testing.T) {
	store := newExamStore()
	store.courses[1].Session.Date = "05-Sept-25"
	store.courses[2].Session.Date = "2025-09-05"

	inputs, err := LoadPlanInputs(context.Background(), store, testConfig(), zap.NewNop())
	require.NoError(t, err)

	require.Len(t, inputs.Courses, 3)
	assert.Equal(t, day1Slot1, inputs.Courses[1].Session, "Both Slot-1 courses share one session")
	assert.Equal(t, day1Slot2, inputs.Courses[2].Session)

	sessions := BuildSessionInputs(inputs.Courses, inputs.Students, model.DefaultSlotOrder, zap.NewNop())
	require.Len(t, sessions, 2)
	assert.Len(t, sessions[0].Demands, 2)
}

func TestExamCalendar(t *testing.T) {
	calendar, err := newExamCalendar("FREQ=WEEKLY;BYDAY=SA")
	require.NoError(t, err)

	saturday, _ := model.ParseExamDate("06-Sep-25")
	friday, _ := model.ParseExamDate("05-Sep-25")
	assert.True(t, calendar.Allows(saturday))
	assert.False(t, calendar.Allows(friday))

	var open *examCalendar
	assert.True(t, open.Allows(friday))

	_, err = newExamCalendar("NOT_A_RULE")
	assert.Error(t, err)
}

func TestBuildSessionInputs(t *testing.T) {
	day2 := model.Session{Date: "06-Sep-25", Slot: "Slot-1"}
	courses := []model.Course{
		{ID: "3", Session: day2},
		{ID: "1", Session: day1Slot1},
		{ID: "2", Session: day1Slot1},
		{ID: "9", Session: day1Slot1},
	}
	students := []model.Student{
		{ID: "A", Courses: []string{"2", "1", "3"}},
		{ID: "B", Courses: []string{"1", "1", "77"}},
		{ID: "C", Courses: []string{"2"}},
	}

	inputs := BuildSessionInputs(courses, students, model.DefaultSlotOrder, zap.NewNop())

	assert.Equal(t, []seating.SessionInput{
		{Session: day1Slot1, Demands: []seating.CourseDemand{
			{CourseID: "1", Students: []string{"A", "B"}},
			{CourseID: "2", Students: []string{"A", "C"}},
		}},
		{Session: day2, Demands: []seating.CourseDemand{
			{CourseID: "3", Students: []string{"A"}},
		}},
	}, inputs)
}
