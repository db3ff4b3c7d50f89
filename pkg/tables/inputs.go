package tables

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/model"
)

// LoadRooms reads the room capacity table.
// Rows with a missing room name or an unreadable seat count are skipped.
func (s *Store) LoadRooms() ([]model.Room, error) {
	rows, err := readTable[RoomRow](s, s.InputPath(s.opts.Files.Rooms))
	if err != nil {
		return nil, err
	}

	rooms := make([]model.Room, 0, len(rows))
	seen := make(map[string]bool)
	for _, row := range validRows(s, "rooms", rows) {
		capacityA, errA := parseSeats(row.ASeats)
		capacityB, errB := parseSeats(row.BSeats)
		if err := errors.Join(errA, errB); err != nil {
			s.logger.Warn("Skipping room with invalid seat count", zap.String("room", row.Room), zap.Error(err))
			continue
		}
		if seen[row.Room] {
			s.logger.Warn("Skipping duplicate room", zap.String("room", row.Room))
			continue
		}
		seen[row.Room] = true
		rooms = append(rooms, model.Room{ID: row.Room, CapacityA: capacityA, CapacityB: capacityB})
	}

	if s.opts.SortRoomsByCapacity {
		slices.SortStableFunc(rooms, func(a, b model.Room) int {
			return cmp.Compare(b.TotalCapacity(), a.TotalCapacity())
		})
	}

	s.logger.Debug("Loaded rooms", zap.Int("count", len(rooms)))
	return rooms, nil
}

// parseSeats accepts whole numbers written as "30" or "30.0"; empty means 0
func parseSeats(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative seat count %d", n)
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid seat count %q", raw)
	}
	if f < 0 {
		return 0, fmt.Errorf("negative seat count %q", raw)
	}
	return int(f), nil
}

// LoadStudents reads the student registration table.
// Students whose eligible column is set to anything other than 1/true are left out;
// an empty eligible column counts as eligible.
func (s *Store) LoadStudents() ([]model.Student, error) {
	rows, err := readTable[StudentRow](s, s.InputPath(s.opts.Files.Students))
	if err != nil {
		return nil, err
	}

	students := make([]model.Student, 0, len(rows))
	ineligible := 0
	for _, row := range validRows(s, "students", rows) {
		if !isEligible(row.Eligible) {
			ineligible++
			continue
		}
		students = append(students, model.Student{
			ID:      row.USN,
			Name:    row.Name,
			Branch:  row.Branch,
			Courses: splitTests(row.Tests),
		})
	}

	s.logger.Debug("Loaded students", zap.Int("count", len(students)), zap.Int("ineligible", ineligible))
	return students, nil
}

func isEligible(raw string) bool {
	switch raw {
	case "", "1", "True", "TRUE", "true":
		return true
	}
	return false
}

// splitTests splits the tests column on commas or semicolons
func splitTests(raw string) []string {
	var tests []string
	for _, part := range strings.FieldsFunc(raw, isTestSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			tests = append(tests, part)
		}
	}
	return tests
}

func isTestSeparator(r rune) bool {
	return r == ',' || r == ';'
}

// LoadSchedule reads the exam schedule. Each row is one course sitting in one
// session; a repeated sNo keeps its first row.
func (s *Store) LoadSchedule() ([]model.Course, error) {
	rows, err := readTable[ScheduleRow](s, s.InputPath(s.opts.Files.Schedule))
	if err != nil {
		return nil, err
	}

	courses := make([]model.Course, 0, len(rows))
	seen := make(map[string]bool)
	for _, row := range validRows(s, "schedule", rows) {
		if seen[row.SNo] {
			s.logger.Warn("Skipping duplicate course", zap.String("sNo", row.SNo))
			continue
		}
		seen[row.SNo] = true
		courses = append(courses, model.Course{
			ID:          row.SNo,
			Code:        row.CourseCode,
			Name:        row.CourseName,
			Coordinator: row.Coordinator,
			Contact:     row.Contact,
			Semester:    row.Semester,
			Session:     model.Session{Date: row.TestDate, Slot: row.TestSlot},
		})
	}

	s.logger.Debug("Loaded schedule", zap.Int("courses", len(courses)))
	return courses, nil
}

// LoadFaculty reads the invigilation roster as raw display names in file order.
// The roster is optional: a missing file yields an empty list.
func (s *Store) LoadFaculty() ([]string, error) {
	if s.opts.Files.Faculty == "" {
		return []string{}, nil
	}

	rows, err := readTable[FacultyRow](s, s.InputPath(s.opts.Files.Faculty))
	if errors.Is(err, ErrMissingInput) {
		s.logger.Info("No faculty roster found", zap.String("path", s.InputPath(s.opts.Files.Faculty)))
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(rows))
	for _, row := range validRows(s, "faculty", rows) {
		names = append(names, row.Name)
	}

	s.logger.Debug("Loaded faculty", zap.Int("count", len(names)))
	return names, nil
}
