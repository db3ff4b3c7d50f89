package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/internal/config"
	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/model"
	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/tables"
)

const reportRule = "------------------------------------------------------------"

// SessionConflicts lists the students seated for more than one course in a session
type SessionConflicts struct {
	Session model.Session

	// CourseIDs are the courses involved, sorted
	CourseIDs []string

	// StudentIDs are the students with more than one seat, sorted
	StudentIDs []string
}

// FindStudentConflicts groups students holding seats for several courses in
// the same session. Sessions are returned in date and slot order.
func FindStudentConflicts(seats []model.SeatAssignment, slots model.SlotOrder) []SessionConflicts {
	type studentSession struct {
		student string
		session model.Session
	}

	courses := make(map[studentSession][]string)
	for _, seat := range seats {
		if seat.IsEmpty() {
			continue
		}
		key := studentSession{student: strings.ToUpper(seat.StudentID), session: seat.Session}
		courses[key] = append(courses[key], seat.CourseID)
	}

	bySession := make(map[model.Session]*SessionConflicts)
	var sessions []model.Session
	for key, courseIDs := range courses {
		if len(courseIDs) < 2 {
			continue
		}
		group, ok := bySession[key.session]
		if !ok {
			group = &SessionConflicts{Session: key.session}
			bySession[key.session] = group
			sessions = append(sessions, key.session)
		}
		group.StudentIDs = append(group.StudentIDs, key.student)
		for _, courseID := range courseIDs {
			if courseID != "" && !slices.Contains(group.CourseIDs, courseID) {
				group.CourseIDs = append(group.CourseIDs, courseID)
			}
		}
	}

	slots.SortSessions(sessions)

	conflicts := make([]SessionConflicts, 0, len(sessions))
	for _, session := range sessions {
		group := bySession[session]
		slices.Sort(group.CourseIDs)
		slices.Sort(group.StudentIDs)
		conflicts = append(conflicts, *group)
	}
	return conflicts
}

// ConflictReport renders the conflicts as the plain text session report
func ConflictReport(conflicts []SessionConflicts, courses []model.Course) string {
	if len(conflicts) == 0 {
		return "No student conflicts found in same Date+Slot.\n"
	}

	byID := make(map[string]model.Course, len(courses))
	for _, course := range courses {
		byID[course.ID] = course
	}

	var b strings.Builder
	for _, group := range conflicts {
		fmt.Fprintln(&b, reportRule)
		fmt.Fprintf(&b, "Date: %s | Slot: %s\n", group.Session.Date, group.Session.Slot)

		if len(group.CourseIDs) == 0 {
			fmt.Fprintln(&b, "Conflicting courses: (no sNo values found)")
		} else {
			fmt.Fprintln(&b, "Conflicting courses:")
			for _, id := range group.CourseIDs {
				fmt.Fprintln(&b, describeCourse(id, byID[id]))
			}
		}

		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "Students with conflicts:")
		fmt.Fprintln(&b, strings.Join(group.StudentIDs, ", "))
		fmt.Fprintln(&b)
	}
	fmt.Fprintln(&b, reportRule)
	return b.String()
}

func describeCourse(id string, course model.Course) string {
	line := "  - " + id
	if course.Name != "" {
		line += ": " + course.Name
	}
	if course.Semester != "" {
		line += fmt.Sprintf(" (Semester: %s)", course.Semester)
	}
	if course.Coordinator != "" {
		line += " | IC: " + course.Coordinator
		if course.Contact != "" {
			line += fmt.Sprintf(" (Mobile: %s)", course.Contact)
		}
	}
	return line
}

// ConflictStore defines the operations needed to report conflicts from existing seat tables
type ConflictStore interface {
	LoadSchedule() ([]model.Course, error)
	LoadSeatTables() ([]model.SeatAssignment, error)
	WriteText(name, content string) (string, error)
}

// ConflictsResult contains the conflict report of existing seat tables
type ConflictsResult struct {
	Conflicts []SessionConflicts
	Report    string
	Path      string
}

// ReportConflicts rebuilds the conflict report from the seat tables already
// in the output directory
func ReportConflicts(ctx context.Context, store ConflictStore, cfg *config.Config, logger *zap.Logger) (*ConflictsResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seats, err := store.LoadSeatTables()
	if err != nil {
		return nil, fmt.Errorf("failed to load seat tables: %w", err)
	}

	// Course details are optional here
	courses, err := store.LoadSchedule()
	if err != nil {
		logger.Warn("Course details unavailable for conflict report", zap.Error(err))
		courses = nil
	}

	conflicts := FindStudentConflicts(seats, cfg.Slots())
	report := ConflictReport(conflicts, courses)

	path, err := store.WriteText(tables.ConflictFileName, report)
	if err != nil {
		return nil, err
	}

	logger.Info("Conflict report written",
		zap.Int("sessions", len(conflicts)),
		zap.String("path", path))

	return &ConflictsResult{Conflicts: conflicts, Report: report, Path: path}, nil
}
