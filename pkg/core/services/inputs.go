package services

import (
	"context"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/internal/config"
	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/model"
	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/seating"
)

// InputStore defines the table reads needed to plan an exam period
type InputStore interface {
	LoadRooms() ([]model.Room, error)
	LoadStudents() ([]model.Student, error)
	LoadSchedule() ([]model.Course, error)
	LoadFaculty() ([]string, error)
}

// PlanInputs holds the cleaned input records of one run
type PlanInputs struct {
	Rooms    []model.Room
	Students []model.Student

	// Courses are the schedule rows that fall on a known slot and an exam calendar date
	Courses []model.Course

	// FacultyNames are raw roster names in file order (may be empty)
	FacultyNames []string
}

// LoadPlanInputs reads every input table. A missing rooms, students or
// schedule table aborts the run before anything is allocated.
func LoadPlanInputs(ctx context.Context, store InputStore, cfg *config.Config, logger *zap.Logger) (*PlanInputs, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rooms, err := store.LoadRooms()
	if err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}
	students, err := store.LoadStudents()
	if err != nil {
		return nil, fmt.Errorf("failed to load students: %w", err)
	}
	courses, err := store.LoadSchedule()
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}
	faculty, err := store.LoadFaculty()
	if err != nil {
		return nil, fmt.Errorf("failed to load faculty: %w", err)
	}

	calendar, err := newExamCalendar(cfg.ExamCalendar)
	if err != nil {
		return nil, err
	}

	inputs := &PlanInputs{
		Rooms:        rooms,
		Students:     students,
		Courses:      filterCourses(courses, cfg.Slots(), calendar, logger),
		FacultyNames: faculty,
	}

	logger.Info("Loaded inputs",
		zap.Int("rooms", len(inputs.Rooms)),
		zap.Int("students", len(inputs.Students)),
		zap.Int("courses", len(inputs.Courses)),
		zap.Int("faculty", len(inputs.FacultyNames)))

	return inputs, nil
}

// examCalendar matches exam dates against an RRULE. A nil calendar allows every date.
type examCalendar struct {
	rule *rrule.RRule
}

func newExamCalendar(spec string) (*examCalendar, error) {
	if spec == "" {
		return nil, nil
	}
	rule, err := rrule.StrToRRule(spec)
	if err != nil {
		return nil, fmt.Errorf("failed to parse exam calendar: %w", err)
	}
	return &examCalendar{rule: rule}, nil
}

// Allows reports whether the rule has an occurrence on the given day
func (c *examCalendar) Allows(date time.Time) bool {
	if c == nil {
		return true
	}

	// Anchor the rule shortly before the date so weekly rules line up
	c.rule.DTStart(date.AddDate(0, 0, -7))

	day := date.Format("2006-01-02")
	for _, occurrence := range c.rule.Between(date, date.AddDate(0, 0, 1), true) {
		if occurrence.Format("2006-01-02") == day {
			return true
		}
	}
	return false
}

// filterCourses drops schedule rows that cannot be placed in the exam timetable.
// Dates that name the same day are rewritten to the first spelling seen, so
// "05-Sep-25" and "05-Sept-25" form one session.
func filterCourses(courses []model.Course, slots model.SlotOrder, calendar *examCalendar, logger *zap.Logger) []model.Course {
	kept := make([]model.Course, 0, len(courses))
	spellings := make(map[string]string)
	for _, course := range courses {
		fields := []zap.Field{
			zap.String("sNo", course.ID),
			zap.String("date", course.Session.Date),
			zap.String("slot", course.Session.Slot),
		}

		if slots.Index(course.Session.Slot) < 0 {
			logger.Warn("Skipping course with unknown slot", fields...)
			continue
		}
		date, ok := model.ParseExamDate(course.Session.Date)
		if !ok {
			logger.Warn("Skipping course with unreadable date", fields...)
			continue
		}
		if !calendar.Allows(date) {
			logger.Warn("Skipping course outside the exam calendar", fields...)
			continue
		}

		day := date.Format("2006-01-02")
		if first, ok := spellings[day]; !ok {
			spellings[day] = course.Session.Date
		} else if first != course.Session.Date {
			logger.Debug("Using first spelling of exam date", append(fields, zap.String("canonical", first))...)
			course.Session.Date = first
		}
		kept = append(kept, course)
	}
	return kept
}

// BuildSessionInputs groups registered students into per-session course
// demands. Sessions come out in date and slot order, courses in schedule
// order within a session and students in registration table order.
// Courses nobody is registered for produce no demand.
func BuildSessionInputs(courses []model.Course, students []model.Student, slots model.SlotOrder, logger *zap.Logger) []seating.SessionInput {
	scheduled := make(map[string]bool, len(courses))
	for _, course := range courses {
		scheduled[course.ID] = true
	}

	registered := make(map[string][]string)
	seen := make(map[string]map[string]bool)
	unscheduled := make(map[string]int)
	for _, student := range students {
		for _, courseID := range student.Courses {
			if !scheduled[courseID] {
				unscheduled[courseID]++
				continue
			}
			if seen[courseID] == nil {
				seen[courseID] = make(map[string]bool)
			}
			if seen[courseID][student.ID] {
				continue
			}
			seen[courseID][student.ID] = true
			registered[courseID] = append(registered[courseID], student.ID)
		}
	}
	for courseID, count := range unscheduled {
		logger.Debug("Registrations for unscheduled course", zap.String("sNo", courseID), zap.Int("students", count))
	}

	bySession := make(map[model.Session][]seating.CourseDemand)
	var sessions []model.Session
	for _, course := range courses {
		ids := registered[course.ID]
		if len(ids) == 0 {
			logger.Debug("No students registered", zap.String("sNo", course.ID))
			continue
		}
		if _, ok := bySession[course.Session]; !ok {
			sessions = append(sessions, course.Session)
		}
		bySession[course.Session] = append(bySession[course.Session], seating.CourseDemand{
			CourseID: course.ID,
			Students: ids,
		})
	}

	slots.SortSessions(sessions)

	inputs := make([]seating.SessionInput, 0, len(sessions))
	for _, session := range sessions {
		inputs = append(inputs, seating.SessionInput{Session: session, Demands: bySession[session]})
	}
	return inputs
}
