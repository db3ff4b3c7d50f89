package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/identity"
	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/invigilation"
	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/model"
)

// FacultyStore defines the table reads needed to list the roster
type FacultyStore interface {
	LoadSchedule() ([]model.Course, error)
	LoadFaculty() ([]string, error)
}

// FacultyEntry is one roster member with the courses they coordinate
type FacultyEntry struct {
	Faculty invigilation.Faculty

	// Coordinates lists the sNo of courses whose coordinator matches this member
	Coordinates []string
}

// FacultyList is the invigilation roster a run would use
type FacultyList struct {
	Entries []FacultyEntry

	// FromCoordinators is set when the roster was built from course coordinators
	FromCoordinators bool

	// UnmatchedCoordinators are coordinator names that match nobody on the roster
	UnmatchedCoordinators []string
}

// ListFaculty builds the roster exactly as a planning run would and matches
// every course coordinator against it
func ListFaculty(ctx context.Context, store FacultyStore, logger *zap.Logger) (*FacultyList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	courses, err := store.LoadSchedule()
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule: %w", err)
	}
	names, err := store.LoadFaculty()
	if err != nil {
		return nil, fmt.Errorf("failed to load faculty: %w", err)
	}

	list := &FacultyList{}
	roster := invigilation.NewRoster(names)
	if len(roster) == 0 {
		roster = invigilation.CoordinatorRoster(courseInfos(courses))
		list.FromCoordinators = true
	}

	list.Entries = make([]FacultyEntry, len(roster))
	for i, faculty := range roster {
		list.Entries[i].Faculty = faculty
	}

	unmatched := make(map[string]bool)
	for _, course := range courses {
		key := identity.Normalize(course.Coordinator)
		matched := false
		for i := range list.Entries {
			if identity.Matches(list.Entries[i].Faculty.Key, key) {
				list.Entries[i].Coordinates = append(list.Entries[i].Coordinates, course.ID)
				matched = true
			}
		}
		if !matched && key != "" && !unmatched[key] {
			unmatched[key] = true
			list.UnmatchedCoordinators = append(list.UnmatchedCoordinators, identity.Canonical(course.Coordinator))
		}
	}

	logger.Debug("Listed faculty",
		zap.Int("faculty", len(list.Entries)),
		zap.Bool("from_coordinators", list.FromCoordinators),
		zap.Int("unmatched_coordinators", len(list.UnmatchedCoordinators)))

	return list, nil
}
