package invigilation

import (
	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/identity"
)

// NewRoster builds a roster from raw display names in the given order.
// Names that normalise to nothing are dropped and a repeated identity keeps
// its first display name.
func NewRoster(names []string) []Faculty {
	roster := make([]Faculty, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		key := identity.Normalize(name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		roster = append(roster, Faculty{Key: key, Display: identity.Canonical(name)})
	}
	return roster
}

// CoordinatorRoster builds a roster from the coordinators of the given courses,
// in course order. It is used when no faculty roster is supplied.
func CoordinatorRoster(courses []CourseInfo) []Faculty {
	names := make([]string, 0, len(courses))
	for _, course := range courses {
		names = append(names, course.Coordinator)
	}
	return NewRoster(names)
}
