package seating

import (
	"errors"
	"fmt"

	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/model"
)

var (
	// ErrInsufficientCapacity is returned when a session's demand exceeds its seats
	ErrInsufficientCapacity = errors.New("insufficient capacity")

	// ErrUnplaceableCourse is returned when no eligible block remains for a course
	ErrUnplaceableCourse = errors.New("unplaceable course")
)

// CapacityError describes a session whose total demand exceeds total capacity
type CapacityError struct {
	Session  model.Session
	Demand   int
	Capacity int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("insufficient seats for %s: need %d, have %d", e.Session, e.Demand, e.Capacity)
}

func (e *CapacityError) Unwrap() error {
	return ErrInsufficientCapacity
}

// PlacementError describes a course left with students but no eligible block
type PlacementError struct {
	Session   model.Session
	CourseID  string
	Remaining int
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("unable to place all students for course %s on %s: remaining %d", e.CourseID, e.Session, e.Remaining)
}

func (e *PlacementError) Unwrap() error {
	return ErrUnplaceableCourse
}
