package seating

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/model"
)

var testSession = model.Session{Date: "05-Sep-25", Slot: "Slot-1"}

func students(prefix string, n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("%s%03d", prefix, i+1)
	}
	return ids
}

func blockByKey(t *testing.T, plan *SessionPlan, room string, label model.BlockLabel) *Block {
	t.Helper()
	for _, block := range plan.Blocks() {
		if block.Room == room && block.Label == label {
			return block
		}
	}
	t.Fatalf("block %s/%s not found", room, label)
	return nil
}

func TestAllocateSession_SingleCourseCannotUseBothBlocksOfOneRoom(t *testing.T) {
	rooms := []model.Room{{ID: "R101", CapacityA: 2, CapacityB: 2}}
	demands := []CourseDemand{{CourseID: "1", Students: students("S", 3)}}

	plan, err := AllocateSession(testSession, demands, rooms)

	// Block A takes two students; block B is paired with A and may not take the third
	require.Error(t, err)
	assert.Nil(t, plan)
	assert.True(t, errors.Is(err, ErrUnplaceableCourse))

	var placementErr *PlacementError
	require.True(t, errors.As(err, &placementErr))
	assert.Equal(t, "1", placementErr.CourseID)
	assert.Equal(t, 1, placementErr.Remaining)
}

func TestAllocateSession_SingleCourseSpreadsAcrossRooms(t *testing.T) {
	rooms := []model.Room{
		{ID: "R101", CapacityA: 2, CapacityB: 2},
		{ID: "R102", CapacityA: 2, CapacityB: 2},
	}
	demands := []CourseDemand{{CourseID: "1", Students: students("S", 3)}}

	plan, err := AllocateSession(testSession, demands, rooms)
	require.NoError(t, err)

	assert.Len(t, blockByKey(t, plan, "R101", model.BlockA).Seats, 2)
	assert.Empty(t, blockByKey(t, plan, "R101", model.BlockB).Seats)
	assert.Len(t, blockByKey(t, plan, "R102", model.BlockA).Seats, 1)
	assert.Empty(t, blockByKey(t, plan, "R102", model.BlockB).Seats)
	assert.Empty(t, ValidatePlan(plan, demands))
}

func TestAllocateSession_TwoCoursesShareRoom(t *testing.T) {
	rooms := []model.Room{{ID: "R101", CapacityA: 2, CapacityB: 2}}
	demands := []CourseDemand{
		{CourseID: "Y", Students: students("Y", 2)},
		{CourseID: "X", Students: students("X", 2)},
	}

	plan, err := AllocateSession(testSession, demands, rooms)
	require.NoError(t, err)

	blockA := blockByKey(t, plan, "R101", model.BlockA)
	blockB := blockByKey(t, plan, "R101", model.BlockB)

	// Equal demand: X sorts before Y and takes block A
	assert.Equal(t, "X", blockA.Course)
	assert.Equal(t, "Y", blockB.Course)
	assert.False(t, blockB.Holds("X"), "X must never also be placed in block B")
	assert.False(t, blockA.Holds("Y"))
	assert.Empty(t, ValidatePlan(plan, demands))
}

func TestAllocateSession_InsufficientCapacity(t *testing.T) {
	rooms := []model.Room{
		{ID: "R101", CapacityA: 2, CapacityB: 2},
		{ID: "R102", CapacityA: 2, CapacityB: 2},
	}
	demands := []CourseDemand{{CourseID: "1", Students: students("S", 10)}}

	plan, err := AllocateSession(testSession, demands, rooms)

	require.Error(t, err)
	assert.Nil(t, plan)
	assert.True(t, errors.Is(err, ErrInsufficientCapacity))

	var capacityErr *CapacityError
	require.True(t, errors.As(err, &capacityErr))
	assert.Equal(t, 10, capacityErr.Demand)
	assert.Equal(t, 8, capacityErr.Capacity)
	assert.Contains(t, err.Error(), "need 10, have 8")
}

func TestAllocateSession_PicksLargestRemainingBlock(t *testing.T) {
	rooms := []model.Room{
		{ID: "R101", CapacityA: 3, CapacityB: 5},
		{ID: "R102", CapacityA: 5, CapacityB: 1},
	}
	demands := []CourseDemand{
		{CourseID: "1", Students: students("A", 4)},
		{CourseID: "2", Students: students("B", 3)},
	}

	plan, err := AllocateSession(testSession, demands, rooms)
	require.NoError(t, err)

	// R101/B and R102/A tie at 5 seats; room order wins
	assert.Equal(t, "1", blockByKey(t, plan, "R101", model.BlockB).Course)
	assert.Len(t, blockByKey(t, plan, "R101", model.BlockB).Seats, 4)

	// Course 2 sees R101/A=3, R101/B=1, R102/A=5, R102/B=1
	assert.Equal(t, "2", blockByKey(t, plan, "R102", model.BlockA).Course)
	assert.Len(t, blockByKey(t, plan, "R102", model.BlockA).Seats, 3)
	assert.Empty(t, blockByKey(t, plan, "R101", model.BlockA).Seats)
}

func TestAllocateSession_TieBetweenBlocksPrefersBlockA(t *testing.T) {
	rooms := []model.Room{{ID: "R101", CapacityA: 4, CapacityB: 4}}
	demands := []CourseDemand{{CourseID: "1", Students: students("S", 3)}}

	plan, err := AllocateSession(testSession, demands, rooms)
	require.NoError(t, err)

	assert.Len(t, blockByKey(t, plan, "R101", model.BlockA).Seats, 3)
	assert.Empty(t, blockByKey(t, plan, "R101", model.BlockB).Seats)
}

func TestAllocateSession_LargestCourseFirst(t *testing.T) {
	rooms := []model.Room{
		{ID: "R101", CapacityA: 4, CapacityB: 4},
		{ID: "R102", CapacityA: 4, CapacityB: 4},
	}
	demands := []CourseDemand{
		{CourseID: "Z", Students: students("Z", 2)},
		{CourseID: "Y", Students: students("Y", 3)},
		{CourseID: "X", Students: students("X", 5)},
	}

	plan, err := AllocateSession(testSession, demands, rooms)
	require.NoError(t, err)

	assert.Equal(t, []model.OccupiedBlock{
		{Session: testSession, CourseID: "X", Room: "R101", Block: model.BlockA, Count: 4},
		{Session: testSession, CourseID: "Y", Room: "R101", Block: model.BlockB, Count: 3},
		{Session: testSession, CourseID: "X", Room: "R102", Block: model.BlockA, Count: 1},
		{Session: testSession, CourseID: "Z", Room: "R102", Block: model.BlockB, Count: 2},
	}, plan.OccupiedBlocks())
	assert.Empty(t, ValidatePlan(plan, demands))
}

func TestAllocateSession_SharedBlockFreesPairForSecondCourse(t *testing.T) {
	rooms := []model.Room{{ID: "R1", CapacityA: 7, CapacityB: 2}}
	demands := []CourseDemand{
		{CourseID: "X", Students: students("X", 4)},
		{CourseID: "Y", Students: students("Y", 4)},
	}

	plan, err := AllocateSession(testSession, demands, rooms)
	require.NoError(t, err, "8 students fit the 9 seats")

	blockA := blockByKey(t, plan, "R1", model.BlockA)
	blockB := blockByKey(t, plan, "R1", model.BlockB)

	// X commits A; Y fills A's leftover seats and may still use B
	assert.Equal(t, "X", blockA.Course)
	assert.Len(t, blockA.Seats, 7)
	assert.True(t, blockA.Holds("Y"))
	assert.Equal(t, "Y", blockB.Course)
	assert.Len(t, blockB.Seats, 1)
	assert.Equal(t, 4, plan.PlacedCount("Y"))
	assert.Empty(t, ValidatePlan(plan, demands))
}

func TestAllocateSession_SharedBlockPrefersLargestRemaining(t *testing.T) {
	rooms := []model.Room{
		{ID: "R101", CapacityA: 10, CapacityB: 3},
		{ID: "R102", CapacityA: 3, CapacityB: 3},
	}
	demands := []CourseDemand{
		{CourseID: "P", Students: students("P", 6)},
		{CourseID: "Q", Students: students("Q", 5)},
	}

	plan, err := AllocateSession(testSession, demands, rooms)
	require.NoError(t, err)

	blockA := blockByKey(t, plan, "R101", model.BlockA)
	assert.Equal(t, "P", blockA.Course, "First placement commits the block")
	assert.True(t, blockA.Holds("Q"), "Q fills the leftover seats of R101/A")

	// R101/A is committed to P, so Q's last student may take R101/B, first in room order
	blockB := blockByKey(t, plan, "R101", model.BlockB)
	assert.Equal(t, "Q", blockB.Course)
	assert.Len(t, blockB.Seats, 1)
	assert.Empty(t, blockByKey(t, plan, "R102", model.BlockA).Seats)
	assert.Empty(t, ValidatePlan(plan, demands))
}

func TestAllocateSession_ZeroCapacityBlocksAreSkipped(t *testing.T) {
	rooms := []model.Room{
		{ID: "LAB", CapacityA: 0, CapacityB: 0},
		{ID: "R101", CapacityA: 2, CapacityB: 0},
	}
	demands := []CourseDemand{{CourseID: "1", Students: students("S", 2)}}

	plan, err := AllocateSession(testSession, demands, rooms)
	require.NoError(t, err)

	assert.Len(t, blockByKey(t, plan, "R101", model.BlockA).Seats, 2)
	assert.Len(t, plan.Seats(), 2)
}

func TestSessionPlan_SeatsIncludeEmptySeats(t *testing.T) {
	rooms := []model.Room{
		{ID: "R101", CapacityA: 2, CapacityB: 2},
		{ID: "R102", CapacityA: 2, CapacityB: 2},
	}
	demands := []CourseDemand{{CourseID: "1", Students: []string{"S1", "S2", "S3"}}}

	plan, err := AllocateSession(testSession, demands, rooms)
	require.NoError(t, err)

	seats := plan.Seats()
	require.Len(t, seats, 8)

	assert.Equal(t, model.SeatAssignment{Session: testSession, Room: "R101", Block: model.BlockA, SeatNo: 1, StudentID: "S1", CourseID: "1"}, seats[0])
	assert.Equal(t, model.SeatAssignment{Session: testSession, Room: "R101", Block: model.BlockA, SeatNo: 2, StudentID: "S2", CourseID: "1"}, seats[1])
	assert.True(t, seats[2].IsEmpty(), "R101/B seat 1 is empty")
	assert.Equal(t, model.BlockB, seats[2].Block)
	assert.Equal(t, "S3", seats[4].StudentID, "R102/A seat 1")
	assert.True(t, seats[5].IsEmpty(), "R102/A seat 2 is empty")

	empty := 0
	for _, seat := range seats {
		if seat.IsEmpty() {
			empty++
		}
	}
	assert.Equal(t, 5, empty)
}

func TestAllocateSession_Deterministic(t *testing.T) {
	rooms := []model.Room{
		{ID: "R101", CapacityA: 7, CapacityB: 6},
		{ID: "R102", CapacityA: 6, CapacityB: 7},
		{ID: "R103", CapacityA: 5, CapacityB: 5},
	}
	demands := []CourseDemand{
		{CourseID: "3", Students: students("C", 6)},
		{CourseID: "1", Students: students("A", 9)},
		{CourseID: "2", Students: students("B", 6)},
		{CourseID: "4", Students: students("D", 4)},
	}

	first, err := AllocateSession(testSession, demands, rooms)
	require.NoError(t, err)
	second, err := AllocateSession(testSession, demands, rooms)
	require.NoError(t, err)

	assert.Equal(t, first.Seats(), second.Seats())
	assert.Empty(t, ValidatePlan(first, demands))
}

func TestAllocateSession_DoesNotReorderCallerDemands(t *testing.T) {
	rooms := []model.Room{{ID: "R101", CapacityA: 5, CapacityB: 5}}
	demands := []CourseDemand{
		{CourseID: "small", Students: students("S", 1)},
		{CourseID: "large", Students: students("L", 4)},
	}

	_, err := AllocateSession(testSession, demands, rooms)
	require.NoError(t, err)

	assert.Equal(t, "small", demands[0].CourseID)
}

func TestAllocateSessions_FailureIsolatedToSession(t *testing.T) {
	rooms := []model.Room{
		{ID: "R101", CapacityA: 4, CapacityB: 4},
	}
	day2 := model.Session{Date: "06-Sep-25", Slot: "Slot-1"}
	inputs := []SessionInput{
		{Session: testSession, Demands: []CourseDemand{{CourseID: "1", Students: students("S", 10)}}},
		{Session: day2, Demands: []CourseDemand{{CourseID: "2", Students: students("T", 3)}}},
	}

	plans, failures := AllocateSessions(inputs, rooms)

	require.Len(t, failures, 1)
	assert.Equal(t, testSession, failures[0].Session)
	assert.True(t, errors.Is(failures[0].Err, ErrInsufficientCapacity))

	require.Len(t, plans, 1)
	assert.Equal(t, day2, plans[0].Session)
	assert.Equal(t, 3, plans[0].PlacedCount("2"))
}
