package seating

import (
	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/model"
)

// CourseDemand is the list of students sitting one course in a session
type CourseDemand struct {
	CourseID string

	// Students in registration order; seats are filled in this order
	Students []string
}

// Placement is one occupied seat
type Placement struct {
	StudentID string
	CourseID  string
}

// Block is one capacity-bounded seating group of a room during a session
type Block struct {
	Room     string
	Label    model.BlockLabel
	Capacity int

	// Course is the course committed to this block by its first placement ("" while empty)
	Course string

	// Seats holds placements in seat order (seat 1 first)
	Seats []Placement
}

// Remaining returns the number of free seats
func (b *Block) Remaining() int {
	return max(b.Capacity-len(b.Seats), 0)
}

// Holds returns true if any seat in the block is taken by the course
func (b *Block) Holds(courseID string) bool {
	for _, seat := range b.Seats {
		if seat.CourseID == courseID {
			return true
		}
	}
	return false
}

// roomBlocks keeps the A and B blocks of one room together for pairing checks
type roomBlocks struct {
	room   model.Room
	blocks [2]*Block
}

func (rb *roomBlocks) pairOf(b *Block) *Block {
	if b == rb.blocks[0] {
		return rb.blocks[1]
	}
	return rb.blocks[0]
}

// SessionPlan is the seating of one session: every block of every room,
// rooms in input order with block A before block B.
type SessionPlan struct {
	Session model.Session
	rooms   []*roomBlocks
}

func newSessionPlan(session model.Session, rooms []model.Room) *SessionPlan {
	plan := &SessionPlan{
		Session: session,
		rooms:   make([]*roomBlocks, 0, len(rooms)),
	}
	for _, room := range rooms {
		plan.rooms = append(plan.rooms, &roomBlocks{
			room: room,
			blocks: [2]*Block{
				{Room: room.ID, Label: model.BlockA, Capacity: room.CapacityA},
				{Room: room.ID, Label: model.BlockB, Capacity: room.CapacityB},
			},
		})
	}
	return plan
}

// Blocks returns all blocks in iteration order
func (p *SessionPlan) Blocks() []*Block {
	blocks := make([]*Block, 0, len(p.rooms)*2)
	for _, rb := range p.rooms {
		blocks = append(blocks, rb.blocks[0], rb.blocks[1])
	}
	return blocks
}

// Capacity returns the total seat count across all rooms
func (p *SessionPlan) Capacity() int {
	total := 0
	for _, rb := range p.rooms {
		total += rb.room.TotalCapacity()
	}
	return total
}

// Seats returns one row per physical seat, including empty seats
func (p *SessionPlan) Seats() []model.SeatAssignment {
	seats := make([]model.SeatAssignment, 0, p.Capacity())
	for _, block := range p.Blocks() {
		for i := 0; i < block.Capacity; i++ {
			seat := model.SeatAssignment{
				Session: p.Session,
				Room:    block.Room,
				Block:   block.Label,
				SeatNo:  i + 1,
			}
			if i < len(block.Seats) {
				seat.StudentID = block.Seats[i].StudentID
				seat.CourseID = block.Seats[i].CourseID
			}
			seats = append(seats, seat)
		}
	}
	return seats
}

// OccupiedBlocks aggregates the plan into per-course head counts for each
// block. Courses within a block appear in seat order; empty blocks are omitted.
func (p *SessionPlan) OccupiedBlocks() []model.OccupiedBlock {
	var occupied []model.OccupiedBlock
	for _, block := range p.Blocks() {
		counts := make(map[string]int)
		var order []string
		for _, seat := range block.Seats {
			if counts[seat.CourseID] == 0 {
				order = append(order, seat.CourseID)
			}
			counts[seat.CourseID]++
		}
		for _, courseID := range order {
			occupied = append(occupied, model.OccupiedBlock{
				Session:  p.Session,
				CourseID: courseID,
				Room:     block.Room,
				Block:    block.Label,
				Count:    counts[courseID],
			})
		}
	}
	return occupied
}

// PlacedCount returns how many seats the course occupies across the session
func (p *SessionPlan) PlacedCount(courseID string) int {
	count := 0
	for _, block := range p.Blocks() {
		for _, seat := range block.Seats {
			if seat.CourseID == courseID {
				count++
			}
		}
	}
	return count
}

// SessionInput is the demand of one session
type SessionInput struct {
	Session model.Session
	Demands []CourseDemand
}

// SessionFailure records a session whose seating could not be produced
type SessionFailure struct {
	Session model.Session
	Err     error
}
