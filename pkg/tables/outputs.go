package tables

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tiwarikamlesh/InternalAssesment-Exam-Planning-Aug20205A/pkg/core/model"
)

// SeatFileName returns the seat table file name of a session
func SeatFileName(session model.Session) string {
	return seatFilePrefix + session.Slug() + ".csv"
}

// SeatRows converts a session's seats into output rows. Course codes are
// looked up by course sNo; empty seats keep blank student and course columns.
func SeatRows(seats []model.SeatAssignment, courseCodes map[string]string) []SeatRow {
	rows := make([]SeatRow, len(seats))
	for i, seat := range seats {
		rows[i] = SeatRow{
			Date:       seat.Session.Date,
			Slot:       seat.Session.Slot,
			Room:       seat.Room,
			Block:      string(seat.Block),
			SeatNo:     seat.SeatNo,
			USN:        seat.StudentID,
			CourseSNo:  seat.CourseID,
			CourseCode: courseCodes[seat.CourseID],
		}
	}
	return rows
}

// WriteSeatTable writes one session's seat table and returns its path
func (s *Store) WriteSeatTable(session model.Session, rows []SeatRow) (string, error) {
	return writeTable(s, SeatFileName(session), rows)
}

// WriteDutyTable writes the invigilation table and returns its path
func (s *Store) WriteDutyTable(rows []DutyRow) (string, error) {
	return writeTable(s, DutyFileName, rows)
}

// LoadSeatTables reads back every seat table in the output directory.
// Files are read in name order and rows keep their file order.
func (s *Store) LoadSeatTables() ([]model.SeatAssignment, error) {
	names, err := s.ListOutputs()
	if err != nil {
		return nil, err
	}

	var seats []model.SeatAssignment
	files := 0
	for _, name := range names {
		if !strings.HasPrefix(name, seatFilePrefix) {
			continue
		}
		files++

		rows, err := readTable[SeatRow](s, s.OutputPath(name))
		if err != nil {
			return nil, err
		}
		for _, row := range validRows(s, name, rows) {
			seats = append(seats, model.SeatAssignment{
				Session:   model.Session{Date: row.Date, Slot: row.Slot},
				Room:      row.Room,
				Block:     model.BlockLabel(row.Block),
				SeatNo:    row.SeatNo,
				StudentID: row.USN,
				CourseID:  row.CourseSNo,
			})
		}
	}

	if files == 0 {
		return nil, fmt.Errorf("%w: no seat tables in %s", ErrMissingInput, s.opts.OutputDir)
	}

	s.logger.Debug("Loaded seat tables", zap.Int("files", files), zap.Int("seats", len(seats)))
	return seats, nil
}
