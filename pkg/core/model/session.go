package model

import (
	"cmp"
	"regexp"
	"slices"
	"strings"
	"time"
)

// DefaultSlotOrder is the chronological order of the four daily exam slots
var DefaultSlotOrder = SlotOrder{"Slot-1", "Slot-2", "Slot-3", "Slot-4"}

// SlotOrder lists slot labels in chronological order. Slot i is adjacent to
// slots i-1 and i+1 only; the first and last slots are not adjacent.
type SlotOrder []string

// Index returns the position of the slot, or -1 if the label is unknown
func (o SlotOrder) Index(slot string) int {
	return slices.Index(o, slot)
}

// Adjacent returns true if the two slots are immediate neighbours
func (o SlotOrder) Adjacent(a, b string) bool {
	ia, ib := o.Index(a), o.Index(b)
	if ia < 0 || ib < 0 {
		return false
	}
	return ia-ib == 1 || ib-ia == 1
}

// Neighbours returns the slots adjacent to the given slot, earlier slot first
func (o SlotOrder) Neighbours(slot string) []string {
	idx := o.Index(slot)
	if idx < 0 {
		return nil
	}
	neighbours := make([]string, 0, 2)
	if idx > 0 {
		neighbours = append(neighbours, o[idx-1])
	}
	if idx < len(o)-1 {
		neighbours = append(neighbours, o[idx+1])
	}
	return neighbours
}

// AdjacentSessions returns true if the sessions fall on the same date in neighbouring slots
func (o SlotOrder) AdjacentSessions(a, b Session) bool {
	return a.Date == b.Date && o.Adjacent(a.Slot, b.Slot)
}

// NeighbourSessions returns the sessions adjacent to s on the same date
func (o SlotOrder) NeighbourSessions(s Session) []Session {
	slots := o.Neighbours(s.Slot)
	sessions := make([]Session, len(slots))
	for i, slot := range slots {
		sessions[i] = Session{Date: s.Date, Slot: slot}
	}
	return sessions
}

// CompareSessions orders sessions chronologically: by exam date, then slot index.
// Dates that cannot be parsed sort after parsed dates and compare as text.
// Unknown slots sort after known ones.
func (o SlotOrder) CompareSessions(a, b Session) int {
	if c := compareDates(a.Date, b.Date); c != 0 {
		return c
	}
	ia, ib := o.Index(a.Slot), o.Index(b.Slot)
	if ia < 0 {
		ia = len(o)
	}
	if ib < 0 {
		ib = len(o)
	}
	if c := cmp.Compare(ia, ib); c != 0 {
		return c
	}
	return strings.Compare(a.Slot, b.Slot)
}

// SortSessions sorts sessions in place chronologically
func (o SlotOrder) SortSessions(sessions []Session) {
	slices.SortStableFunc(sessions, o.CompareSessions)
}

// Session is a (date, slot) exam period. Date keeps the text given in the
// schedule so output tables echo the input.
type Session struct {
	Date string
	Slot string
}

func (s Session) String() string {
	return s.Date + " " + s.Slot
}

// Slug returns a file-name friendly identifier such as "20250905_Slot-1"
func (s Session) Slug() string {
	date := sanitizePattern.ReplaceAllString(strings.TrimSpace(s.Date), "_")
	if t, ok := ParseExamDate(s.Date); ok {
		date = t.Format("20060102")
	}
	return date + "_" + strings.ReplaceAll(strings.TrimSpace(s.Slot), " ", "_")
}

var sanitizePattern = regexp.MustCompile(`[^0-9A-Za-z_-]`)

var examDateLayouts = []string{
	"02-Jan-06",
	"2-Jan-06",
	"02-Jan-2006",
	"2-Jan-2006",
	"02-01-2006",
	"02/01/2006",
	"2006-01-02",
}

// ParseExamDate parses the date formats used in exam schedules
func ParseExamDate(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, false
	}
	s = strings.Replace(s, "Sept", "Sep", 1)
	for _, layout := range examDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func compareDates(a, b string) int {
	if a == b {
		return 0
	}
	ta, okA := ParseExamDate(a)
	tb, okB := ParseExamDate(b)
	switch {
	case okA && okB:
		if c := ta.Compare(tb); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return strings.Compare(a, b)
	}
}
