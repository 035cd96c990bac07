package timetracking

import (
	"sort"
	"time"
)

var entryOrder = map[EntryType]int{
	EntryClockIn:    0,
	EntryBreakStart: 1,
	EntryBreakEnd:   2,
	EntryClockOut:   3,
}

// BuildEntries flattens sessions into a timeline sorted ascending by time,
// whatever order the sessions arrive in. Events at the same instant keep
// their natural order (in, break-start, break-end, out).
func BuildEntries(sessions []Session) []Entry {
	entries := make([]Entry, 0, len(sessions)*4)
	for _, s := range sessions {
		if s.ClockInTime != nil {
			entries = append(entries, Entry{Type: EntryClockIn, At: *s.ClockInTime, SessionID: s.ID})
		}
		if s.BreakStartTime != nil {
			entries = append(entries, Entry{Type: EntryBreakStart, At: *s.BreakStartTime, BreakType: s.BreakType, SessionID: s.ID})
		}
		if s.BreakEndTime != nil {
			entries = append(entries, Entry{Type: EntryBreakEnd, At: *s.BreakEndTime, BreakType: s.BreakType, SessionID: s.ID})
		}
		if s.ClockOutTime != nil {
			entries = append(entries, Entry{Type: EntryClockOut, At: *s.ClockOutTime, SessionID: s.ID})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].At.Equal(entries[j].At) {
			return entries[i].At.Before(entries[j].At)
		}
		return entryOrder[entries[i].Type] < entryOrder[entries[j].Type]
	})
	return entries
}

// HasBreakStart reports whether any break was started, of any type.
func HasBreakStart(entries []Entry) bool {
	for _, e := range entries {
		if e.Type == EntryBreakStart {
			return true
		}
	}
	return false
}

// LastEventAt returns the time of the latest entry.
func LastEventAt(entries []Entry) (time.Time, bool) {
	if len(entries) == 0 {
		return time.Time{}, false
	}
	last := entries[0].At
	for _, e := range entries[1:] {
		if e.At.After(last) {
			last = e.At
		}
	}
	return last, true
}

// MergeActive returns sessions with active appended when it belongs to the
// same list but is missing from it.
func MergeActive(sessions []Session, active *Session) []Session {
	if active == nil {
		return sessions
	}
	for _, s := range sessions {
		if s.ID == active.ID {
			return sessions
		}
	}
	merged := make([]Session, 0, len(sessions)+1)
	merged = append(merged, sessions...)
	return append(merged, *active)
}
