package timetracking

import (
	"time"
)

// Session is one clock-in record as owned by the backend.
// A nil ClockOutTime means the session is still open.
type Session struct {
	ID              int64
	EmployeeID      string
	CompanyID       string
	Date            time.Time
	ClockInTime     *time.Time
	ClockOutTime    *time.Time
	BreakStartTime  *time.Time
	BreakEndTime    *time.Time
	BreakType       string
	TotalWorkHours  float64
	TotalBreakHours float64
	OvertimeHours   float64
	IsActive        bool
}

// IsOpen reports whether the session has been clocked in but not out.
func (s Session) IsOpen() bool {
	return s.ClockInTime != nil && s.ClockOutTime == nil
}

// OnBreak reports whether a break was started and not yet ended.
func (s Session) OnBreak() bool {
	return s.IsOpen() && s.BreakStartTime != nil && s.BreakEndTime == nil
}

type ClockState string

const (
	StateOffClock  ClockState = "OFF_CLOCK"
	StateClockedIn ClockState = "CLOCKED_IN"
	StateOnBreak   ClockState = "ON_BREAK"
)

// StateOf derives the clock state from the active session.
func StateOf(active *Session) ClockState {
	switch {
	case active == nil || !active.IsOpen():
		return StateOffClock
	case active.OnBreak():
		return StateOnBreak
	default:
		return StateClockedIn
	}
}

type BreakType string

const BreakLunch BreakType = "Lunch"

// BreakTypes lists the break options offered to the user.
var BreakTypes = []string{string(BreakLunch)}

type EntryType string

const (
	EntryClockIn    EntryType = "in"
	EntryBreakStart EntryType = "break-start"
	EntryBreakEnd   EntryType = "break-end"
	EntryClockOut   EntryType = "out"
)

// Entry is one event of a day's timeline. It is derived from sessions and never stored.
type Entry struct {
	Type      EntryType
	At        time.Time
	BreakType string
	SessionID int64
}

// Elapsed is worked and break time derived from timestamps.
type Elapsed struct {
	Worked time.Duration
	Break  time.Duration
}

// Controls reports which clock actions are currently allowed.
type Controls struct {
	CanClockIn    bool
	CanStartBreak bool
	CanEndBreak   bool
	CanClockOut   bool
}

// View is everything a screen needs to render the tracker for one date.
type View struct {
	Date    time.Time
	IsToday bool
	// Now is the reference time for elapsed figures: the live clock for today,
	// the last recorded event for any other date.
	Now      time.Time
	State    ClockState
	Active   *Session
	Sessions []Session
	Entries  []Entry
	Session  Elapsed
	Day      Elapsed
	Loading  bool
	Controls Controls
}
