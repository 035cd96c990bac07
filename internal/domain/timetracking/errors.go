package timetracking

import "errors"

// Time tracking domain errors
var (
	// Precondition errors
	ErrAlreadyClockedIn  = errors.New("you are already clocked in")
	ErrNotClockedIn      = errors.New("you are not clocked in")
	ErrAlreadyOnBreak    = errors.New("you are already on a break")
	ErrNotOnBreak        = errors.New("you are not on a break")
	ErrBreakAlreadyTaken = errors.New("a break has already been taken today")

	// In-flight guard
	ErrRequestInFlight = errors.New("another time tracking request is still in progress")
)
