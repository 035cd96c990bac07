package timetracking

// DeriveControls applies the clock preconditions to a state.
// breakTaken is true once any break-start exists for the day.
func DeriveControls(state ClockState, breakTaken bool, loading bool) Controls {
	if loading {
		return Controls{}
	}
	return Controls{
		CanClockIn:    state == StateOffClock,
		CanStartBreak: state == StateClockedIn && !breakTaken,
		CanEndBreak:   state == StateOnBreak,
		CanClockOut:   state == StateClockedIn,
	}
}
