package timetracking

import "time"

// SessionElapsed computes worked and break time of one session as of now.
// Open intervals are closed at now; closed sessions ignore now.
func SessionElapsed(s Session, now time.Time) Elapsed {
	if s.ClockInTime == nil {
		return Elapsed{}
	}

	end := now
	if s.ClockOutTime != nil {
		end = *s.ClockOutTime
	}

	var brk time.Duration
	if s.BreakStartTime != nil {
		breakEnd := end
		if s.BreakEndTime != nil {
			breakEnd = *s.BreakEndTime
		}
		if breakEnd.After(*s.BreakStartTime) {
			brk = breakEnd.Sub(*s.BreakStartTime)
		}
	}

	worked := end.Sub(*s.ClockInTime) - brk
	if worked < 0 {
		worked = 0
	}
	return Elapsed{Worked: worked, Break: brk}
}

// DayElapsed sums SessionElapsed over every session of a day.
func DayElapsed(sessions []Session, now time.Time) Elapsed {
	var total Elapsed
	for _, s := range sessions {
		e := SessionElapsed(s, now)
		total.Worked += e.Worked
		total.Break += e.Break
	}
	return total
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.Local
	}
	a, b = a.In(loc), b.In(loc)
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay truncates t to midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
