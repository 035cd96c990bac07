package leave

import "time"

// ComputeDays returns the inclusive number of calendar days between from
// and to, never less than 1. ok is false when either bound is missing.
func ComputeDays(from, to *time.Time) (days int, ok bool) {
	if from == nil || to == nil || from.IsZero() || to.IsZero() {
		return 0, false
	}
	// Counted on the dates as written so DST shifts in the zone cannot
	// shorten a day.
	n := int(calendarDate(*to).Sub(calendarDate(*from)).Hours()/24) + 1
	if n < 1 {
		n = 1
	}
	return n, true
}

func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Form is the leave application being edited. The date range is never
// left inverted: moving one bound past the other drags "to" along.
type Form struct {
	Reason    string
	LeaveType string
	from      *time.Time
	to        *time.Time
}

func (f *Form) From() *time.Time { return f.from }
func (f *Form) To() *time.Time   { return f.to }

// SetFrom sets the start date and raises the end date when it falls before it.
func (f *Form) SetFrom(d time.Time) {
	f.from = &d
	if f.to != nil && f.to.Before(d) {
		to := d
		f.to = &to
	}
}

// SetTo sets the end date, clamped to the start date.
func (f *Form) SetTo(d time.Time) {
	if f.from != nil && d.Before(*f.from) {
		d = *f.from
	}
	f.to = &d
}

// Days is recomputed from the current bounds on every call.
func (f *Form) Days() (int, bool) {
	return ComputeDays(f.from, f.to)
}

// Reset clears the form after a successful submission.
func (f *Form) Reset() {
	*f = Form{}
}
