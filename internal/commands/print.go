package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/cmlabs-hris/seeker-tracker/internal/domain/leave"
	"github.com/cmlabs-hris/seeker-tracker/internal/domain/timetracking"
	"github.com/cmlabs-hris/seeker-tracker/internal/tui"
)

func stateText(state timetracking.ClockState) string {
	switch state {
	case timetracking.StateClockedIn:
		return "Clocked in"
	case timetracking.StateOnBreak:
		return "On break"
	}
	return "Off the clock"
}

func printView(w io.Writer, view timetracking.View) {
	fmt.Fprintf(w, "Date:     %s\n", view.Date.Format("Mon, 02 Jan 2006"))
	if view.IsToday {
		fmt.Fprintf(w, "Status:   %s\n", stateText(view.State))
		if view.Active != nil && view.Active.ClockInTime != nil {
			fmt.Fprintf(w, "Since:    %s\n", view.Active.ClockInTime.Format("15:04:05"))
		}
		fmt.Fprintf(w, "Session:  %s worked, %s break\n",
			timetracking.FormatDuration(view.Session.Worked),
			timetracking.FormatDuration(view.Session.Break))
	}
	fmt.Fprintf(w, "Day:      %s worked, %s break\n",
		timetracking.FormatDuration(view.Day.Worked),
		timetracking.FormatDuration(view.Day.Break))
}

func printEntries(w io.Writer, entries []timetracking.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries for this day")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %s\n", e.At.Format("15:04:05"), tui.EntryLabel(e))
	}
}

func printLeaveRequests(w io.Writer, requests []leave.LeaveRequest) {
	if len(requests) == 0 {
		fmt.Fprintln(w, "No leave requests yet. Use 'seeker-tracker leave apply' to submit one.")
		return
	}

	fmt.Fprintf(w, "%-10s %-10s %-5s %-10s %-15s %s\n", "FROM", "TO", "DAYS", "STATUS", "TYPE", "REASON")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for _, r := range requests {
		reason := r.Reason
		if len(reason) > 30 {
			reason = reason[:27] + "..."
		}
		leaveType := r.LeaveType
		if len(leaveType) > 15 {
			leaveType = leaveType[:12] + "..."
		}
		fmt.Fprintf(w, "%-10s %-10s %-5d %-10s %-15s %s\n",
			r.From.Format("2006-01-02"),
			r.To.Format("2006-01-02"),
			r.Days,
			r.Status,
			leaveType,
			reason)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
