package timetracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionElapsed_OpenSessionTicksWithNow(t *testing.T) {
	s := Session{ClockInTime: at("09:00")}

	first := SessionElapsed(s, *at("10:00"))
	second := SessionElapsed(s, at("10:00").Add(time.Second))

	assert.Equal(t, time.Hour, first.Worked)
	assert.Equal(t, time.Hour+time.Second, second.Worked)
	assert.Zero(t, first.Break)
}

func TestSessionElapsed_ClosedSessionIgnoresNow(t *testing.T) {
	s := Session{
		ClockInTime:    at("09:00"),
		BreakStartTime: at("12:00"),
		BreakEndTime:   at("12:30"),
		ClockOutTime:   at("17:00"),
	}

	e := SessionElapsed(s, *at("23:00"))

	assert.Equal(t, 7*time.Hour+30*time.Minute, e.Worked)
	assert.Equal(t, 30*time.Minute, e.Break)
}

func TestSessionElapsed_OnBreakCountsBreakNotWork(t *testing.T) {
	s := Session{ClockInTime: at("09:00"), BreakStartTime: at("12:00")}

	e := SessionElapsed(s, *at("12:20"))

	assert.Equal(t, 3*time.Hour, e.Worked)
	assert.Equal(t, 20*time.Minute, e.Break)
}

func TestSessionElapsed_NeverNegative(t *testing.T) {
	s := Session{ClockInTime: at("09:00"), BreakStartTime: at("12:00")}

	e := SessionElapsed(s, *at("08:00"))

	assert.Zero(t, e.Worked)
	assert.Zero(t, e.Break)
	assert.Equal(t, Elapsed{}, SessionElapsed(Session{}, *at("10:00")))
}

func TestDayElapsed_SumsSessions(t *testing.T) {
	sessions := []Session{
		{ClockInTime: at("08:00"), ClockOutTime: at("12:00")},
		{ClockInTime: at("13:00"), BreakStartTime: at("15:00"), BreakEndTime: at("15:10"), ClockOutTime: at("17:00")},
	}

	e := DayElapsed(sessions, *at("20:00"))

	assert.Equal(t, 7*time.Hour+50*time.Minute, e.Worked)
	assert.Equal(t, 10*time.Minute, e.Break)
}

func TestSameDayAndStartOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	late := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)

	assert.False(t, SameDay(late, time.Date(2024, 3, 1, 1, 0, 0, 0, time.UTC), loc))
	assert.True(t, SameDay(late, time.Date(2024, 3, 1, 1, 0, 0, 0, time.UTC), time.UTC))
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, loc), StartOfDay(late, loc))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatDuration(0))
	assert.Equal(t, "00:00:00", FormatDuration(-time.Minute))
	assert.Equal(t, "01:02:03", FormatDuration(time.Hour+2*time.Minute+3*time.Second))
	assert.Equal(t, "26:00:00", FormatDuration(26*time.Hour))
}
