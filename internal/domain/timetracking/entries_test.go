package timetracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hhmm string) *time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", "2024-03-01 "+hhmm, time.UTC)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestBuildEntries_OneEventPerSession(t *testing.T) {
	sessions := []Session{
		{ID: 1, ClockInTime: at("09:00")},
		{ID: 2, BreakStartTime: at("12:00")},
		{ID: 3, BreakEndTime: at("12:30")},
		{ID: 4, ClockOutTime: at("17:00")},
	}

	entries := BuildEntries(sessions)

	require.Len(t, entries, 4)
	assert.Equal(t, EntryClockIn, entries[0].Type)
	assert.Equal(t, *at("09:00"), entries[0].At)
	assert.Equal(t, EntryBreakStart, entries[1].Type)
	assert.Equal(t, *at("12:00"), entries[1].At)
	assert.Equal(t, EntryBreakEnd, entries[2].Type)
	assert.Equal(t, *at("12:30"), entries[2].At)
	assert.Equal(t, EntryClockOut, entries[3].Type)
	assert.Equal(t, *at("17:00"), entries[3].At)
}

func TestBuildEntries_SortedRegardlessOfInputOrder(t *testing.T) {
	sessions := []Session{
		{ID: 2, ClockInTime: at("13:00"), ClockOutTime: at("18:00")},
		{ID: 1, ClockInTime: at("08:00"), BreakStartTime: at("10:00"), BreakEndTime: at("10:15"), ClockOutTime: at("12:00")},
	}

	entries := BuildEntries(sessions)

	require.Len(t, entries, 6)
	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].At.Before(entries[i-1].At), "entry %d is out of order", i)
	}
	assert.Equal(t, int64(1), entries[0].SessionID)
	assert.Equal(t, int64(2), entries[5].SessionID)
	assert.Equal(t, EntryClockOut, entries[5].Type)
}

func TestBuildEntries_EqualTimesKeepEventOrder(t *testing.T) {
	sessions := []Session{
		{ID: 1, ClockInTime: at("09:00"), ClockOutTime: at("09:00")},
	}

	entries := BuildEntries(sessions)

	require.Len(t, entries, 2)
	assert.Equal(t, EntryClockIn, entries[0].Type)
	assert.Equal(t, EntryClockOut, entries[1].Type)
}

func TestBuildEntries_Empty(t *testing.T) {
	assert.Empty(t, BuildEntries(nil))
	assert.Empty(t, BuildEntries([]Session{{ID: 1}}))
}

func TestBuildEntries_CarriesBreakType(t *testing.T) {
	entries := BuildEntries([]Session{{ID: 1, BreakStartTime: at("12:00"), BreakType: "Lunch"}})

	require.Len(t, entries, 1)
	assert.Equal(t, "Lunch", entries[0].BreakType)
}

func TestHasBreakStart(t *testing.T) {
	assert.False(t, HasBreakStart(nil))
	assert.False(t, HasBreakStart([]Entry{{Type: EntryClockIn}, {Type: EntryClockOut}}))
	assert.True(t, HasBreakStart([]Entry{{Type: EntryClockIn}, {Type: EntryBreakStart, BreakType: "Coffee"}}))
}

func TestLastEventAt(t *testing.T) {
	_, ok := LastEventAt(nil)
	assert.False(t, ok)

	last, ok := LastEventAt([]Entry{{At: *at("09:00")}, {At: *at("17:00")}, {At: *at("12:00")}})
	assert.True(t, ok)
	assert.Equal(t, *at("17:00"), last)
}

func TestMergeActive(t *testing.T) {
	history := []Session{{ID: 1}, {ID: 2}}

	assert.Len(t, MergeActive(history, nil), 2)
	assert.Len(t, MergeActive(history, &Session{ID: 2}), 2)

	merged := MergeActive(history, &Session{ID: 3})
	assert.Len(t, merged, 3)
	assert.Equal(t, int64(3), merged[2].ID)
	assert.Len(t, history, 2, "input slice must not be modified")
}
