package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(yearMonthDay string) time.Time {
	t, err := time.Parse("2006-01-02", yearMonthDay)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAdvanceStreakFirstActivity(t *testing.T) {
	next, advanced := advanceStreak(nil, "agent-1", day("2024-03-01"))
	assert.True(t, advanced)
	assert.Equal(t, 1, next.CurrentLength)
	assert.Equal(t, 1, next.LongestLength)
	require.NotNil(t, next.LastActivityDate)
	assert.Equal(t, day("2024-03-01"), *next.LastActivityDate)
}

func TestAdvanceStreakSameDayNoChange(t *testing.T) {
	first, _ := advanceStreak(nil, "agent-1", day("2024-03-01"))
	next, advanced := advanceStreak(&first, "agent-1", day("2024-03-01").Add(5*time.Hour))
	assert.False(t, advanced)
	assert.Equal(t, 1, next.CurrentLength)
}

func TestAdvanceStreakConsecutiveDays(t *testing.T) {
	state, _ := advanceStreak(nil, "agent-1", day("2024-03-01"))
	for i, d := range []string{"2024-03-02", "2024-03-03", "2024-03-04"} {
		var advanced bool
		state, advanced = advanceStreak(&state, "agent-1", day(d))
		assert.True(t, advanced)
		assert.Equal(t, i+2, state.CurrentLength)
		assert.Equal(t, i+2, state.LongestLength)
	}
}

func TestAdvanceStreakGapResets(t *testing.T) {
	state, _ := advanceStreak(nil, "agent-1", day("2024-03-01"))
	state, _ = advanceStreak(&state, "agent-1", day("2024-03-02"))
	state, _ = advanceStreak(&state, "agent-1", day("2024-03-03"))
	require.Equal(t, 3, state.CurrentLength)

	// three-day gap
	next, advanced := advanceStreak(&state, "agent-1", day("2024-03-06"))
	assert.True(t, advanced)
	assert.Equal(t, 1, next.CurrentLength)
	// longest never decreases
	assert.Equal(t, 3, next.LongestLength)
}

func TestAdvanceStreakLateArrivingEventIgnored(t *testing.T) {
	state, _ := advanceStreak(nil, "agent-1", day("2024-03-05"))
	next, advanced := advanceStreak(&state, "agent-1", day("2024-03-02"))
	assert.False(t, advanced)
	assert.Equal(t, 1, next.CurrentLength)
	assert.Equal(t, day("2024-03-05"), *next.LastActivityDate)
}

func TestAdvanceStreakCrossesMidnightInUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	// 01:30 local on Mar 2 is 22:30 UTC on Mar 1
	evening := time.Date(2024, 3, 2, 1, 30, 0, 0, loc)
	state, _ := advanceStreak(nil, "agent-1", evening)
	require.NotNil(t, state.LastActivityDate)
	assert.Equal(t, day("2024-03-01"), *state.LastActivityDate)

	next, advanced := advanceStreak(&state, "agent-1", day("2024-03-02").Add(10*time.Hour))
	assert.True(t, advanced)
	assert.Equal(t, 2, next.CurrentLength)
}
