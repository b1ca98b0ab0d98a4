package service

import (
	"time"

	"github.com/spec-kit/gamification-service/internal/domain"
)

// calendarDay truncates a timestamp to its UTC calendar day.
func calendarDay(t time.Time) time.Time {
	utc := t.UTC()
	return time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
}

// advanceStreak applies one qualifying activity day to the user's streak
// state and returns the next state. Same-day activity leaves the length
// unchanged; exactly one day later increments it; a longer gap (or no prior
// record) resets it to 1. LongestLength only ever grows. dayAdvanced reports
// whether LastActivityDate moved, i.e. the state needs persisting beyond a
// same-day repeat.
func advanceStreak(prev *domain.StreakState, userID string, activityDay time.Time) (next domain.StreakState, dayAdvanced bool) {
	day := calendarDay(activityDay)

	if prev == nil || prev.LastActivityDate == nil {
		next = domain.StreakState{
			UserID:           userID,
			CurrentLength:    1,
			LongestLength:    1,
			LastActivityDate: &day,
		}
		return next, true
	}

	next = *prev
	last := calendarDay(*prev.LastActivityDate)

	switch gap := int(day.Sub(last).Hours() / 24); {
	case gap <= 0:
		return next, false
	case gap == 1:
		next.CurrentLength++
	default:
		next.CurrentLength = 1
	}

	next.LastActivityDate = &day
	if next.CurrentLength > next.LongestLength {
		next.LongestLength = next.CurrentLength
	}
	return next, true
}
