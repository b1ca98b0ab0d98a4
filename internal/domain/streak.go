package domain

import "time"

// StreakState tracks consecutive-activity-day state for one user.
// LastActivityDate is truncated to a calendar day in UTC.
type StreakState struct {
	UserID           string
	CurrentLength    int
	LongestLength    int
	LastActivityDate *time.Time
	UpdatedAt        time.Time
}
