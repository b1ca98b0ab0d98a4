package domain

import "time"

// ProfileStats is the incrementally maintained counter block the achievement
// evaluator reads. The recorder bumps these so evaluation never rescans the
// activity log.
type ProfileStats struct {
	TotalCreated    int
	TotalAssigned   int
	TotalResolved   int
	TotalComments   int
	HighRatingCount int
	TeamworkEvents  int
}

// UserGamificationProfile aggregates a user's gamification state. Invariant:
// TotalPoints equals the sum of all ScoreAward points for the user.
type UserGamificationProfile struct {
	UserID               string
	TotalPoints          int
	Stats                ProfileStats
	Streak               StreakState
	UnlockedAchievements []AchievementUnlock
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// HasUnlocked reports whether the achievement code is already unlocked.
func (p *UserGamificationProfile) HasUnlocked(code string) bool {
	for _, unlock := range p.UnlockedAchievements {
		if unlock.AchievementCode == code {
			return true
		}
	}
	return false
}
