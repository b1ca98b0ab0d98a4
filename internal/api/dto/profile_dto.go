package dto

import (
	"time"

	"github.com/spec-kit/gamification-service/internal/domain"
)

// StreakItem describes streak state in responses.
type StreakItem struct {
	CurrentLength    int        `json:"current_length"`
	LongestLength    int        `json:"longest_length"`
	LastActivityDate *time.Time `json:"last_activity_date,omitempty"`
}

// UnlockItem describes one unlocked achievement.
type UnlockItem struct {
	Code       string    `json:"code"`
	Title      string    `json:"title,omitempty"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

// ProfileResponse is the aggregate gamification view for one agent.
type ProfileResponse struct {
	UserID          string       `json:"user_id"`
	TotalPoints     int          `json:"total_points"`
	TotalResolved   int          `json:"total_resolved"`
	TotalComments   int          `json:"total_comments"`
	HighRatingCount int          `json:"high_rating_count"`
	Streak          StreakItem   `json:"streak"`
	Achievements    []UnlockItem `json:"achievements"`
}

// NewProfileResponse maps the domain aggregate, resolving achievement titles
// from the catalog.
func NewProfileResponse(profile *domain.UserGamificationProfile, titles map[string]string) ProfileResponse {
	resp := ProfileResponse{
		UserID:          profile.UserID,
		TotalPoints:     profile.TotalPoints,
		TotalResolved:   profile.Stats.TotalResolved,
		TotalComments:   profile.Stats.TotalComments,
		HighRatingCount: profile.Stats.HighRatingCount,
		Streak: StreakItem{
			CurrentLength:    profile.Streak.CurrentLength,
			LongestLength:    profile.Streak.LongestLength,
			LastActivityDate: profile.Streak.LastActivityDate,
		},
		Achievements: make([]UnlockItem, 0, len(profile.UnlockedAchievements)),
	}
	for _, unlock := range profile.UnlockedAchievements {
		resp.Achievements = append(resp.Achievements, UnlockItem{
			Code:       unlock.AchievementCode,
			Title:      titles[unlock.AchievementCode],
			UnlockedAt: unlock.UnlockedAt,
		})
	}
	return resp
}
