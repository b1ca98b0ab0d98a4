package events

import (
	"time"

	"github.com/spec-kit/gamification-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventActivityRecorded    EventType = "activity_recorded"
	EventPointsAwarded       EventType = "points_awarded"
	EventAchievementUnlocked EventType = "achievement_unlocked"
	EventStreakMilestone     EventType = "streak_milestone"
)

// Event represents a gamification event emitted by the engine.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ActivityRecordedPayload payload.
type ActivityRecordedPayload struct {
	ActivityID   string              `json:"activity_id"`
	ActivityType domain.ActivityType `json:"activity_type"`
	TicketID     string              `json:"ticket_id,omitempty"`
}

// PointsAwardedPayload payload.
type PointsAwardedPayload struct {
	ActivityID string             `json:"activity_id"`
	Points     int                `json:"points"`
	Reason     domain.AwardReason `json:"reason"`
	TotalAfter int                `json:"total_after"`
}

// AchievementUnlockedPayload payload.
type AchievementUnlockedPayload struct {
	AchievementCode string `json:"achievement_code"`
	Title           string `json:"title"`
}

// StreakMilestonePayload payload.
type StreakMilestonePayload struct {
	CurrentLength int `json:"current_length"`
	LongestLength int `json:"longest_length"`
}
