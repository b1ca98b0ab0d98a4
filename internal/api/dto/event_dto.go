package dto

import "time"

// TicketCreatedRequest payload for POST /internal/v1/events/ticket-created.
type TicketCreatedRequest struct {
	UserID     string     `json:"user_id"`
	TicketID   string     `json:"ticket_id"`
	Priority   string     `json:"priority,omitempty"`
	Category   string     `json:"category,omitempty"`
	OccurredAt *time.Time `json:"occurred_at,omitempty"`
}

// TicketAssignedRequest payload for POST /internal/v1/events/ticket-assigned.
type TicketAssignedRequest struct {
	UserID     string     `json:"user_id"`
	TicketID   string     `json:"ticket_id"`
	AssignedTo string     `json:"assigned_to,omitempty"`
	OccurredAt *time.Time `json:"occurred_at,omitempty"`
}

// TicketResolvedRequest payload for POST /internal/v1/events/ticket-resolved.
type TicketResolvedRequest struct {
	UserID                string     `json:"user_id"`
	TicketID              string     `json:"ticket_id"`
	ResolutionTimeMinutes *int       `json:"resolution_time_minutes,omitempty"`
	Rating                *int       `json:"rating,omitempty"`
	Reopened              bool       `json:"reopened,omitempty"`
	OccurredAt            *time.Time `json:"occurred_at,omitempty"`
}

// CommentAddedRequest payload for POST /internal/v1/events/comment-added.
type CommentAddedRequest struct {
	UserID     string     `json:"user_id"`
	TicketID   string     `json:"ticket_id"`
	CommentID  string     `json:"comment_id"`
	OccurredAt *time.Time `json:"occurred_at,omitempty"`
}

// TeamworkBonusRequest payload for POST /internal/v1/events/teamwork-bonus.
type TeamworkBonusRequest struct {
	UserID              string     `json:"user_id"`
	HelpfulCommentCount int        `json:"helpful_comment_count"`
	OccurredAt          *time.Time `json:"occurred_at,omitempty"`
}

// ActivityResultResponse summarizes the outcome of one processed event.
type ActivityResultResponse struct {
	ActivityID      string        `json:"activity_id"`
	Duplicate       bool          `json:"duplicate"`
	PointsGranted   int           `json:"points_granted"`
	Awards          []AwardItem   `json:"awards"`
	NewAchievements []string      `json:"new_achievements"`
	Streak          *StreakItem   `json:"streak,omitempty"`
	Warnings        []string      `json:"warnings,omitempty"`
}

// AwardItem is one point grant in a result.
type AwardItem struct {
	Reason string `json:"reason"`
	Points int    `json:"points"`
}
