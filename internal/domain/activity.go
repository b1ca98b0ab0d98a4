package domain

import "time"

// ActivityType enumerates scoring-relevant support-desk events.
type ActivityType string

const (
	ActivityTicketCreated  ActivityType = "TICKET_CREATED"
	ActivityTicketAssigned ActivityType = "TICKET_ASSIGNED"
	ActivityTicketResolved ActivityType = "TICKET_RESOLVED"
	ActivityCommentAdded   ActivityType = "COMMENT_ADDED"
	ActivityTeamBonus      ActivityType = "TEAM_BONUS"
)

// IsValid reports whether the type is a known activity type.
func (t ActivityType) IsValid() bool {
	switch t {
	case ActivityTicketCreated, ActivityTicketAssigned, ActivityTicketResolved,
		ActivityCommentAdded, ActivityTeamBonus:
		return true
	}
	return false
}

// ActivityMetadata carries the event attributes relevant to scoring.
type ActivityMetadata struct {
	TicketID              string `json:"ticket_id,omitempty"`
	CommentID             string `json:"comment_id,omitempty"`
	AssignedTo            string `json:"assigned_to,omitempty"`
	Priority              string `json:"priority,omitempty"`
	Category              string `json:"category,omitempty"`
	ResolutionTimeMinutes *int   `json:"resolution_time_minutes,omitempty"`
	Rating                *int   `json:"rating,omitempty"`
	Reopened              bool   `json:"reopened,omitempty"`
	HelpfulCommentCount   *int   `json:"helpful_comment_count,omitempty"`
}

// Activity is an immutable record of one scoring-relevant event for a user.
// Its ID doubles as the idempotency key: re-submitting the same lifecycle
// event produces the same ID and is treated as already recorded.
type Activity struct {
	ID          string
	UserID      string
	Type        ActivityType
	Description string
	Metadata    ActivityMetadata
	OccurredAt  time.Time
	RecordedAt  time.Time
}
