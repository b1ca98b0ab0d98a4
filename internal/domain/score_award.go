package domain

// AwardReason enumerates why points were granted.
type AwardReason string

const (
	ReasonBase          AwardReason = "BASE"
	ReasonSpeedBonus    AwardReason = "SPEED_BONUS"
	ReasonQualityBonus  AwardReason = "QUALITY_BONUS"
	ReasonTeamworkBonus AwardReason = "TEAMWORK_BONUS"
	ReasonStreakBonus   AwardReason = "STREAK_BONUS"
)

// ScoreAward is a discrete point grant tied to one Activity and one reason.
// An Activity yields at most one award per reason; never mutated once written.
type ScoreAward struct {
	ActivityID string
	UserID     string
	Points     int
	Reason     AwardReason
}
