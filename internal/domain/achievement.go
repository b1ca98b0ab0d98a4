package domain

import "time"

// ThresholdMetric names a cumulative statistic an achievement is keyed on.
type ThresholdMetric string

const (
	MetricTotalResolved      ThresholdMetric = "TOTAL_RESOLVED"
	MetricStreakLength       ThresholdMetric = "STREAK_LENGTH"
	MetricQualityRatingCount ThresholdMetric = "QUALITY_RATING_COUNT"
	MetricTotalComments      ThresholdMetric = "TOTAL_COMMENTS"
	MetricTotalPoints        ThresholdMetric = "TOTAL_POINTS"
)

// AchievementDefinition is static, read-only configuration for one milestone.
type AchievementDefinition struct {
	Code            string
	Title           string
	Description     string
	ThresholdMetric ThresholdMetric
	ThresholdValue  int
}

// AchievementUnlock marks a milestone reached by a user. At most one unlock
// exists per (UserID, AchievementCode) pair; unlocks are never deleted.
type AchievementUnlock struct {
	UserID          string
	AchievementCode string
	UnlockedAt      time.Time
}
