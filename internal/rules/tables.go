package rules

import "github.com/spec-kit/gamification-service/internal/domain"

// basePoints maps activity types to their base award. TeamBonus activities
// carry no base points; the teamwork bonus itself is the grant.
var basePoints = map[domain.ActivityType]int{
	domain.ActivityTicketCreated:  2,
	domain.ActivityTicketAssigned: 3,
	domain.ActivityCommentAdded:   5,
	domain.ActivityTicketResolved: 20,
	domain.ActivityTeamBonus:      0,
}

// BasePoints returns the base award for an activity type.
func BasePoints(activityType domain.ActivityType) int {
	return basePoints[activityType]
}

// speedTier is one row of the resolution-latency bonus table. Boundaries are
// exclusive upper bounds in minutes: a resolution in exactly 30 minutes falls
// into the <60 tier.
type speedTier struct {
	UpperBoundMinutes int
	Points            int
}

var speedTiers = []speedTier{
	{UpperBoundMinutes: 30, Points: 50},
	{UpperBoundMinutes: 60, Points: 30},
	{UpperBoundMinutes: 120, Points: 20},
	{UpperBoundMinutes: 240, Points: 10},
}

// qualityPoints maps satisfaction ratings to bonus points. Applies only when
// the ticket was never reopened.
var qualityPoints = map[int]int{
	5: 30,
	4: 15,
	3: 5,
}

// HighRatingFloor is the minimum rating counted toward quality achievements.
const HighRatingFloor = 4

const (
	// TeamworkCommentThreshold is the helpful-comment count required before
	// a teamwork bonus is granted.
	TeamworkCommentThreshold = 5

	// TeamworkBonusPoints is the flat teamwork grant; it does not scale with
	// the count beyond the threshold.
	TeamworkBonusPoints = 25

	// StreakMilestoneInterval is the streak length interval (in days) at
	// which a streak bonus is granted.
	StreakMilestoneInterval = 7

	// StreakBonusPoints is the flat grant per streak milestone.
	StreakBonusPoints = 25
)

// DefaultAchievements is the static milestone catalog.
var DefaultAchievements = []domain.AchievementDefinition{
	{Code: "FIRST_RESOLUTION", Title: "First Blood", Description: "Resolve your first ticket", ThresholdMetric: domain.MetricTotalResolved, ThresholdValue: 1},
	{Code: "RESOLVED_10", Title: "Troubleshooter", Description: "Resolve 10 tickets", ThresholdMetric: domain.MetricTotalResolved, ThresholdValue: 10},
	{Code: "RESOLVED_50", Title: "Firefighter", Description: "Resolve 50 tickets", ThresholdMetric: domain.MetricTotalResolved, ThresholdValue: 50},
	{Code: "RESOLVED_100", Title: "Resolution Machine", Description: "Resolve 100 tickets", ThresholdMetric: domain.MetricTotalResolved, ThresholdValue: 100},
	{Code: "STREAK_3", Title: "On A Roll", Description: "Stay active 3 days in a row", ThresholdMetric: domain.MetricStreakLength, ThresholdValue: 3},
	{Code: "STREAK_7", Title: "Full Week", Description: "Stay active 7 days in a row", ThresholdMetric: domain.MetricStreakLength, ThresholdValue: 7},
	{Code: "STREAK_30", Title: "Iron Agent", Description: "Stay active 30 days in a row", ThresholdMetric: domain.MetricStreakLength, ThresholdValue: 30},
	{Code: "QUALITY_10", Title: "Customer Champion", Description: "Earn 10 high satisfaction ratings", ThresholdMetric: domain.MetricQualityRatingCount, ThresholdValue: 10},
	{Code: "COMMENTS_25", Title: "Communicator", Description: "Add 25 ticket comments", ThresholdMetric: domain.MetricTotalComments, ThresholdValue: 25},
	{Code: "POINTS_1000", Title: "Point Collector", Description: "Accumulate 1000 points", ThresholdMetric: domain.MetricTotalPoints, ThresholdValue: 1000},
}
