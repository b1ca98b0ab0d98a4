package rules

// Bonus calculators are pure and never fail: out-of-range or missing inputs
// resolve to the no-bonus branch.

// SpeedBonus returns bonus points for resolving a ticket within the given
// number of minutes since creation.
func SpeedBonus(resolutionMinutes int) int {
	if resolutionMinutes < 0 {
		return 0
	}
	for _, tier := range speedTiers {
		if resolutionMinutes < tier.UpperBoundMinutes {
			return tier.Points
		}
	}
	return 0
}

// QualityBonus returns bonus points for a satisfaction rating. A reopened
// ticket yields no quality bonus regardless of rating.
func QualityBonus(rating int, hadReopen bool) int {
	if hadReopen {
		return 0
	}
	return qualityPoints[rating]
}

// TeamworkBonus returns the flat teamwork grant once the helpful-comment
// count reaches the threshold.
func TeamworkBonus(helpfulCommentCount int) int {
	if helpfulCommentCount >= TeamworkCommentThreshold {
		return TeamworkBonusPoints
	}
	return 0
}

// StreakBonus returns the flat milestone grant when the streak length sits
// exactly on a milestone interval.
func StreakBonus(streakLength int) int {
	if streakLength > 0 && streakLength%StreakMilestoneInterval == 0 {
		return StreakBonusPoints
	}
	return 0
}
