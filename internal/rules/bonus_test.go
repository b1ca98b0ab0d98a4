package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/gamification-service/internal/domain"
)

func TestSpeedBonusTiers(t *testing.T) {
	cases := []struct {
		name    string
		minutes int
		want    int
	}{
		{"instant resolution", 0, 50},
		{"under half hour", 29, 50},
		{"exactly thirty minutes falls into next tier", 30, 30},
		{"under an hour", 59, 30},
		{"exactly one hour", 60, 20},
		{"under two hours", 119, 20},
		{"exactly two hours", 120, 10},
		{"under four hours", 239, 10},
		{"exactly four hours", 240, 0},
		{"five hours", 300, 0},
		{"negative input", -1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SpeedBonus(tc.minutes))
		})
	}
}

func TestQualityBonus(t *testing.T) {
	assert.Equal(t, 30, QualityBonus(5, false))
	assert.Equal(t, 15, QualityBonus(4, false))
	assert.Equal(t, 5, QualityBonus(3, false))
	assert.Equal(t, 0, QualityBonus(2, false))
	assert.Equal(t, 0, QualityBonus(1, false))
	assert.Equal(t, 0, QualityBonus(0, false))
	assert.Equal(t, 0, QualityBonus(6, false))
}

func TestQualityBonusReopenOverridesRating(t *testing.T) {
	for rating := 0; rating <= 5; rating++ {
		assert.Zero(t, QualityBonus(rating, true), "rating %d with reopen", rating)
	}
}

func TestTeamworkBonusThreshold(t *testing.T) {
	assert.Equal(t, 0, TeamworkBonus(0))
	assert.Equal(t, 0, TeamworkBonus(4))
	assert.Equal(t, 25, TeamworkBonus(5))
	// flat grant, no scaling past the threshold
	assert.Equal(t, 25, TeamworkBonus(50))
}

func TestStreakBonusMilestones(t *testing.T) {
	assert.Equal(t, 0, StreakBonus(0))
	assert.Equal(t, 0, StreakBonus(1))
	assert.Equal(t, 0, StreakBonus(5))
	assert.Equal(t, 25, StreakBonus(7))
	assert.Equal(t, 0, StreakBonus(8))
	assert.Equal(t, 25, StreakBonus(14))
}

func TestBasePointsTable(t *testing.T) {
	assert.Equal(t, 2, BasePoints(domain.ActivityTicketCreated))
	assert.Equal(t, 3, BasePoints(domain.ActivityTicketAssigned))
	assert.Equal(t, 5, BasePoints(domain.ActivityCommentAdded))
	assert.Equal(t, 20, BasePoints(domain.ActivityTicketResolved))
	assert.Equal(t, 0, BasePoints(domain.ActivityTeamBonus))
}

func TestDefaultAchievementsAreWellFormed(t *testing.T) {
	seen := map[string]bool{}
	for _, def := range DefaultAchievements {
		assert.False(t, seen[def.Code], "duplicate code %s", def.Code)
		seen[def.Code] = true
		assert.NotEmpty(t, def.Title)
		assert.Greater(t, def.ThresholdValue, 0)
	}
}
