package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/gamification-service/internal/domain"
	"github.com/spec-kit/gamification-service/internal/repository"
)

func newTestEvaluator(definitions []domain.AchievementDefinition) (*AchievementEvaluator, *repository.MemoryStore) {
	mem := repository.NewMemoryStore()
	eval := NewAchievementEvaluator(definitions, mem.Profiles(), mem.Streaks(), mem.Achievements(), zap.NewNop(), nil)
	return eval, mem
}

func TestEvaluateUnlocksAtThreshold(t *testing.T) {
	definitions := []domain.AchievementDefinition{
		{Code: "RESOLVED_10", Title: "Problem Solver", ThresholdMetric: domain.MetricTotalResolved, ThresholdValue: 10},
	}
	eval, mem := newTestEvaluator(definitions)
	ctx := context.Background()

	require.NoError(t, mem.Profiles().Save(ctx, &domain.UserGamificationProfile{
		UserID: "agent-1",
		Stats:  domain.ProfileStats{TotalResolved: 9},
	}))

	codes, err := eval.Evaluate(ctx, "agent-1")
	require.NoError(t, err)
	assert.Empty(t, codes, "below threshold")

	require.NoError(t, mem.Profiles().Save(ctx, &domain.UserGamificationProfile{
		UserID: "agent-1",
		Stats:  domain.ProfileStats{TotalResolved: 10},
	}))

	codes, err = eval.Evaluate(ctx, "agent-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"RESOLVED_10"}, codes)
}

func TestEvaluateIsIdempotent(t *testing.T) {
	definitions := []domain.AchievementDefinition{
		{Code: "FIRST_RESOLUTION", Title: "First Blood", ThresholdMetric: domain.MetricTotalResolved, ThresholdValue: 1},
	}
	eval, mem := newTestEvaluator(definitions)
	ctx := context.Background()

	require.NoError(t, mem.Profiles().Save(ctx, &domain.UserGamificationProfile{
		UserID: "agent-1",
		Stats:  domain.ProfileStats{TotalResolved: 3},
	}))

	first, err := eval.Evaluate(ctx, "agent-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"FIRST_RESOLUTION"}, first)

	second, err := eval.Evaluate(ctx, "agent-1")
	require.NoError(t, err)
	assert.Empty(t, second, "already-unlocked achievements are not reported again")

	unlocks, err := mem.Achievements().ListByUser(ctx, "agent-1")
	require.NoError(t, err)
	assert.Len(t, unlocks, 1)
}

func TestEvaluateSkipsUnknownMetric(t *testing.T) {
	definitions := []domain.AchievementDefinition{
		{Code: "MYSTERY", Title: "Mystery", ThresholdMetric: "TOTAL_KUDOS", ThresholdValue: 1},
		{Code: "COMMENTS_25", Title: "Conversationalist", ThresholdMetric: domain.MetricTotalComments, ThresholdValue: 25},
	}
	eval, mem := newTestEvaluator(definitions)
	ctx := context.Background()

	require.NoError(t, mem.Profiles().Save(ctx, &domain.UserGamificationProfile{
		UserID: "agent-1",
		Stats:  domain.ProfileStats{TotalComments: 30},
	}))

	codes, err := eval.Evaluate(ctx, "agent-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"COMMENTS_25"}, codes, "unknown metric is skipped, the rest still evaluates")
}

func TestEvaluateStreakMetricWithoutState(t *testing.T) {
	definitions := []domain.AchievementDefinition{
		{Code: "STREAK_3", Title: "On a Roll", ThresholdMetric: domain.MetricStreakLength, ThresholdValue: 3},
	}
	eval, mem := newTestEvaluator(definitions)
	ctx := context.Background()

	codes, err := eval.Evaluate(ctx, "agent-1")
	require.NoError(t, err)
	assert.Empty(t, codes, "no streak state counts as zero")

	require.NoError(t, mem.Streaks().Upsert(ctx, &domain.StreakState{
		UserID:        "agent-1",
		CurrentLength: 3,
		LongestLength: 3,
	}))

	codes, err = eval.Evaluate(ctx, "agent-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"STREAK_3"}, codes)
}
