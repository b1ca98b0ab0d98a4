package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/gamification-service/internal/domain"
	"github.com/spec-kit/gamification-service/internal/events"
	"github.com/spec-kit/gamification-service/internal/observability"
	"github.com/spec-kit/gamification-service/internal/repository"
	apperrors "github.com/spec-kit/gamification-service/pkg/util"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(start time.Time) *testClock {
	return &testClock{now: start}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestService(clock *testClock) (*GamificationService, *repository.MemoryStore) {
	mem := repository.NewMemoryStore()
	svc := NewGamificationService(GamificationDependencies{
		ActivityRepo:    mem.Activities(),
		AwardRepo:       mem.Awards(),
		StreakRepo:      mem.Streaks(),
		AchievementRepo: mem.Achievements(),
		ProfileRepo:     mem.Profiles(),
		Dispatcher:      events.NewInMemoryDispatcher(),
		Logger:          zap.NewNop(),
		Metrics:         observability.NewMetrics(),
		Clock:           clock.Now,
	})
	return svc, mem
}

func intPtr(v int) *int { return &v }

func TestOnTicketResolvedIsIdempotent(t *testing.T) {
	clock := newTestClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	svc, mem := newTestService(clock)
	ctx := context.Background()

	input := ResolvedInput{ResolutionTimeMinutes: intPtr(25), Rating: intPtr(5)}
	first, err := svc.OnTicketResolved(ctx, "agent-1", "TCK-1", input)
	require.NoError(t, err)
	assert.False(t, first.Duplicate)
	assert.Equal(t, 100, first.PointsGranted) // 20 base + 50 speed + 30 quality

	second, err := svc.OnTicketResolved(ctx, "agent-1", "TCK-1", input)
	require.NoError(t, err)
	assert.True(t, second.Duplicate)
	assert.Zero(t, second.PointsGranted)
	assert.Equal(t, first.Activity.ID, second.Activity.ID)

	awards, err := mem.Awards().ListByUser(ctx, "agent-1")
	require.NoError(t, err)
	assert.Len(t, awards, 3)

	total, err := mem.Awards().SumByUser(ctx, "agent-1")
	require.NoError(t, err)
	assert.Equal(t, 100, total)
}

func TestDistinctCommentsScoreSeparately(t *testing.T) {
	clock := newTestClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	svc, _ := newTestService(clock)
	ctx := context.Background()

	first, err := svc.OnCommentAdded(ctx, "agent-1", "TCK-1", "c-1", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 5, first.PointsGranted)

	second, err := svc.OnCommentAdded(ctx, "agent-1", "TCK-1", "c-2", time.Time{})
	require.NoError(t, err)
	assert.False(t, second.Duplicate)
	assert.NotEqual(t, first.Activity.ID, second.Activity.ID)

	repeat, err := svc.OnCommentAdded(ctx, "agent-1", "TCK-1", "c-1", time.Time{})
	require.NoError(t, err)
	assert.True(t, repeat.Duplicate)
}

func TestRecorderValidation(t *testing.T) {
	clock := newTestClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	svc, mem := newTestService(clock)
	ctx := context.Background()

	t.Run("empty user", func(t *testing.T) {
		_, err := svc.OnTicketCreated(ctx, "", "TCK-1", TicketCreatedInput{})
		require.Error(t, err)
	})

	t.Run("resolved without resolution time", func(t *testing.T) {
		_, err := svc.OnTicketResolved(ctx, "agent-1", "TCK-1", ResolvedInput{})
		require.Error(t, err)
		assert.Equal(t, "MISSING_REQUIRED_FIELD", apperrors.ToDomainError(err).Code)
	})

	t.Run("comment without comment id", func(t *testing.T) {
		_, err := svc.OnCommentAdded(ctx, "agent-1", "TCK-1", "", time.Time{})
		require.Error(t, err)
		assert.Equal(t, "MISSING_REQUIRED_FIELD", apperrors.ToDomainError(err).Code)
	})

	t.Run("timestamp too far ahead", func(t *testing.T) {
		_, err := svc.OnTicketCreated(ctx, "agent-1", "TCK-1", TicketCreatedInput{
			OccurredAt: clock.Now().Add(10 * time.Minute),
		})
		require.Error(t, err)
		assert.Equal(t, "INVALID_TIMESTAMP", apperrors.ToDomainError(err).Code)
	})

	t.Run("small skew tolerated", func(t *testing.T) {
		_, err := svc.OnTicketCreated(ctx, "agent-1", "TCK-2", TicketCreatedInput{
			OccurredAt: clock.Now().Add(2 * time.Minute),
		})
		require.NoError(t, err)
	})

	// nothing was recorded for the failed attempts
	activities, err := mem.Activities().ListByUser(ctx, "agent-1", 50, 0)
	require.NoError(t, err)
	assert.Len(t, activities, 1)
}

func TestFiveDayPerfectWeekScenario(t *testing.T) {
	clock := newTestClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	svc, mem := newTestService(clock)
	ctx := context.Background()

	var unlockedStreak3 int
	for i := 0; i < 5; i++ {
		result, err := svc.OnTicketResolved(ctx, "agent-1", fmt.Sprintf("TCK-%d", i), ResolvedInput{
			ResolutionTimeMinutes: intPtr(20),
			Rating:                intPtr(5),
		})
		require.NoError(t, err)
		assert.Empty(t, result.Warnings)
		assert.Equal(t, 100, result.PointsGranted, "day %d", i+1)
		require.NotNil(t, result.Streak)
		assert.Equal(t, i+1, result.Streak.CurrentLength)
		for _, code := range result.NewAchievements {
			if code == "STREAK_3" {
				unlockedStreak3++
			}
		}
		clock.Advance(24 * time.Hour)
	}

	assert.Equal(t, 1, unlockedStreak3, "streak achievement unlocks exactly once")

	profile, err := svc.GetUserGamificationProfile(ctx, "agent-1")
	require.NoError(t, err)
	assert.Equal(t, 500, profile.TotalPoints)
	assert.Equal(t, 5, profile.Streak.CurrentLength)
	assert.Equal(t, 5, profile.Stats.TotalResolved)
	assert.True(t, profile.HasUnlocked("FIRST_RESOLUTION"))
	assert.True(t, profile.HasUnlocked("STREAK_3"))
	assert.False(t, profile.HasUnlocked("STREAK_7"))

	total, err := mem.Awards().SumByUser(ctx, "agent-1")
	require.NoError(t, err)
	assert.Equal(t, profile.TotalPoints, total, "sum of awards equals total points")
}

func TestStreakBonusAtWeeklyMilestone(t *testing.T) {
	clock := newTestClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	svc, _ := newTestService(clock)
	ctx := context.Background()

	var streakBonuses int
	for i := 0; i < 7; i++ {
		result, err := svc.OnTicketResolved(ctx, "agent-1", fmt.Sprintf("TCK-%d", i), ResolvedInput{
			ResolutionTimeMinutes: intPtr(300),
		})
		require.NoError(t, err)
		for _, award := range result.Awards {
			if award.Reason == domain.ReasonStreakBonus {
				streakBonuses++
				assert.Equal(t, 7, result.Streak.CurrentLength)
			}
		}
		clock.Advance(24 * time.Hour)
	}
	assert.Equal(t, 1, streakBonuses)
}

func TestTeamworkBonus(t *testing.T) {
	clock := newTestClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	svc, _ := newTestService(clock)
	ctx := context.Background()

	below, err := svc.AwardTeamworkBonus(ctx, "agent-1", 4, time.Time{})
	require.NoError(t, err)
	assert.Zero(t, below.PointsGranted)

	clock.Advance(24 * time.Hour)
	at, err := svc.AwardTeamworkBonus(ctx, "agent-1", 5, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 25, at.PointsGranted)

	// one grant per calendar day
	repeat, err := svc.AwardTeamworkBonus(ctx, "agent-1", 9, time.Time{})
	require.NoError(t, err)
	assert.True(t, repeat.Duplicate)
}

func TestDownstreamFailureDoesNotFailRecording(t *testing.T) {
	clock := newTestClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	mem := repository.NewMemoryStore()
	svc := NewGamificationService(GamificationDependencies{
		ActivityRepo:    mem.Activities(),
		AwardRepo:       mem.Awards(),
		StreakRepo:      failingStreakRepo{},
		AchievementRepo: mem.Achievements(),
		ProfileRepo:     mem.Profiles(),
		Logger:          zap.NewNop(),
		Metrics:         observability.NewMetrics(),
		Clock:           clock.Now,
	})
	ctx := context.Background()

	result, err := svc.OnTicketResolved(ctx, "agent-1", "TCK-1", ResolvedInput{
		ResolutionTimeMinutes: intPtr(25),
	})
	require.NoError(t, err, "recording must survive a streak stage failure")
	assert.False(t, result.Duplicate)
	assert.Equal(t, 70, result.PointsGranted) // 20 base + 50 speed
	require.NotEmpty(t, result.Warnings)
	assert.Equal(t, "streak", result.Warnings[0].Stage)

	activities, err := mem.Activities().ListByUser(ctx, "agent-1", 10, 0)
	require.NoError(t, err)
	assert.Len(t, activities, 1)
}

type failingStreakRepo struct{}

func (failingStreakRepo) Get(ctx context.Context, userID string) (*domain.StreakState, error) {
	return nil, errors.New("streak store down")
}

func (failingStreakRepo) Upsert(ctx context.Context, state *domain.StreakState) error {
	return errors.New("streak store down")
}

func TestConcurrentEventsPreserveSumInvariant(t *testing.T) {
	clock := newTestClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	svc, mem := newTestService(clock)
	ctx := context.Background()

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := svc.OnTicketResolved(ctx, "agent-1", fmt.Sprintf("TCK-%d", n), ResolvedInput{
				ResolutionTimeMinutes: intPtr(300),
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	profile, err := svc.GetUserGamificationProfile(ctx, "agent-1")
	require.NoError(t, err)
	total, err := mem.Awards().SumByUser(ctx, "agent-1")
	require.NoError(t, err)
	assert.Equal(t, workers*20, total)
	assert.Equal(t, total, profile.TotalPoints)
	assert.Equal(t, workers, profile.Stats.TotalResolved)
}

func TestInitializeUserGamification(t *testing.T) {
	clock := newTestClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	svc, _ := newTestService(clock)
	ctx := context.Background()

	_, err := svc.GetUserGamificationProfile(ctx, "agent-1")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)

	require.NoError(t, svc.InitializeUserGamification(ctx, "agent-1"))
	require.NoError(t, svc.InitializeUserGamification(ctx, "agent-1"), "repeat init is a no-op")

	profile, err := svc.GetUserGamificationProfile(ctx, "agent-1")
	require.NoError(t, err)
	assert.Zero(t, profile.TotalPoints)
	assert.Empty(t, profile.UnlockedAchievements)
	assert.Zero(t, profile.Streak.CurrentLength)
}

func TestQualityBonusSuppressedOnReopen(t *testing.T) {
	clock := newTestClock(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	svc, _ := newTestService(clock)
	ctx := context.Background()

	result, err := svc.OnTicketResolved(ctx, "agent-1", "TCK-1", ResolvedInput{
		ResolutionTimeMinutes: intPtr(300),
		Rating:                intPtr(5),
		Reopened:              true,
	})
	require.NoError(t, err)
	assert.Equal(t, 20, result.PointsGranted, "base only: no speed at 300m, no quality after reopen")

	profile, err := svc.GetUserGamificationProfile(ctx, "agent-1")
	require.NoError(t, err)
	assert.Zero(t, profile.Stats.HighRatingCount)
}
