package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/gamification-service/internal/domain"
	"github.com/spec-kit/gamification-service/internal/repository"
	apperrors "github.com/spec-kit/gamification-service/pkg/util"
)

// AchievementEvaluator re-checks a user's cumulative stats against the
// static milestone catalog and records any newly satisfied unlocks.
type AchievementEvaluator struct {
	definitions []domain.AchievementDefinition
	profiles    repository.ProfileRepository
	streaks     repository.StreakRepository
	unlocks     repository.AchievementRepository
	logger      *zap.Logger
	now         func() time.Time
}

// NewAchievementEvaluator constructs the evaluator.
func NewAchievementEvaluator(
	definitions []domain.AchievementDefinition,
	profiles repository.ProfileRepository,
	streaks repository.StreakRepository,
	unlocks repository.AchievementRepository,
	logger *zap.Logger,
	now func() time.Time,
) *AchievementEvaluator {
	if now == nil {
		now = time.Now
	}
	return &AchievementEvaluator{
		definitions: definitions,
		profiles:    profiles,
		streaks:     streaks,
		unlocks:     unlocks,
		logger:      logger,
		now:         now,
	}
}

// Evaluate returns the codes unlocked by this call, in catalog order. An
// achievement unlocks the first time its metric meets or exceeds the
// threshold; the store's uniqueness guarantee makes re-evaluation idempotent.
// Definitions with an unrecognized metric are skipped with a warning.
func (e *AchievementEvaluator) Evaluate(ctx context.Context, userID string) ([]string, error) {
	profile, err := e.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = &domain.UserGamificationProfile{UserID: userID}
	}
	streak, err := e.streaks.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	var newlyUnlocked []string
	for _, def := range e.definitions {
		value, err := e.metricValue(def.ThresholdMetric, profile, streak)
		if err != nil {
			e.logger.Warn("skipping achievement definition",
				zap.String("code", def.Code),
				zap.String("metric", string(def.ThresholdMetric)),
				zap.Error(err))
			continue
		}
		if value < def.ThresholdValue {
			continue
		}
		inserted, err := e.unlocks.Insert(ctx, &domain.AchievementUnlock{
			UserID:          userID,
			AchievementCode: def.Code,
			UnlockedAt:      e.now(),
		})
		if err != nil {
			return newlyUnlocked, err
		}
		if inserted {
			newlyUnlocked = append(newlyUnlocked, def.Code)
		}
	}
	return newlyUnlocked, nil
}

// Definition returns the catalog entry for a code, if present.
func (e *AchievementEvaluator) Definition(code string) (domain.AchievementDefinition, bool) {
	for _, def := range e.definitions {
		if def.Code == code {
			return def, true
		}
	}
	return domain.AchievementDefinition{}, false
}

// Definitions returns the full catalog.
func (e *AchievementEvaluator) Definitions() []domain.AchievementDefinition {
	return e.definitions
}

func (e *AchievementEvaluator) metricValue(metric domain.ThresholdMetric, profile *domain.UserGamificationProfile, streak *domain.StreakState) (int, error) {
	switch metric {
	case domain.MetricTotalResolved:
		return profile.Stats.TotalResolved, nil
	case domain.MetricStreakLength:
		if streak == nil {
			return 0, nil
		}
		return streak.CurrentLength, nil
	case domain.MetricQualityRatingCount:
		return profile.Stats.HighRatingCount, nil
	case domain.MetricTotalComments:
		return profile.Stats.TotalComments, nil
	case domain.MetricTotalPoints:
		return profile.TotalPoints, nil
	default:
		return 0, apperrors.ErrUnknownAchievementMetric
	}
}
