package service

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/gamification-service/internal/config"
	"github.com/spec-kit/gamification-service/internal/events"
	"github.com/spec-kit/gamification-service/internal/persistence"
)

// LeaderboardEntry is one row of the points leaderboard.
type LeaderboardEntry struct {
	Rank   int
	UserID string
	Points int
}

// LeaderboardService maintains a Redis sorted set of total points, fed by
// points-awarded events. Without a reachable Redis it degrades to a no-op:
// the leaderboard is a display concern and never blocks scoring.
type LeaderboardService struct {
	client       *redis.Client
	key          string
	defaultLimit int
	logger       *zap.Logger
}

// NewLeaderboardService constructs the service.
func NewLeaderboardService(store *persistence.Redis, cfg config.GamificationConfig, logger *zap.Logger) *LeaderboardService {
	var client *redis.Client
	if store != nil {
		client = store.Client
	}
	limit := cfg.LeaderboardLimit
	if limit <= 0 {
		limit = 20
	}
	return &LeaderboardService{
		client:       client,
		key:          cfg.LeaderboardKey,
		defaultLimit: limit,
		logger:       logger,
	}
}

// RegisterHandlers subscribes to scoring events.
func (l *LeaderboardService) RegisterHandlers(dispatcher events.Dispatcher) {
	if dispatcher == nil {
		return
	}
	dispatcher.Subscribe(events.EventPointsAwarded, l.handlePointsAwarded)
}

func (l *LeaderboardService) handlePointsAwarded(ctx context.Context, event events.Event) error {
	if l.client == nil {
		return nil
	}
	payload, ok := event.Payload.(events.PointsAwardedPayload)
	if !ok {
		return nil
	}
	if err := l.client.ZIncrBy(ctx, l.key, float64(payload.Points), event.UserID).Err(); err != nil {
		l.logger.Warn("leaderboard update failed",
			zap.String("user_id", event.UserID),
			zap.Int("points", payload.Points),
			zap.Error(err))
	}
	return nil
}

// Top returns the highest scoring users, best first.
func (l *LeaderboardService) Top(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if l.client == nil {
		return []LeaderboardEntry{}, nil
	}
	if limit <= 0 {
		limit = l.defaultLimit
	}
	members, err := l.client.ZRevRangeWithScores(ctx, l.key, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]LeaderboardEntry, 0, len(members))
	for i, member := range members {
		userID, _ := member.Member.(string)
		entries = append(entries, LeaderboardEntry{
			Rank:   i + 1,
			UserID: userID,
			Points: int(member.Score),
		})
	}
	return entries, nil
}
