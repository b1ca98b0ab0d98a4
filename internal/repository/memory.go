package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/spec-kit/gamification-service/internal/domain"
)

// MemoryStore is an in-process implementation of every repository interface,
// exposed through per-aggregate views. It backs tests and lets the service
// run without a database (the composition root falls back to it when
// POSTGRES_DSN is unset).
type MemoryStore struct {
	mu         sync.RWMutex
	activities map[string]domain.Activity
	awards     map[string][]domain.ScoreAward
	streaks    map[string]domain.StreakState
	unlocks    map[string]map[string]domain.AchievementUnlock
	profiles   map[string]domain.UserGamificationProfile
}

// NewMemoryStore initializes an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		activities: make(map[string]domain.Activity),
		awards:     make(map[string][]domain.ScoreAward),
		streaks:    make(map[string]domain.StreakState),
		unlocks:    make(map[string]map[string]domain.AchievementUnlock),
		profiles:   make(map[string]domain.UserGamificationProfile),
	}
}

// Activities returns the activity view of the store.
func (s *MemoryStore) Activities() ActivityRepository { return memActivities{s} }

// Awards returns the score award view of the store.
func (s *MemoryStore) Awards() ScoreAwardRepository { return memAwards{s} }

// Streaks returns the streak view of the store.
func (s *MemoryStore) Streaks() StreakRepository { return memStreaks{s} }

// Achievements returns the achievement unlock view of the store.
func (s *MemoryStore) Achievements() AchievementRepository { return memAchievements{s} }

// Profiles returns the profile view of the store.
func (s *MemoryStore) Profiles() ProfileRepository { return memProfiles{s} }

type memActivities struct{ store *MemoryStore }

func (v memActivities) Insert(ctx context.Context, activity *domain.Activity) (bool, error) {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	if _, exists := v.store.activities[activity.ID]; exists {
		return false, nil
	}
	v.store.activities[activity.ID] = *activity
	return true, nil
}

func (v memActivities) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	activity, ok := v.store.activities[id]
	if !ok {
		return nil, nil
	}
	return &activity, nil
}

func (v memActivities) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Activity, error) {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	var result []domain.Activity
	for _, activity := range v.store.activities {
		if activity.UserID == userID {
			result = append(result, activity)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].OccurredAt.After(result[j].OccurredAt)
	})
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(result) {
		return nil, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], nil
}

type memAwards struct{ store *MemoryStore }

func (v memAwards) Insert(ctx context.Context, award *domain.ScoreAward) error {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	for _, existing := range v.store.awards[award.UserID] {
		if existing.ActivityID == award.ActivityID && existing.Reason == award.Reason {
			return nil
		}
	}
	v.store.awards[award.UserID] = append(v.store.awards[award.UserID], *award)
	return nil
}

func (v memAwards) ListByUser(ctx context.Context, userID string) ([]domain.ScoreAward, error) {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	return append([]domain.ScoreAward(nil), v.store.awards[userID]...), nil
}

func (v memAwards) SumByUser(ctx context.Context, userID string) (int, error) {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	total := 0
	for _, award := range v.store.awards[userID] {
		total += award.Points
	}
	return total, nil
}

type memStreaks struct{ store *MemoryStore }

func (v memStreaks) Get(ctx context.Context, userID string) (*domain.StreakState, error) {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	state, ok := v.store.streaks[userID]
	if !ok {
		return nil, nil
	}
	return &state, nil
}

func (v memStreaks) Upsert(ctx context.Context, state *domain.StreakState) error {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	stored := *state
	stored.UpdatedAt = time.Now()
	v.store.streaks[state.UserID] = stored
	return nil
}

type memAchievements struct{ store *MemoryStore }

func (v memAchievements) Insert(ctx context.Context, unlock *domain.AchievementUnlock) (bool, error) {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	byCode, ok := v.store.unlocks[unlock.UserID]
	if !ok {
		byCode = make(map[string]domain.AchievementUnlock)
		v.store.unlocks[unlock.UserID] = byCode
	}
	if _, exists := byCode[unlock.AchievementCode]; exists {
		return false, nil
	}
	byCode[unlock.AchievementCode] = *unlock
	return true, nil
}

func (v memAchievements) ListByUser(ctx context.Context, userID string) ([]domain.AchievementUnlock, error) {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	var result []domain.AchievementUnlock
	for _, unlock := range v.store.unlocks[userID] {
		result = append(result, unlock)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].UnlockedAt.Before(result[j].UnlockedAt)
	})
	return result, nil
}

type memProfiles struct{ store *MemoryStore }

func (v memProfiles) Get(ctx context.Context, userID string) (*domain.UserGamificationProfile, error) {
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	profile, ok := v.store.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &profile, nil
}

func (v memProfiles) Save(ctx context.Context, profile *domain.UserGamificationProfile) error {
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	stored := *profile
	now := time.Now()
	if existing, ok := v.store.profiles[profile.UserID]; ok {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now
	v.store.profiles[profile.UserID] = stored
	return nil
}
