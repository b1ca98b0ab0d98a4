package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/gamification-service/internal/domain"
)

// AchievementRepository encapsulates achievement unlock persistence. The
// (user_id, achievement_code) pair is unique at the store boundary, so a
// concurrent double-unlock collapses to a single row.
type AchievementRepository interface {
	// Insert records the unlock. Returns false when the pair already exists.
	Insert(ctx context.Context, unlock *domain.AchievementUnlock) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]domain.AchievementUnlock, error)
}

type achievementRepository struct {
	pool *pgxpool.Pool
}

// NewAchievementRepository instantiates repository.
func NewAchievementRepository(pool *pgxpool.Pool) AchievementRepository {
	return &achievementRepository{pool: pool}
}

func (r *achievementRepository) Insert(ctx context.Context, unlock *domain.AchievementUnlock) (bool, error) {
	const query = `
        INSERT INTO achievement_unlocks (user_id, achievement_code, unlocked_at)
        VALUES ($1,$2,$3)
        ON CONFLICT (user_id, achievement_code) DO NOTHING`
	cmd, err := r.pool.Exec(ctx, query, unlock.UserID, unlock.AchievementCode, unlock.UnlockedAt)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *achievementRepository) ListByUser(ctx context.Context, userID string) ([]domain.AchievementUnlock, error) {
	const query = `
        SELECT user_id, achievement_code, unlocked_at
        FROM achievement_unlocks WHERE user_id=$1
        ORDER BY unlocked_at ASC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AchievementUnlock
	for rows.Next() {
		var unlock domain.AchievementUnlock
		if err := rows.Scan(&unlock.UserID, &unlock.AchievementCode, &unlock.UnlockedAt); err != nil {
			return nil, err
		}
		result = append(result, unlock)
	}
	return result, rows.Err()
}
