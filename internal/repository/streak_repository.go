package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/gamification-service/internal/domain"
)

// StreakRepository encapsulates per-user streak state persistence.
type StreakRepository interface {
	// Get returns the user's streak state, or nil when none is recorded yet.
	Get(ctx context.Context, userID string) (*domain.StreakState, error)
	Upsert(ctx context.Context, state *domain.StreakState) error
}

type streakRepository struct {
	pool *pgxpool.Pool
}

// NewStreakRepository instantiates repository.
func NewStreakRepository(pool *pgxpool.Pool) StreakRepository {
	return &streakRepository{pool: pool}
}

func (r *streakRepository) Get(ctx context.Context, userID string) (*domain.StreakState, error) {
	const query = `
        SELECT user_id, current_length, longest_length, last_activity_date, updated_at
        FROM streak_states WHERE user_id=$1`
	var state domain.StreakState
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&state.UserID,
		&state.CurrentLength,
		&state.LongestLength,
		&state.LastActivityDate,
		&state.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &state, nil
}

func (r *streakRepository) Upsert(ctx context.Context, state *domain.StreakState) error {
	const query = `
        INSERT INTO streak_states (user_id, current_length, longest_length, last_activity_date, updated_at)
        VALUES ($1,$2,$3,$4,NOW())
        ON CONFLICT (user_id) DO UPDATE SET
            current_length=EXCLUDED.current_length,
            longest_length=EXCLUDED.longest_length,
            last_activity_date=EXCLUDED.last_activity_date,
            updated_at=NOW()`
	_, err := r.pool.Exec(ctx, query,
		state.UserID,
		state.CurrentLength,
		state.LongestLength,
		state.LastActivityDate,
	)
	return err
}
