package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/gamification-service/internal/domain"
)

// ProfileRepository encapsulates the per-user cumulative profile: total
// points and the counter block the achievement evaluator reads.
type ProfileRepository interface {
	// Get returns the stored profile, or nil when the user has none yet.
	Get(ctx context.Context, userID string) (*domain.UserGamificationProfile, error)
	Save(ctx context.Context, profile *domain.UserGamificationProfile) error
}

type profileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository instantiates repository.
func NewProfileRepository(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepository{pool: pool}
}

func (r *profileRepository) Get(ctx context.Context, userID string) (*domain.UserGamificationProfile, error) {
	const query = `
        SELECT user_id, total_points, total_created, total_assigned, total_resolved,
               total_comments, high_rating_count, teamwork_events, created_at, updated_at
        FROM user_profiles WHERE user_id=$1`
	var profile domain.UserGamificationProfile
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.TotalPoints,
		&profile.Stats.TotalCreated,
		&profile.Stats.TotalAssigned,
		&profile.Stats.TotalResolved,
		&profile.Stats.TotalComments,
		&profile.Stats.HighRatingCount,
		&profile.Stats.TeamworkEvents,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Save(ctx context.Context, profile *domain.UserGamificationProfile) error {
	const query = `
        INSERT INTO user_profiles (user_id, total_points, total_created, total_assigned, total_resolved,
                                   total_comments, high_rating_count, teamwork_events, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW(),NOW())
        ON CONFLICT (user_id) DO UPDATE SET
            total_points=EXCLUDED.total_points,
            total_created=EXCLUDED.total_created,
            total_assigned=EXCLUDED.total_assigned,
            total_resolved=EXCLUDED.total_resolved,
            total_comments=EXCLUDED.total_comments,
            high_rating_count=EXCLUDED.high_rating_count,
            teamwork_events=EXCLUDED.teamwork_events,
            updated_at=NOW()`
	_, err := r.pool.Exec(ctx, query,
		profile.UserID,
		profile.TotalPoints,
		profile.Stats.TotalCreated,
		profile.Stats.TotalAssigned,
		profile.Stats.TotalResolved,
		profile.Stats.TotalComments,
		profile.Stats.HighRatingCount,
		profile.Stats.TeamworkEvents,
	)
	return err
}
