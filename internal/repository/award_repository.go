package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/gamification-service/internal/domain"
)

// ScoreAwardRepository encapsulates score award persistence.
type ScoreAwardRepository interface {
	Insert(ctx context.Context, award *domain.ScoreAward) error
	ListByUser(ctx context.Context, userID string) ([]domain.ScoreAward, error)
	SumByUser(ctx context.Context, userID string) (int, error)
}

type scoreAwardRepository struct {
	pool *pgxpool.Pool
}

// NewScoreAwardRepository instantiates repository.
func NewScoreAwardRepository(pool *pgxpool.Pool) ScoreAwardRepository {
	return &scoreAwardRepository{pool: pool}
}

func (r *scoreAwardRepository) Insert(ctx context.Context, award *domain.ScoreAward) error {
	const query = `
        INSERT INTO score_awards (activity_id, user_id, points, reason)
        VALUES ($1,$2,$3,$4)
        ON CONFLICT (activity_id, reason) DO NOTHING`
	_, err := r.pool.Exec(ctx, query, award.ActivityID, award.UserID, award.Points, award.Reason)
	return err
}

func (r *scoreAwardRepository) ListByUser(ctx context.Context, userID string) ([]domain.ScoreAward, error) {
	const query = `
        SELECT activity_id, user_id, points, reason
        FROM score_awards WHERE user_id=$1
        ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ScoreAward
	for rows.Next() {
		var award domain.ScoreAward
		if err := rows.Scan(&award.ActivityID, &award.UserID, &award.Points, &award.Reason); err != nil {
			return nil, err
		}
		result = append(result, award)
	}
	return result, rows.Err()
}

func (r *scoreAwardRepository) SumByUser(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COALESCE(SUM(points), 0) FROM score_awards WHERE user_id=$1`
	var total int
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}
