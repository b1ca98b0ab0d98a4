package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/gamification-service/internal/domain"
)

// ActivityRepository encapsulates activity persistence. Inserts are keyed on
// the activity's deterministic ID so retried lifecycle events land exactly once.
type ActivityRepository interface {
	// Insert stores the activity. Returns false when an activity with the
	// same ID already exists; the stored record is left untouched.
	Insert(ctx context.Context, activity *domain.Activity) (bool, error)
	// GetByID returns the activity, or nil when no such record exists.
	GetByID(ctx context.Context, id string) (*domain.Activity, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Activity, error)
}

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository instantiates repository.
func NewActivityRepository(pool *pgxpool.Pool) ActivityRepository {
	return &activityRepository{pool: pool}
}

func (r *activityRepository) Insert(ctx context.Context, activity *domain.Activity) (bool, error) {
	const query = `
        INSERT INTO activities (id, user_id, activity_type, description, metadata, occurred_at, recorded_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        ON CONFLICT (id) DO NOTHING`
	cmd, err := r.pool.Exec(ctx, query,
		activity.ID,
		activity.UserID,
		activity.Type,
		activity.Description,
		activity.Metadata,
		activity.OccurredAt,
		activity.RecordedAt,
	)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *activityRepository) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	const query = `
        SELECT id, user_id, activity_type, description, metadata, occurred_at, recorded_at
        FROM activities WHERE id=$1`
	var activity domain.Activity
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&activity.ID,
		&activity.UserID,
		&activity.Type,
		&activity.Description,
		&activity.Metadata,
		&activity.OccurredAt,
		&activity.RecordedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &activity, nil
}

func (r *activityRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Activity, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, user_id, activity_type, description, metadata, occurred_at, recorded_at
        FROM activities WHERE user_id=$1
        ORDER BY occurred_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanActivities(rows)
}

func scanActivities(rows pgx.Rows) ([]domain.Activity, error) {
	var result []domain.Activity
	for rows.Next() {
		var activity domain.Activity
		if err := rows.Scan(
			&activity.ID,
			&activity.UserID,
			&activity.Type,
			&activity.Description,
			&activity.Metadata,
			&activity.OccurredAt,
			&activity.RecordedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, activity)
	}
	return result, rows.Err()
}
