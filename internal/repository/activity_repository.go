package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dulagbps/records-service/internal/domain"
)

// ActivityRepository persists the bounded recent-activity feed.
type ActivityRepository interface {
	// Create inserts the entry and trims the feed down to keep entries,
	// oldest first.
	Create(ctx context.Context, activity *domain.Activity, keep int) error
	ListRecent(ctx context.Context, limit int) ([]domain.Activity, error)
	// DeleteOlderThan removes entries created before the cutoff and returns
	// how many were deleted.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository returns a Postgres-backed implementation.
func NewActivityRepository(pool *pgxpool.Pool) ActivityRepository {
	return &activityRepository{pool: pool}
}

func (r *activityRepository) Create(ctx context.Context, activity *domain.Activity, keep int) error {
	const insert = `
        INSERT INTO activities (id, activity_type, subject_id, subject_name)
        VALUES ($1,$2,$3,$4)
        RETURNING created_at`

	if err := r.pool.QueryRow(ctx, insert,
		activity.ID,
		activity.Type,
		activity.SubjectID,
		activity.SubjectName,
	).Scan(&activity.CreatedAt); err != nil {
		return err
	}

	if keep <= 0 {
		return nil
	}

	const trim = `
        DELETE FROM activities
        WHERE id NOT IN (SELECT id FROM activities ORDER BY created_at DESC LIMIT $1)`
	_, err := r.pool.Exec(ctx, trim, keep)
	return err
}

func (r *activityRepository) ListRecent(ctx context.Context, limit int) ([]domain.Activity, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.pool.Query(ctx,
		`SELECT id, activity_type, subject_id, subject_name, created_at
         FROM activities ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Activity
	for rows.Next() {
		var activity domain.Activity
		if err := rows.Scan(
			&activity.ID,
			&activity.Type,
			&activity.SubjectID,
			&activity.SubjectName,
			&activity.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, activity)
	}
	return result, rows.Err()
}

func (r *activityRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM activities WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
