package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dulagbps/records-service/internal/domain"
)

// AnnouncementRepository handles persistence for announcements.
type AnnouncementRepository interface {
	Create(ctx context.Context, a *domain.Announcement) error
	Update(ctx context.Context, a *domain.Announcement) error
	Delete(ctx context.Context, announcementID string) (*domain.Announcement, error)
	FindByAnnouncementID(ctx context.Context, announcementID string) (*domain.Announcement, error)
	List(ctx context.Context) ([]domain.Announcement, error)
}

const announcementColumns = `announcement_id, title, description, image, date_time_posted, update_count, updated_at`

type announcementRepository struct {
	pool *pgxpool.Pool
}

// NewAnnouncementRepository returns a Postgres-backed implementation.
func NewAnnouncementRepository(pool *pgxpool.Pool) AnnouncementRepository {
	return &announcementRepository{pool: pool}
}

func (r *announcementRepository) Create(ctx context.Context, a *domain.Announcement) error {
	const query = `
        INSERT INTO announcements (announcement_id, title, description, image, date_time_posted)
        VALUES ($1,$2,$3,$4,$5)`

	_, err := r.pool.Exec(ctx, query,
		a.AnnouncementID,
		a.Title,
		a.Description,
		a.Image,
		a.DateTimePosted,
	)
	return err
}

// Update bumps the edit counter alongside the mutated fields.
func (r *announcementRepository) Update(ctx context.Context, a *domain.Announcement) error {
	const query = `
        UPDATE announcements
        SET title=$1, description=$2, image=$3, update_count=update_count+1, updated_at=NOW()
        WHERE announcement_id=$4
        RETURNING update_count, updated_at`

	return r.pool.QueryRow(ctx, query,
		a.Title,
		a.Description,
		a.Image,
		a.AnnouncementID,
	).Scan(&a.UpdateCount, &a.UpdatedAt)
}

func (r *announcementRepository) Delete(ctx context.Context, announcementID string) (*domain.Announcement, error) {
	const query = `DELETE FROM announcements WHERE announcement_id=$1 RETURNING ` + announcementColumns

	var a domain.Announcement
	if err := scanAnnouncement(r.pool.QueryRow(ctx, query, announcementID), &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *announcementRepository) FindByAnnouncementID(ctx context.Context, announcementID string) (*domain.Announcement, error) {
	var a domain.Announcement
	if err := scanAnnouncement(r.pool.QueryRow(ctx,
		`SELECT `+announcementColumns+` FROM announcements WHERE announcement_id=$1`, announcementID), &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *announcementRepository) List(ctx context.Context) ([]domain.Announcement, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+announcementColumns+` FROM announcements ORDER BY date_time_posted DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Announcement
	for rows.Next() {
		var a domain.Announcement
		if err := scanAnnouncement(rows, &a); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

func scanAnnouncement(row pgx.Row, a *domain.Announcement) error {
	return row.Scan(
		&a.AnnouncementID,
		&a.Title,
		&a.Description,
		&a.Image,
		&a.DateTimePosted,
		&a.UpdateCount,
		&a.UpdatedAt,
	)
}
