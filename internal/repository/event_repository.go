package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dulagbps/records-service/internal/domain"
)

// EventRepository handles persistence for scheduled events.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	Update(ctx context.Context, event *domain.Event) error
	Delete(ctx context.Context, eventID string) error
	FindByEventID(ctx context.Context, eventID string) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	ListUpcoming(ctx context.Context, from time.Time, limit int) ([]domain.Event, error)
}

const eventColumns = `event_id, event_title, location, event_date, event_time, category, created_at, updated_at`

type eventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository returns a Postgres-backed implementation.
func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &eventRepository{pool: pool}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	const query = `
        INSERT INTO events (event_id, event_title, location, event_date, event_time, category)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		event.EventID,
		event.EventTitle,
		event.Location,
		event.Date,
		event.Time,
		event.Category,
	).Scan(&event.CreatedAt, &event.UpdatedAt)
}

func (r *eventRepository) Update(ctx context.Context, event *domain.Event) error {
	const query = `
        UPDATE events
        SET event_title=$1, location=$2, event_date=$3, event_time=$4, category=$5, updated_at=NOW()
        WHERE event_id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		event.EventTitle,
		event.Location,
		event.Date,
		event.Time,
		event.Category,
		event.EventID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, eventID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM events WHERE event_id=$1`, eventID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *eventRepository) FindByEventID(ctx context.Context, eventID string) (*domain.Event, error) {
	var event domain.Event
	if err := scanEvent(r.pool.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE event_id=$1`, eventID), &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) List(ctx context.Context) ([]domain.Event, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+eventColumns+` FROM events ORDER BY event_date ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (r *eventRepository) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]domain.Event, error) {
	if limit <= 0 {
		limit = 3
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+eventColumns+` FROM events WHERE event_date >= $1 ORDER BY event_date ASC LIMIT $2`,
		from, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEvents(rows)
}

func scanEvent(row pgx.Row, event *domain.Event) error {
	return row.Scan(
		&event.EventID,
		&event.EventTitle,
		&event.Location,
		&event.Date,
		&event.Time,
		&event.Category,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
}

func collectEvents(rows pgx.Rows) ([]domain.Event, error) {
	var result []domain.Event
	for rows.Next() {
		var event domain.Event
		if err := scanEvent(rows, &event); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}
