package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dulagbps/records-service/internal/domain"
)

// ResidentRepository handles persistence for resident records.
type ResidentRepository interface {
	Create(ctx context.Context, resident *domain.Resident) error
	Update(ctx context.Context, resident *domain.Resident) error
	Delete(ctx context.Context, residentID string) (*domain.Resident, error)
	FindByResidentID(ctx context.Context, residentID string) (*domain.Resident, error)
	List(ctx context.Context) ([]domain.Resident, error)
	CountGroupedBy(ctx context.Context, column ResidentGroupColumn) (map[string]int, error)
	BirthdateList(ctx context.Context) ([]domain.Resident, error)
	Count(ctx context.Context) (int, error)
}

// ResidentGroupColumn names the columns statistics may group on. Keeping
// this a closed set avoids interpolating caller input into SQL.
type ResidentGroupColumn string

const (
	GroupByGender        ResidentGroupColumn = "gender"
	GroupByMaritalStatus ResidentGroupColumn = "marital_status"
	GroupByOccupation    ResidentGroupColumn = "occupation"
)

const residentColumns = `resident_id, full_name, birthdate, gender, contact_number, address, marital_status, occupation, created_at, updated_at`

type residentRepository struct {
	pool *pgxpool.Pool
}

// NewResidentRepository returns a Postgres-backed implementation.
func NewResidentRepository(pool *pgxpool.Pool) ResidentRepository {
	return &residentRepository{pool: pool}
}

func (r *residentRepository) Create(ctx context.Context, resident *domain.Resident) error {
	const query = `
        INSERT INTO residents (resident_id, full_name, birthdate, gender, contact_number, address, marital_status, occupation)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		resident.ResidentID,
		resident.FullName,
		resident.Birthdate,
		resident.Gender,
		resident.ContactNumber,
		resident.Address,
		resident.MaritalStatus,
		resident.Occupation,
	).Scan(&resident.CreatedAt, &resident.UpdatedAt)
}

func (r *residentRepository) Update(ctx context.Context, resident *domain.Resident) error {
	const query = `
        UPDATE residents
        SET full_name=$1, birthdate=$2, gender=$3, contact_number=$4, address=$5, marital_status=$6, occupation=$7, updated_at=NOW()
        WHERE resident_id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		resident.FullName,
		resident.Birthdate,
		resident.Gender,
		resident.ContactNumber,
		resident.Address,
		resident.MaritalStatus,
		resident.Occupation,
		resident.ResidentID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *residentRepository) Delete(ctx context.Context, residentID string) (*domain.Resident, error) {
	const query = `DELETE FROM residents WHERE resident_id=$1 RETURNING ` + residentColumns

	var resident domain.Resident
	if err := scanResident(r.pool.QueryRow(ctx, query, residentID), &resident); err != nil {
		return nil, err
	}
	return &resident, nil
}

func (r *residentRepository) FindByResidentID(ctx context.Context, residentID string) (*domain.Resident, error) {
	var resident domain.Resident
	if err := scanResident(r.pool.QueryRow(ctx,
		`SELECT `+residentColumns+` FROM residents WHERE resident_id=$1`, residentID), &resident); err != nil {
		return nil, err
	}
	return &resident, nil
}

func (r *residentRepository) List(ctx context.Context) ([]domain.Resident, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+residentColumns+` FROM residents ORDER BY resident_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectResidents(rows)
}

func (r *residentRepository) CountGroupedBy(ctx context.Context, column ResidentGroupColumn) (map[string]int, error) {
	switch column {
	case GroupByGender, GroupByMaritalStatus, GroupByOccupation:
	default:
		return nil, pgx.ErrNoRows
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+string(column)+`, COUNT(*) FROM residents GROUP BY `+string(column))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var key string
		var count int
		if err := rows.Scan(&key, &count); err != nil {
			return nil, err
		}
		counts[key] = count
	}
	return counts, rows.Err()
}

func (r *residentRepository) BirthdateList(ctx context.Context) ([]domain.Resident, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+residentColumns+` FROM residents`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectResidents(rows)
}

func (r *residentRepository) Count(ctx context.Context) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM residents`).Scan(&total)
	return total, err
}

func scanResident(row pgx.Row, resident *domain.Resident) error {
	return row.Scan(
		&resident.ResidentID,
		&resident.FullName,
		&resident.Birthdate,
		&resident.Gender,
		&resident.ContactNumber,
		&resident.Address,
		&resident.MaritalStatus,
		&resident.Occupation,
		&resident.CreatedAt,
		&resident.UpdatedAt,
	)
}

func collectResidents(rows pgx.Rows) ([]domain.Resident, error) {
	var result []domain.Resident
	for rows.Next() {
		var resident domain.Resident
		if err := scanResident(rows, &resident); err != nil {
			return nil, err
		}
		result = append(result, resident)
	}
	return result, rows.Err()
}
