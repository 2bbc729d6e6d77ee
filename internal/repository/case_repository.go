package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dulagbps/records-service/internal/domain"
)

// CaseRepository handles persistence for case records.
type CaseRepository interface {
	Create(ctx context.Context, c *domain.Case) error
	Update(ctx context.Context, c *domain.Case) error
	Delete(ctx context.Context, caseID string) error
	FindByCaseID(ctx context.Context, caseID string) (*domain.Case, error)
	List(ctx context.Context) ([]domain.Case, error)
}

const caseColumns = `case_id, case_name, case_type, case_status, complainant_name, date_filed, created_at, updated_at`

type caseRepository struct {
	pool *pgxpool.Pool
}

// NewCaseRepository returns a Postgres-backed implementation.
func NewCaseRepository(pool *pgxpool.Pool) CaseRepository {
	return &caseRepository{pool: pool}
}

func (r *caseRepository) Create(ctx context.Context, c *domain.Case) error {
	const query = `
        INSERT INTO cases (case_id, case_name, case_type, case_status, complainant_name, date_filed)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		c.CaseID,
		c.CaseName,
		c.CaseType,
		c.CaseStatus,
		c.ComplainantName,
		c.DateFiled,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (r *caseRepository) Update(ctx context.Context, c *domain.Case) error {
	const query = `
        UPDATE cases
        SET case_name=$1, case_type=$2, case_status=$3, complainant_name=$4, date_filed=$5, updated_at=NOW()
        WHERE case_id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		c.CaseName,
		c.CaseType,
		c.CaseStatus,
		c.ComplainantName,
		c.DateFiled,
		c.CaseID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *caseRepository) Delete(ctx context.Context, caseID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM cases WHERE case_id=$1`, caseID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *caseRepository) FindByCaseID(ctx context.Context, caseID string) (*domain.Case, error) {
	var c domain.Case
	if err := scanCase(r.pool.QueryRow(ctx,
		`SELECT `+caseColumns+` FROM cases WHERE case_id=$1`, caseID), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *caseRepository) List(ctx context.Context) ([]domain.Case, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+caseColumns+` FROM cases ORDER BY date_filed DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Case
	for rows.Next() {
		var c domain.Case
		if err := scanCase(rows, &c); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func scanCase(row pgx.Row, c *domain.Case) error {
	return row.Scan(
		&c.CaseID,
		&c.CaseName,
		&c.CaseType,
		&c.CaseStatus,
		&c.ComplainantName,
		&c.DateFiled,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
}
