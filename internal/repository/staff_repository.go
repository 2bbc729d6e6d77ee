package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dulagbps/records-service/internal/domain"
	apperrors "github.com/dulagbps/records-service/pkg/util"
)

// StaffRepository is the credential store contract the auth core depends on.
// Save operations fail with a CONFLICT domain error naming the field when a
// uniqueness invariant (staffId, email, username, qrSecret) would be broken.
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.Staff) error
	Update(ctx context.Context, staff *domain.Staff) error
	Delete(ctx context.Context, staffID string) error
	FindByStaffID(ctx context.Context, staffID string) (*domain.Staff, error)
	FindByUsername(ctx context.Context, username string) (*domain.Staff, error)
	FindByQRSecret(ctx context.Context, secret string) (*domain.Staff, error)
	// FindConflict returns the name of the first field already taken by
	// another record, or "" when none conflict. excludingStaffID skips the
	// record being updated.
	FindConflict(ctx context.Context, staffID, email, username, excludingStaffID string) (string, error)
	List(ctx context.Context) ([]domain.Staff, error)
}

const staffColumns = `staff_id, full_name, position, contact_number, email, username, password_hash, is_admin, qr_secret, created_at, updated_at`

type staffRepository struct {
	pool *pgxpool.Pool
}

// NewStaffRepository returns a Postgres-backed credential store.
func NewStaffRepository(pool *pgxpool.Pool) StaffRepository {
	return &staffRepository{pool: pool}
}

func (r *staffRepository) Create(ctx context.Context, staff *domain.Staff) error {
	const query = `
        INSERT INTO staff (staff_id, full_name, position, contact_number, email, username, password_hash, is_admin, qr_secret)
        VALUES ($1,$2,$3,$4,LOWER($5),$6,$7,$8,$9)
        RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		staff.StaffID,
		staff.FullName,
		staff.Position,
		staff.ContactNumber,
		staff.Email,
		staff.Username,
		staff.PasswordHash,
		staff.IsAdmin,
		staff.QRSecret,
	).Scan(&staff.CreatedAt, &staff.UpdatedAt)
	return mapUniqueViolation(err)
}

func (r *staffRepository) Update(ctx context.Context, staff *domain.Staff) error {
	const query = `
        UPDATE staff
        SET full_name=$1, position=$2, contact_number=$3, email=LOWER($4), username=$5,
            password_hash=$6, is_admin=$7, qr_secret=$8, updated_at=NOW()
        WHERE staff_id=$9`

	cmd, err := r.pool.Exec(ctx, query,
		staff.FullName,
		staff.Position,
		staff.ContactNumber,
		staff.Email,
		staff.Username,
		staff.PasswordHash,
		staff.IsAdmin,
		staff.QRSecret,
		staff.StaffID,
	)
	if err != nil {
		return mapUniqueViolation(err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *staffRepository) Delete(ctx context.Context, staffID string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM staff WHERE staff_id=$1`, staffID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *staffRepository) FindByStaffID(ctx context.Context, staffID string) (*domain.Staff, error) {
	return r.findOne(ctx, `SELECT `+staffColumns+` FROM staff WHERE staff_id=$1`, staffID)
}

func (r *staffRepository) FindByUsername(ctx context.Context, username string) (*domain.Staff, error) {
	return r.findOne(ctx, `SELECT `+staffColumns+` FROM staff WHERE LOWER(username)=LOWER($1)`, username)
}

func (r *staffRepository) FindByQRSecret(ctx context.Context, secret string) (*domain.Staff, error) {
	// Exact match: the secret is an opaque high-entropy token, never normalized.
	return r.findOne(ctx, `SELECT `+staffColumns+` FROM staff WHERE qr_secret=$1`, secret)
}

func (r *staffRepository) FindConflict(ctx context.Context, staffID, email, username, excludingStaffID string) (string, error) {
	const query = `
        SELECT staff_id, email, username FROM staff
        WHERE (staff_id=$1 OR email=LOWER($2) OR LOWER(username)=LOWER($3)) AND staff_id<>$4
        LIMIT 1`

	var existingID, existingEmail, existingUsername string
	err := r.pool.QueryRow(ctx, query, staffID, email, username, excludingStaffID).
		Scan(&existingID, &existingEmail, &existingUsername)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}

	switch {
	case staffID != "" && existingID == staffID:
		return "staffId", nil
	case email != "" && strings.EqualFold(existingEmail, email):
		return "email", nil
	case username != "" && strings.EqualFold(existingUsername, username):
		return "username", nil
	}
	return "staffId", nil
}

func (r *staffRepository) List(ctx context.Context) ([]domain.Staff, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+staffColumns+` FROM staff ORDER BY staff_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Staff
	for rows.Next() {
		var staff domain.Staff
		if err := scanStaff(rows, &staff); err != nil {
			return nil, err
		}
		result = append(result, staff)
	}
	return result, rows.Err()
}

func (r *staffRepository) findOne(ctx context.Context, query string, arg any) (*domain.Staff, error) {
	var staff domain.Staff
	if err := scanStaff(r.pool.QueryRow(ctx, query, arg), &staff); err != nil {
		return nil, err
	}
	return &staff, nil
}

func scanStaff(row pgx.Row, staff *domain.Staff) error {
	return row.Scan(
		&staff.StaffID,
		&staff.FullName,
		&staff.Position,
		&staff.ContactNumber,
		&staff.Email,
		&staff.Username,
		&staff.PasswordHash,
		&staff.IsAdmin,
		&staff.QRSecret,
		&staff.CreatedAt,
		&staff.UpdatedAt,
	)
}

// mapUniqueViolation converts a Postgres unique violation into the CONFLICT
// domain error naming the field, so the race window between FindConflict and
// save still surfaces as a clean duplicate-key outcome.
func mapUniqueViolation(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "qr_secret"):
		return apperrors.NewDuplicateKey("qrSecret")
	case strings.Contains(pgErr.ConstraintName, "email"):
		return apperrors.NewDuplicateKey("email")
	case strings.Contains(pgErr.ConstraintName, "username"):
		return apperrors.NewDuplicateKey("username")
	default:
		return apperrors.NewDuplicateKey("staffId")
	}
}
