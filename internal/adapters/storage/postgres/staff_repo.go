package postgres

import (
	"context"
	"database/sql"
	"strings"

	"raphavets/internal/domain/staff"
	"raphavets/internal/ports/auth"
)

type StaffRepo struct {
	db *sql.DB
}

func NewStaffRepo(db *sql.DB) *StaffRepo {
	return &StaffRepo{db: db}
}

func (r *StaffRepo) Create(ctx context.Context, a staff.Assignment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO staff_assignments (
			id, user_id,
			role, status,
			created_at, updated_at, revoked_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		a.ID,
		a.UserID,
		string(a.Role),
		string(a.Status),
		a.CreatedAt,
		a.UpdatedAt,
		toNullDate(a.RevokedAt),
	)
	return err
}

func (r *StaffRepo) Update(ctx context.Context, a staff.Assignment) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE staff_assignments
		SET
			role = $2,
			status = $3,
			updated_at = $4,
			revoked_at = $5
		WHERE id = $1
	`,
		a.ID,
		string(a.Role),
		string(a.Status),
		a.UpdatedAt,
		toNullDate(a.RevokedAt),
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return staff.ErrNotFound
	}
	return nil
}

func (r *StaffRepo) GetByID(ctx context.Context, id string) (staff.Assignment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return staff.Assignment{}, staff.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, user_id,
			role, status,
			created_at, updated_at, revoked_at
		FROM staff_assignments
		WHERE id = $1
	`, id)

	return scanAssignment(row)
}

func (r *StaffRepo) GetActiveByUser(ctx context.Context, userID string) (staff.Assignment, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return staff.Assignment{}, staff.ErrNotFound
	}

	// Si hubiera data sucia con más de una activa, gana la más reciente.
	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, user_id,
			role, status,
			created_at, updated_at, revoked_at
		FROM staff_assignments
		WHERE user_id = $1 AND status = 'active'
		ORDER BY updated_at DESC, created_at DESC
		LIMIT 1
	`, userID)

	return scanAssignment(row)
}

func (r *StaffRepo) List(ctx context.Context) ([]staff.Assignment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, user_id,
			role, status,
			created_at, updated_at, revoked_at
		FROM staff_assignments
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]staff.Assignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAssignment(row rowScanner) (staff.Assignment, error) {
	var a staff.Assignment
	var role, status string
	var revokedAt sql.NullTime

	if err := row.Scan(
		&a.ID,
		&a.UserID,
		&role,
		&status,
		&a.CreatedAt,
		&a.UpdatedAt,
		&revokedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return staff.Assignment{}, staff.ErrNotFound
		}
		return staff.Assignment{}, err
	}

	a.Role = auth.Role(role)
	a.Status = staff.Status(status)
	if revokedAt.Valid {
		t := revokedAt.Time
		a.RevokedAt = &t
	}

	return a, nil
}
