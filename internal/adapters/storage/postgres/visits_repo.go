package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"raphavets/internal/domain/visits"
)

type VisitsRepo struct {
	db *sql.DB
}

func NewVisitsRepo(db *sql.DB) *VisitsRepo {
	return &VisitsRepo{db: db}
}

func (r *VisitsRepo) Create(ctx context.Context, v visits.Visit) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO visits (
			id, pet_id, pet_name, owner_name,
			visited_at, date_label, time_label,
			visit_type,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		v.ID,
		v.PetID,
		v.PetName,
		v.OwnerName,
		toNullTime(v.VisitedAt),
		v.DateLabel,
		v.TimeLabel,
		string(v.VisitType),
		v.CreatedAt,
	)
	return err
}

func (r *VisitsRepo) GetByID(ctx context.Context, id string) (visits.Visit, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return visits.Visit{}, visits.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, pet_id, pet_name, owner_name,
			visited_at, date_label, time_label,
			visit_type,
			created_at
		FROM visits
		WHERE id = $1
	`, id)

	var v visits.Visit
	var visitedAt sql.NullTime
	var typ string
	if err := row.Scan(
		&v.ID,
		&v.PetID,
		&v.PetName,
		&v.OwnerName,
		&visitedAt,
		&v.DateLabel,
		&v.TimeLabel,
		&typ,
		&v.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return visits.Visit{}, visits.ErrNotFound
		}
		return visits.Visit{}, err
	}

	v.VisitedAt = fromNullTime(visitedAt)
	v.VisitType = visits.VisitType(typ)
	return v, nil
}

func (r *VisitsRepo) ListRange(ctx context.Context, from, to *time.Time) ([]visits.Visit, error) {
	sb := strings.Builder{}
	sb.WriteString(`
		SELECT
			id, pet_id, pet_name, owner_name,
			visited_at, date_label, time_label,
			visit_type,
			created_at
		FROM visits
		WHERE 1=1
	`)

	args := []any{}
	argN := 1

	if from != nil {
		sb.WriteString(fmt.Sprintf(" AND visited_at >= $%d", argN))
		args = append(args, *from)
		argN++
	}
	if to != nil {
		sb.WriteString(fmt.Sprintf(" AND visited_at <= $%d", argN))
		args = append(args, *to)
		argN++
	}

	sb.WriteString(" ORDER BY visited_at ASC NULLS LAST, created_at ASC")

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]visits.Visit, 0)
	for rows.Next() {
		var v visits.Visit
		var visitedAt sql.NullTime
		var typ string
		if err := rows.Scan(
			&v.ID,
			&v.PetID,
			&v.PetName,
			&v.OwnerName,
			&visitedAt,
			&v.DateLabel,
			&v.TimeLabel,
			&typ,
			&v.CreatedAt,
		); err != nil {
			return nil, err
		}

		v.VisitedAt = fromNullTime(visitedAt)
		v.VisitType = visits.VisitType(typ)
		out = append(out, v)
	}

	return out, rows.Err()
}
