package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"raphavets/internal/domain/appointments"
)

type AppointmentsRepo struct {
	db *sql.DB
}

func NewAppointmentsRepo(db *sql.DB) *AppointmentsRepo {
	return &AppointmentsRepo{db: db}
}

func (r *AppointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO appointments (
			id, pet_id, pet_name,
			owner_user_id, owner_name,
			scheduled_at, date_label, time_label,
			status, notes,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		a.ID,
		a.PetID,
		a.PetName,
		a.OwnerUserID,
		a.OwnerName,
		toNullTime(a.ScheduledAt),
		a.DateLabel,
		a.TimeLabel,
		string(a.Status),
		a.Notes,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AppointmentsRepo) Update(ctx context.Context, a appointments.Appointment) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE appointments
		SET
			pet_id = $2,
			pet_name = $3,
			owner_user_id = $4,
			owner_name = $5,
			scheduled_at = $6,
			date_label = $7,
			time_label = $8,
			status = $9,
			notes = $10,
			updated_at = $11
		WHERE id = $1
	`,
		a.ID,
		a.PetID,
		a.PetName,
		a.OwnerUserID,
		a.OwnerName,
		toNullTime(a.ScheduledAt),
		a.DateLabel,
		a.TimeLabel,
		string(a.Status),
		a.Notes,
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return appointments.ErrNotFound
	}
	return nil
}

func (r *AppointmentsRepo) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return appointments.ErrNotFound
	}

	res, err := r.db.ExecContext(ctx, `
		DELETE FROM appointments
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return appointments.ErrNotFound
	}
	return nil
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return appointments.Appointment{}, appointments.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, pet_id, pet_name,
			owner_user_id, owner_name,
			scheduled_at, date_label, time_label,
			status, notes,
			created_at, updated_at
		FROM appointments
		WHERE id = $1
	`, id)

	a, err := scanAppointment(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return appointments.Appointment{}, appointments.ErrNotFound
		}
		return appointments.Appointment{}, err
	}
	return a, nil
}

func (r *AppointmentsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]appointments.Appointment, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, pet_id, pet_name,
			owner_user_id, owner_name,
			scheduled_at, date_label, time_label,
			status, notes,
			created_at, updated_at
		FROM appointments
		WHERE owner_user_id = $1
		ORDER BY scheduled_at ASC NULLS LAST, created_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAppointments(rows)
}

func (r *AppointmentsRepo) List(ctx context.Context, filter appointments.ListFilter) ([]appointments.Appointment, error) {
	sb := strings.Builder{}
	sb.WriteString(`
		SELECT
			id, pet_id, pet_name,
			owner_user_id, owner_name,
			scheduled_at, date_label, time_label,
			status, notes,
			created_at, updated_at
		FROM appointments
		WHERE 1=1
	`)

	args := []any{}
	argN := 1

	// El filtro "All" no restringe estado; el resto matchea exacto
	// (los estados ya están normalizados al escribir).
	if filter.Status != "" && filter.Status != appointments.FilterAll {
		sb.WriteString(fmt.Sprintf(" AND status = $%d", argN))
		args = append(args, string(filter.Status))
		argN++
	}

	// from/to sobre scheduled_at; NULL (fecha legada) queda fuera del rango
	if filter.From != nil {
		sb.WriteString(fmt.Sprintf(" AND scheduled_at >= $%d", argN))
		args = append(args, *filter.From)
		argN++
	}
	if filter.To != nil {
		sb.WriteString(fmt.Sprintf(" AND scheduled_at <= $%d", argN))
		args = append(args, *filter.To)
		argN++
	}

	// q: búsqueda simple en nombre de mascota + nombre del dueño
	if strings.TrimSpace(filter.Query) != "" {
		sb.WriteString(fmt.Sprintf(" AND (pet_name ILIKE $%d OR owner_name ILIKE $%d)", argN, argN))
		args = append(args, "%"+strings.TrimSpace(filter.Query)+"%")
		argN++
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}
	if limit > 500 {
		limit = 500
	}

	sb.WriteString(" ORDER BY scheduled_at ASC NULLS LAST, created_at ASC")
	sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAppointments(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAppointment(row rowScanner) (appointments.Appointment, error) {
	var a appointments.Appointment
	var scheduledAt sql.NullTime
	var status string

	if err := row.Scan(
		&a.ID,
		&a.PetID,
		&a.PetName,
		&a.OwnerUserID,
		&a.OwnerName,
		&scheduledAt,
		&a.DateLabel,
		&a.TimeLabel,
		&status,
		&a.Notes,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return appointments.Appointment{}, err
	}

	a.ScheduledAt = fromNullTime(scheduledAt)
	a.Status = appointments.Status(status)
	return a, nil
}

func collectAppointments(rows *sql.Rows) ([]appointments.Appointment, error) {
	out := make([]appointments.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
