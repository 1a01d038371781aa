package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"raphavets/internal/domain/appointments"
)

type appointmentRepo struct {
	mu   sync.RWMutex
	byID map[string]appointments.Appointment
}

func NewAppointmentRepo() appointments.Repository {
	return &appointmentRepo{
		byID: make(map[string]appointments.Appointment),
	}
}

func (r *appointmentRepo) Create(ctx context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("appointment id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("appointment already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return appointments.Appointment{}, appointments.ErrNotFound
	}
	return a, nil
}

func (r *appointmentRepo) Update(ctx context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("appointment id required")
	}
	if _, exists := r.byID[a.ID]; !exists {
		return appointments.ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *appointmentRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return appointments.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *appointmentRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]appointments.Appointment, 0)
	for _, a := range r.byID {
		if a.OwnerUserID == ownerUserID {
			out = append(out, a)
		}
	}

	sortAppointments(out)
	return out, nil
}

func (r *appointmentRepo) List(ctx context.Context, filter appointments.ListFilter) ([]appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	limit := filter.Limit
	if limit <= 0 {
		limit = 200
	}

	out := make([]appointments.Appointment, 0)
	for _, a := range r.byID {
		// Rango de fechas sobre ScheduledAt; las fechas inválidas (cero)
		// solo aparecen cuando no se pide rango.
		if filter.From != nil && (a.ScheduledAt.IsZero() || a.ScheduledAt.Before(*filter.From)) {
			continue
		}
		if filter.To != nil && (a.ScheduledAt.IsZero() || a.ScheduledAt.After(*filter.To)) {
			continue
		}
		out = append(out, a)
	}

	sortAppointments(out)

	// Estado y texto con la misma semántica que la vista de lista.
	status := filter.Status
	if status == "" {
		status = appointments.FilterAll
	}
	out = appointments.Filter(out, status, filter.Query)

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Orden estable: por fecha asc, fechas inválidas al final, desempate por
// creación (consistencia entre llamadas sobre el map).
func sortAppointments(items []appointments.Appointment) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch {
		case a.ScheduledAt.IsZero() && b.ScheduledAt.IsZero():
			return a.CreatedAt.Before(b.CreatedAt)
		case a.ScheduledAt.IsZero():
			return false
		case b.ScheduledAt.IsZero():
			return true
		case !a.ScheduledAt.Equal(b.ScheduledAt):
			return a.ScheduledAt.Before(b.ScheduledAt)
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	})
}
