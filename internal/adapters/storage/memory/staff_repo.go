package memory

import (
	"context"
	"errors"
	"sync"

	"raphavets/internal/domain/staff"
)

type staffRepo struct {
	mu   sync.RWMutex
	byID map[string]staff.Assignment
}

func NewStaffRepo() staff.Repository {
	return &staffRepo{
		byID: make(map[string]staff.Assignment),
	}
}

func (r *staffRepo) Create(ctx context.Context, a staff.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.ID == "" {
		return errors.New("assignment id required")
	}
	if _, exists := r.byID[a.ID]; exists {
		return errors.New("assignment already exists")
	}
	r.byID[a.ID] = a
	return nil
}

func (r *staffRepo) Update(ctx context.Context, a staff.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.ID == "" {
		return errors.New("assignment id required")
	}
	if _, exists := r.byID[a.ID]; !exists {
		return staff.ErrNotFound
	}
	r.byID[a.ID] = a
	return nil
}

func (r *staffRepo) GetByID(ctx context.Context, id string) (staff.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return staff.Assignment{}, staff.ErrNotFound
	}
	return a, nil
}

// Defensivo: si por data sucia hubiera más de una asignación activa,
// gana la más reciente por UpdatedAt (desempate por CreatedAt).
func (r *staffRepo) GetActiveByUser(ctx context.Context, userID string) (staff.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var winner staff.Assignment
	has := false

	for _, a := range r.byID {
		if a.UserID != userID {
			continue
		}
		if a.Status != staff.StatusActive {
			continue
		}

		if !has {
			winner = a
			has = true
			continue
		}

		if a.UpdatedAt.After(winner.UpdatedAt) {
			winner = a
			continue
		}
		if a.UpdatedAt.Equal(winner.UpdatedAt) && a.CreatedAt.After(winner.CreatedAt) {
			winner = a
		}
	}

	if !has {
		return staff.Assignment{}, staff.ErrNotFound
	}
	return winner, nil
}

func (r *staffRepo) List(ctx context.Context) ([]staff.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]staff.Assignment, 0, len(r.byID))
	for _, a := range r.byID {
		out = append(out, a)
	}
	return out, nil
}
