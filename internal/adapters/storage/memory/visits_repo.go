package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"raphavets/internal/domain/visits"
)

type visitRepo struct {
	mu   sync.RWMutex
	byID map[string]visits.Visit
}

func NewVisitRepo() visits.Repository {
	return &visitRepo{
		byID: make(map[string]visits.Visit),
	}
}

func (r *visitRepo) Create(ctx context.Context, v visits.Visit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(v.ID) == "" {
		return errors.New("visit id required")
	}
	if _, exists := r.byID[v.ID]; exists {
		return errors.New("visit already exists")
	}
	r.byID[v.ID] = v
	return nil
}

func (r *visitRepo) GetByID(ctx context.Context, id string) (visits.Visit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.byID[id]
	if !ok {
		return visits.Visit{}, visits.ErrNotFound
	}
	return v, nil
}

func (r *visitRepo) ListRange(ctx context.Context, from, to *time.Time) ([]visits.Visit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]visits.Visit, 0)
	for _, v := range r.byID {
		if from != nil && (v.VisitedAt.IsZero() || v.VisitedAt.Before(*from)) {
			continue
		}
		if to != nil && (v.VisitedAt.IsZero() || v.VisitedAt.After(*to)) {
			continue
		}
		out = append(out, v)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.VisitedAt.Equal(b.VisitedAt) {
			return a.VisitedAt.Before(b.VisitedAt)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})

	return out, nil
}
