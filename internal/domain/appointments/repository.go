package appointments

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, a Appointment) error
	GetByID(ctx context.Context, id string) (Appointment, error)
	Update(ctx context.Context, a Appointment) error
	Delete(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerUserID string) ([]Appointment, error)
	List(ctx context.Context, filter ListFilter) ([]Appointment, error)
}

// ListFilter se aplica en el repo: estado/texto con la misma semántica que
// Filter, más rango de fechas sobre ScheduledAt.
type ListFilter struct {
	Status StatusFilter
	Query  string
	From   *time.Time
	To     *time.Time
	Limit  int
}
