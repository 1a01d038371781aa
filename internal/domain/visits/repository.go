package visits

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, v Visit) error
	GetByID(ctx context.Context, id string) (Visit, error)
	// ListRange devuelve visitas con VisitedAt dentro de [from, to].
	// from/to en nil abren el extremo correspondiente.
	ListRange(ctx context.Context, from, to *time.Time) ([]Visit, error)
}
