package staff

import "context"

type Repository interface {
	Create(ctx context.Context, a Assignment) error
	Update(ctx context.Context, a Assignment) error
	GetByID(ctx context.Context, id string) (Assignment, error)
	// GetActiveByUser devuelve la asignación activa más reciente del usuario.
	GetActiveByUser(ctx context.Context, userID string) (Assignment, error)
	List(ctx context.Context) ([]Assignment, error)
}
