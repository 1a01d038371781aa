package staff

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"raphavets/internal/ports/auth"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrBadState     = errors.New("invalid state")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Assign otorga rol vet o admin. Si el usuario ya tiene asignación activa,
// se actualiza el rol en lugar de duplicar (mismo criterio que re-invitar).
func (s *Service) Assign(ctx context.Context, userID string, role auth.Role) (Assignment, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Assignment{}, ErrInvalidInput
	}
	if role != auth.RoleVet && role != auth.RoleAdmin {
		return Assignment{}, ErrInvalidInput
	}

	now := s.now()

	if existing, err := s.repo.GetActiveByUser(ctx, userID); err == nil && existing.ID != "" {
		existing.Role = role
		existing.UpdatedAt = now
		if err := s.repo.Update(ctx, existing); err != nil {
			return Assignment{}, err
		}
		return existing, nil
	}

	a := Assignment{
		ID:        uuid.NewString(),
		UserID:    userID,
		Role:      role,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Assignment{}, err
	}
	return a, nil
}

// Revoke es idempotente: revocar algo ya revocado devuelve el mismo estado.
func (s *Service) Revoke(ctx context.Context, id string) (Assignment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Assignment{}, ErrInvalidInput
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Assignment{}, ErrNotFound
	}

	if a.Status == StatusRevoked {
		return a, nil
	}

	now := s.now()
	a.Status = StatusRevoked
	a.UpdatedAt = now
	a.RevokedAt = &now

	if err := s.repo.Update(ctx, a); err != nil {
		return Assignment{}, err
	}
	return a, nil
}

func (s *Service) List(ctx context.Context) ([]Assignment, error) {
	return s.repo.List(ctx)
}

// EffectiveRole resuelve el rol real del usuario: la asignación activa en
// storage manda sobre lo que declare el token (un token viejo puede traer
// un rol ya revocado). Sin asignación, vale el rol del token.
func (s *Service) EffectiveRole(ctx context.Context, claims auth.Claims) auth.Role {
	if strings.TrimSpace(claims.UserID) == "" {
		return auth.RoleOwner
	}

	a, err := s.repo.GetActiveByUser(ctx, claims.UserID)
	if err == nil && a.Active() {
		return a.Role
	}

	if claims.Role == "" {
		return auth.RoleOwner
	}
	return claims.Role
}

func (s *Service) IsStaff(ctx context.Context, claims auth.Claims) bool {
	r := s.EffectiveRole(ctx, claims)
	return r == auth.RoleVet || r == auth.RoleAdmin
}

func (s *Service) IsAdmin(ctx context.Context, claims auth.Claims) bool {
	return s.EffectiveRole(ctx, claims) == auth.RoleAdmin
}
