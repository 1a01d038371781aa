package staff

import (
	"time"

	"raphavets/internal/ports/auth"
)

type Status string

const (
	StatusActive  Status = "active"
	StatusRevoked Status = "revoked"
)

// Assignment es la asignación de rol de clínica a un usuario. Un usuario
// sin asignación activa es pet-owner a secas.
type Assignment struct {
	ID     string
	UserID string

	Role   auth.Role // vet | admin
	Status Status

	CreatedAt time.Time
	UpdatedAt time.Time
	RevokedAt *time.Time
}

func (a Assignment) Active() bool {
	return a.Status == StatusActive
}
