package auth

// Role es el rol declarado en el token. El rol efectivo lo decide el
// módulo staff (un token viejo puede traer un rol ya revocado).
type Role string

const (
	RoleOwner Role = "owner"
	RoleVet   Role = "vet"
	RoleAdmin Role = "admin"
)

// Claims representa la información extraída del token.
type Claims struct {
	UserID string
	Email  string
	Name   string
	Role   Role
}

// IsStaff indica si el rol declarado corresponde a personal de la clínica.
func (c Claims) IsStaff() bool {
	return c.Role == RoleVet || c.Role == RoleAdmin
}
