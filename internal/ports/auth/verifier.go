package auth

import "context"

// AuthVerifier valida un token de acceso y extrae sus claims.
// La implementación por defecto es jwtauth (HS256 local); en dev-mode
// el middleware puede operar sin verifier usando headers de debug.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
