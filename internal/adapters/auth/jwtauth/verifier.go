package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"raphavets/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("jwtauth: secret not configured")
	ErrInvalidToken  = errors.New("jwtauth: invalid token")
)

// Config del verificador local de tokens.
// Secret normalmente viene de config/env en quien lo instancie.
type Config struct {
	Secret string

	// Issuer opcional; si está seteado, se exige que el token lo traiga.
	Issuer string
}

// Verifier implementa auth.AuthVerifier con JWT HS256 firmados por el
// servicio de identidad de la clínica. No se integra automáticamente;
// queda listo para que lo instancien desde main/router.
type Verifier struct {
	secret []byte
	issuer string
}

func NewVerifier(cfg Config) (*Verifier, error) {
	secret := strings.TrimSpace(cfg.Secret)
	if secret == "" {
		return nil, ErrNotConfigured
	}
	return &Verifier{
		secret: []byte(secret),
		issuer: strings.TrimSpace(cfg.Issuer),
	}, nil
}

type tokenClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || len(v.secret) == 0 {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return auth.Claims{}, ErrInvalidToken
	}

	userID := strings.TrimSpace(claims.Subject)
	if userID == "" {
		return auth.Claims{}, errors.New("jwtauth: token missing sub")
	}

	return auth.Claims{
		UserID: userID,
		Email:  strings.TrimSpace(claims.Email),
		Name:   strings.TrimSpace(claims.Name),
		Role:   parseRole(claims.Role),
	}, nil
}

func parseRole(s string) auth.Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return auth.RoleAdmin
	case "vet":
		return auth.RoleVet
	default:
		return auth.RoleOwner
	}
}
