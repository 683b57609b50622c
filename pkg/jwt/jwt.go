package jwt

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims claims que el backend de la tienda incluye en el bearer token.
// Solo se usan para mostrar la identidad; nunca para decisiones de autorización.
type Claims struct {
	jwt.RegisteredClaims
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Image     string `json:"image"`
	Role      string `json:"role"`
}

// Expired indica si el claim exp existe y ya pasó respecto a now.
func (c *Claims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return !now.Before(c.ExpiresAt.Time)
}

// Decode parsea el payload del token SIN verificar la firma.
// Retorna error si el token no tiene forma JWT o el payload no es JSON válido.
func Decode(tokenString string) (*Claims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, fmt.Errorf("jwt: token vacío")
	}
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("jwt: decodificar payload: %w", err)
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("jwt: claim email ausente")
	}
	return claims, nil
}
