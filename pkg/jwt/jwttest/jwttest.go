// Package jwttest emite tokens firmados con forma realista para tests.
package jwttest

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret-key-for-unit-tests"

// Token genera un JWT HS256 con los claims de la tienda y expiración en ttl.
func Token(t *testing.T, email, firstName, lastName, role string, ttl time.Duration) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"email":     email,
		"firstName": firstName,
		"lastName":  lastName,
		"role":      role,
		"image":     "https://cdn.agni.lk/avatars/" + firstName + ".png",
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}
